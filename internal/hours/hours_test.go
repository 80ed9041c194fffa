package hours

import (
	"testing"
	"time"
)

// 2024-06-03 is a Monday.
func monday(hhmm string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", "2024-06-03 "+hhmm)
	if err != nil {
		panic(err)
	}
	return t
}

func TestIsOpen(t *testing.T) {
	sched := Schedule{"Monday": {Open: "11:00", Close: "21:00"}}

	cases := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"before opening", monday("10:59"), false},
		{"exactly at opening", monday("11:00"), true},
		{"mid-day", monday("15:30"), true},
		{"exactly at closing", monday("21:00"), true},
		{"one minute after closing", monday("21:01"), false},
		{"weekday absent from schedule", monday("12:00").AddDate(0, 0, 1), false}, // Tuesday
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := sched.IsOpen(tc.now); got != tc.want {
				t.Errorf("IsOpen(%s) = %v, want %v", tc.now.Format("Mon 15:04"), got, tc.want)
			}
		})
	}
}

func TestToday(t *testing.T) {
	sched := Schedule{"Monday": {Open: "11:00", Close: "21:00"}}

	iv, ok := sched.Today(monday("03:00"))
	if !ok || iv.Open != "11:00" || iv.Close != "21:00" {
		t.Errorf("Today(Monday) = %+v, %v", iv, ok)
	}
	if _, ok := sched.Today(monday("03:00").AddDate(0, 0, 1)); ok {
		t.Error("Today(Tuesday) should report no interval")
	}
}

func TestValidate(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default schedule should validate: %v", err)
	}
	if err := (Schedule{"Friday": {Open: "22:00", Close: "02:00"}}).Validate(); err == nil {
		t.Error("cross-midnight interval should be rejected")
	}
	if err := (Schedule{"Friday": {Open: "9:00", Close: "17:00"}}).Validate(); err == nil {
		t.Error("non-zero-padded time should be rejected")
	}
	if err := (Schedule{"Friday": {Open: "25:00", Close: "26:00"}}).Validate(); err == nil {
		t.Error("out-of-range time should be rejected")
	}
}
