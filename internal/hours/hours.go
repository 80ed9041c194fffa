// Package hours decides whether the business is currently accepting orders.
package hours

import (
	"fmt"
	"time"
)

// Interval is one open/close window as zero-padded 24-hour "HH:MM" strings.
// The fixed-width format makes lexicographic comparison equivalent to
// time-of-day comparison.
type Interval struct {
	Open  string `yaml:"open"`
	Close string `yaml:"close"`
}

// Schedule maps a weekday name ("Monday", ...) to its single open interval.
// A weekday absent from the map is always closed. Split shifts are not
// supported.
type Schedule map[string]Interval

// IsOpen reports whether now falls inside today's interval, inclusive on
// both ends: a message arriving exactly at opening or closing time is
// accepted.
func (s Schedule) IsOpen(now time.Time) bool {
	iv, ok := s[now.Weekday().String()]
	if !ok {
		return false
	}
	hhmm := now.Format("15:04")
	return iv.Open <= hhmm && hhmm <= iv.Close
}

// Today returns the interval for now's weekday, if any. Used to render
// the closed-hours reply.
func (s Schedule) Today(now time.Time) (Interval, bool) {
	iv, ok := s[now.Weekday().String()]
	return iv, ok
}

// Validate rejects malformed times and cross-midnight intervals.
// Intervals with close < open (e.g. "22:00"-"02:00") cannot be represented
// by the string comparison in IsOpen and are refused outright rather than
// silently mishandled.
func (s Schedule) Validate() error {
	for day, iv := range s {
		if !validHHMM(iv.Open) || !validHHMM(iv.Close) {
			return fmt.Errorf("invalid hours for %s: %q-%q (want HH:MM)", day, iv.Open, iv.Close)
		}
		if iv.Close < iv.Open {
			return fmt.Errorf("cross-midnight hours for %s: %q-%q are not supported", day, iv.Open, iv.Close)
		}
	}
	return nil
}

func validHHMM(v string) bool {
	if len(v) != 5 || v[2] != ':' {
		return false
	}
	_, err := time.Parse("15:04", v)
	return err == nil
}

// Default is the schedule used when the config file does not override it.
func Default() Schedule {
	return Schedule{
		"Monday":    {Open: "11:00", Close: "21:00"},
		"Tuesday":   {Open: "11:00", Close: "21:00"},
		"Wednesday": {Open: "11:00", Close: "21:00"},
		"Thursday":  {Open: "11:00", Close: "21:00"},
		"Friday":    {Open: "11:00", Close: "22:00"},
		"Saturday":  {Open: "00:00", Close: "22:00"},
		"Sunday":    {Open: "00:00", Close: "20:00"},
	}
}
