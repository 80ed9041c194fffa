package config

import (
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"order-assistant/internal/hours"
)

type HTTP struct {
	Port int `yaml:"port"`
}

type Restaurant struct {
	Name  string         `yaml:"name"`
	FAQ   string         `yaml:"faq"`
	Hours hours.Schedule `yaml:"hours"`
}

type Redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	TTLHours int    `yaml:"ttl_hours"`
}

type Sessions struct {
	Driver string `yaml:"driver"` // memory | redis
	Redis  Redis  `yaml:"redis"`
}

type Postgres struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	User string `yaml:"user"`
	Pass string `yaml:"password"`
	Name string `yaml:"database"`
}

type Ledger struct {
	Driver   string   `yaml:"driver"` // file | postgres
	Path     string   `yaml:"path"`
	Postgres Postgres `yaml:"postgres"`
}

type Responder struct {
	BaseURL    string `yaml:"base_url"`
	Model      string `yaml:"model"`
	APIKeyEnv  string `yaml:"api_key_env"`
	TimeoutSec int    `yaml:"timeout_sec"`
}

type RabbitMQ struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
	User    string `yaml:"user"`
	Pass    string `yaml:"password"`
}

type App struct {
	HTTP       HTTP       `yaml:"http"`
	Restaurant Restaurant `yaml:"restaurant"`
	Sessions   Sessions   `yaml:"sessions"`
	Ledger     Ledger     `yaml:"ledger"`
	Responder  Responder  `yaml:"responder"`
	Rabbit     RabbitMQ   `yaml:"rabbitmq"`
}

// Load reads the YAML config file, applies defaults and validates the
// schedule.
func Load(path string) (App, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return App{}, fmt.Errorf("failed to read config: %w", err)
	}
	var a App
	if err := yaml.Unmarshal(b, &a); err != nil {
		return App{}, fmt.Errorf("failed to parse config: %w", err)
	}
	a.applyDefaults()
	if err := a.Restaurant.Hours.Validate(); err != nil {
		return App{}, fmt.Errorf("invalid business hours: %w", err)
	}
	return a, nil
}

func (a *App) applyDefaults() {
	if a.HTTP.Port == 0 {
		a.HTTP.Port = 3000
	}
	if a.Restaurant.Name == "" {
		a.Restaurant.Name = "Thai Restaurant"
	}
	if len(a.Restaurant.Hours) == 0 {
		a.Restaurant.Hours = hours.Default()
	}
	if a.Sessions.Driver == "" {
		a.Sessions.Driver = "memory"
	}
	if a.Sessions.Redis.TTLHours == 0 {
		a.Sessions.Redis.TTLHours = 24
	}
	if a.Ledger.Driver == "" {
		a.Ledger.Driver = "file"
	}
	if a.Ledger.Path == "" {
		a.Ledger.Path = "orders.csv"
	}
	if a.Responder.APIKeyEnv == "" {
		a.Responder.APIKeyEnv = "OPENAI_API_KEY"
	}
	if a.Responder.TimeoutSec == 0 {
		a.Responder.TimeoutSec = 30
	}
}

// FindConfig returns the first config file present among the usual
// candidates.
func FindConfig() (string, error) {
	candidates := []string{"config.yaml", "config.example.yaml"}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fs.ErrNotExist
}
