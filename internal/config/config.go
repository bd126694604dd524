// Package config loads application settings through viper, with
// DAYFLOW_* environment overrides and an optional .dayflow.yaml file.
package config

import (
	"fmt"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config holds the settings the engine and views read.
type Config struct {
	// DataPath is the diskv base path for the task store.
	DataPath string

	// DaysShown is how many days the upcoming board displays.
	DaysShown int

	// DayStartHour and DayEndHour bound the schedulable slots,
	// inclusive.
	DayStartHour int
	DayEndHour   int

	// CalendarName selects the Google calendar for the optional sync
	// capability. Empty disables it.
	CalendarName string
}

// Load reads the config file (if any) and environment, applies
// defaults, expands the data path, and validates the result.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("path", "~/.dayflow/tasks")
	v.SetDefault("days", 7)
	v.SetDefault("dayStart", 8)
	v.SetDefault("dayEnd", 20)
	v.SetDefault("calendar", "")

	v.SetConfigName(".dayflow") // .yaml is implicit
	v.SetEnvPrefix("DAYFLOW")
	v.AutomaticEnv()
	v.AddConfigPath("$HOME")
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("failed to expand data path: %w", err)
	}

	cfg := &Config{
		DataPath:     path,
		DaysShown:    v.GetInt("days"),
		DayStartHour: v.GetInt("dayStart"),
		DayEndHour:   v.GetInt("dayEnd"),
		CalendarName: v.GetString("calendar"),
	}
	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	if c.DaysShown < 1 {
		return fmt.Errorf("days must be at least 1, got %d", c.DaysShown)
	}
	if c.DayStartHour < 0 || c.DayEndHour > 23 || c.DayStartHour > c.DayEndHour {
		return fmt.Errorf("invalid day hours %d-%d", c.DayStartHour, c.DayEndHour)
	}
	return nil
}
