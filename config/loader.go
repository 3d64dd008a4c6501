package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Load reads and validates the application configuration. Defaults are
// applied after validation: num_journeys 1, fare_type ADULT.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if key := os.Getenv("TNSW_API_KEY"); key != "" {
		cfg.APIKey = key
	}

	v := validator.New()
	if err := v.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate %s: %w", path, err)
	}

	for i := range cfg.Trips {
		if cfg.Trips[i].NumJourneys == 0 {
			cfg.Trips[i].NumJourneys = 1
		}
		if cfg.Trips[i].FareType == "" {
			cfg.Trips[i].FareType = "ADULT"
		}
	}
	return &cfg, nil
}
