package config

import (
	"github.com/transportnsw/tripplanner/client"
	"github.com/transportnsw/tripplanner/model"
)

// Trip is one configured origin/destination pair to poll journeys for.
type Trip struct {
	Name              string   `yaml:"name" validate:"required"`
	StopID            string   `yaml:"stop_id" validate:"required"`
	DestinationStopID string   `yaml:"destination_stop_id" validate:"required"`
	NumJourneys       int      `yaml:"num_journeys" validate:"gte=0"`
	FareType          string   `yaml:"fare_type" validate:"omitempty,oneof=ADULT CHILD SCHOLAR SENIOR"`
	ModesOfTransport  []string `yaml:"modes_of_transport" validate:"omitempty,dive,oneof=train light_rail bus coach ferry school_bus"`
}

// Modes returns the configured mode filter as client values, or nil when the
// trip does not restrict modes.
func (t Trip) Modes() []client.TransportMode {
	if t.ModesOfTransport == nil {
		return nil
	}
	modes := make([]client.TransportMode, len(t.ModesOfTransport))
	for i, m := range t.ModesOfTransport {
		modes[i] = client.TransportMode(m)
	}
	return modes
}

// FarePerson returns the trip's rider category for fare selection.
func (t Trip) FarePerson() model.FarePerson {
	return model.FarePerson(t.FareType)
}

// AppConfig is the root configuration structure.
type AppConfig struct {
	APIKey string `yaml:"api_key" validate:"required"`
	Trips  []Trip `yaml:"trips" validate:"required,min=1,dive"`
}
