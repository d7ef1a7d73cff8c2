// Package scenario loads simulation run descriptions from YAML files.
package scenario

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// GridSpec describes the grid airspace a scenario runs over.
type GridSpec struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Scenario is a complete run description. Zero fields take the documented
// defaults from Default.
type Scenario struct {
	// Name labels the run in logs and output.
	Name string `yaml:"name"`

	// Seed drives all randomness in the run. The same scenario with the
	// same seed replays identically.
	Seed int64 `yaml:"seed"`

	// Grid is the airspace geometry.
	Grid GridSpec `yaml:"grid"`

	// Agents is how many mission agents spawn at tick zero.
	Agents int `yaml:"agents"`

	// MaxTick, when non-zero, hard-stops the run after that tick. Zero
	// runs until every agent retires.
	MaxTick uint64 `yaml:"max_tick"`

	// TimeWindow bounds how far ahead permits may be traded. Zero means
	// unbounded.
	TimeWindow uint64 `yaml:"time_window"`

	// Journal, when set, is the path the CBOR trade journal is written to.
	Journal string `yaml:"journal"`
}

// Default returns the baseline scenario: ten agents on a 3x3 grid,
// seed 1, running until all agents retire, no journal.
func Default() Scenario {
	return Scenario{
		Name:   "default",
		Seed:   1,
		Grid:   GridSpec{Width: 3, Height: 3},
		Agents: 10,
	}
}

// Load reads a scenario file, fills unset fields from Default, and
// validates the result. Unknown keys are rejected so typos in a scenario
// file surface instead of silently taking defaults.
func Load(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}

	s := Default()
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return &s, nil
}

// Validate checks the scenario for values the engine cannot run with.
func (s *Scenario) Validate() error {
	if s.Grid.Width < 1 || s.Grid.Height < 1 {
		return fmt.Errorf("grid must be at least 1x1, got %dx%d", s.Grid.Width, s.Grid.Height)
	}
	if s.Grid.Width*s.Grid.Height < 2 {
		return fmt.Errorf("grid needs at least two regions for missions, got %dx%d", s.Grid.Width, s.Grid.Height)
	}
	if s.Agents < 1 {
		return fmt.Errorf("agents must be positive, got %d", s.Agents)
	}
	return nil
}
