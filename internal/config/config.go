package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// GroupingPreferences are the soft-cohesion toggles applied by the scored
// allocation strategy. Disabled preferences contribute neither to candidate
// ordering nor to bed scoring.
type GroupingPreferences struct {
	GroupByNationality bool `yaml:"groupByNationality"`
	GroupByHomeState   bool `yaml:"groupByHomeState"`
	GroupByLanguage    bool `yaml:"groupByLanguage"`
	GroupByTrade       bool `yaml:"groupByTrade"`
	GroupByShift       bool `yaml:"groupByShift"`

	// StrictNationality turns the nationality preference into a hard rule:
	// a room with occupants of another nationality is excluded outright.
	StrictNationality bool `yaml:"strictNationality"`
}

// ScoringWeights are the points awarded when a candidate fully agrees with a
// room's occupants on each attribute. The relative ordering matters more than
// the exact values.
type ScoringWeights struct {
	Nationality    float64 `yaml:"nationality" validate:"min=0"`
	HomeState      float64 `yaml:"homeState" validate:"min=0"`
	Language       float64 `yaml:"language" validate:"min=0"`
	Trade          float64 `yaml:"trade" validate:"min=0"`
	Shift          float64 `yaml:"shift" validate:"min=0"`
	MaxUtilization float64 `yaml:"maxUtilization" validate:"min=0"`
	EmptyRoom      float64 `yaml:"emptyRoom" validate:"min=0"`
}

// DefaultScoringWeights returns the tuned production weights.
func DefaultScoringWeights() ScoringWeights {
	return ScoringWeights{
		Nationality:    1000,
		HomeState:      800,
		Language:       700,
		Trade:          500,
		Shift:          450,
		MaxUtilization: 400,
		EmptyRoom:      100,
	}
}

// MaintenanceWindow takes rooms out of service for recurring periods, e.g.
// fumigation every first Sunday. Beds in affected rooms are excluded from
// allocation while a window is active. Rooms are matched by room number
// camp-wide: a window listing "101" covers every room numbered 101 in the
// target camp, on every floor.
type MaintenanceWindow struct {
	RRule         string   `yaml:"rrule" validate:"required"`
	DurationHours int      `yaml:"durationHours" validate:"min=1"`
	RoomNumbers   []string `yaml:"roomNumbers" validate:"min=1,dive,required"`
}

// Config represents the application configuration
type Config struct {
	DatabaseURL        string              `yaml:"databaseURL" validate:"required"`
	Preferences        GroupingPreferences `yaml:"preferences"`
	Weights            *ScoringWeights     `yaml:"weights,omitempty"`
	MaintenanceWindows []MaintenanceWindow `yaml:"maintenanceWindows,omitempty" validate:"dive"`
}

// EffectiveWeights returns the configured scoring weights, falling back to
// the defaults when the weights block is omitted.
func (c *Config) EffectiveWeights() ScoringWeights {
	if c.Weights != nil {
		return *c.Weights
	}
	return DefaultScoringWeights()
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// LoadWithEnv loads and validates the configuration for the given environment.
// It looks for camp_quarters_config.<env>.yaml in the current directory first,
// then in the user's home directory.
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	// Run struct validation
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	// Validate rrule syntax for each maintenance window
	for i, window := range cfg.MaintenanceWindows {
		if _, err := rrule.StrToRRule(window.RRule); err != nil {
			return fmt.Errorf("invalid rrule in maintenanceWindows[%d]: %w", i, err)
		}
	}

	return nil
}

// findConfigFile searches for the environment's config file in the current
// directory and home directory
func findConfigFile(env string) (string, error) {
	configFileName := fmt.Sprintf("camp_quarters_config.%s.yaml", env)

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file %s not found in current directory or home directory", configFileName)
}
