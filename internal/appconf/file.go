package appconf

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk configuration shape. JSON and YAML are both
// accepted, chosen by file extension.
type FileConfig struct {
	Port                   int      `json:"port" yaml:"port" validate:"gte=0,lte=65535"`
	Env                    string   `json:"env" yaml:"env" validate:"omitempty,oneof=development test production"`
	ApiKeys                []string `json:"api-keys" yaml:"api-keys"`
	RateLimit              int      `json:"rate-limit" yaml:"rate-limit" validate:"gte=0"`
	Verbose                bool     `json:"verbose" yaml:"verbose"`
	GtfsURL                string   `json:"gtfs-url" yaml:"gtfs-url"`
	DataPath               string   `json:"data-path" yaml:"data-path"`
	StaticAuthHeaderKey    string   `json:"static-auth-header-key" yaml:"static-auth-header-key"`
	StaticAuthHeaderValue  string   `json:"static-auth-header-value" yaml:"static-auth-header-value"`
	RefreshIntervalHours   int      `json:"refresh-interval-hours" yaml:"refresh-interval-hours" validate:"gte=0"`
	GroupRoutesByShortName bool     `json:"group-routes-by-short-name" yaml:"group-routes-by-short-name"`
	OrderingMaxPasses      int      `json:"ordering-max-passes" yaml:"ordering-max-passes" validate:"gte=0"`
	OrderingMarginMinutes  int      `json:"ordering-margin-minutes" yaml:"ordering-margin-minutes" validate:"gte=0"`
	OrderingVoteThreshold  int      `json:"ordering-vote-threshold" yaml:"ordering-vote-threshold" validate:"gte=0"`
	ShapeTolerance         float64  `json:"shape-tolerance" yaml:"shape-tolerance"`
}

// GtfsConfigData carries the feed-related subset of a FileConfig without
// importing the gtfs package, so cmd/api can assemble the real config.
type GtfsConfigData struct {
	GtfsURL                string
	GTFSDataPath           string
	StaticAuthHeaderKey    string
	StaticAuthHeaderValue  string
	RefreshIntervalHours   int
	GroupRoutesByShortName bool
	OrderingMaxPasses      int
	OrderingMarginMinutes  int
	OrderingVoteThreshold  int
	ShapeTolerance         float64
	Env                    Environment
	Verbose                bool
}

// LoadFromFile reads and validates a JSON or YAML config file.
func LoadFromFile(path string) (*FileConfig, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg FileConfig
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// ToAppConfig converts the file values to the application config.
func (f *FileConfig) ToAppConfig() Config {
	keys := f.ApiKeys
	if keys == nil {
		keys = []string{}
	}
	return Config{
		Port:      f.Port,
		Env:       EnvFlagToEnvironment(f.Env),
		ApiKeys:   keys,
		Verbose:   f.Verbose,
		RateLimit: f.RateLimit,
	}
}

// ToGtfsConfigData converts the file values to the feed config subset.
func (f *FileConfig) ToGtfsConfigData() GtfsConfigData {
	return GtfsConfigData{
		GtfsURL:                f.GtfsURL,
		GTFSDataPath:           f.DataPath,
		StaticAuthHeaderKey:    f.StaticAuthHeaderKey,
		StaticAuthHeaderValue:  f.StaticAuthHeaderValue,
		RefreshIntervalHours:   f.RefreshIntervalHours,
		GroupRoutesByShortName: f.GroupRoutesByShortName,
		OrderingMaxPasses:      f.OrderingMaxPasses,
		OrderingMarginMinutes:  f.OrderingMarginMinutes,
		OrderingVoteThreshold:  f.OrderingVoteThreshold,
		ShapeTolerance:         f.ShapeTolerance,
		Env:                    EnvFlagToEnvironment(f.Env),
		Verbose:                f.Verbose,
	}
}
