// Package config provides unified configuration loading for opspread.
// It supports loading from YAML files and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/nvandessel/opspread/internal/constants"
	"gopkg.in/yaml.v3"
)

// OpspreadConfig contains all opspread configuration settings.
type OpspreadConfig struct {
	// Simulation contains the chain and circuit parameters.
	Simulation SimulationConfig `json:"simulation" yaml:"simulation"`

	// Logging contains settings for operational logging and period traces.
	Logging LoggingConfig `json:"logging" yaml:"logging"`

	// Metrics contains settings for gate and period counters.
	Metrics MetricsConfig `json:"metrics" yaml:"metrics"`
}

// SimulationConfig configures one simulation run.
type SimulationConfig struct {
	// ChainLength is the number of qubits L, 0 < L < 1000.
	ChainLength int `json:"chain_length" yaml:"chain_length"`

	// DefectChains is the defect-chain count D, 0..10. Stored but inert.
	DefectChains int `json:"defect_chains" yaml:"defect_chains"`

	// Periods is the number of brickwork periods nT, 1..10.
	Periods int `json:"periods" yaml:"periods"`

	// Seed seeds the gate sampler.
	Seed uint64 `json:"seed" yaml:"seed"`

	// Initial is the starting operator, either "<P>@<site>[,<P>@<site>...]"
	// or a full Pauli string of length ChainLength.
	Initial string `json:"initial" yaml:"initial"`

	// PhaseRule selects the Phase gate's phase update: "documented" or "textbook".
	PhaseRule constants.PhaseRule `json:"phase_rule" yaml:"phase_rule"`

	// EntanglingClasses is the size of the two-qubit class draw: 21 or 20.
	EntanglingClasses int `json:"entangling_classes" yaml:"entangling_classes"`
}

// LoggingConfig configures opspread's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	// "debug" enables the period trace when TraceDir is set.
	// "trace" additionally logs every two-qubit draw.
	Level string `json:"level" yaml:"level"`

	// TraceDir is where trace.jsonl is written. Empty disables the trace.
	TraceDir string `json:"trace_dir,omitempty" yaml:"trace_dir,omitempty"`
}

// MetricsConfig configures the prometheus collector.
type MetricsConfig struct {
	// Enabled prints the collected metrics in text exposition format to
	// stderr after a run.
	Enabled bool `json:"enabled" yaml:"enabled"`
}

// Default returns an OpspreadConfig with sensible defaults.
func Default() *OpspreadConfig {
	return &OpspreadConfig{
		Simulation: SimulationConfig{
			ChainLength:       constants.DefaultChainLength,
			DefectChains:      0,
			Periods:           constants.DefaultPeriods,
			Seed:              constants.DefaultSeed,
			Initial:           constants.DefaultInitialOperator,
			PhaseRule:         constants.PhaseRuleDocumented,
			EntanglingClasses: constants.DocumentedEntanglingClasses,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Dir returns the per-user configuration directory, ~/.opspread.
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(homeDir, ".opspread"), nil
}

// Load loads configuration from the default locations and environment variables.
// Order: defaults -> ~/.opspread/config.yaml -> environment variables
func Load() (*OpspreadConfig, error) {
	config := Default()

	if dir, err := Dir(); err == nil {
		configPath := filepath.Join(dir, "config.yaml")
		if _, statErr := os.Stat(configPath); statErr == nil {
			fileConfig, loadErr := LoadFromFile(configPath)
			if loadErr != nil {
				return nil, fmt.Errorf("loading config file: %w", loadErr)
			}
			config = fileConfig
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// LoadFromFile loads configuration from a specific YAML file.
func LoadFromFile(path string) (*OpspreadConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	config.Logging.TraceDir = os.ExpandEnv(config.Logging.TraceDir)

	return config, nil
}

// Save writes the configuration as YAML to path, creating parent directories.
func Save(config *OpspreadConfig, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Validate checks that the configuration is valid.
func (c *OpspreadConfig) Validate() error {
	s := c.Simulation
	if s.ChainLength <= 0 || s.ChainLength >= constants.MaxChainLength {
		return fmt.Errorf("chain_length must be in (0, %d), got %d", constants.MaxChainLength, s.ChainLength)
	}
	if s.DefectChains < 0 || s.DefectChains > constants.MaxDefectChains {
		return fmt.Errorf("defect_chains must be in [0, %d], got %d", constants.MaxDefectChains, s.DefectChains)
	}
	if s.Periods < constants.MinPeriods || s.Periods > constants.MaxPeriods {
		return fmt.Errorf("periods must be in [%d, %d], got %d", constants.MinPeriods, constants.MaxPeriods, s.Periods)
	}
	if !s.PhaseRule.Valid() {
		return fmt.Errorf("invalid phase_rule: %s (valid: documented, textbook)", s.PhaseRule)
	}
	if s.EntanglingClasses != constants.DocumentedEntanglingClasses && s.EntanglingClasses != constants.LiteratureEntanglingClasses {
		return fmt.Errorf("entangling_classes must be %d or %d, got %d",
			constants.DocumentedEntanglingClasses, constants.LiteratureEntanglingClasses, s.EntanglingClasses)
	}

	validLevels := map[string]bool{"info": true, "debug": true, "trace": true}
	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Malformed numeric values are ignored.
func applyEnvOverrides(config *OpspreadConfig) {
	if v := os.Getenv("OPSPREAD_LENGTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Simulation.ChainLength = n
		}
	}
	if v := os.Getenv("OPSPREAD_DEFECTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Simulation.DefectChains = n
		}
	}
	if v := os.Getenv("OPSPREAD_PERIODS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Simulation.Periods = n
		}
	}
	if v := os.Getenv("OPSPREAD_SEED"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			config.Simulation.Seed = n
		}
	}
	if v := os.Getenv("OPSPREAD_INITIAL"); v != "" {
		config.Simulation.Initial = v
	}
	if v := os.Getenv("OPSPREAD_PHASE_RULE"); v != "" {
		config.Simulation.PhaseRule = constants.PhaseRule(v)
	}
	if v := os.Getenv("OPSPREAD_ENTANGLING_CLASSES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Simulation.EntanglingClasses = n
		}
	}

	if v := os.Getenv("OPSPREAD_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
	if v := os.Getenv("OPSPREAD_TRACE_DIR"); v != "" {
		config.Logging.TraceDir = v
	}
	if v := os.Getenv("OPSPREAD_METRICS"); v != "" {
		config.Metrics.Enabled = v == "true" || v == "1"
	}
}
