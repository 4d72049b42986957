package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/nvandessel/opspread/internal/config"
	"github.com/nvandessel/opspread/internal/constants"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage opspread configuration",
		Long: `View and modify opspread configuration settings.

Configuration is stored in ~/.opspread/config.yaml.

Examples:
  opspread config list                              # Show all settings
  opspread config get simulation.chain_length       # Get a specific setting
  opspread config set simulation.phase_rule textbook
  opspread config set logging.trace_dir $HOME/traces`,
	}

	cmd.AddCommand(
		newConfigListCmd(),
		newConfigGetCmd(),
		newConfigSetCmd(),
	)

	return cmd
}

func newConfigListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all configuration settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				return json.NewEncoder(out).Encode(cfg)
			}

			fmt.Fprintln(out, "Configuration (~/.opspread/config.yaml):")
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Simulation Settings:")
			fmt.Fprintf(out, "  simulation.chain_length:        %d\n", cfg.Simulation.ChainLength)
			fmt.Fprintf(out, "  simulation.defect_chains:       %d\n", cfg.Simulation.DefectChains)
			fmt.Fprintf(out, "  simulation.periods:             %d\n", cfg.Simulation.Periods)
			fmt.Fprintf(out, "  simulation.seed:                %d\n", cfg.Simulation.Seed)
			fmt.Fprintf(out, "  simulation.initial:             %s\n", valueOrDefault(cfg.Simulation.Initial, "(identity)"))
			fmt.Fprintf(out, "  simulation.phase_rule:          %s\n", cfg.Simulation.PhaseRule)
			fmt.Fprintf(out, "  simulation.entangling_classes:  %d\n", cfg.Simulation.EntanglingClasses)
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Logging Settings:")
			fmt.Fprintf(out, "  logging.level:                  %s\n", valueOrDefault(cfg.Logging.Level, "info"))
			fmt.Fprintf(out, "  logging.trace_dir:              %s\n", valueOrDefault(cfg.Logging.TraceDir, "(disabled)"))
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Metrics Settings:")
			fmt.Fprintf(out, "  metrics.enabled:                %v\n", cfg.Metrics.Enabled)

			return nil
		},
	}
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			key := args[0]
			out := cmd.OutOrStdout()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			value, found := getConfigValue(cfg, key)
			if !found {
				if jsonOut {
					json.NewEncoder(out).Encode(map[string]interface{}{
						"error": "key not found",
						"key":   key,
					})
				} else {
					fmt.Fprintf(out, "Unknown configuration key: %s\n", key)
				}
				return nil
			}

			if jsonOut {
				json.NewEncoder(out).Encode(map[string]interface{}{
					"key":   key,
					"value": value,
				})
			} else {
				fmt.Fprintf(out, "%s = %v\n", key, value)
			}

			return nil
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			key := args[0]
			value := args[1]
			out := cmd.OutOrStdout()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			if err := setConfigValue(cfg, key, value); err != nil {
				if jsonOut {
					json.NewEncoder(out).Encode(map[string]interface{}{
						"error": err.Error(),
						"key":   key,
					})
				} else {
					fmt.Fprintf(out, "Error: %v\n", err)
				}
				return nil
			}

			if err := saveConfig(cfg); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			if jsonOut {
				json.NewEncoder(out).Encode(map[string]interface{}{
					"status": "updated",
					"key":    key,
					"value":  value,
				})
			} else {
				fmt.Fprintf(out, "Set %s = %s\n", key, value)
			}

			return nil
		},
	}
}

// getConfigValue retrieves a configuration value by dot-notation key.
func getConfigValue(cfg *config.OpspreadConfig, key string) (interface{}, bool) {
	switch key {
	case "simulation.chain_length":
		return cfg.Simulation.ChainLength, true
	case "simulation.defect_chains":
		return cfg.Simulation.DefectChains, true
	case "simulation.periods":
		return cfg.Simulation.Periods, true
	case "simulation.seed":
		return cfg.Simulation.Seed, true
	case "simulation.initial":
		return cfg.Simulation.Initial, true
	case "simulation.phase_rule":
		return cfg.Simulation.PhaseRule.String(), true
	case "simulation.entangling_classes":
		return cfg.Simulation.EntanglingClasses, true
	case "logging.level":
		return cfg.Logging.Level, true
	case "logging.trace_dir":
		return cfg.Logging.TraceDir, true
	case "metrics.enabled":
		return cfg.Metrics.Enabled, true
	default:
		return nil, false
	}
}

// setConfigValue sets a configuration value by dot-notation key. The
// resulting configuration must still validate.
func setConfigValue(cfg *config.OpspreadConfig, key, value string) error {
	atoi := func() (int, error) {
		n, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid integer: %s", value)
		}
		return n, nil
	}

	next := *cfg
	switch key {
	case "simulation.chain_length":
		n, err := atoi()
		if err != nil {
			return err
		}
		next.Simulation.ChainLength = n
	case "simulation.defect_chains":
		n, err := atoi()
		if err != nil {
			return err
		}
		next.Simulation.DefectChains = n
	case "simulation.periods":
		n, err := atoi()
		if err != nil {
			return err
		}
		next.Simulation.Periods = n
	case "simulation.seed":
		n, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid seed: %s", value)
		}
		next.Simulation.Seed = n
	case "simulation.initial":
		next.Simulation.Initial = value
	case "simulation.phase_rule":
		next.Simulation.PhaseRule = constants.PhaseRule(value)
	case "simulation.entangling_classes":
		n, err := atoi()
		if err != nil {
			return err
		}
		next.Simulation.EntanglingClasses = n
	case "logging.level":
		next.Logging.Level = value
	case "logging.trace_dir":
		next.Logging.TraceDir = value
	case "metrics.enabled":
		next.Metrics.Enabled = value == "true" || value == "1"
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}

	if err := next.Validate(); err != nil {
		return err
	}
	*cfg = next
	return nil
}

// saveConfig writes the configuration to ~/.opspread/config.yaml.
func saveConfig(cfg *config.OpspreadConfig) error {
	dir, err := config.Dir()
	if err != nil {
		return err
	}
	return config.Save(cfg, filepath.Join(dir, "config.yaml"))
}

// valueOrDefault returns the value if non-empty, otherwise the default.
func valueOrDefault(value, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}
