package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/unity-app/unity-engine/internal/core/scoring"
)

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

type rootOptions struct {
	output  string
	cfgFile string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "unityctl",
		Short: "Offline tooling for the Unity consistency engine",
		Long: `unityctl scores completion histories without a running server.

Commands:
  score    Compute grace streak, recovery, momentum, month progress and
           flex days for a file of completion dates, plus the badge and
           encouragement the app would show.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch opts.output {
			case outputText, outputJSON, outputYAML:
				return nil
			default:
				return fmt.Errorf("unknown output format %q (want text, json or yaml)", opts.output)
			}
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.output, "output", "o", outputText, "Output format (text, json, yaml)")
	cmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "YAML file with scoring tunables (window, threshold, lookback, ...)")

	cmd.AddCommand(newScoreCmd(opts))
	return cmd
}

// loadScoringConfig reads the --config file. Absent fields keep their defaults.
func loadScoringConfig(path string) (scoring.ScoringConfig, error) {
	cfg := scoring.DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	var file scoring.ScoringConfig
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return overlay(cfg, file), nil
}

// overlay copies every non-zero field of top onto base.
func overlay(base, top scoring.ScoringConfig) scoring.ScoringConfig {
	if top.Window != 0 {
		base.Window = top.Window
	}
	if top.Threshold != 0 {
		base.Threshold = top.Threshold
	}
	if top.Lookback != 0 {
		base.Lookback = top.Lookback
	}
	if top.MonthlyTarget != 0 {
		base.MonthlyTarget = top.MonthlyTarget
	}
	if top.FlexMilestone != 0 {
		base.FlexMilestone = top.FlexMilestone
	}
	if top.SpanDays != 0 {
		base.SpanDays = top.SpanDays
	}
	return base
}
