package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zeusync/curve/internal/core/curve"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	LogLevel   string
}

// NewRootCommand creates the root command of curvectl.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "curvectl",
		Short: "Replay and check keyframe curve scenarios",
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "curve config file (yaml)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "override the configured log level")

	cmd.AddCommand(NewReplayCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))

	return cmd
}

// Config loads the config file, if any, and applies flag overrides.
func (o *RootOptions) Config() (curve.Config, error) {
	cfg := curve.DefaultConfig()
	if o.ConfigPath != "" {
		f, err := os.Open(o.ConfigPath)
		if err != nil {
			return curve.Config{}, fmt.Errorf("open config: %w", err)
		}
		defer f.Close()

		if cfg, err = curve.LoadConfig(f); err != nil {
			return curve.Config{}, err
		}
	}

	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
		if err := cfg.Validate(); err != nil {
			return curve.Config{}, err
		}
	}
	return cfg, nil
}
