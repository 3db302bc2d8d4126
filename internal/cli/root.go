package cli

import (
	"fmt"

	"turfbook/internal/config"
	"turfbook/internal/logger"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	LogLevel  string
	LogFormat string

	// Config is filled in before any subcommand runs.
	Config *config.Config
}

var validFormats = []string{"json", "text"}

// NewRootCommand builds the turfbook CLI. Without a subcommand it serves.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "turfbook",
		Short: "Turf booking server",
		Long:  "Turf listings, deposit bookings and live slot updates over WebSocket.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load()
		},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts.Config)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level (debug|info|warn|error), overrides LOG_LEVEL")
	cmd.PersistentFlags().StringVar(&opts.LogFormat, "log-format", "", "log format (json|text), overrides LOG_FORMAT")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))

	return cmd
}

func (o *RootOptions) load() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}
	if o.LogFormat != "" {
		cfg.LogFormat = o.LogFormat
	}
	if !isValidFormat(cfg.LogFormat) {
		return fmt.Errorf("invalid log format %q: must be one of %v", cfg.LogFormat, validFormats)
	}

	logger.Setup(cfg.LogLevel, cfg.LogFormat)
	o.Config = cfg
	return nil
}

func isValidFormat(format string) bool {
	for _, f := range validFormats {
		if f == format {
			return true
		}
	}
	return false
}
