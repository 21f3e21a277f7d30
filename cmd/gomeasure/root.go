package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gomeasure/internal/config"
	"github.com/philipparndt/gomeasure/internal/log"
	"github.com/philipparndt/gomeasure/version"
)

var (
	configPath string
	logLevel   string
	logFormat  string

	// cfg is loaded before any subcommand runs
	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "gomeasure",
	Short: "Measure lengths, angles and areas on 3D models",
	Long: `gomeasure measures real-world lengths, angles and planar areas on STL
models. Readings are shown in feet, degrees and square feet.`,
	Version:           version.GetFullVersion(),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return log.Close()
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "config file (default is the user config directory)")
	flags.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&logFormat, "log-format", "", "log format: console or json")
}

func loadConfig(cmd *cobra.Command, args []string) error {
	if configPath == "" {
		configPath = os.Getenv(config.EnvPath)
	}
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		loaded.Logging.Level = logLevel
	}
	if logFormat != "" {
		loaded.Logging.Format = logFormat
	}
	cfg = loaded
	log.Init(cfg.LogOptions())
	log.L().Debug("config loaded", "path", configPath, "mode", cfg.Measurement.DefaultMode)
	return nil
}
