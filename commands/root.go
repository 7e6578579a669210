// Package commands implements the binimg command line.
package commands

import (
	"github.com/spf13/cobra"

	"binimg/config"
	"binimg/internal/logger"
	"binimg/internal/pipeline"
	"binimg/metrics"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	configFile string
	logLevel   string
	logFormat  string
}

// Execute runs the binimg command line. It is called by main.main().
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "binimg",
		Short: "binimg - hide files in images and audio",
		Long: `binimg hides a file, together with its name, in the two least significant
bits of every byte of an image or audio carrier, and recovers it bit-exactly.

Supported carriers: PNG, BMP, GIF, JPEG, WebP, WAV and MP3. Output is always
lossless: images become PNG and audio becomes WAV.

Use "binimg [command] --help" for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "config file (default: $XDG_CONFIG_HOME/binimg/config.yaml)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: DEBUG, INFO, WARN, ERROR (overrides config)")
	flags.StringVar(&opts.logFormat, "log-format", "", "log format: text or json (overrides config)")

	rootCmd.AddCommand(
		newEncodeCmd(opts),
		newDecodeCmd(opts),
		newCapacityCmd(opts),
		newInspectCmd(opts),
		newGenerateCmd(opts),
		newServeCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(),
	)
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	return rootCmd
}

// setup loads configuration, applies flag overrides and initialises the
// logger.
func (o *globalOptions) setup() (*config.Config, error) {
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return nil, err
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
	if o.logFormat != "" {
		cfg.Logging.Format = o.logFormat
	}
	config.ApplyDefaults(cfg)
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	if err := logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	}); err != nil {
		return nil, err
	}
	return cfg, nil
}

// pipelineOptions derives codec options from cfg.
func pipelineOptions(cfg *config.Config, rec *metrics.Recorder) pipeline.Options {
	return pipeline.Options{
		DefaultName: cfg.Encode.DefaultName,
		Compress:    cfg.Encode.Compress,
		MinPSNR:     cfg.Encode.MinPSNR,
		Recorder:    rec,
	}
}
