package main

import (
	"fmt"
	"os"

	"github.com/ludo-technologies/pyformat/internal/config"
	"github.com/ludo-technologies/pyformat/internal/logging"
	"github.com/ludo-technologies/pyformat/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// GetExplicitFlags extracts which flags were explicitly set from a cobra command
func GetExplicitFlags(cmd *cobra.Command) map[string]bool {
	explicitFlags := make(map[string]bool)
	if cmd != nil {
		cmd.Flags().Visit(func(f *pflag.Flag) {
			explicitFlags[f.Name] = true
		})
	}
	return explicitFlags
}

// configFlags are the flags shared by every command that loads the configuration
type configFlags struct {
	configFile string
	overrides  config.Overrides
}

func (f *configFlags) register(flags *pflag.FlagSet) {
	flags.StringVarP(&f.configFile, "config", "c", "", "Configuration file path")
	flags.StringVar(&f.overrides.Engine, config.FlagEngine, "", "Formatting engine: builtin, autopep8, black, ruff, command")
	flags.IntVar(&f.overrides.LineLength, config.FlagLineLength, 0, "Maximum line length passed to external engines")
	flags.StringVar(&f.overrides.LogFile, config.FlagLogFile, "", "Log file path")
	flags.StringVar(&f.overrides.LogLevel, config.FlagLogLevel, "", "Log level: debug, info, error")
}

// load reads the configuration and applies the flags set on cmd
func (f *configFlags) load(cmd *cobra.Command) (*config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	cfg, err := config.LoadConfig(f.configFile, cwd)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyOverrides(f.overrides, GetExplicitFlags(cmd)); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openLogger opens the configured log file. A log file that cannot be
// opened is reported on stderr and logging is disabled.
func openLogger(cmd *cobra.Command, cfg config.LoggingConfig) *logging.Logger {
	level, err := logging.ParseLevel(cfg.Level)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
		level = logging.LevelError
	}
	path := cfg.File
	if path == "" {
		path = logging.DefaultPath()
	}
	logger, err := logging.Open(path, level)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
		return logging.Nop()
	}
	return logger
}

// reportError prints err with recovery suggestions for its category
func reportError(cmd *cobra.Command, err error) {
	categorizer := service.NewErrorCategorizer()
	categorized := categorizer.Categorize(err)

	w := cmd.ErrOrStderr()
	fmt.Fprintf(w, "Error: %v\n", err)
	fmt.Fprintf(w, "\n💡 Suggestions:\n")
	for _, s := range categorizer.GetRecoverySuggestions(categorized.Category) {
		fmt.Fprintf(w, "  • %s\n", s)
	}
}
