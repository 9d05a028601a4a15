package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/holista-dev/holista/internal/buildinfo"
	"github.com/holista-dev/holista/internal/config"
	"github.com/holista-dev/holista/internal/fetch"
)

// DefaultConfigFile is read from the working directory unless --config
// says otherwise.
const DefaultConfigFile = "holista.yaml"

// app carries the global flags and what PersistentPreRunE derives from
// them.
type app struct {
	configPath string
	format     string
	logLevel   string
	logJSON    bool

	cfg    *config.Config
	logger zerolog.Logger
	stderr io.Writer

	// fetcher replaces the FTP fetcher in tests.
	fetcher fetch.Fetcher
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&app{stderr: os.Stderr})
}

func newRootCommand(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "holista",
		Short:   "Receivables, payables, orders and stock dashboards from ERP extracts",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(cmd.Flags().Changed("log-level")); err != nil {
				return err
			}
			cmd.SetContext(a.logger.WithContext(cmd.Context()))
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", DefaultConfigFile, "path to holista.yaml")
	flags.StringVar(&a.format, "format", "text", "output format: text or json")
	flags.StringVar(&a.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	flags.BoolVar(&a.logJSON, "log-json", false, "log as JSON instead of console text")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newPathsCommand(a))
	rootCmd.AddCommand(newPageCommands(a)...)
	rootCmd.AddCommand(newAllCommand(a))

	return rootCmd
}

// setup resolves configuration and builds the logger. The config file's
// logging section applies unless the flags override it.
func (a *app) setup(levelFlagSet bool) error {
	cfg, err := config.Resolve(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := a.logLevel
	if !levelFlagSet && cfg.Logging.Level != "" {
		level = cfg.Logging.Level
	}
	logger, err := newLogger(a.stderr, level, a.logJSON || cfg.Logging.JSON)
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

func newLogger(w io.Writer, level string, asJSON bool) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("parsing log level: %w", err)
	}
	if !asJSON {
		w = zerolog.ConsoleWriter{Out: w, NoColor: true}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}
