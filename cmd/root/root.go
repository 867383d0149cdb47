// Package root contains the root command for the application
package root

import (
	"fmt"
	"sync"
	"time"

	"fjacquet/butterfly-ledger/internal/config"
	"fjacquet/butterfly-ledger/internal/container"
	"fjacquet/butterfly-ledger/internal/dateutils"
	"fjacquet/butterfly-ledger/internal/logging"
	"fjacquet/butterfly-ledger/internal/report"
	"fjacquet/butterfly-ledger/internal/service"
	"fjacquet/butterfly-ledger/internal/validation"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// CommonFlags represents the flags shared by every command
type CommonFlags struct {
	Today      string
	Format     string
	DataDir    string
	ConfigFile string
	LogLevel   string
}

var (
	// Log is the shared logger instance for commands
	Log logging.Logger = logging.NewLogrusAdapter("info", "text")

	// AppConfig is the configuration loaded for the running command
	AppConfig *config.Config

	// AppContainer holds the wired dependencies of the running command
	AppContainer *container.Container

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "butterfly",
		Short: "A personal budget ledger with rollover and spending predictions.",
		Long: `butterfly keeps a local ledger of expenses and income.
It carries last month's surplus or overspending into the current budget,
predicts recurring grocery purchases and compares spending with last year.`,
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  setup,
		PersistentPostRunE: teardown,
	}

	// SharedFlags holds the values of the persistent flags
	SharedFlags = CommonFlags{}

	initOnce sync.Once
)

// Init initializes the root command and all flags
func Init() {
	initOnce.Do(func() {
		Cmd.PersistentFlags().StringVar(&SharedFlags.Today, "today", "", "Date to run as, YYYY-MM-DD (default: current date)")
		Cmd.PersistentFlags().StringVarP(&SharedFlags.Format, "format", "f", "", "Output format: table or json")
		Cmd.PersistentFlags().StringVar(&SharedFlags.DataDir, "data-dir", "", "Directory holding the ledger database and rules")
		Cmd.PersistentFlags().StringVar(&SharedFlags.ConfigFile, "config", "", "Config file (default: config.yaml in $HOME/.butterfly, .butterfly or .)")
		Cmd.PersistentFlags().StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level: trace, debug, info, warn, error")
	})
}

func setup(cmd *cobra.Command, _ []string) error {
	if err := Shutdown(); err != nil {
		Log.WithError(err).Warn("Failed to close previous container")
	}

	cfg, err := config.Load(SharedFlags.ConfigFile)
	if err != nil {
		return err
	}

	if SharedFlags.Format != "" {
		if err := validation.IsValidOutputFormat(SharedFlags.Format); err != nil {
			return err
		}
		cfg.Output.Format = SharedFlags.Format
	}
	if SharedFlags.DataDir != "" {
		cfg.Data.Directory = SharedFlags.DataDir
	}
	if SharedFlags.LogLevel != "" {
		cfg.Log.Level = SharedFlags.LogLevel
	}

	c, err := container.NewContainerWithOptions(cfg, container.Options{Output: cmd.OutOrStdout()})
	if err != nil {
		return err
	}

	AppConfig = cfg
	AppContainer = c
	Log = c.GetLogger()
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	return Shutdown()
}

// Shutdown closes the container of the last command. It is safe to call
// more than once, and needed when a command failed before its post-run hook.
func Shutdown() error {
	if AppContainer == nil {
		return nil
	}
	err := AppContainer.Close()
	AppContainer = nil
	return err
}

// GetContainer returns the container of the running command.
func GetContainer() *container.Container {
	return AppContainer
}

// GetConfig returns the configuration of the running command.
func GetConfig() *config.Config {
	return AppConfig
}

// Service returns the ledger service of the running command.
func Service() *service.LedgerService {
	return AppContainer.GetService()
}

// Renderer returns the output renderer of the running command.
func Renderer() *report.Renderer {
	return AppContainer.GetRenderer()
}

// Today returns the --today date, or the current local date.
func Today() (time.Time, error) {
	if SharedFlags.Today == "" {
		return dateutils.Truncate(time.Now()), nil
	}
	t, err := dateutils.ParseISODate(SharedFlags.Today)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --today: %w", err)
	}
	return t, nil
}

// ResetFlags restores every flag of cmd and its subcommands to its default.
// Flag values otherwise survive between executions in the same process.
func ResetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		ResetFlags(sub)
	}
}
