package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"devkit/internal/appinfo"
	"devkit/internal/config"
	"devkit/internal/history"
	"devkit/internal/logging"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// app carries state shared by every command once the root pre-run has
// loaded configuration.
type app struct {
	configPath string
	logLevel   string
	debug      bool

	loader *config.Loader
	cfg    config.Config
	logger *log.Logger

	now func() time.Time
	// logOut defaults to stderr; stdout belongs to command output.
	logOut io.Writer
}

func newApp() *app {
	return &app{
		loader: config.NewLoader(),
		cfg:    config.DefaultConfig(),
		logger: logging.Discard(),
		now:    time.Now,
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   appinfo.Name,
		Short: "Developer toolbox: cron phrases, Tailwind colour migration, palettes, .env files, secret keys",
		Long: `devkit bundles small text-transform tools for everyday web work:
turn English schedules into cron expressions, migrate Tailwind v3 colours to
v4 oklch() CSS, generate palettes and themes, check .env files and generate
Django secret keys. "devkit mcp" exposes the same tools to MCP clients.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       appinfo.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}
	root.SetVersionTemplate(appinfo.Display() + "\n")

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (default ./devkit.yaml, then the user config dir)")
	pf.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.BoolVar(&a.debug, "debug", false, "shortcut for --log-level=debug")

	root.AddCommand(
		newCronCmd(a),
		newTailwindCmd(a),
		newPaletteCmd(a),
		newEnvCmd(a),
		newKeygenCmd(a),
		newFAQCmd(a),
		newMCPCmd(a),
		newVersionCmd(),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	if err := a.loader.BindFlag("log.level", cmd.Root().PersistentFlags().Lookup("log-level")); err != nil {
		return err
	}
	cfg, err := a.loader.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := cfg.Log.Level
	if a.debug {
		level = "debug"
	}
	out := a.logOut
	if out == nil {
		out = os.Stderr
	}
	logger, err := logging.New(out, level)
	if err != nil {
		return err
	}
	a.logger = logger
	if used := a.loader.FileUsed(); used != "" {
		a.logger.Debug("loaded config", "path", used)
	}
	return nil
}

// openHistory returns the configured store, or a no-op store when disabled.
// A store that cannot be opened is logged and replaced by a no-op store so
// conversions still print.
func (a *app) openHistory(disabled bool) history.Store {
	if disabled {
		return history.Nop{}
	}
	store, err := a.requireHistory()
	if err != nil {
		a.logger.Warn("history unavailable, not recording", "backend", a.cfg.History.Backend, "err", err)
		return history.Nop{}
	}
	return store
}

// requireHistory opens the configured store and fails when it cannot.
func (a *app) requireHistory() (history.Store, error) {
	store, err := history.Open(a.cfg.HistoryOptions())
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	a.logger.Debug("history store", "backend", a.cfg.History.Backend)
	return store, nil
}

func (a *app) timezone(flag string) string {
	if tz := strings.TrimSpace(flag); tz != "" {
		return tz
	}
	return a.cfg.Timezone
}

func (a *app) runCount(flag int) int {
	if flag > 0 {
		return flag
	}
	return a.cfg.RunCount
}
