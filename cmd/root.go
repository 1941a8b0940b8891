// Package cmd provides the CLI commands for chatlog.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/guilhermegouw/chatlog/internal/config"
	"github.com/guilhermegouw/chatlog/internal/debug"
	"github.com/guilhermegouw/chatlog/internal/message"
	"github.com/guilhermegouw/chatlog/internal/shell"
	"github.com/guilhermegouw/chatlog/internal/styles"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chatlog",
		Short: "Console message log with light formatting",
		Long: `chatlog keeps a numbered log of messages in the terminal.

Messages can use *bold* and _italic_ markers, be edited, searched,
deleted and saved to a flat file or a SQLite database.

Run without a subcommand to open the interactive menu.`,
		SilenceUsage: true,
		RunE:         runShell,
	}

	flags := cmd.PersistentFlags()
	flags.String("file", "", "Archive path (overrides storage.path)")
	flags.String("backend", "", "Archive backend: file or sqlite")
	flags.Bool("no-color", false, "Disable colored output")
	flags.Bool("debug", false, "Enable debug logging to the data directory")
	cmd.Flags().Bool("load", false, "Load the archive before showing the menu")

	cmd.AddCommand(
		newListCmd(),
		newSearchCmd(),
		newStatsCmd(),
		newCopyCmd(),
		newGuideCmd(),
		newStatusCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)

	return cmd
}

// app is the per-invocation state shared by the commands.
type app struct {
	cfg    *config.Config
	svc    *message.Service
	styles *styles.Styles
	color  bool
}

// newApp loads configuration, applies flag overrides and enables debug
// logging when requested. Callers must defer close.
func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Failed to load config: %v\n", err)
		cfg = config.NewConfig()
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return nil, err
	}

	if cfg.Debug() {
		logPath := cfg.DebugLogPath()
		if debugErr := debug.Enable(logPath); debugErr != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Failed to enable debug logging: %v\n", debugErr)
		} else {
			fmt.Fprintf(cmd.ErrOrStderr(), "Debug: %s\n", logPath)
		}
	}

	styles.SetTheme(cfg.Display.Theme)
	a := &app{
		cfg:    cfg,
		svc:    message.NewService(message.NewStore(), newArchive(cfg)),
		styles: styles.NewStyles(styles.CurrentTheme()),
		color:  colorEnabled(cfg),
	}
	debug.Event("cmd", "start", "command", cmd.Name(), "backend", string(cfg.Storage.Backend),
		"archive", cfg.ArchivePath())
	return a, nil
}

func (a *app) close() {
	debug.Disable()
}

// loadArchive fills the store for one-shot commands. A missing archive is
// reported and treated as empty.
func (a *app) loadArchive(cmd *cobra.Command) error {
	result, err := a.svc.Load(cmd.Context())
	if err != nil {
		if errors.Is(err, message.ErrArchiveNotFound) {
			fmt.Fprintf(cmd.ErrOrStderr(), "No archive at %s\n", a.svc.Archive().Location())
			return nil
		}
		return err
	}
	for _, rec := range result.Skipped {
		fmt.Fprintf(cmd.ErrOrStderr(), "Skipped line %d: %s\n", rec.Line, rec.Reason)
	}
	return nil
}

// println writes s to w, stripping escape sequences when color is off.
func (a *app) println(w io.Writer, s string) {
	if !a.color {
		s = styles.Plain(s)
	}
	fmt.Fprintln(w, s)
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()

	if flags.Changed("file") {
		path, err := flags.GetString("file")
		if err != nil {
			return fmt.Errorf("getting file flag: %w", err)
		}
		cfg.Storage.Path = path
	}
	if flags.Changed("backend") {
		backend, err := flags.GetString("backend")
		if err != nil {
			return fmt.Errorf("getting backend flag: %w", err)
		}
		cfg.Storage.Backend = config.Backend(backend)
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	if noColor, err := flags.GetBool("no-color"); err != nil {
		return fmt.Errorf("getting no-color flag: %w", err)
	} else if noColor {
		cfg.Display.NoColor = true
	}
	if debugMode, err := flags.GetBool("debug"); err != nil {
		return fmt.Errorf("getting debug flag: %w", err)
	} else if debugMode {
		cfg.Options.Debug = true
	}
	return nil
}

func newArchive(cfg *config.Config) message.Archive {
	if cfg.Storage.Backend == config.BackendSQLite {
		return message.NewSQLiteArchive(cfg.ArchivePath())
	}
	return message.NewFileArchive(cfg.ArchivePath())
}

// colorEnabled honors the config, NO_COLOR and the terminal's capabilities.
func colorEnabled(cfg *config.Config) bool {
	if cfg.Display.NoColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return termenv.NewOutput(os.Stdout).EnvColorProfile() != termenv.Ascii
}

func runShell(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	reader := shell.NewReader(os.Stdin, cmd.OutOrStdout(), a.cfg.HistoryPath())
	defer reader.Close() //nolint:errcheck // Terminal restore is best effort.

	sh := shell.New(a.svc, reader, cmd.OutOrStdout(), a.styles, a.color)

	load, err := cmd.Flags().GetBool("load")
	if err != nil {
		return fmt.Errorf("getting load flag: %w", err)
	}
	if load {
		if err := sh.Preload(cmd.Context()); err != nil {
			return err
		}
	}

	return sh.Run(cmd.Context())
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}
