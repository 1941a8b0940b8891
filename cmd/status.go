package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/guilhermegouw/chatlog/internal/config"
	"github.com/guilhermegouw/chatlog/internal/db"
	"github.com/guilhermegouw/chatlog/internal/debug"
	"github.com/guilhermegouw/chatlog/internal/message"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show configuration and archive info",
		Long: `Display the current chatlog status including:
  - Config file location
  - Storage backend and archive path
  - Number of archived messages
  - Debug log location (if enabled)`,
		Args: cobra.NoArgs,
		RunE: runStatus,
	}
}

func runStatus(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	out := cmd.OutOrStdout()
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	fmt.Fprintln(out, "chatlog Status")
	fmt.Fprintln(out, strings.Repeat("─", 40))
	fmt.Fprintln(out)

	fmt.Fprintf(out, "Working Directory: %s\n", cwd)
	fmt.Fprintf(out, "Config File:       %s\n", config.GlobalConfigPath())
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Storage:")
	fmt.Fprintf(out, "  Backend: %s\n", a.cfg.Storage.Backend)
	fmt.Fprintf(out, "  Archive: %s\n", a.cfg.ArchivePath())
	printArchiveStatus(cmd, out, a)
	fmt.Fprintln(out)

	if debug.IsEnabled() {
		fmt.Fprintf(out, "Debug Log: %s (session %s)\n", debug.LogPath(), debug.SessionID())
	}

	return nil
}

func printArchiveStatus(cmd *cobra.Command, out io.Writer, a *app) {
	result, err := a.svc.Archive().Load(cmd.Context())
	switch {
	case errors.Is(err, message.ErrArchiveNotFound):
		fmt.Fprintln(out, "  Messages: (archive not created yet)")
		return
	case err != nil:
		fmt.Fprintf(out, "  Messages: unreadable (%v)\n", err)
		return
	}

	fmt.Fprintf(out, "  Messages: %d\n", len(result.Messages))
	if len(result.Skipped) > 0 {
		fmt.Fprintf(out, "  Skipped:  %d malformed records\n", len(result.Skipped))
	}

	if a.cfg.Storage.Backend == config.BackendSQLite {
		printSchemaVersion(out, a.cfg.ArchivePath())
	}
}

func printSchemaVersion(out io.Writer, path string) {
	database, err := db.Open(path)
	if err != nil {
		fmt.Fprintf(out, "  Schema:   unavailable (%v)\n", err)
		return
	}
	defer database.Close() //nolint:errcheck // Read-only inspection.

	version, err := database.SchemaVersion()
	if err != nil {
		fmt.Fprintf(out, "  Schema:   unavailable (%v)\n", err)
		return
	}
	fmt.Fprintf(out, "  Schema:   version %d\n", version)
}
