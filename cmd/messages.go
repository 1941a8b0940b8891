package cmd

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/guilhermegouw/chatlog/internal/message"
	"github.com/guilhermegouw/chatlog/internal/shell"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every message in the archive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.loadArchive(cmd); err != nil {
				return err
			}
			a.printMessages(cmd, a.svc.All(), "No messages.")
			return nil
		},
	}
}

func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <keyword>",
		Short: "Print archived messages containing a keyword",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.loadArchive(cmd); err != nil {
				return err
			}
			found, err := a.svc.Search(args[0])
			if err != nil {
				return err
			}
			a.printMessages(cmd, found, "No messages found.")
			return nil
		},
	}
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print statistics for the archive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.loadArchive(cmd); err != nil {
				return err
			}
			st := a.svc.Stats()
			out := cmd.OutOrStdout()
			for _, row := range []struct {
				label string
				n     int
			}{
				{"Messages", st.Messages},
				{"Words", st.Words},
				{"Bold fragments", st.BoldFragments},
				{"Italic fragments", st.ItalicFragments},
				{"Characters", st.Characters},
			} {
				a.println(out, a.styles.Label.Render(row.label)+fmt.Sprintf("%4d", row.n))
			}
			return nil
		},
	}
}

func newCopyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "copy <id>",
		Short: "Copy a message's raw text to the clipboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := shell.ParseID(args[0])
			if err != nil {
				return err
			}

			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.loadArchive(cmd); err != nil {
				return err
			}
			msg, err := a.svc.Get(id)
			if err != nil {
				return fmt.Errorf("message %d: %w", id, err)
			}
			if err := clipboard.WriteAll(msg.Text); err != nil {
				return fmt.Errorf("copying to clipboard: %w", err)
			}
			a.println(cmd.OutOrStdout(), a.styles.Success.Render(fmt.Sprintf("Copied message %d.", id)))
			return nil
		},
	}
}

func (a *app) printMessages(cmd *cobra.Command, msgs []*message.Message, empty string) {
	out := cmd.OutOrStdout()
	if len(msgs) == 0 {
		a.println(out, a.styles.Muted.Render(empty))
		return
	}
	r := message.NewRenderer(a.styles, a.color)
	for _, m := range msgs {
		a.println(out, r.Line(m))
	}
}
