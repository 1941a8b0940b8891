package cmd

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

const guideMarkdown = `# chatlog formatting

Wrap text in markers to format it when messages are displayed:

| Marker     | Result      |
|------------|-------------|
| ` + "`*word*`" + ` | **bold**    |
| ` + "`_word_`" + ` | *italic*    |

Markers toggle, so ` + "`*a* b *c*`" + ` has two bold fragments. A marker right
after a backslash is printed as is. An unclosed marker stays open until
the end of the message, and chatlog warns about it when you add the message.

## Entering text

- Type the message over as many lines as you need.
- Finish with ` + "`/0`" + ` on a line of its own.
- Type ` + "`/cancel`" + ` at any prompt to abort.

The ` + "`|`" + ` character is reserved by the archive format and is rejected.
`

func newGuideCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guide",
		Short: "Show the formatting guide",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			opts := []glamour.TermRendererOption{glamour.WithWordWrap(80)}
			if a.color {
				opts = append(opts, glamour.WithAutoStyle())
			} else {
				opts = append(opts,
					glamour.WithStandardStyle("notty"),
					glamour.WithColorProfile(termenv.Ascii),
				)
			}

			renderer, err := glamour.NewTermRenderer(opts...)
			if err != nil {
				return fmt.Errorf("creating markdown renderer: %w", err)
			}
			rendered, err := renderer.Render(guideMarkdown)
			if err != nil {
				// Fall back to the raw markdown.
				rendered = guideMarkdown
			}
			fmt.Fprint(cmd.OutOrStdout(), rendered)
			return nil
		},
	}
}
