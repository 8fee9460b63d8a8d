package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"go.dw1.io/slashdoc"
	"go.dw1.io/slashdoc/internal/pager"
	"golang.org/x/term"
)

var defaultWordWrapWidth = 80

func newViewCmd(opts *settings) *cobra.Command {
	var (
		style   string
		noPager bool
	)

	cmd := &cobra.Command{
		Use:   "view <file|dir|package>...",
		Short: "Browse the documentation in the terminal",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := opts.load(cmd.Context(), args)
			if err != nil {
				return err
			}

			markdown := doc.Markdown()

			rendered, err := renderTerminal(markdown, style)
			if err != nil {
				return err
			}

			if noPager || !term.IsTerminal(int(os.Stdout.Fd())) {
				_, err := fmt.Fprint(cmd.OutOrStdout(), rendered)
				return err
			}

			return pager.Run(pager.Document{
				Content:  rendered,
				Raw:      markdown,
				Label:    fmt.Sprintf("%d entities", len(doc.Nodes)),
				Entities: entityHeadings(doc),
			})
		},
	}

	cmd.Flags().StringVar(&style, "style", "auto", "glamour style (dark, light, notty, auto)")
	cmd.Flags().BoolVar(&noPager, "no-pager", false, "print instead of starting the pager")

	return cmd
}

// entityHeadings returns the titles of the root entities as they appear in
// the Markdown rendering.
func entityHeadings(doc *slashdoc.Document) []string {
	roots := doc.Index().Roots()

	headings := make([]string, 0, len(roots))
	for _, e := range roots {
		headings = append(headings, fmt.Sprintf("%s %s", e.Node.Kind, e.Node.Name))
	}

	return headings
}

func getWordWrapWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err == nil && width > 0 {
		if width <= defaultWordWrapWidth {
			return width
		}

		return defaultWordWrapWidth
	}

	return 0
}

func renderTerminal(markdown, style string) (string, error) {
	renderOpts := []glamour.TermRendererOption{}
	if width := getWordWrapWidth(); width > 0 {
		renderOpts = append(renderOpts, glamour.WithWordWrap(width))
	}

	switch style {
	case "auto":
		renderOpts = append(renderOpts, glamour.WithAutoStyle())
	default:
		renderOpts = append(renderOpts, glamour.WithStandardStyle(style))
	}

	r, err := glamour.NewTermRenderer(renderOpts...)
	if err != nil {
		return "", fmt.Errorf("failed to create renderer: %w", err)
	}

	rendered, err := r.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}

	return rendered, nil
}
