package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/zjrosen/mrdiff/internal/changes"
	"github.com/zjrosen/mrdiff/internal/render"
	"github.com/zjrosen/mrdiff/internal/review"
	"github.com/zjrosen/mrdiff/internal/ui/styles"
)

const (
	colorAuto   = "auto"
	colorAlways = "always"
	colorNever  = "never"
)

var (
	renderFilePath string
	renderIndex    int
	renderWidth    int
	renderColor    string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Print changes side by side without the interactive viewer",
	Long: `Render file changes as static side-by-side text.

Every file is rendered unless --file or --index selects one. Each pane is
--width cells wide; without it ui.pane_width is used, and 0 sizes panes to
their longest line.

Examples:
  mrdiff render --changes mr.json
  mrdiff render --changes mr.json --index 2 --width 60
  mrdiff render --changes mr.json --file internal/app.go --color never | less`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVar(&renderFilePath, "file", "", "render only the change with this path")
	renderCmd.Flags().IntVar(&renderIndex, "index", 0, "render only the n-th change (1-based)")
	renderCmd.Flags().IntVar(&renderWidth, "width", 0, "pane width in cells (default: ui.pane_width)")
	renderCmd.Flags().StringVar(&renderColor, "color", colorAuto, "colorize output: auto, always or never")
	renderCmd.MarkFlagsMutuallyExclusive("file", "index")
}

func runRender(cmd *cobra.Command, _ []string) error {
	styled, err := applyColorMode(renderColor)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	p, err := newPipeline(ctx, cmd.InOrStdin())
	if err != nil {
		return err
	}
	defer p.Close(ctx)

	selected, err := selectChanges(p.changes, renderFilePath, renderIndex)
	if err != nil {
		return err
	}

	width := renderWidth
	if !cmd.Flags().Changed("width") {
		width = cfg.UI.PaneWidth
	}

	files := p.renderer.RenderAll(ctx, selected)
	return writeRendered(cmd.OutOrStdout(), files, p.renderer.Rows(), width, styled)
}

// applyColorMode sets the lipgloss color profile and reports whether output
// should be styled at all.
func applyColorMode(mode string) (bool, error) {
	switch mode {
	case colorAlways:
		lipgloss.SetColorProfile(termenv.TrueColor)
		return true, nil
	case colorNever:
		lipgloss.SetColorProfile(termenv.Ascii)
		return false, nil
	case colorAuto:
		return lipgloss.ColorProfile() != termenv.Ascii, nil
	}
	return false, fmt.Errorf("invalid --color %q: want auto, always or never", mode)
}

func selectChanges(list []changes.FileChange, path string, index int) ([]changes.FileChange, error) {
	switch {
	case path != "":
		for _, c := range list {
			if c.Path() == path || c.OldPath == path {
				return []changes.FileChange{c}, nil
			}
		}
		return nil, fmt.Errorf("no change for file %q", path)
	case index != 0:
		if index < 1 || index > len(list) {
			return nil, fmt.Errorf("--index %d out of range (1-%d)", index, len(list))
		}
		return []changes.FileChange{list[index-1]}, nil
	}
	return list, nil
}

func writeRendered(w io.Writer, files []review.RenderedFile, rows *render.Renderer, width int, styled bool) error {
	for i, f := range files {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}

		header := fmt.Sprintf("%s (%s) +%d -%d ~%d", f.Title, f.Status, f.Stats.Added, f.Stats.Removed, f.Stats.Changed)
		body := render.SideBySidePlain(f.Old, f.New, width)
		if styled {
			header = styles.HeaderPathStyle.Render(header)
			body = rows.SideBySide(f.Old, f.New, width)
		}
		if _, err := fmt.Fprintf(w, "%s\n%s", header, body); err != nil {
			return err
		}
	}
	return nil
}
