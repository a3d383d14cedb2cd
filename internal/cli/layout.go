package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/spliceplot/pkg/render/figure"
)

// layoutCommand creates the layout command, which reports where every panel
// and lane of a figure lands without writing any files.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		interactive bool
		asJSON      bool
		f           renderFlags
	)
	cmd := &cobra.Command{
		Use:   "layout [dataset.json]",
		Short: "Show the panel and lane geometry of a figure",
		Long: `Show the panel and lane geometry of a figure.

Prints one row per drawn panel (grid cell, role and pixel rectangle) and one
row per detail lane (site kind, position, lane rectangle and the overview
interval its connector starts from). Use -i to browse interactively.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDataset,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, cfg, true)
			if err != nil {
				return err
			}
			defer runner.Close()

			ds, err := runner.Load(ctx, args[0])
			if err != nil {
				return err
			}
			fig, err := runner.Plot(ctx, ds, f.apply(cmd, cfg))
			if err != nil {
				return err
			}

			switch {
			case asJSON:
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(fig)
			case interactive:
				return runLayoutBrowser(ctx, fig)
			default:
				writeLayoutTables(cmd.OutOrStdout(), fig)
				return nil
			}
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse the layout interactively")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the layout as JSON")
	cmd.Flags().Float64Var(&f.width, "width", 0, "canvas width")
	cmd.Flags().Float64Var(&f.height, "height", 0, "canvas height")
	cmd.Flags().Float64Var(&f.laneWidth, "lane-width", 0, "nominal detail lane width")
	cmd.Flags().IntVar(&f.zoomRadius, "zoom-radius", 0, "positions shown either side of each site")
	cmd.Flags().BoolVar(&f.acceptorLanes, "acceptor-lanes", true, "draw acceptor lanes and connectors")

	return cmd
}

// writeLayoutTables prints the panel and lane tables.
func writeLayoutTables(w io.Writer, fig *figure.Figure) {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	border := lipgloss.NewStyle().Foreground(colorDim)

	panels := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(border).
		Headers("Cell", "Role", "X", "Y", "Width", "Height").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return lipgloss.NewStyle()
		})
	for _, p := range fig.Panels {
		panels.Row(p.Cell.String(), p.Role, px(p.Rect.X), px(p.Rect.Y), px(p.Rect.Width), px(p.Rect.Height))
	}

	fmt.Fprintln(w, StyleTitle.Render(fmt.Sprintf("Panels (%gx%g)", fig.Width, fig.Height)))
	fmt.Fprintln(w, panels.Render())

	if len(fig.Lanes) == 0 {
		fmt.Fprintln(w, StyleDim.Render("no lanes"))
		return
	}
	lanes := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(border).
		Headers("Kind", "#", "Site", "X", "Width", "Overview", "Max").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(kindColor(fig.Lanes[row].Kind))
			}
			return lipgloss.NewStyle()
		})
	for _, l := range fig.Lanes {
		lanes.Row(l.Kind, fmt.Sprint(l.Index), fmt.Sprint(l.Position),
			px(l.Rect.X), px(l.Rect.Width),
			fmt.Sprintf("%s–%s", px(l.Overview.Lo), px(l.Overview.Hi)),
			fmt.Sprintf("%g", l.MaxValue))
	}
	fmt.Fprintln(w, StyleTitle.Render("Lanes"))
	fmt.Fprintln(w, lanes.Render())
	for _, cell := range fig.Skipped {
		fmt.Fprintln(w, StyleWarning.Render("skipped panel "+cell.String()))
	}
}

// kindColor matches the default donor and acceptor colors.
func kindColor(kind string) lipgloss.Color {
	if kind == figure.KindAcceptor {
		return lipgloss.Color("#5FAD56")
	}
	return lipgloss.Color("#F78154")
}

func px(v float64) string { return fmt.Sprintf("%.1f", v) }

// runLayoutBrowser opens the interactive browser until the user quits or ctx
// is canceled.
func runLayoutBrowser(ctx context.Context, fig *figure.Figure) error {
	_, err := tea.NewProgram(newLayoutModel(fig), tea.WithContext(ctx), tea.WithAltScreen()).Run()
	return err
}
