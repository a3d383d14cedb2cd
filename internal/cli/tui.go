package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/spliceplot/pkg/render/canvas"
	"github.com/matzehuels/spliceplot/pkg/render/figure"
)

// List styles
var (
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	listDetailStyle = lipgloss.NewStyle().Foreground(colorWhite).PaddingLeft(2)
)

// layoutItem is one browsable row: a panel or a lane.
type layoutItem struct {
	section string // "panel" or a lane kind
	name    string
	rect    canvas.Rect
	detail  string
}

// LayoutModel is the bubbletea model of the interactive layout browser.
type LayoutModel struct {
	Items  []layoutItem
	Cursor int
	Height int
	Offset int
	Width  float64 // canvas size, for the relative-position bar
}

func newLayoutModel(fig *figure.Figure) LayoutModel {
	m := LayoutModel{Height: 15, Width: fig.Width}
	for _, p := range fig.Panels {
		m.Items = append(m.Items, layoutItem{
			section: "panel",
			name:    p.Role + " " + p.Cell.String(),
			rect:    p.Rect,
			detail:  "grid cell " + p.Cell.String(),
		})
	}
	for _, l := range fig.Lanes {
		m.Items = append(m.Items, layoutItem{
			section: l.Kind,
			name:    fmt.Sprintf("%s lane %d", l.Kind, l.Index),
			rect:    l.Rect,
			detail: fmt.Sprintf("site %d · overview %.1f–%.1f · max %g",
				l.Position, l.Overview.Lo, l.Overview.Hi, l.MaxValue),
		})
	}
	return m
}

func (m LayoutModel) Init() tea.Cmd {
	return nil
}

func (m LayoutModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Items)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "home", "g":
			m.Cursor, m.Offset = 0, 0
		case "end", "G":
			m.Cursor = max(len(m.Items)-1, 0)
			m.Offset = max(m.Cursor-m.Height+1, 0)
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-10, 5)
	}
	return m, nil
}

func (m LayoutModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Figure Layout"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  g/G first/last  q quit"))
	b.WriteString("\n\n")

	if len(m.Items) == 0 {
		b.WriteString(listDimStyle.Render("nothing drawn"))
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Items))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		it := m.Items[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, it.name, px(it.rect.X), px(it.rect.Y), px(it.rect.Width), px(it.rect.Height)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Element", "X", "Y", "Width", "Height").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Items) {
				return lipgloss.NewStyle()
			}
			style := lipgloss.NewStyle()
			if it := m.Items[idx]; it.section != "panel" && col == 1 {
				style = style.Foreground(kindColor(it.section))
			}
			if idx == m.Cursor {
				return style.Bold(true)
			}
			return style
		})

	b.WriteString(t.Render())
	b.WriteString("\n")

	cur := m.Items[m.Cursor]
	b.WriteString(listDetailStyle.Render(cur.detail))
	b.WriteString("\n")
	b.WriteString(listDetailStyle.Render(positionBar(cur.rect, m.Width, 40)))
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Items))))

	return b.String()
}

// positionBar draws the horizontal extent of r within a canvas of the given
// width as a bar of n cells.
func positionBar(r canvas.Rect, width float64, n int) string {
	if width <= 0 || n <= 0 {
		return ""
	}
	lo := int(r.X / width * float64(n))
	hi := int((r.X + r.Width) / width * float64(n))
	lo = min(max(lo, 0), n-1)
	hi = min(max(hi, lo+1), n)
	return "[" + strings.Repeat("·", lo) + strings.Repeat("█", hi-lo) + strings.Repeat("·", n-hi) + "]"
}
