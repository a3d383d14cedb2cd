package figure

import (
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/spliceplot/pkg/errors"
	"github.com/matzehuels/spliceplot/pkg/render/canvas"
	"github.com/matzehuels/spliceplot/pkg/render/figure/connector"
	"github.com/matzehuels/spliceplot/pkg/render/figure/grid"
	"github.com/matzehuels/spliceplot/pkg/render/figure/lanes"
	"github.com/matzehuels/spliceplot/pkg/render/figure/panels"
	"github.com/matzehuels/spliceplot/pkg/transcriptome"
)

// Site kinds.
const (
	KindDonor    = "donor"
	KindAcceptor = "acceptor"
)

// laneFillOpacity is the opacity of the site-colored lane background.
const laneFillOpacity = 0.75

// Data is the input of one figure.
type Data struct {
	Transcriptome *transcriptome.Transcriptome
	Donors        *transcriptome.Track
	Acceptors     *transcriptome.Track
}

// PanelInfo describes a drawn panel.
type PanelInfo struct {
	Cell grid.Cell   `json:"cell"`
	Role string      `json:"role"`
	Rect canvas.Rect `json:"rect"`
}

// LaneInfo describes a drawn detail lane. Rect is in canvas coordinates;
// Overview is the linked interval in the lane panel's coordinates.
type LaneInfo struct {
	Kind     string         `json:"kind"`
	Index    int            `json:"index"`
	Position int            `json:"position"`
	Rect     canvas.Rect    `json:"rect"`
	Overview lanes.Interval `json:"overview"`
	MaxValue float64        `json:"max_value"`
}

// Figure is the result of [Plot].
type Figure struct {
	Canvas  *canvas.Canvas     `json:"-"`
	Width   float64            `json:"width"`
	Height  float64            `json:"height"`
	Panels  []PanelInfo        `json:"panels"`
	Lanes   []LaneInfo         `json:"lanes"`
	Genes   []panels.GeneCoord `json:"genes"`
	Skipped []grid.Cell        `json:"skipped,omitempty"`
	Shrunk  []string           `json:"shrunk,omitempty"` // kinds whose lanes were narrowed to fit
}

// SVG serialises the figure.
func (f *Figure) SVG() []byte { return f.Canvas.SVG() }

var roleNames = map[int]string{
	RowAnnotation:         "annotation",
	RowSchematic:          "schematic",
	rowSpacerTop:          "spacer",
	RowDonorBars:          "donor-bars",
	RowDonorConnectors:    "donor-connectors",
	RowDonorLanes:         "donor-lanes",
	rowSpacerMiddle:       "spacer",
	RowAcceptorBars:       "acceptor-bars",
	RowAcceptorConnectors: "acceptor-connectors",
	RowAcceptorLanes:      "acceptor-lanes",
}

// Role returns the name of the panel at cell in the default layout.
func Role(cell grid.Cell) string {
	switch cell.Col {
	case ColPlot:
		if r, ok := roleNames[cell.Row]; ok {
			return r
		}
	case ColLabels:
		if cell.Row == RowSchematic {
			return "labels"
		}
	case ColLegend:
		if cell.Row == 0 {
			return "legend"
		}
	}
	return "unused"
}

// plotter carries the state of one Plot call.
type plotter struct {
	opts   options
	data   Data
	grid   *grid.Grid
	logger *log.Logger
	fig    *Figure
}

// Plot renders data onto a new width×height canvas. It fails only for an
// invalid canvas, palette or grid configuration, or missing transcriptome;
// absent panels are skipped.
func Plot(data Data, width, height float64, opts ...Option) (*Figure, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if err := errors.ValidateCanvas(width, height, o.fontSize); err != nil {
		return nil, err
	}
	if o.laneWidth <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "lane width must be positive, got %g", o.laneWidth)
	}
	if err := o.palette.Validate(); err != nil {
		return nil, err
	}
	if data.Transcriptome == nil || data.Transcriptome.End() <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "transcriptome with a positive end is required")
	}

	var copts []canvas.Option
	if o.canvasID != "" {
		copts = append(copts, canvas.WithID(o.canvasID))
	}
	if o.palette.Background != "" {
		copts = append(copts, canvas.WithBackground(o.palette.Background))
	}
	c := canvas.New(width, height, copts...)

	g, err := grid.New(c, o.grid)
	if err != nil {
		return nil, err
	}

	p := &plotter{
		opts:   o,
		data:   data,
		grid:   g,
		logger: o.logger,
		fig:    &Figure{Canvas: c, Width: width, Height: height},
	}
	p.run()
	return p.fig, nil
}

func (p *plotter) run() {
	tr := p.data.Transcriptome
	pal := p.opts.palette

	p.plotAnnotation()
	p.plotSchematic()
	p.plotLabels()

	p.siteLines(KindDonor, tr.Donors(), []int{RowAnnotation, RowSchematic, rowSpacerTop}, pal.Donor)
	p.siteLines(KindAcceptor, tr.Acceptors(),
		[]int{RowAnnotation, RowSchematic, rowSpacerTop, RowDonorBars, RowDonorConnectors, RowDonorLanes, rowSpacerMiddle},
		pal.Acceptor)

	p.plotSites(KindDonor, tr.Donors(), p.data.Donors, RowDonorBars, RowDonorLanes, RowDonorConnectors, pal.Donor)
	if p.opts.acceptorLanes {
		p.plotSites(KindAcceptor, tr.Acceptors(), p.data.Acceptors, RowAcceptorBars, RowAcceptorLanes, RowAcceptorConnectors, pal.Acceptor)
	}

	p.plotLegend()

	promote := []int{RowAnnotation, RowDonorBars, RowDonorLanes}
	if p.opts.acceptorLanes {
		promote = append(promote, RowAcceptorBars, RowAcceptorLanes)
	}
	for _, row := range promote {
		if !p.grid.Promote(ColPlot, row) {
			p.logger.Debug("promote skipped", "cell", grid.Cell{Col: ColPlot, Row: row})
		}
	}
}

// panel returns the surface and dimensions of (col, row), recording the
// panel in the figure summary or as skipped.
func (p *plotter) panel(col, row int) (*canvas.Surface, panels.Dimensions, bool) {
	cell := grid.Cell{Col: col, Row: row}
	s, ok := p.grid.CellSurface(col, row)
	if !ok {
		p.logger.Debug("panel skipped", "cell", cell, "role", Role(cell))
		p.fig.Skipped = append(p.fig.Skipped, cell)
		return nil, panels.Dimensions{}, false
	}
	if !slices.ContainsFunc(p.fig.Panels, func(pi PanelInfo) bool { return pi.Cell == cell }) {
		p.fig.Panels = append(p.fig.Panels, PanelInfo{Cell: cell, Role: Role(cell), Rect: s.Rect()})
	}
	return s, panels.DimensionsOf(s.Rect(), p.opts.fontSize), true
}

func (p *plotter) plotAnnotation() {
	s, d, ok := p.panel(ColPlot, RowAnnotation)
	if !ok {
		return
	}
	a := panels.NewAnnotation(s, d, p.data.Transcriptome, p.opts.palette)
	p.grid.SetCellData(ColPlot, RowAnnotation, a)
	a.Plot()
}

func (p *plotter) plotSchematic() {
	s, d, ok := p.panel(ColPlot, RowSchematic)
	if !ok {
		return
	}
	sc := panels.NewSchematic(s, d, p.data.Transcriptome, p.opts.palette)
	p.grid.SetCellData(ColPlot, RowSchematic, sc)
	p.fig.Genes = sc.Plot()
}

func (p *plotter) plotLabels() {
	s, d, ok := p.panel(ColLabels, RowSchematic)
	if !ok {
		return
	}
	l := panels.NewLabels(s, d, p.fig.Genes, p.opts.palette)
	p.grid.SetCellData(ColLabels, RowSchematic, l)
	l.Plot()
}

// siteLines draws one dashed vertical line per site on an overlay spanning
// rows of the plot column. x positions follow the schematic panel's width.
func (p *plotter) siteLines(kind string, sites []int, rows []int, color string) {
	ov, ok := p.grid.Overlay(ColPlot, rows)
	if !ok {
		p.logger.Debug("overlay skipped", "kind", kind, "rows", rows)
		return
	}
	ref, ok := p.grid.CellRect(ColPlot, RowSchematic)
	if !ok {
		return
	}
	x := panels.NewScale(0, float64(p.data.Transcriptome.End()), 0, ref.Width)
	st := canvas.Style{Stroke: color, StrokeWidth: 1, Dash: "5,5", Class: kind + "-site"}
	for _, site := range sites {
		sx := x.Map(float64(site))
		ov.Line(sx, 0, sx, ov.Height(), st)
	}
}

// plotSites draws the coverage bars, the detail lanes and their connectors
// for one site kind.
func (p *plotter) plotSites(kind string, sites []int, track *transcriptome.Track, barsRow, lanesRow, connRow int, color string) {
	end := float64(p.data.Transcriptome.End())

	if s, d, ok := p.panel(ColPlot, barsRow); ok {
		b := panels.NewBars(s, d, track, panels.NewScale(0, end, 0, d.Width), color)
		p.grid.SetCellData(ColPlot, barsRow, b)
		b.Plot()
	}

	host, _, ok := p.panel(ColPlot, lanesRow)
	if !ok {
		return
	}
	positions := slices.Clone(sites)
	slices.Sort(positions)
	maxValue := track.MaxScoreAt(positions)

	alloc, err := lanes.New(host, end, positions, p.opts.laneWidth, maxValue,
		lanes.WithFocusHalfWidth(p.opts.focus))
	if err != nil {
		p.logger.Warn("lanes skipped", "kind", kind, "err", err)
		return
	}
	p.grid.SetCellData(ColPlot, lanesRow, alloc)
	if alloc.Shrunk() {
		p.logger.Warn("lanes shrunk to fit",
			"kind", kind,
			"lanes", alloc.Len(),
			"width", alloc.LaneWidth(),
			"requested", alloc.NominalWidth())
		p.fig.Shrunk = append(p.fig.Shrunk, kind)
	}
	alloc.Plot()

	var spacer *canvas.Surface
	if alloc.Len() > 0 {
		spacer, _, _ = p.panel(ColPlot, connRow)
	}

	r := min(p.opts.zoomRadius, p.data.Transcriptome.End())
	for i := 0; i < alloc.Len(); i++ {
		lane, _ := alloc.Lane(i)
		ls, ok := alloc.LaneSurface(i)
		if !ok {
			continue
		}
		d := panels.DimensionsOf(ls.Absolute(), p.opts.fontSize)
		ls.Box(ls.Bounds(), canvas.Style{Fill: color, FillOpacity: laneFillOpacity})

		site := lane.Position
		x := panels.NewScale(float64(site-r), float64(site+r), 0, d.Width)
		panels.NewLine(ls, d, track.Range(site-r, site+r).Explode(), x, maxValue, p.opts.palette.Detail).Plot()

		if spacer != nil {
			connector.New(spacer, connector.FromMapping(lane.Mapping), p.opts.palette.Connector).Plot()
		}

		p.fig.Lanes = append(p.fig.Lanes, LaneInfo{
			Kind:     kind,
			Index:    i,
			Position: site,
			Rect:     ls.Absolute(),
			Overview: lane.Mapping.Overview,
			MaxValue: maxValue,
		})
	}
}

func (p *plotter) plotLegend() {
	s, d, ok := p.panel(ColLegend, 0)
	if !ok {
		return
	}
	pal := p.opts.palette
	entries := []panels.LegendEntry{
		{Label: "donor", Color: pal.Donor},
		{Label: "acceptor", Color: pal.Acceptor},
		{Label: "exon", Color: pal.Gene},
		{Label: "ORF", Color: pal.ORF},
	}
	l := panels.NewLegend(s, d, entries, pal.Text)
	p.grid.SetCellData(ColLegend, 0, l)
	l.Plot()
}
