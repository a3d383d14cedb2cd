package figure

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/spliceplot/pkg/render/figure/grid"
	"github.com/matzehuels/spliceplot/pkg/render/figure/styles"
)

// Defaults for the figure parameters.
const (
	DefaultFontSize       = 12.0
	DefaultLaneWidth      = 100.0
	DefaultZoomRadius     = 10
	DefaultFocusHalfWidth = 2.0
)

// Panel rows of columns 0 and 1.
const (
	RowAnnotation = iota
	RowSchematic
	rowSpacerTop
	RowDonorBars
	RowDonorConnectors
	RowDonorLanes
	rowSpacerMiddle
	RowAcceptorBars
	RowAcceptorConnectors
	RowAcceptorLanes
)

// Columns of the figure grid.
const (
	ColPlot = iota
	ColLabels
	ColLegend
)

var plotRows = []float64{0.1, 0.45, 0.025, 0.05, 0.025, 0.15, 0.025, 0.05, 0.025, 0.15}

// DefaultConfig returns the figure grid: a wide plot column, a label column
// with the same rows and a single-row legend column. The row ratios are
// normalized to sum to 1.
func DefaultConfig() grid.Config {
	return grid.Config{
		Columns:      3,
		ColumnRatios: []float64{0.8, 0.1, 0.1},
		RowRatios:    [][]float64{grid.Normalize(plotRows), grid.Normalize(plotRows), {1}},
	}
}

// Option configures [Plot].
type Option func(*options)

type options struct {
	fontSize      float64
	grid          grid.Config
	palette       styles.Palette
	laneWidth     float64
	zoomRadius    int
	focus         float64
	acceptorLanes bool
	logger        *log.Logger
	canvasID      string
}

func defaultOptions() options {
	return options{
		fontSize:      DefaultFontSize,
		grid:          DefaultConfig(),
		palette:       styles.DefaultPalette(),
		laneWidth:     DefaultLaneWidth,
		zoomRadius:    DefaultZoomRadius,
		focus:         DefaultFocusHalfWidth,
		acceptorLanes: true,
		logger:        log.NewWithOptions(io.Discard, log.Options{}),
	}
}

// WithFontSize sets the base font size.
func WithFontSize(size float64) Option { return func(o *options) { o.fontSize = size } }

// WithConfig replaces the grid configuration. Panels the configuration does
// not provide are skipped.
func WithConfig(cfg grid.Config) Option { return func(o *options) { o.grid = cfg.Clone() } }

// WithPalette sets the colors; empty fields keep their defaults.
func WithPalette(p styles.Palette) Option {
	return func(o *options) { o.palette = p.Merge(styles.DefaultPalette()) }
}

// WithLaneWidth sets the nominal detail lane width in pixels.
func WithLaneWidth(px float64) Option { return func(o *options) { o.laneWidth = px } }

// WithZoomRadius sets how many positions either side of a site a lane shows.
func WithZoomRadius(r int) Option {
	return func(o *options) {
		if r > 0 {
			o.zoomRadius = r
		}
	}
}

// WithFocusHalfWidth sets the half-width of the overview interval each
// connector starts from.
func WithFocusHalfWidth(px float64) Option { return func(o *options) { o.focus = px } }

// WithAcceptorLanes enables or disables the acceptor coverage, lanes and
// connectors. The dashed acceptor lines are always drawn.
func WithAcceptorLanes(on bool) Option { return func(o *options) { o.acceptorLanes = on } }

// WithLogger sets the logger for skipped panels and lane warnings.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithCanvasID fixes the canvas id, making the SVG output deterministic.
func WithCanvasID(id string) Option { return func(o *options) { o.canvasID = id } }
