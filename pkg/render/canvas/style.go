package canvas

// Style holds presentation attributes for shapes. Zero values are omitted
// from the output, so the SVG defaults apply.
type Style struct {
	Fill        string  // fill paint; "none" for no fill
	FillOpacity float64 // 0 leaves fill-opacity unset
	Stroke      string
	StrokeWidth float64
	Dash        string  // stroke-dasharray, e.g. "5,5"
	Opacity     float64 // 0 leaves opacity unset
	Class       string
}

// Text anchors.
const (
	AnchorStart  = "start"
	AnchorMiddle = "middle"
	AnchorEnd    = "end"
)

// TextStyle holds presentation attributes for text.
type TextStyle struct {
	Fill       string
	FontSize   float64
	FontFamily string
	FontWeight string
	Anchor     string  // text-anchor
	Baseline   string  // dominant-baseline
	Rotate     float64 // degrees, around the text position
	Class      string
}
