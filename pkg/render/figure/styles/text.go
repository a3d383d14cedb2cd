package styles

const (
	fontCharWidth = 0.55
	fontSizeMin   = 6.0
	fontHeightFit = 0.8
)

// DefaultFontFamily is used for all figure text.
const DefaultFontFamily = "Helvetica, Arial, sans-serif"

// TextWidth estimates the rendered width of s at fontSize.
func TextWidth(s string, fontSize float64) float64 {
	return float64(len([]rune(s))) * fontSize * fontCharWidth
}

// FitFontSize returns the largest size not above fontSize at which a line of
// text fits a box of the given height, floored at a legible minimum.
func FitFontSize(fontSize, height float64) float64 {
	return max(fontSizeMin, min(fontSize, height*fontHeightFit))
}

// TruncateLabel shortens label to fit width at fontSize, marking the cut
// with "..". At least three characters are kept.
func TruncateLabel(label string, width, fontSize float64) string {
	runes := []rune(label)
	maxChars := int(width / (fontSize * fontCharWidth))
	if maxChars < 3 {
		maxChars = 3
	}
	if len(runes) <= maxChars {
		return label
	}
	return string(runes[:maxChars-2]) + ".."
}
