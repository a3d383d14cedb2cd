package errors

import (
	"math"
	"regexp"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

// ValidateRatios checks that ratios is a non-empty list of positive, finite
// fractions summing to 1 within tol. The name is used in error messages.
func ValidateRatios(name string, ratios []float64, tol float64) error {
	if len(ratios) == 0 {
		return New(ErrCodeInvalidConfig, "%s: no ratios", name)
	}
	for i, r := range ratios {
		if math.IsNaN(r) || math.IsInf(r, 0) || r <= 0 {
			return New(ErrCodeInvalidConfig, "%s[%d]: ratio must be positive, got %g", name, i, r)
		}
	}
	if sum := floats.Sum(ratios); !scalar.EqualWithinAbs(sum, 1, tol) {
		return New(ErrCodeInvalidConfig, "%s: ratios sum to %g, want 1", name, sum)
	}
	return nil
}

// ValidateCanvas checks the caller-supplied render dimensions.
func ValidateCanvas(width, height, fontSize float64) error {
	if !(width > 0) || math.IsInf(width, 0) {
		return New(ErrCodeInvalidInput, "width must be positive, got %g", width)
	}
	if !(height > 0) || math.IsInf(height, 0) {
		return New(ErrCodeInvalidInput, "height must be positive, got %g", height)
	}
	if fontSize < 0 || math.IsNaN(fontSize) {
		return New(ErrCodeInvalidInput, "font size cannot be negative, got %g", fontSize)
	}
	return nil
}

// hexColorRegex matches #rgb, #rrggbb and #rrggbbaa colours.
var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// namedColorRegex matches CSS colour keywords such as "red" or "steelblue".
var namedColorRegex = regexp.MustCompile(`^[a-z]{3,20}$`)

// ValidateColor validates an SVG paint value. Hex colours and lowercase CSS
// keywords are accepted; anything containing markup characters is rejected.
func ValidateColor(color string) error {
	if color == "" {
		return New(ErrCodeInvalidColor, "color cannot be empty")
	}
	if strings.ContainsAny(color, `<>"'&`) {
		return New(ErrCodeInvalidColor, "color contains invalid characters: %q", color)
	}
	if hexColorRegex.MatchString(color) || namedColorRegex.MatchString(color) {
		return nil
	}
	return New(ErrCodeInvalidColor, "invalid color: %q", color)
}
