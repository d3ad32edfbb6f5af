// Package validation checks user-supplied colors, numbers and strings.
package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Error is returned for values that fail validation.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func newError(field, format string, args ...any) *Error {
	return &Error{Field: field, Message: fmt.Sprintf(format, args...)}
}

var (
	hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
	rgbColor = regexp.MustCompile(`^(?i)rgba?\((\d+),\s*(\d+),\s*(\d+)(?:,\s*([\d.]+))?\)$`)
)

// NamedColors are the color names accepted besides hex and rgb() forms.
var NamedColors = []string{
	"black", "white", "red", "green", "blue", "yellow",
	"cyan", "magenta", "gray", "grey", "orange", "purple",
	"brown", "pink", "lime", "navy", "teal", "silver",
}

// IsColor reports whether s is #RRGGBB, rgb(r, g, b), rgba(r, g, b, a) or a named color.
func IsColor(s string) bool {
	if hexColor.MatchString(s) || rgbColor.MatchString(s) {
		return true
	}
	return isNamed(s)
}

func isNamed(s string) bool {
	lower := strings.ToLower(s)
	for _, n := range NamedColors {
		if n == lower {
			return true
		}
	}
	return false
}

// ValidateColor returns s unchanged when it is a color.
func ValidateColor(field, s string) (string, error) {
	if !IsColor(s) {
		return "", newError(field, "invalid color format: %s", s)
	}
	return s, nil
}

// NormalizeColor converts any accepted color to uppercase #RRGGBB.
// The alpha of rgba() is dropped.
func NormalizeColor(s string) (string, error) {
	switch {
	case hexColor.MatchString(s):
		return strings.ToUpper(s), nil
	case rgbColor.MatchString(s):
		m := rgbColor.FindStringSubmatch(s)
		var rgb [3]int
		for i := range rgb {
			v, err := strconv.Atoi(m[i+1])
			if err != nil || v > 255 {
				return "", newError("", "color channel out of range: %s", s)
			}
			rgb[i] = v
		}
		return fmt.Sprintf("#%02X%02X%02X", rgb[0], rgb[1], rgb[2]), nil
	case isNamed(s):
		c := tcell.GetColor(strings.ToLower(s))
		if c == tcell.ColorDefault {
			return "", newError("", "unknown color: %s", s)
		}
		return fmt.Sprintf("#%06X", c.Hex()), nil
	}
	return "", newError("", "invalid color format: %s", s)
}

// InRange reports whether min <= v <= max.
func InRange[T int | float64](v, min, max T) bool {
	return v >= min && v <= max
}

// Clamp limits v to [min, max].
func Clamp[T int | float64](v, min, max T) T {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// ValidatePositive rejects v <= 0.
func ValidatePositive[T int | float64](field string, v T) (T, error) {
	if v <= 0 {
		return v, newError(field, "must be positive")
	}
	return v, nil
}

// ValidateRange rejects v outside [min, max].
func ValidateRange[T int | float64](field string, v, min, max T) (T, error) {
	if !InRange(v, min, max) {
		return v, newError(field, "must be between %v and %v", min, max)
	}
	return v, nil
}

// ValidateNonEmpty rejects blank strings.
func ValidateNonEmpty(field, s string) (string, error) {
	if strings.TrimSpace(s) == "" {
		return s, newError(field, "cannot be empty")
	}
	return s, nil
}

// ValidateMaxLength rejects strings longer than max runes.
func ValidateMaxLength(field, s string, max int) (string, error) {
	if len([]rune(s)) > max {
		return s, newError(field, "cannot exceed %d characters", max)
	}
	return s, nil
}

// Sanitize strips angle brackets from s.
func Sanitize(s string) string {
	return strings.NewReplacer("<", "", ">", "").Replace(s)
}

// Tool limits.
func ValidateStrokeWidth(w float64) (float64, error) {
	return ValidateRange("stroke width", w, 0.5, 100)
}

func ValidateOpacity(o float64) (float64, error) {
	return ValidateRange("opacity", o, 0, 1)
}

func ValidateZoom(z float64) (float64, error) {
	return ValidateRange("zoom level", z, 0.1, 10)
}
