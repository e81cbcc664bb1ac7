// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// Color is a linear RGBA color with channels in [0, 1].
type Color struct {
	R, G, B, A float64
}

var (
	// ColorGreen is the default clear color of the main render pass.
	ColorGreen = Color{R: 0, G: 1, B: 0, A: 1}

	// ColorBlack is opaque black.
	ColorBlack = Color{R: 0, G: 0, B: 0, A: 1}
)

// Clamped returns the color with every channel limited to [0, 1].
func (c Color) Clamped() Color {
	return Color{
		R: Clamp(c.R, 0, 1),
		G: Clamp(c.G, 0, 1),
		B: Clamp(c.B, 0, 1),
		A: Clamp(c.A, 0, 1),
	}
}

// WGPU converts the color to the wgpu clear value type.
func (c Color) WGPU() wgpu.Color {
	cc := c.Clamped()
	return wgpu.Color{R: cc.R, G: cc.G, B: cc.B, A: cc.A}
}

// ParseColor parses a comma separated "r,g,b[,a]" string of floats into a Color.
// Alpha defaults to 1 when omitted.
//
// Parameters:
//   - s: the color string, e.g. "0,1,0" or "0.1,0.1,0.1,1"
//
// Returns:
//   - Color: the parsed color, clamped to [0, 1]
//   - error: an error if the string does not contain 3 or 4 finite numbers
func ParseColor(s string) (Color, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 && len(parts) != 4 {
		return Color{}, fmt.Errorf("color %q: want 3 or 4 components, got %d", s, len(parts))
	}

	values := [4]float64{0, 0, 0, 1}
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Color{}, fmt.Errorf("color %q: component %d: %w", s, i, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Color{}, fmt.Errorf("color %q: component %d is not finite", s, i)
		}
		values[i] = v
	}

	return Color{R: values[0], G: values[1], B: values[2], A: values[3]}.Clamped(), nil
}
