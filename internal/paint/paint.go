// Package paint provides parsing and alpha arithmetic for the colour descriptors
// used in the particle field configuration.
package paint

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/csscolorparser"
	"gopkg.in/yaml.v3"
)

// Color is a straight (non-premultiplied) RGB colour with a 0-1 alpha channel,
// matching the rgba() notation of the page stylesheet.
type Color struct {
	R, G, B uint8
	A       float64 // 0 = fully transparent, 1 = fully opaque
}

// White is the tint used for pointer links.
var White = Color{R: 255, G: 255, B: 255, A: 1}

// RGBA implements color.Color (alpha-premultiplied, 16 bit per channel).
func (c Color) RGBA() (r, g, b, a uint32) {
	a = uint32(clamp01(c.A)*0xffff + 0.5)
	r = uint32(c.R) * 0x101 * a / 0xffff
	g = uint32(c.G) * 0x101 * a / 0xffff
	b = uint32(c.B) * 0x101 * a / 0xffff
	return r, g, b, a
}

// WithAlpha returns a copy of c with its alpha replaced.
func (c Color) WithAlpha(alpha float64) Color {
	c.A = clamp01(alpha)
	return c
}

// ScaleAlpha returns a copy of c with its alpha multiplied by factor.
func (c Color) ScaleAlpha(factor float64) Color {
	c.A = clamp01(c.A * factor)
	return c
}

// String formats the colour in css rgba() notation.
func (c Color) String() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B, strconv.FormatFloat(c.A, 'f', -1, 64))
}

// Colorful converts the RGB part to a go-colorful colour (alpha is dropped).
func (c Color) Colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// Over composites c on top of an opaque background and returns the opaque result.
func (c Color) Over(bg Color) Color {
	mixed := bg.Colorful().BlendRgb(c.Colorful(), clamp01(c.A)).Clamped()
	r, g, b := mixed.RGB255()
	return Color{R: r, G: g, B: b, A: 1}
}

// MustParse is like Parse but panics on error. Intended for package-level defaults.
func MustParse(s string) Color {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Parse parses a css colour descriptor: rgb()/rgba() (alpha may be a
// percentage), #rgb/#rrggbb, hsl() and named colours. NaN or infinite
// components are rejected; channels and alpha are clamped to their range.
func Parse(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Color{}, fmt.Errorf("empty paint descriptor")
	}

	// 函数写法的参数中不允许 nan / inf（strconv 会接受它们）
	if lower := strings.ToLower(s); strings.Contains(lower, "(") &&
		(strings.Contains(lower, "nan") || strings.Contains(lower, "inf")) {
		return Color{}, fmt.Errorf("paint %q: components must be finite numbers", s)
	}

	parsed, err := csscolorparser.Parse(s)
	if err != nil {
		return Color{}, fmt.Errorf("invalid paint %q: %w", s, err)
	}

	components := [4]float64{parsed.R, parsed.G, parsed.B, parsed.A}
	for i, v := range components {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Color{}, fmt.Errorf("paint %q: component %d is not a finite number", s, i)
		}
	}

	return Color{
		R: channel(parsed.R),
		G: channel(parsed.G),
		B: channel(parsed.B),
		A: clamp01(parsed.A),
	}, nil
}

// channel 0-1 浮点分量转换为 0-255
func channel(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}

// UnmarshalYAML 允许在配置文件中直接书写 "rgba(...)" 字符串
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("paint must be a string: %w", err)
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalYAML 输出 css rgba() 字符串
func (c Color) MarshalYAML() (interface{}, error) {
	return c.String(), nil
}

// clamp01 限制到 [0, 1]，NaN 视为 0
func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
