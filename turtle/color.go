package turtle

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Color is an opaque RGB color.
type Color struct {
	R, G, B uint8
}

// String returns the color as #rrggbb.
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Palette is the standard sixteen-color table addressed by index.
var Palette = [16]Color{
	{0x00, 0x00, 0x00}, // black
	{0x00, 0x00, 0xff}, // blue
	{0x00, 0xff, 0x00}, // lime
	{0x00, 0xff, 0xff}, // cyan
	{0xff, 0x00, 0x00}, // red
	{0xff, 0x00, 0xff}, // magenta
	{0xff, 0xff, 0x00}, // yellow
	{0xff, 0xff, 0xff}, // white
	{0xa5, 0x2a, 0x2a}, // brown
	{0xd2, 0xb4, 0x8c}, // tan
	{0x00, 0x80, 0x00}, // green
	{0x7f, 0xff, 0xd4}, // aquamarine
	{0xfa, 0x80, 0x72}, // salmon
	{0x80, 0x00, 0x80}, // purple
	{0xff, 0xa5, 0x00}, // orange
	{0x80, 0x80, 0x80}, // gray
}

var (
	Black = Palette[0]
	White = Palette[7]
)

var names = map[string]Color{
	"black":      Palette[0],
	"blue":       Palette[1],
	"lime":       Palette[2],
	"cyan":       Palette[3],
	"aqua":       Palette[3],
	"red":        Palette[4],
	"magenta":    Palette[5],
	"fuchsia":    Palette[5],
	"yellow":     Palette[6],
	"white":      Palette[7],
	"brown":      Palette[8],
	"tan":        Palette[9],
	"green":      Palette[10],
	"aquamarine": Palette[11],
	"salmon":     Palette[12],
	"purple":     Palette[13],
	"orange":     Palette[14],
	"gray":       Palette[15],
	"grey":       Palette[15],
	"silver":     {0xc0, 0xc0, 0xc0},
	"maroon":     {0x80, 0x00, 0x00},
	"olive":      {0x80, 0x80, 0x00},
	"navy":       {0x00, 0x00, 0x80},
	"teal":       {0x00, 0x80, 0x80},
	"pink":       {0xff, 0xc0, 0xcb},
	"gold":       {0xff, 0xd7, 0x00},
	"violet":     {0xee, 0x82, 0xee},
	"indigo":     {0x4b, 0x00, 0x82},
}

// PaletteColor returns the palette entry at index i.
func PaletteColor(i int) (Color, bool) {
	if i < 0 || i >= len(Palette) {
		return Color{}, false
	}
	return Palette[i], true
}

// PaletteIndex returns the index of the first palette entry equal to c.
func (c Color) PaletteIndex() (int, bool) {
	for i, p := range Palette {
		if p == c {
			return i, true
		}
	}
	return 0, false
}

// NamedColor looks up a color name, ignoring case.
func NamedColor(name string) (Color, bool) {
	c, ok := names[strings.ToLower(name)]
	return c, ok
}

// ParseHex parses #rgb or #rrggbb.
func ParseHex(s string) (Color, bool) {
	if !strings.HasPrefix(s, "#") {
		return Color{}, false
	}
	s = s[1:]
	switch len(s) {
	case 3:
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	case 6:
	default:
		return Color{}, false
	}
	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, false
	}
	return Color{uint8(n >> 16), uint8(n >> 8), uint8(n)}, true
}

// RGB99 creates a color from components on a 0 to 99 scale. Components
// outside that range are clamped.
func RGB99(r, g, b float64) Color {
	scale := func(v float64) uint8 {
		v = math.Max(0, math.Min(99, v))
		return uint8(math.Round(v * 255 / 99))
	}
	return Color{scale(r), scale(g), scale(b)}
}

// Parse interprets a color given as a palette index, a #hex string, or a
// name.
func Parse(s string) (Color, bool) {
	if i, err := strconv.Atoi(s); err == nil {
		return PaletteColor(i)
	}
	if c, ok := ParseHex(s); ok {
		return c, true
	}
	return NamedColor(s)
}
