package chart

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gonum.org/v1/plot/plotutil"
)

// ParseColor accepts SVG color names ("skyblue"), "#rgb", "#rrggbb" and "#rrggbbaa".
// "none" and the empty string yield nil, meaning nothing is drawn.
func ParseColor(s string) (color.Color, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" || name == "none" {
		return nil, nil
	}
	if strings.HasPrefix(name, "#") {
		return parseHex(name[1:])
	}
	if c, ok := colornames.Map[name]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("unknown color %q", s)
}

func parseHex(h string) (color.Color, error) {
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return nil, fmt.Errorf("invalid hex color #%s", h)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid hex color #%s: %w", h, err)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// Palette returns n colors from a named palette ("default", "soft", "dark") or
// from a comma-separated list of colors, cycling when n exceeds its length.
func Palette(name string, n int) ([]color.Color, error) {
	var base []color.Color
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "default", "soft":
		base = plotutil.SoftColors
	case "dark":
		base = plotutil.DarkColors
	default:
		for _, part := range strings.Split(name, ",") {
			c, err := ParseColor(part)
			if err != nil {
				return nil, fmt.Errorf("palette %q: %w", name, err)
			}
			if c == nil {
				return nil, fmt.Errorf("palette %q: empty color", name)
			}
			base = append(base, c)
		}
	}
	out := make([]color.Color, n)
	for i := range out {
		out[i] = base[i%len(base)]
	}
	return out, nil
}

func withAlpha(c color.Color, a uint8) color.Color {
	if c == nil {
		return nil
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = a
	return n
}
