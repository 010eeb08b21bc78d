package boardview

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

type Palette struct {
	Light      colorful.Color
	Dark       colorful.Color
	WhitePiece colorful.Color
	BlackPiece colorful.Color
	Border     colorful.Color
	Label      colorful.Color
}

func DefaultPalette() Palette {
	return Palette{
		Light:      colorful.Color{R: 0.941, G: 0.851, B: 0.710},
		Dark:       colorful.Color{R: 0.710, G: 0.533, B: 0.388},
		WhitePiece: colorful.Color{R: 1, G: 1, B: 1},
		BlackPiece: colorful.Color{R: 0, G: 0, B: 0},
		Border:     colorful.Color{R: 0.294, G: 0.212, B: 0.149},
		Label:      colorful.Color{R: 0.941, G: 0.851, B: 0.710},
	}
}

// PaletteOptions is a palette as written in an options file, with colors as
// hex strings. Empty values are taken from the default palette.
type PaletteOptions struct {
	Light      string `toml:"light"`
	Dark       string `toml:"dark"`
	WhitePiece string `toml:"white-piece"`
	BlackPiece string `toml:"black-piece"`
	Border     string `toml:"border"`
	Label      string `toml:"label"`
}

func (o PaletteOptions) Palette() (Palette, error) {
	p := DefaultPalette()
	for _, item := range []struct {
		name string
		src  string
		dst  *colorful.Color
	}{
		{"light", o.Light, &p.Light},
		{"dark", o.Dark, &p.Dark},
		{"white-piece", o.WhitePiece, &p.WhitePiece},
		{"black-piece", o.BlackPiece, &p.BlackPiece},
		{"border", o.Border, &p.Border},
		{"label", o.Label, &p.Label},
	} {
		if item.src == "" {
			continue
		}
		c, err := colorful.Hex(item.src)
		if err != nil {
			return Palette{}, fmt.Errorf("color %q: %w", item.name, err)
		}
		*item.dst = c
	}
	return p, nil
}

func (p Palette) Square(light bool) colorful.Color {
	if light {
		return p.Light
	}
	return p.Dark
}

// Outline returns a color that stands out against c, used to draw piece
// contours.
func Outline(c colorful.Color) colorful.Color {
	l, _, _ := c.Lab()
	if l > 0.5 {
		return colorful.Color{R: 0, G: 0, B: 0}
	}
	return colorful.Color{R: 1, G: 1, B: 1}
}

// Shade blends c towards black by the given amount in 0..1.
func Shade(c colorful.Color, amount float64) colorful.Color {
	return c.BlendLab(colorful.Color{}, amount).Clamped()
}

// Key returns a string that identifies the palette, for use in cache keys.
func (p Palette) Key() string {
	return p.Light.Hex() + p.Dark.Hex() + p.WhitePiece.Hex() + p.BlackPiece.Hex() + p.Border.Hex() + p.Label.Hex()
}
