// Package diagram draws board diagrams as raster images.
//
// Pieces are drawn as discs in the piece color with a contrasting rim and
// the piece letter in the middle, so no image assets are needed.
package diagram

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/alex65536/fenboard/internal/boardview"
	"github.com/alex65536/fenboard/internal/fen"
)

const (
	MinSquareSize = 16
	MaxSquareSize = 128
)

type Options struct {
	SquareSize int
	Rotated    bool
	Coords     bool
	Palette    *boardview.Palette
}

func (o *Options) FillDefaults() {
	if o.SquareSize == 0 {
		o.SquareSize = 44
	}
	if o.Palette == nil {
		p := boardview.DefaultPalette()
		o.Palette = &p
	}
}

func (o *Options) Validate() error {
	if o.SquareSize < MinSquareSize || o.SquareSize > MaxSquareSize {
		return fmt.Errorf("square size %d not in range %d..%d", o.SquareSize, MinSquareSize, MaxSquareSize)
	}
	return nil
}

func (o *Options) border() int {
	if !o.Coords {
		return 0
	}
	return max(o.SquareSize/2, basicfont.Face7x13.Height+4)
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func drawText(dst draw.Image, c color.Color, cx, cy int, s string) {
	face := basicfont.Face7x13
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
	}
	width := d.MeasureString(s).Ceil()
	m := face.Metrics()
	height := (m.Ascent + m.Descent).Ceil()
	d.Dot = fixed.P(cx-width/2, cy-height/2+m.Ascent.Ceil())
	d.DrawString(s)
}

func fillCircle(dst *image.RGBA, cx, cy, r float64, c color.Color) {
	b := dst.Bounds()
	scanner := rasterx.NewScannerGV(b.Dx(), b.Dy(), dst, b)
	filler := rasterx.NewFiller(b.Dx(), b.Dy(), scanner)
	filler.SetColor(c)
	rasterx.AddCircle(cx, cy, r, filler)
	filler.Draw()
}

func drawPiece(dst *image.RGBA, p *boardview.Palette, sq fen.Square, rect image.Rectangle) {
	body := p.WhitePiece
	if sq.Color() == fen.ColorBlack {
		body = p.BlackPiece
	}
	rim := boardview.Outline(body)
	size := float64(rect.Dx())
	cx := float64(rect.Min.X) + size/2
	cy := float64(rect.Min.Y) + size/2
	fillCircle(dst, cx, cy, size*0.40, toRGBA(rim))
	fillCircle(dst, cx, cy, size*0.36, toRGBA(body))
	letter := string(fen.MakeSquare(fen.ColorWhite, sq.Kind()).Letter())
	drawText(dst, toRGBA(rim), int(cx), int(cy), letter)
}

// Render draws the board into a new image.
func Render(b fen.Board, o Options) (*image.RGBA, error) {
	o.FillDefaults()
	if err := o.Validate(); err != nil {
		return nil, fmt.Errorf("bad options: %w", err)
	}
	view := boardview.View{Rotated: o.Rotated}
	border := o.border()
	side := 8*o.SquareSize + 2*border
	img := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.Draw(img, img.Bounds(), image.NewUniform(toRGBA(o.Palette.Border)), image.Point{}, draw.Src)

	for _, c := range view.Cells(b) {
		x0 := border + c.Col*o.SquareSize
		y0 := border + c.Row*o.SquareSize
		rect := image.Rect(x0, y0, x0+o.SquareSize, y0+o.SquareSize)
		sqColor := toRGBA(o.Palette.Square(c.Light))
		draw.Draw(img, rect, image.NewUniform(sqColor), image.Point{}, draw.Src)
		if !c.Square.IsEmpty() {
			drawPiece(img, o.Palette, c.Square, rect)
		}
	}

	if border != 0 {
		label := toRGBA(o.Palette.Label)
		for i, l := range view.FileLabels() {
			cx := border + i*o.SquareSize + o.SquareSize/2
			drawText(img, label, cx, border/2, l)
			drawText(img, label, cx, side-border/2, l)
		}
		for i, l := range view.RankLabels() {
			cy := border + i*o.SquareSize + o.SquareSize/2
			drawText(img, label, border/2, cy, l)
			drawText(img, label, side-border/2, cy, l)
		}
	}
	return img, nil
}

func EncodePNG(w io.Writer, img image.Image) error {
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// RenderPNG renders the board and encodes it in one go.
func RenderPNG(w io.Writer, b fen.Board, o Options) error {
	img, err := Render(b, o)
	if err != nil {
		return err
	}
	return EncodePNG(w, img)
}

// RenderSquare draws a single square of the given size, as used by the board
// grid in the web interface.
func RenderSquare(sq fen.Square, light bool, size int, p *boardview.Palette) (*image.RGBA, error) {
	o := Options{SquareSize: size, Palette: p}
	o.FillDefaults()
	if err := o.Validate(); err != nil {
		return nil, fmt.Errorf("bad options: %w", err)
	}
	rect := image.Rect(0, 0, size, size)
	img := image.NewRGBA(rect)
	draw.Draw(img, rect, image.NewUniform(toRGBA(o.Palette.Square(light))), image.Point{}, draw.Src)
	if !sq.IsEmpty() {
		drawPiece(img, o.Palette, sq, rect)
	}
	return img, nil
}
