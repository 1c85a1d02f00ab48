package lsb

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

var (
	ErrUnsupportedImage = errors.New("image must have 3 opaque color channels")
)

// Channel is one color component of a pixel.
type Channel int

const (
	R Channel = iota
	G
	B
	channels = 3
)

// Grid is an owned 8-bit RGB pixel buffer.
// Pixels are stored in row-major order, each as R, G, B.
type Grid struct {
	bounds        image.Rectangle
	width, height int

	pix []uint8
}

// NewGrid copies src into a new Grid.
// Images whose color model has fewer than 3 color channels, or that have
// any pixel that is not fully opaque, are rejected with ErrUnsupportedImage.
// 16-bit channels are reduced to 8 bits.
func NewGrid(src image.Image) (Grid, error) {
	switch src.ColorModel() {
	case color.GrayModel, color.Gray16Model, color.AlphaModel, color.Alpha16Model, color.CMYKModel:
		return Grid{}, fmt.Errorf("%w: gray, alpha-only and CMYK images are not supported", ErrUnsupportedImage)
	}

	var g Grid
	g.bounds = src.Bounds()
	g.width, g.height = g.bounds.Dx(), g.bounds.Dy()
	g.pix = make([]uint8, g.width*g.height*channels)

	nrgba := image.NewNRGBA(image.Rect(0, 0, g.width, g.height))
	draw.Draw(nrgba, nrgba.Bounds(), src, g.bounds.Min, draw.Src)
	idx := 0
	for y := range g.height {
		for x := range g.width {
			c := nrgba.NRGBAAt(x, y)
			if c.A != 0xff {
				return Grid{}, fmt.Errorf("%w: pixel (%d, %d) has alpha %d", ErrUnsupportedImage, x, y, c.A)
			}
			g.pix[idx+0] = c.R
			g.pix[idx+1] = c.G
			g.pix[idx+2] = c.B
			idx += channels
		}
	}
	return g, nil
}

// NewGridFromPix builds a width x height Grid from row-major RGB values.
// pix is used directly, not copied.
func NewGridFromPix(width, height int, pix []uint8) (Grid, error) {
	if width < 0 || height < 0 || len(pix) != width*height*channels {
		return Grid{}, fmt.Errorf("%w: %d values for %dx%d pixels", ErrUnsupportedImage, len(pix), width, height)
	}
	return Grid{
		bounds: image.Rect(0, 0, width, height),
		width:  width,
		height: height,
		pix:    pix,
	}, nil
}

func (g Grid) Width() int  { return g.width }
func (g Grid) Height() int { return g.height }

// Capacity returns the number of bits the grid can hold, one per channel.
func (g Grid) Capacity() int {
	return g.width * g.height * channels
}

// Channel returns the value of channel c of the pixel at column x, row y.
func (g Grid) Channel(x, y int, c Channel) uint8 {
	return g.pix[g.offset(x, y)+int(c)]
}

// SetChannel sets channel c of the pixel at column x, row y.
func (g Grid) SetChannel(x, y int, c Channel, v uint8) {
	g.pix[g.offset(x, y)+int(c)] = v
}

func (g Grid) offset(x, y int) int {
	return (y*g.width + x) * channels
}

// Pix returns the underlying row-major RGB values.
func (g Grid) Pix() []uint8 {
	return g.pix
}

// Copy returns a Grid with its own pixel buffer.
func (g Grid) Copy() Grid {
	tmp := make([]uint8, len(g.pix))
	_ = copy(tmp, g.pix)
	g.pix = tmp
	return g
}

// Build renders the grid as an opaque image with the bounds of the source.
func (g Grid) Build() image.Image {
	var dist = image.NewNRGBA(g.bounds)
	idx := 0
	for y := range g.height {
		for x := range g.width {
			dist.SetNRGBA(g.bounds.Min.X+x, g.bounds.Min.Y+y, color.NRGBA{
				R: g.pix[idx+0],
				G: g.pix[idx+1],
				B: g.pix[idx+2],
				A: 0xff,
			})
			idx += channels
		}
	}
	return dist
}
