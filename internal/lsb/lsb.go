package lsb

import (
	"context"
	"errors"
	"fmt"
	"image"
)

var (
	ErrCapacityExceeded = errors.New("bit sequence exceeds image capacity")
)

// BitSource is an ordered sequence of bits to embed.
type BitSource interface {
	Len() int
	Bit(at int) bool
}

// Enable reports whether bitLen bits fit into g.
func Enable(g Grid, bitLen int) error {
	if c := g.Capacity(); c < bitLen {
		return fmt.Errorf("%w: capacity %d < bit length %d", ErrCapacityExceeded, c, bitLen)
	}
	return nil
}

// Capacity returns the number of bits an image of the given bounds can hold.
func Capacity(rect image.Rectangle) int {
	return rect.Dx() * rect.Dy() * channels
}

// SetLSB returns v with its least significant bit replaced by bit.
func SetLSB(v uint8, bit bool) uint8 {
	v &^= 1
	if bit {
		v |= 1
	}
	return v
}

// LSB returns the least significant bit of v.
func LSB(v uint8) bool {
	return v&1 == 1
}

// Embed writes bits into the least significant bits of g in place.
// Pixels are visited row by row, left to right, and each pixel's channels
// in R, G, B order. Channels after the last bit keep their values.
//
// The capacity is checked before anything is written. A cancelled ctx stops
// the walk between rows and leaves the rows already visited modified.
func Embed(ctx context.Context, g Grid, bits BitSource) error {
	if err := Enable(g, bits.Len()); err != nil {
		return err
	}
	var (
		n  = bits.Len()
		at = 0
	)
	for y := 0; y < g.height && at < n; y++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		for x := 0; x < g.width && at < n; x++ {
			for c := R; c <= B && at < n; c++ {
				g.SetChannel(x, y, c, SetLSB(g.Channel(x, y, c), bits.Bit(at)))
				at++
			}
		}
	}
	return nil
}

// Extract reads the least significant bit of every channel of g in the
// order Embed writes them. The result always has g.Capacity() bits.
func Extract(ctx context.Context, g Grid) ([]bool, error) {
	bits := make([]bool, 0, g.Capacity())
	for y := range g.height {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for x := range g.width {
			for c := R; c <= B; c++ {
				bits = append(bits, LSB(g.Channel(x, y, c)))
			}
		}
	}
	return bits, nil
}
