// Package quality measures how much hiding a message changed an image.
package quality

import (
	"errors"
	"fmt"
	"image"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/yyyoichi/stegano_lsb/internal/lsb"
)

var (
	ErrDimensionMismatch = errors.New("images have different dimensions")
)

// Report compares an original image with the image carrying a message.
type Report struct {
	Width, Height         int
	SameWidth, SameHeight bool

	// Channels is the number of color channels compared.
	Channels        int
	ChangedChannels int
	// MSE is the mean squared channel difference.
	MSE float64
	// PSNR is the peak signal-to-noise ratio in dB, +Inf for identical images.
	PSNR float64
}

// Compare computes a Report for original and result.
// When the dimensions differ only the size fields are set and
// ErrDimensionMismatch is returned.
func Compare(original, result image.Image) (Report, error) {
	a, err := lsb.NewGrid(original)
	if err != nil {
		return Report{}, fmt.Errorf("original: %w", err)
	}
	b, err := lsb.NewGrid(result)
	if err != nil {
		return Report{}, fmt.Errorf("result: %w", err)
	}

	r := Report{
		Width:      a.Width(),
		Height:     a.Height(),
		SameWidth:  a.Width() == b.Width(),
		SameHeight: a.Height() == b.Height(),
	}
	if !r.SameWidth || !r.SameHeight {
		return r, fmt.Errorf("%w: %dx%d and %dx%d", ErrDimensionMismatch,
			a.Width(), a.Height(), b.Width(), b.Height())
	}

	diff := toFloats(a.Pix())
	floats.Sub(diff, toFloats(b.Pix()))
	r.Channels = len(diff)
	for _, d := range diff {
		if d != 0 {
			r.ChangedChannels++
		}
	}
	if r.Channels > 0 {
		floats.Mul(diff, diff)
		r.MSE = stat.Mean(diff, nil)
	}
	r.PSNR = psnr(r.MSE)
	return r, nil
}

func psnr(mse float64) float64 {
	if mse == 0 {
		return math.Inf(1)
	}
	return 10 * math.Log10(255*255/mse)
}

func toFloats(pix []uint8) []float64 {
	out := make([]float64, len(pix))
	for i, v := range pix {
		out[i] = float64(v)
	}
	return out
}
