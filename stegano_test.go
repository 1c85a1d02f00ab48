package stegano_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stegano "github.com/yyyoichi/stegano_lsb"
	"github.com/yyyoichi/stegano_lsb/mark"
)

func createImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := range height {
		for x := range width {
			img.Set(x, y, color.RGBA{uint8(x * 7), uint8(y * 13), uint8(x*y + 1), 255})
		}
	}
	return img
}

func TestEmbedExtract(t *testing.T) {
	test := []struct {
		name string
		opts []stegano.Option
	}{
		{"default", nil},
		{"without ecc", []stegano.Option{stegano.WithoutECC()}},
		{"golay", []stegano.Option{stegano.WithGolay(42)}},
	}
	messages := []string{
		"a",
		"testetestetest",
		"Hello, World!\nSecond line\x00with NUL",
		"こんにちは🍣",
	}
	ctx := context.Background()
	src := createImage(64, 48)

	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			for _, msg := range messages {
				marked, err := stegano.Embed(ctx, src, msg, tt.opts...)
				require.NoError(t, err)
				assert.Equal(t, src.Bounds(), marked.Bounds())

				got, err := stegano.Extract(ctx, marked, tt.opts...)
				require.NoError(t, err)
				assert.Equal(t, msg, got)
			}
		})
	}
}

func TestEmbed(t *testing.T) {
	ctx := context.Background()

	t.Run("source is not modified", func(t *testing.T) {
		src := createImage(8, 8)
		before := append([]uint8(nil), src.Pix...)
		_, err := stegano.Embed(ctx, src, "keep me")
		require.NoError(t, err)
		assert.Equal(t, before, src.Pix)
	})

	t.Run("only least significant bits change", func(t *testing.T) {
		src := createImage(16, 16)
		marked, err := stegano.Embed(ctx, src, "high bits stay")
		require.NoError(t, err)
		for y := range 16 {
			for x := range 16 {
				r0, g0, b0, _ := src.At(x, y).RGBA()
				r1, g1, b1, a1 := marked.At(x, y).RGBA()
				assert.Equal(t, []uint32{r0 >> 9, g0 >> 9, b0 >> 9}, []uint32{r1 >> 9, g1 >> 9, b1 >> 9})
				assert.Equal(t, uint32(0xffff), a1)
			}
		}
	})

	t.Run("capacity", func(t *testing.T) {
		// 4x4 pixels hold 48 bits: 5 message bytes and the terminator.
		src := createImage(4, 4)
		s, err := stegano.New()
		require.NoError(t, err)
		assert.Equal(t, 48, stegano.Capacity(src.Bounds()))
		assert.Equal(t, 5, s.MaxMessageBytes(src.Bounds()))

		marked, err := s.Embed(ctx, src, "12345")
		require.NoError(t, err)
		got, err := s.Extract(ctx, marked)
		require.NoError(t, err)
		assert.Equal(t, "12345", got)

		_, err = s.Embed(ctx, src, "123456")
		assert.ErrorIs(t, err, stegano.ErrCapacityExceeded)
	})

	t.Run("golay capacity", func(t *testing.T) {
		s, err := stegano.New(stegano.WithGolay(1))
		require.NoError(t, err)
		// 62x1 pixels hold one 184-bit Golay frame, 61x1 pixels none.
		maxBytes := s.MaxMessageBytes(image.Rect(0, 0, 62, 1))
		assert.Equal(t, 11, maxBytes)
		assert.LessOrEqual(t, mark.EncodedLen(maxBytes, mark.WithGolay(1)), 186)
		assert.Greater(t, mark.EncodedLen(maxBytes+1, mark.WithGolay(1)), 186)
		assert.Equal(t, 0, s.MaxMessageBytes(image.Rect(0, 0, 61, 1)))
	})

	t.Run("round trip at max message size", func(t *testing.T) {
		test := []struct {
			name          string
			width, height int
			opts          []stegano.Option
		}{
			{"8x8", 8, 8, nil},
			{"31x17", 31, 17, nil},
			{"64x48", 64, 48, nil},
			{"8x8 golay", 8, 8, []stegano.Option{stegano.WithGolay(7)}},
			{"31x17 golay", 31, 17, []stegano.Option{stegano.WithGolay(7)}},
			{"64x48 golay", 64, 48, []stegano.Option{stegano.WithGolay(7)}},
			{"100x100 golay", 100, 100, []stegano.Option{stegano.WithGolay(7)}},
		}
		for _, tt := range test {
			t.Run(tt.name, func(t *testing.T) {
				s, err := stegano.New(tt.opts...)
				require.NoError(t, err)
				src := createImage(tt.width, tt.height)
				maxBytes := s.MaxMessageBytes(src.Bounds())
				require.Greater(t, maxBytes, 0)

				for _, n := range []int{maxBytes - 1, maxBytes} {
					msg := strings.Repeat("x", n)
					marked, err := s.Embed(ctx, src, msg)
					require.NoError(t, err, n)
					got, err := s.Extract(ctx, marked)
					require.NoError(t, err, n)
					assert.Equal(t, msg, got, n)
				}

				_, err = s.Embed(ctx, src, strings.Repeat("x", maxBytes+1))
				assert.ErrorIs(t, err, stegano.ErrCapacityExceeded)
			})
		}
	})

	t.Run("rejects", func(t *testing.T) {
		_, err := stegano.Embed(ctx, createImage(8, 8), "")
		assert.ErrorIs(t, err, stegano.ErrEmptyMessage)

		_, err = stegano.Embed(ctx, createImage(8, 8), "\xff")
		assert.ErrorIs(t, err, stegano.ErrInvalidMessage)

		_, err = stegano.Embed(ctx, image.NewGray(image.Rect(0, 0, 8, 8)), "gray")
		assert.ErrorIs(t, err, stegano.ErrUnsupportedImageFormat)

		_, err = stegano.Extract(ctx, image.NewNRGBA(image.Rect(0, 0, 8, 8)))
		assert.ErrorIs(t, err, stegano.ErrUnsupportedImageFormat)
	})
}

func TestExtract(t *testing.T) {
	ctx := context.Background()

	t.Run("no terminator", func(t *testing.T) {
		// 4x2 black pixels: 24 zero bits, three NUL bytes and no terminator
		img := image.NewRGBA(image.Rect(0, 0, 4, 2))
		for i := 3; i < len(img.Pix); i += 4 {
			img.Pix[i] = 0xff
		}
		got, err := stegano.Extract(ctx, img)
		assert.ErrorIs(t, err, stegano.ErrDecodeTruncated)
		assert.Equal(t, "\x00\x00\x00", got)
	})

	t.Run("golay corrects damaged pixels", func(t *testing.T) {
		src := createImage(64, 8)
		opt := stegano.WithGolay(7)
		marked, err := stegano.Embed(ctx, src, "robust", opt)
		require.NoError(t, err)

		// Rows of 192 bits are longer than a 184-bit frame, so one damaged
		// channel per row is at most one flipped bit per frame.
		damaged := marked.(*image.NRGBA)
		for y := range 8 {
			c := damaged.NRGBAAt(5, y)
			c.R ^= 1
			damaged.SetNRGBA(5, y, c)
		}
		got, err := stegano.Extract(ctx, damaged, opt)
		require.NoError(t, err)
		assert.Equal(t, "robust", got)
	})

	t.Run("cancelled", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := stegano.Extract(cctx, createImage(4, 4))
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	s, err := stegano.New(stegano.WithLogger(log.New(&buf, "", 0)))
	require.NoError(t, err)
	_, err = s.Embed(context.Background(), createImage(10, 5), "log")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "image size: width = 10, height = 5")
	assert.Contains(t, buf.String(), "message bits: 24, payload bits: 32, capacity: 150")

	_, err = stegano.New(stegano.WithLogger(nil))
	assert.Error(t, err)
}
