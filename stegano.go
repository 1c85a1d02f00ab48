package stegano

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log"

	"github.com/yyyoichi/stegano_lsb/internal/lsb"
	"github.com/yyyoichi/stegano_lsb/mark"
)

var (
	ErrUnsupportedImageFormat = errors.New("unsupported image format")
	ErrCapacityExceeded       = errors.New("image is too small for the message")
	// ErrDecodeTruncated is advisory: Extract returns it together with the
	// text read so far when no end-of-message marker was found.
	ErrDecodeTruncated = mark.ErrDecodeTruncated
	ErrEmptyMessage    = mark.ErrEmptyMessage
	ErrInvalidMessage  = mark.ErrInvalidMessage
)

// Embed hides message in a copy of src with the specified options.
// This is a convenience function that creates a Stegano instance and calls its Embed method.
func Embed(ctx context.Context, src image.Image, message string, opts ...Option) (image.Image, error) {
	s, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return s.Embed(ctx, src, message)
}

// Extract recovers a message hidden in src with the specified options.
// This is a convenience function that creates a Stegano instance and calls its Extract method.
func Extract(ctx context.Context, src image.Image, opts ...Option) (string, error) {
	s, err := New(opts...)
	if err != nil {
		return "", err
	}
	return s.Extract(ctx, src)
}

// Capacity returns the number of bits an image of the given bounds can carry:
// one per color channel.
func Capacity(rect image.Rectangle) int {
	return lsb.Capacity(rect)
}

type Stegano struct {
	markOpts []mark.Option
	logger   *log.Logger
}

// New initializes a steganography processing structure.
// By default no error correction is applied and nothing is logged.
func New(opts ...Option) (*Stegano, error) {
	s := new(Stegano)
	if err := s.init(opts...); err != nil {
		return nil, err
	}
	return s, nil
}

// Embed hides message in the least significant bits of a copy of src.
//
// Process:
//  1. Copies src into an 8-bit RGB pixel grid.
//  2. Encodes the message as UTF-8 bits, most significant bit first.
//  3. Appends the end-of-message marker and applies error correction, if any.
//  4. Overwrites the least significant bit of each channel, row by row,
//     in R, G, B order, until the payload is exhausted.
//  5. Builds the resulting image.
//
// Returns ErrCapacityExceeded if the payload does not fit, and
// ErrUnsupportedImageFormat if src does not have three opaque color channels.
// src itself is never modified.
func (s *Stegano) Embed(ctx context.Context, src image.Image, message string) (image.Image, error) {
	g, err := lsb.NewGrid(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedImageFormat, err)
	}
	payload, err := mark.NewPayload(message, s.markOpts...)
	if err != nil {
		return nil, err
	}
	s.logger.Printf("image size: width = %d, height = %d", g.Width(), g.Height())
	s.logger.Printf("message bits: %d, payload bits: %d, capacity: %d",
		len(message)*8, payload.Len(), g.Capacity())

	if err := lsb.Enable(g, payload.Len()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCapacityExceeded, err)
	}
	if err := lsb.Embed(ctx, g, payload); err != nil {
		return nil, err
	}
	return g.Build(), nil
}

// Extract recovers the message hidden in src.
//
// Every channel's least significant bit is read in the order Embed writes
// them, and the bytes up to the end-of-message marker are decoded.
// If no marker is found, the decoded text is returned with ErrDecodeTruncated;
// it may then be incomplete or not a message at all.
func (s *Stegano) Extract(ctx context.Context, src image.Image) (string, error) {
	g, err := lsb.NewGrid(src)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnsupportedImageFormat, err)
	}
	s.logger.Printf("image size: width = %d, height = %d", g.Width(), g.Height())

	bits, err := lsb.Extract(ctx, g)
	if err != nil {
		return "", err
	}
	msg, err := mark.ParsePayload(mark.FromBools(bits), s.markOpts...)
	if errors.Is(err, ErrDecodeTruncated) {
		s.logger.Printf("no end-of-message marker in %d bits", len(bits))
	}
	return msg, err
}

// MaxMessageBytes returns the largest UTF-8 message length, in bytes,
// that Embed accepts for an image of the given bounds.
func (s *Stegano) MaxMessageBytes(rect image.Rectangle) int {
	capacity := Capacity(rect)
	lo, hi := 0, capacity/8
	if mark.EncodedLen(0, s.markOpts...) > capacity {
		return 0
	}
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if mark.EncodedLen(mid, s.markOpts...) <= capacity {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

func (s *Stegano) init(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return err
		}
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard, "", 0)
	}
	return nil
}
