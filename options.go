package stegano

import (
	"errors"
	"log"

	"github.com/yyyoichi/stegano_lsb/mark"
)

type Option func(*Stegano) error

// WithoutECC embeds the message bits as they are. This is the default.
func WithoutECC() Option {
	return func(s *Stegano) error {
		s.markOpts = []mark.Option{mark.WithoutECC()}
		return nil
	}
}

// WithGolay protects the message with a Golay code, which corrects up to
// three flipped bits per 23 embedded bits. Every 12 payload bits take 23
// bits of the image. Embedding and extraction must use the same seed.
func WithGolay(seed int64) Option {
	return func(s *Stegano) error {
		s.markOpts = []mark.Option{mark.WithGolay(seed)}
		return nil
	}
}

// WithLogger reports image sizes and payload lengths to l.
func WithLogger(l *log.Logger) Option {
	return func(s *Stegano) error {
		if l == nil {
			return errors.New("nil logger")
		}
		s.logger = l
		return nil
	}
}
