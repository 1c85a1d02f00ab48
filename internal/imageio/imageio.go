// Package imageio loads and stores the image files a message is hidden in.
package imageio

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/jpeg"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/image/bmp"
)

var (
	// ErrLossyFormat is returned when saving to a format that would not
	// preserve least significant bits.
	ErrLossyFormat   = errors.New("lossy image format cannot carry a hidden message")
	ErrUnknownFormat = errors.New("unknown image format")
)

// Load decodes the image file at path.
// The format name is the one registered with the image package.
func Load(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return img, format, nil
}

type encodeFunc func(io.Writer, image.Image) error

func encoderFor(ext string) (encodeFunc, error) {
	switch strings.ToLower(ext) {
	case ".png":
		return png.Encode, nil
	case ".bmp":
		return bmp.Encode, nil
	case ".jpg", ".jpeg", ".gif":
		return nil, fmt.Errorf("%w: %s", ErrLossyFormat, ext)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
}

// Encode writes img to w in the format named by ext (".png" or ".bmp").
func Encode(w io.Writer, img image.Image, ext string) error {
	enc, err := encoderFor(ext)
	if err != nil {
		return err
	}
	return enc(w, img)
}

// Save writes img to path. The format follows the file extension.
// Nothing is created when the extension names no lossless format.
func Save(path string, img image.Image) error {
	ext := filepath.Ext(path)
	if _, err := encoderFor(ext); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	return writeClose(f, img, ext)
}

func writeClose(f io.WriteCloser, img image.Image, ext string) (err error) {
	defer func() {
		e := f.Close()
		err = combineErrors(err, e)
	}()
	return Encode(f, img, ext)
}

func combineErrors(errs ...error) (err error) {
	for _, e := range errs {
		switch {
		case e == nil:
			// ignore
		case err == nil:
			err = e
		default:
			err = multierror.Append(err, e)
		}
	}
	return err
}
