package imageio

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

// TestCopyPath returns the path of the working copy made for path:
// "photo.png" becomes "photo_testing.png".
func TestCopyPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_testing" + ext
}

// WriteTestCopy copies the file at path byte for byte to TestCopyPath(path)
// and returns the new path.
func WriteTestCopy(path string) (string, error) {
	src, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst := TestCopyPath(path)
	f, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	if err := copyClose(f, src); err != nil {
		return "", err
	}
	return dst, nil
}

func copyClose(dst io.WriteCloser, src io.Reader) (err error) {
	defer func() {
		e := dst.Close()
		err = combineErrors(err, e)
	}()
	_, err = io.Copy(dst, src)
	return err
}

// FileSize returns the size in bytes of the file at path.
func FileSize(path string) (int64, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return fi.Size(), nil
}

// SizeComparison holds the byte sizes of two files.
type SizeComparison struct {
	Original, Result         string
	OriginalSize, ResultSize int64
}

func (c SizeComparison) Same() bool {
	return c.OriginalSize == c.ResultSize
}

// CompareSizes stats both files.
func CompareSizes(original, result string) (SizeComparison, error) {
	c := SizeComparison{Original: original, Result: result}
	var errs error
	var err error
	if c.OriginalSize, err = FileSize(original); err != nil {
		errs = combineErrors(errs, err)
	}
	if c.ResultSize, err = FileSize(result); err != nil {
		errs = combineErrors(errs, err)
	}
	return c, errs
}
