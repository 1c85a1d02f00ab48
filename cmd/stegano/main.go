package main

import (
	"errors"
	"fmt"
	"image"
	"io"
	"log"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/urfave/cli/v2"

	stegano "github.com/yyyoichi/stegano_lsb"
	"github.com/yyyoichi/stegano_lsb/internal/imageio"
	"github.com/yyyoichi/stegano_lsb/internal/quality"
)

const defaultOutput = "output.png"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Name = "stegano"
	app.Usage = "Hide a text message in the least significant bits of an image"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "message",
			Aliases: []string{"m"},
			Usage:   "message to put in the image",
		},
		&cli.StringFlag{
			Name:      "original-image",
			Aliases:   []string{"f"},
			Required:  true,
			TakesFile: true,
			Usage:     "original image to put a message in, or to compare with the result image",
		},
		&cli.StringFlag{
			Name:      "result-image",
			Aliases:   []string{"o"},
			TakesFile: true,
			Usage:     "image to compare with the original and extract the hidden message from",
		},
		&cli.BoolFlag{
			Name:    "put-message-mode",
			Aliases: []string{"s"},
			Usage:   "insert the message in the image",
		},
		&cli.BoolFlag{
			Name:    "reverse-mode",
			Aliases: []string{"r"},
			Usage:   "extract the message of the result image, comparing it with the original",
		},
		&cli.StringFlag{
			Name:      "output",
			EnvVars:   []string{"STEGANO_OUTPUT"},
			Value:     defaultOutput,
			TakesFile: true,
			Usage:     "path of the image written in put-message mode (.png or .bmp)",
		},
		&cli.Int64Flag{
			Name:    "golay-seed",
			EnvVars: []string{"STEGANO_GOLAY_SEED"},
			Usage:   "protect the message with a Golay code shuffled by `SEED`",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Action = func(c *cli.Context) error {
		if err := validate(c); err != nil {
			return cli.Exit(err, 1)
		}

		logger := log.New(io.Discard, "", 0)
		if c.Bool("verbose") {
			logger.SetOutput(c.App.ErrWriter)
		}
		opts := []stegano.Option{stegano.WithLogger(logger)}
		if c.IsSet("golay-seed") {
			opts = append(opts, stegano.WithGolay(c.Int64("golay-seed")))
		}
		s, err := stegano.New(opts...)
		if err != nil {
			return cli.Exit(err, 1)
		}

		if c.Bool("put-message-mode") {
			err = putMessage(c, s)
		} else {
			err = reverseMessage(c, s)
		}
		if err != nil {
			return cli.Exit(err, 1)
		}
		return nil
	}

	return app
}

func validate(c *cli.Context) error {
	var err error
	put, reverse := c.Bool("put-message-mode"), c.Bool("reverse-mode")
	switch {
	case put && reverse:
		err = multierror.Append(err, errors.New("--put-message-mode and --reverse-mode are mutually exclusive"))
	case !put && !reverse:
		err = multierror.Append(err, errors.New("one of --put-message-mode or --reverse-mode is required"))
	}
	if put && c.String("message") == "" {
		err = multierror.Append(err, errors.New("insert a message after -m to be used in the steganography process"))
	}
	if reverse && c.String("result-image") == "" {
		err = multierror.Append(err, errors.New("insert the result image of the steganography process after -o to extract the message"))
	}
	return err
}

func putMessage(c *cli.Context, s *stegano.Stegano) error {
	var (
		w        = c.App.Writer
		message  = c.String("message")
		original = c.String("original-image")
		output   = c.String("output")
	)
	fmt.Fprintf(w, "Number of bits in the message: %d\n", len(message)*8)

	src, _, err := imageio.Load(original)
	if err != nil {
		return err
	}
	testCopy, err := imageio.WriteTestCopy(original)
	if err != nil {
		return err
	}
	b := src.Bounds()
	fmt.Fprintf(w, "Image created for test %s size: Width = %d, Height = %d\n", testCopy, b.Dx(), b.Dy())
	fmt.Fprintf(w, "Capacity: %d bits, up to %d message bytes\n", stegano.Capacity(b), s.MaxMessageBytes(b))

	marked, err := s.Embed(c.Context, src, message)
	if err != nil {
		return err
	}
	if err := imageio.Save(output, marked); err != nil {
		return err
	}
	fmt.Fprintf(w, "Steganography process done with success! Result written to %s\n", output)
	return nil
}

func reverseMessage(c *cli.Context, s *stegano.Stegano) error {
	var (
		w        = c.App.Writer
		original = c.String("original-image")
		result   = c.String("result-image")
	)
	sizes, err := imageio.CompareSizes(original, result)
	if err != nil {
		return err
	}
	resultImg, _, err := imageio.Load(result)
	if err != nil {
		return err
	}
	// The original only feeds the report. When it cannot be compared,
	// the size comparison is printed alone and the message is still read.
	report, err := compareImages(original, resultImg)
	if err != nil {
		fmt.Fprintf(c.App.ErrWriter, "warning: cannot compare pixels: %v\n", err)
		printReport(w, sizes, nil)
	} else {
		printReport(w, sizes, &report)
	}

	message, err := s.Extract(c.Context, resultImg)
	if errors.Is(err, stegano.ErrDecodeTruncated) {
		fmt.Fprintf(c.App.ErrWriter, "warning: %v\n", err)
	} else if err != nil {
		return err
	}
	fmt.Fprintln(w, message)
	return nil
}

func compareImages(original string, result image.Image) (quality.Report, error) {
	img, _, err := imageio.Load(original)
	if err != nil {
		return quality.Report{}, err
	}
	report, err := quality.Compare(img, result)
	if err != nil && !errors.Is(err, quality.ErrDimensionMismatch) {
		return quality.Report{}, err
	}
	return report, nil
}
