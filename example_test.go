package stegano_test

import (
	"context"
	"fmt"
	"image"
	"image/color"

	stegano "github.com/yyyoichi/stegano_lsb"
)

func Example_stegano() {
	// Create a simple gradient image (100x100 pixels)
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	for y := 0; y < img.Bounds().Dy(); y++ {
		for x := 0; x < img.Bounds().Dx(); x++ {
			// Create gradient effect: red increases with x, green increases with y, blue is a mix
			r := uint8(x * 255 / 100)
			g := uint8(y * 255 / 100)
			b := uint8((x + y) * 255 / 200)
			img.Set(x, y, color.RGBA{r, g, b, 255})
		}
	}

	// Initialize the processor with default settings
	s, err := stegano.New()
	if err != nil {
		fmt.Printf("Error creating stegano: %v\n", err)
		return
	}

	// Hide the message
	ctx := context.Background()
	markedImg, err := s.Embed(ctx, img, "Test-Message")
	if err != nil {
		fmt.Printf("Error embedding message: %v\n", err)
		return
	}

	// Recover the message
	message, err := s.Extract(ctx, markedImg)
	if err != nil {
		fmt.Printf("Error extracting message: %v\n", err)
		return
	}

	fmt.Println(message)
	fmt.Printf("Capacity: %d bytes\n", s.MaxMessageBytes(img.Bounds()))

	// Output:
	// Test-Message
	// Capacity: 3749 bytes
}
