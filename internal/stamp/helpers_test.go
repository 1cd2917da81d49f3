package stamp

import (
	"image"
	"image/color"
	"testing"
)

// createUniform creates an NRGBA image filled with a single color.
func createUniform(width, height int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// createVerticalBoundary creates an image whose columns left of split are
// left and the rest right.
func createVerticalBoundary(width, height, split int, left, right color.NRGBA) *image.NRGBA {
	img := createUniform(width, height, right)
	for y := 0; y < height; y++ {
		for x := 0; x < split; x++ {
			img.SetNRGBA(x, y, left)
		}
	}
	return img
}

// createHorizontalBoundary creates an image whose rows above split are top
// and the rest bottom.
func createHorizontalBoundary(width, height, split int, top, bottom color.NRGBA) *image.NRGBA {
	img := createUniform(width, height, bottom)
	for y := 0; y < split; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, top)
		}
	}
	return img
}

// constRand returns a random source that always yields v.
func constRand(v float64) func() float64 {
	return func() float64 { return v }
}

func assertPixel(t *testing.T, img *image.NRGBA, x, y int, want color.NRGBA) {
	t.Helper()
	if got := img.NRGBAAt(x, y); got != want {
		t.Errorf("pixel (%d,%d): got %v, want %v", x, y, got, want)
	}
}

var (
	white = color.NRGBA{255, 255, 255, 255}
	black = color.NRGBA{0, 0, 0, 255}
	gray  = color.NRGBA{128, 128, 128, 255}
)
