package stamp

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/parallel"

	"github.com/ironsheep/stamp-mcp/internal/imaging"
)

// Recolor builds the two-tone stencil. Pixels whose luminance is below
// threshold take fill's RGB and keep their own alpha; all others are fully
// transparent.
func Recolor(src *image.NRGBA, threshold int, fill color.NRGBA) *image.NRGBA {
	b := src.Bounds()
	out := image.NewNRGBA(b)
	t := float64(threshold)

	parallel.Line(b.Dy(), func(start, end int) {
		for y := b.Min.Y + start; y < b.Min.Y+end; y++ {
			i := src.PixOffset(b.Min.X, y)
			j := out.PixOffset(b.Min.X, y)
			for x := b.Min.X; x < b.Max.X; x, i, j = x+1, i+4, j+4 {
				s := src.Pix[i : i+4 : i+4]
				if imaging.Luminance(s[0], s[1], s[2]) < t {
					d := out.Pix[j : j+4 : j+4]
					d[0], d[1], d[2], d[3] = fill.R, fill.G, fill.B, s[3]
				}
			}
		}
	})
	return out
}
