package stamp

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/ironsheep/stamp-mcp/internal/imaging"
)

// ringInset is the distance between the canvas circle and the ring's center line.
const ringInset = 5

// Ring strokes a circle of radius D/2-5 centered on src, independent of the
// selection size.
func Ring(src *image.NRGBA, width float64, c color.Color) *image.NRGBA {
	b := src.Bounds()
	cx := float64(b.Min.X) + float64(b.Dx())/2
	cy := float64(b.Min.Y) + float64(b.Dy())/2
	r := float64(b.Dx())/2 - ringInset

	dc := gg.NewContextForImage(src)
	dc.SetColor(c)
	dc.SetLineWidth(width)
	dc.DrawCircle(cx, cy, r)
	dc.Stroke()

	return imaging.ToNRGBA(dc.Image())
}
