package stamp

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/ironsheep/stamp-mcp/internal/imaging"
)

// CircularCrop maps the selection back into source pixels and scales that
// square region to fill a white framing.Canvas bitmap, clipped to the circle
// inscribed in the canvas. Pixels outside the circle stay white.
func CircularCrop(src image.Image, framing imaging.Framing, sel imaging.Selection) *image.NRGBA {
	d := framing.Canvas
	r := float64(d) / 2

	dc := gg.NewContext(d, d)
	dc.SetColor(color.White)
	dc.Clear()

	dc.DrawCircle(r, r, r)
	dc.Clip()

	x, y, w, h := framing.SourceRect(sel)
	imaging.DrawRegion(dc, src, x, y, w, h)
	dc.ResetClip()

	return imaging.ToNRGBA(dc.Image())
}
