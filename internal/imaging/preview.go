package imaging

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

// Selection outline style used by Preview.
const (
	previewStrokeWidth = 2
	previewStrokeHex   = "#000000"
)

// DrawRegion draws the source rectangle (x, y, w, h), given in source pixels,
// scaled to fill the whole context. Fractional and out-of-bounds rectangles
// are allowed; parts outside the source leave the context untouched.
// The current clip of dc applies. src must have its origin at (0,0), which
// holds for everything ImageCache returns.
func DrawRegion(dc *gg.Context, src image.Image, x, y, w, h float64) {
	dc.Push()
	dc.Scale(float64(dc.Width())/w, float64(dc.Height())/h)
	dc.Translate(-x, -y)
	dc.DrawImage(src, 0, 0)
	dc.Pop()
}

// Canvas renders the framed working canvas: the photo mapped through f onto
// a white D×D square.
func Canvas(src image.Image, f Framing) (*image.NRGBA, error) {
	if src == nil || f.IsZero() {
		return nil, fmt.Errorf("no image loaded")
	}
	dc := gg.NewContext(f.Canvas, f.Canvas)
	dc.SetColor(color.White)
	dc.Clear()
	DrawRegion(dc, src, f.SX, f.SY, f.SW, f.SH)
	return imaging.Clone(dc.Image()), nil
}

// Preview renders the framed canvas with the selection circle outlined on
// top, which is what the user sees while dragging.
func Preview(src image.Image, f Framing, sel Selection) (*image.NRGBA, error) {
	canvas, err := Canvas(src, f)
	if err != nil {
		return nil, err
	}
	dc := gg.NewContextForImage(canvas)
	dc.SetHexColor(previewStrokeHex)
	dc.SetLineWidth(previewStrokeWidth)
	dc.DrawCircle(sel.CX, sel.CY, sel.R)
	dc.Stroke()
	return imaging.Clone(dc.Image()), nil
}
