package imaging

import (
	"fmt"
	"image"
	"strconv"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

// Grid style. Lines are translucent so the photo stays readable underneath.
const (
	gridLineHex  = "#FF000080"
	gridLabelHex = "#FFFFFF"
	gridLabelBg  = "#000000B4"
	gridMinStep  = 10
)

// GridOverlay draws a coordinate grid every spacing pixels over img, with a
// "x,y" label at each intersection when labels is set. Clients use it to read
// canvas coordinates off a preview before placing the pointer.
func GridOverlay(img image.Image, spacing int, labels bool) (*image.NRGBA, error) {
	if spacing < gridMinStep {
		return nil, fmt.Errorf("grid spacing must be at least %d, got %d", gridMinStep, spacing)
	}

	dc := gg.NewContextForImage(img)
	w, h := dc.Width(), dc.Height()

	dc.SetHexColor(gridLineHex)
	dc.SetLineWidth(1)
	for x := spacing; x < w; x += spacing {
		dc.DrawLine(float64(x)+0.5, 0, float64(x)+0.5, float64(h))
	}
	for y := spacing; y < h; y += spacing {
		dc.DrawLine(0, float64(y)+0.5, float64(w), float64(y)+0.5)
	}
	dc.Stroke()

	if labels {
		for y := spacing; y < h; y += spacing {
			for x := spacing; x < w; x += spacing {
				drawLabel(dc, float64(x+2), float64(y+2), strconv.Itoa(x)+","+strconv.Itoa(y))
			}
		}
	}

	return imaging.Clone(dc.Image()), nil
}

// drawLabel writes text with its top-left corner at (x, y) on a dark box,
// using the context's default bitmap face.
func drawLabel(dc *gg.Context, x, y float64, text string) {
	tw, th := dc.MeasureString(text)
	dc.SetHexColor(gridLabelBg)
	dc.DrawRectangle(x-1, y-1, tw+2, th+2)
	dc.Fill()
	dc.SetHexColor(gridLabelHex)
	dc.DrawStringAnchored(text, x, y, 0, 1)
}
