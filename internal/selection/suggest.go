package selection

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/muesli/smartcrop"

	stampimg "github.com/ironsheep/stamp-mcp/internal/imaging"
)

// Suggest picks the most interesting square of src with smartcrop and returns
// the circle inscribed in it, in canvas space. src must have its origin at
// (0,0) and f must be its framing.
func Suggest(src image.Image, f stampimg.Framing) (stampimg.Selection, error) {
	if src == nil || f.IsZero() {
		return stampimg.Selection{}, fmt.Errorf("no image loaded")
	}

	b := src.Bounds()
	side := min(b.Dx(), b.Dy())
	analyzer := smartcrop.NewAnalyzer(&resizer{resampler: imaging.Box})
	crop, err := analyzer.FindBestCrop(src, side, side)
	if err != nil {
		return stampimg.Selection{}, fmt.Errorf("finding best crop: %w", err)
	}

	cx, cy := f.ToCanvas(float64(crop.Min.X+crop.Max.X)/2, float64(crop.Min.Y+crop.Max.Y)/2)
	r := float64(min(crop.Dx(), crop.Dy())) / 2 * float64(f.Canvas) / f.SW
	if r <= 0 {
		return stampimg.Selection{}, fmt.Errorf("no usable crop in %dx%d image", b.Dx(), b.Dy())
	}
	return stampimg.Selection{CX: cx, CY: cy, R: r}, nil
}

// resizer adapts disintegration/imaging to smartcrop's resizer interface.
type resizer struct {
	resampler imaging.ResampleFilter
}

func (r *resizer) Resize(img image.Image, width, height uint) image.Image {
	return imaging.Resize(img, int(width), int(height), r.resampler)
}
