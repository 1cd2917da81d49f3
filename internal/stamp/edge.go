package stamp

import (
	"image"

	"github.com/anthonynsimon/bild/convolution"
)

// edgeLimit is the per-channel response above which a pixel counts as an edge.
const edgeLimit = 100

// EdgeMask convolves the red, green and blue channels of src with the chosen
// Laplacian kernel and, when enabled, blackens every interior pixel whose
// response exceeds edgeLimit in any channel. Alpha is never changed, nor is
// the one-pixel border. When disabled the convolution still runs but the
// output equals the input.
func EdgeMask(src *image.NRGBA, enabled bool, kernel EdgeKernel) *image.NRGBA {
	out := cloneNRGBA(src)

	// The response is computed on the raw stored bytes. Handing bild the
	// NRGBA buffer under an RGBA header keeps it from premultiplying.
	raw := &image.RGBA{Pix: src.Pix, Stride: src.Stride, Rect: src.Rect}
	resp := convolution.Convolve(raw, edgeKernel(kernel), &convolution.Options{KeepAlpha: true})

	if !enabled {
		return out
	}

	b := src.Bounds()
	for y := b.Min.Y + 1; y < b.Max.Y-1; y++ {
		for x := b.Min.X + 1; x < b.Max.X-1; x++ {
			// bild clamps responses to [0,255]; that keeps "> edgeLimit" intact.
			i := resp.PixOffset(x, y)
			if resp.Pix[i] > edgeLimit || resp.Pix[i+1] > edgeLimit || resp.Pix[i+2] > edgeLimit {
				j := out.PixOffset(x, y)
				out.Pix[j], out.Pix[j+1], out.Pix[j+2] = 0, 0, 0
			}
		}
	}
	return out
}

// edgeKernel returns the 3×3 convolution matrix for k.
//
// Summing the Laplacian's rows collapses the shifted variant into a single
// bottom row of column sums.
func edgeKernel(k EdgeKernel) *convolution.Kernel {
	m := convolution.NewKernel(3, 3)
	switch k {
	case CenteredLaplacian:
		copy(m.Matrix, []float64{
			1, 1, 1,
			1, -8, 1,
			1, 1, 1,
		})
	default:
		copy(m.Matrix, []float64{
			0, 0, 0,
			0, 0, 0,
			3, -6, 3,
		})
	}
	return m
}
