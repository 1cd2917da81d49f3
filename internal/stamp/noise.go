package stamp

import "image"

// Irwin–Hall parameters: the sum of noiseTerms uniform samples is centered and
// scaled to roughly [-128, 128].
const (
	noiseTerms = 16
	noiseScale = 16
)

// noiseSample draws one approximately Gaussian sample.
func noiseSample(rnd func() float64) float64 {
	var sum float64
	for i := 0; i < noiseTerms; i++ {
		sum += rnd()
	}
	return (sum - noiseTerms/2) * noiseScale
}

// Noise adds grain: each pixel gets one sample, added to all four channels
// (alpha included) with clamping. Pixels are visited in row-major order so a
// seeded rnd reproduces the same image.
func Noise(src *image.NRGBA, rnd func() float64) *image.NRGBA {
	out := cloneNRGBA(src)
	b := out.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := out.PixOffset(b.Min.X, y)
		for x := b.Min.X; x < b.Max.X; x, i = x+1, i+4 {
			n := noiseSample(rnd)
			p := out.Pix[i : i+4 : i+4]
			for c := range p {
				p[c] = clampChannel(float64(p[c]) + n)
			}
		}
	}
	return out
}
