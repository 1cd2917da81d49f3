package stamp

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/ironsheep/stamp-mcp/internal/imaging"
)

// ErrInvalidState is returned when synthesis is requested before a photo is
// loaded or with an empty selection.
var ErrInvalidState = errors.New("invalid state")

// Default ring outline settings.
const (
	DefaultStrokeWidth = 10
	DefaultStrokeHex   = "#111111"
)

// Synthesizer runs the stamp pipeline. It holds configuration only; every
// call to Synthesize allocates its own bitmaps, so one Synthesizer may be
// shared by concurrent callers as long as Rand is safe for concurrent use.
type Synthesizer struct {
	// StrokeWidth and StrokeColor style the ring outline.
	StrokeWidth float64
	StrokeColor color.Color

	// Rand returns uniform samples in [0, 1) for the noise stage. Nil means
	// the process-wide math/rand/v2 source.
	Rand func() float64
}

// NewSynthesizer returns a Synthesizer with the default ring outline and the
// process-wide random source.
func NewSynthesizer() *Synthesizer {
	return &Synthesizer{
		StrokeWidth: DefaultStrokeWidth,
		StrokeColor: color.NRGBA{R: 0x11, G: 0x11, B: 0x11, A: 0xff},
	}
}

// Synthesize produces the stamp for the selected disc of src.
//
// src must be the photo the framing was computed for. The result is a
// framing.Canvas square; it is the only bitmap that escapes the call.
func (s *Synthesizer) Synthesize(src image.Image, framing imaging.Framing, sel imaging.Selection, style Style) (*image.NRGBA, error) {
	if src == nil || framing.IsZero() {
		return nil, fmt.Errorf("%w: no image loaded", ErrInvalidState)
	}
	if !(sel.R > 0) || math.IsInf(sel.R, 0) {
		return nil, fmt.Errorf("%w: selection radius %v", ErrInvalidState, sel.R)
	}

	cropped := CircularCrop(src, framing, sel)
	edged := EdgeMask(cropped, style.EdgeDetection, style.Kernel)
	ringed := Ring(edged, s.StrokeWidth, s.StrokeColor)
	noised := Noise(ringed, s.random())
	return Recolor(noised, style.Threshold, style.FillColor), nil
}

func (s *Synthesizer) random() func() float64 {
	if s.Rand != nil {
		return s.Rand
	}
	return rand.Float64
}

// cloneNRGBA returns a copy of img that shares no memory with it.
func cloneNRGBA(img *image.NRGBA) *image.NRGBA {
	return &image.NRGBA{
		Pix:    slices.Clone(img.Pix),
		Stride: img.Stride,
		Rect:   img.Rect,
	}
}

// clampChannel rounds v the way a clamped byte array stores numbers: to the
// nearest integer, ties to even, then limited to [0, 255].
func clampChannel(v float64) uint8 {
	v = math.RoundToEven(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
