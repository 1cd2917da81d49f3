package stamp

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/ironsheep/stamp-mcp/internal/imaging"
)

func newTestFraming(t *testing.T, w, h int) imaging.Framing {
	t.Helper()
	f, err := imaging.NewFraming(w, h, 400)
	if err != nil {
		t.Fatalf("NewFraming failed: %v", err)
	}
	return f
}

func TestSynthesize_InvalidState(t *testing.T) {
	src := createUniform(400, 400, gray)
	framing := newTestFraming(t, 400, 400)
	style := Style{EdgeDetection: true, Threshold: 128, FillColor: black}
	s := NewSynthesizer()

	tests := []struct {
		name    string
		src     image.Image
		framing imaging.Framing
		sel     imaging.Selection
	}{
		{"no image loaded", nil, imaging.Framing{}, imaging.FullSelection(400)},
		{"zero framing", src, imaging.Framing{}, imaging.FullSelection(400)},
		{"nil source", nil, framing, imaging.FullSelection(400)},
		{"zero radius", src, framing, imaging.Selection{CX: 200, CY: 200, R: 0}},
		{"negative radius", src, framing, imaging.Selection{CX: 200, CY: 200, R: -3}},
		{"NaN radius", src, framing, imaging.Selection{CX: 200, CY: 200, R: math.NaN()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := s.Synthesize(tt.src, tt.framing, tt.sel, style)
			if !errors.Is(err, ErrInvalidState) {
				t.Fatalf("error: got %v, want ErrInvalidState", err)
			}
			if out != nil {
				t.Error("expected no bitmap on failure")
			}
		})
	}
}

func TestSynthesize_BlackDisc(t *testing.T) {
	src := createUniform(400, 400, black)
	green := color.NRGBA{0, 255, 0, 255}
	s := NewSynthesizer()
	s.Rand = constRand(0.5) // zero noise

	out, err := s.Synthesize(src, newTestFraming(t, 400, 400), imaging.FullSelection(400),
		Style{EdgeDetection: true, Threshold: 128, FillColor: green})
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}

	if out.Bounds() != image.Rect(0, 0, 400, 400) {
		t.Fatalf("bounds: got %v, want 400x400", out.Bounds())
	}

	assertPixel(t, out, 200, 200, green)
	assertPixel(t, out, 0, 0, color.NRGBA{})
	assertPixel(t, out, 399, 399, color.NRGBA{})

	// An opaque pipeline without noise yields a pure two-tone result.
	for y := 0; y < 400; y++ {
		for x := 0; x < 400; x++ {
			c := out.NRGBAAt(x, y)
			if c != green && c != (color.NRGBA{}) {
				t.Fatalf("pixel (%d,%d): got %v, want fill or transparent", x, y, c)
			}
		}
	}
}

func TestSynthesize_PathologicalInputs(t *testing.T) {
	fill := color.NRGBA{12, 34, 56, 255}
	tests := []struct {
		name string
		src  color.NRGBA
		rand func() float64
	}{
		{"all white, max noise", white, constRand(0.99999)},
		{"all white, min noise", white, constRand(0)},
		{"all black, max noise", black, constRand(0.99999)},
		{"all black, min noise", black, constRand(0)},
		{"all black, random noise", black, nil},
		{"transparent, random noise", color.NRGBA{}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSynthesizer()
			s.Rand = tt.rand
			out, err := s.Synthesize(createUniform(300, 200, tt.src), newTestFraming(t, 300, 200),
				imaging.Selection{CX: 150, CY: 150, R: 60}, Style{EdgeDetection: true, Threshold: 255, FillColor: fill})
			if err != nil {
				t.Fatalf("Synthesize failed: %v", err)
			}
			for y := 0; y < 400; y++ {
				for x := 0; x < 400; x++ {
					c := out.NRGBAAt(x, y)
					if c.A == 0 && c != (color.NRGBA{}) {
						t.Fatalf("pixel (%d,%d): transparent pixel carries color %v", x, y, c)
					}
					if c != (color.NRGBA{}) && (c.R != fill.R || c.G != fill.G || c.B != fill.B) {
						t.Fatalf("pixel (%d,%d): got %v, want fill RGB", x, y, c)
					}
				}
			}
		})
	}
}

func TestSynthesize_MinNoiseHalvesAlpha(t *testing.T) {
	s := NewSynthesizer()
	s.Rand = constRand(0)

	out, err := s.Synthesize(createUniform(400, 400, black), newTestFraming(t, 400, 400),
		imaging.FullSelection(400), Style{Threshold: 128, FillColor: black})
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}

	// Alpha 255 - 128 survives into the stamp.
	assertPixel(t, out, 200, 200, color.NRGBA{0, 0, 0, 127})
}

func TestSynthesize_DoesNotMutateSource(t *testing.T) {
	src := createVerticalBoundary(400, 400, 200, black, white)
	before := cloneNRGBA(src)

	_, err := NewSynthesizer().Synthesize(src, newTestFraming(t, 400, 400), imaging.FullSelection(400),
		Style{EdgeDetection: true, Threshold: 128, FillColor: black})
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}

	for i := range src.Pix {
		if src.Pix[i] != before.Pix[i] {
			t.Fatalf("source modified at byte %d", i)
		}
	}
}

func TestSynthesize_FreshBitmapPerCall(t *testing.T) {
	s := NewSynthesizer()
	s.Rand = constRand(0.5)
	src := createUniform(400, 400, black)
	framing := newTestFraming(t, 400, 400)
	style := Style{Threshold: 128, FillColor: white}

	a, err := s.Synthesize(src, framing, imaging.FullSelection(400), style)
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}
	b, err := s.Synthesize(src, framing, imaging.FullSelection(400), style)
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}

	if &a.Pix[0] == &b.Pix[0] {
		t.Fatal("calls share a bitmap")
	}
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatalf("zero-noise results differ at byte %d", i)
		}
	}
}
