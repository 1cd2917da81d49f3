package imaging

import (
	"image/color"
	"testing"

	"github.com/fogleman/gg"
)

// assertNear fails if any channel of got is further than tol from want.
func assertNear(t *testing.T, name string, got, want color.NRGBA, tol int) {
	t.Helper()
	d := func(a, b uint8) int {
		if a > b {
			return int(a - b)
		}
		return int(b - a)
	}
	if d(got.R, want.R) > tol || d(got.G, want.G) > tol || d(got.B, want.B) > tol || d(got.A, want.A) > tol {
		t.Errorf("%s: got %v, want %v (±%d)", name, got, want, tol)
	}
}

func TestCanvas(t *testing.T) {
	src := createInMemoryImage(80, 40, color.RGBA{255, 0, 0, 255})
	f, err := NewFraming(80, 40, 400)
	if err != nil {
		t.Fatal(err)
	}

	canvas, err := Canvas(src, f)
	if err != nil {
		t.Fatalf("Canvas failed: %v", err)
	}
	if canvas.Bounds().Dx() != 400 || canvas.Bounds().Dy() != 400 {
		t.Fatalf("canvas size: got %v", canvas.Bounds())
	}

	red := color.NRGBA{255, 0, 0, 255}
	white := color.NRGBA{255, 255, 255, 255}

	// The photo covers canvas rows 100-300; the bands above and below stay white.
	assertNear(t, "center", canvas.NRGBAAt(200, 200), red, 0)
	assertNear(t, "left edge", canvas.NRGBAAt(2, 200), red, 0)
	assertNear(t, "top band", canvas.NRGBAAt(200, 20), white, 0)
	assertNear(t, "bottom band", canvas.NRGBAAt(200, 380), white, 0)
}

func TestCanvas_NoImage(t *testing.T) {
	if _, err := Canvas(nil, Framing{}); err == nil {
		t.Error("Canvas should fail without an image")
	}
	src := createInMemoryImage(10, 10, color.White)
	if _, err := Canvas(src, Framing{}); err == nil {
		t.Error("Canvas should fail with a zero framing")
	}
}

func TestPreview(t *testing.T) {
	src := createInMemoryImage(100, 100, color.RGBA{255, 0, 0, 255})
	f, err := NewFraming(100, 100, 400)
	if err != nil {
		t.Fatal(err)
	}

	img, err := Preview(src, f, Selection{CX: 200, CY: 200, R: 100})
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}

	red := color.NRGBA{255, 0, 0, 255}
	black := color.NRGBA{0, 0, 0, 255}

	// Outline pixels straddle the circle at x = 300.
	assertNear(t, "outline right", img.NRGBAAt(299, 200), black, 8)
	assertNear(t, "outline top", img.NRGBAAt(200, 100), black, 8)
	assertNear(t, "inside", img.NRGBAAt(200, 200), red, 0)
	assertNear(t, "outside", img.NRGBAAt(350, 350), red, 0)

	// The source is untouched.
	if src.NRGBAAt(50, 50) != red {
		t.Error("Preview modified its source")
	}
}

func TestDrawRegion(t *testing.T) {
	// Left half black, right half white.
	src := createInMemoryImage(100, 100, color.White)
	for y := 0; y < 100; y++ {
		for x := 0; x < 50; x++ {
			src.Set(x, y, color.Black)
		}
	}
	f, err := NewFraming(100, 100, 400)
	if err != nil {
		t.Fatal(err)
	}

	canvas, err := Canvas(src, f)
	if err != nil {
		t.Fatal(err)
	}
	assertNear(t, "left", canvas.NRGBAAt(50, 200), color.NRGBA{0, 0, 0, 255}, 0)
	assertNear(t, "right", canvas.NRGBAAt(350, 200), color.NRGBA{255, 255, 255, 255}, 0)

	// A selection inside the white half zooms into white only.
	x, y, w, h := f.SourceRect(Selection{CX: 350, CY: 200, R: 50})
	if x != 75 || y != 37.5 || w != 25 || h != 25 {
		t.Fatalf("SourceRect: got (%v,%v,%v,%v)", x, y, w, h)
	}
	dc := gg.NewContext(40, 40)
	DrawRegion(dc, src, x, y, w, h)
	out := ToNRGBA(dc.Image())
	for _, p := range [][2]int{{0, 0}, {20, 20}, {39, 39}} {
		assertNear(t, "zoomed", out.NRGBAAt(p[0], p[1]), color.NRGBA{255, 255, 255, 255}, 0)
	}
}

func TestGridOverlay(t *testing.T) {
	img := createInMemoryImage(100, 100, color.Black)

	result, err := GridOverlay(img, 25, false)
	if err != nil {
		t.Fatalf("GridOverlay failed: %v", err)
	}
	if result.Bounds().Dx() != 100 || result.Bounds().Dy() != 100 {
		t.Errorf("dimensions: got %v, want 100x100", result.Bounds())
	}

	line := result.NRGBAAt(25, 50)
	if line.R < 64 || line.G != 0 || line.B != 0 {
		t.Errorf("grid line at (25,50): got %v, want reddish", line)
	}
	assertNear(t, "between lines", result.NRGBAAt(15, 15), color.NRGBA{0, 0, 0, 255}, 0)

	if img.NRGBAAt(25, 50) != (color.NRGBA{0, 0, 0, 255}) {
		t.Error("GridOverlay modified its source")
	}
}

func TestGridOverlay_Labels(t *testing.T) {
	img := createInMemoryImage(100, 100, color.Black)

	plain, err := GridOverlay(img, 50, false)
	if err != nil {
		t.Fatal(err)
	}
	labeled, err := GridOverlay(img, 50, true)
	if err != nil {
		t.Fatal(err)
	}

	// Some pixel in the label area right of the intersection must differ.
	differs := false
	for y := 52; y < 66 && !differs; y++ {
		for x := 52; x < 90; x++ {
			if plain.NRGBAAt(x, y) != labeled.NRGBAAt(x, y) {
				differs = true
				break
			}
		}
	}
	if !differs {
		t.Error("labels were not drawn")
	}
}

func TestGridOverlay_InvalidSpacing(t *testing.T) {
	img := createInMemoryImage(10, 10, color.Black)
	for _, spacing := range []int{0, -5, 9} {
		if _, err := GridOverlay(img, spacing, false); err == nil {
			t.Errorf("spacing %d should fail", spacing)
		}
	}
}
