package imaging

import "fmt"

// Framing maps a source photo onto the square D×D working canvas.
//
// The longer side of the photo fills the canvas; the shorter side is centered
// and the excess is left blank. (SX, SY) is the top-left of the source
// rectangle that covers the whole canvas and (SW, SH) its size, all in source
// pixels. SX or SY is negative when the photo does not cover that axis.
//
// The zero Framing means no photo has been loaded.
type Framing struct {
	SX     float64 `json:"sx"`
	SY     float64 `json:"sy"`
	SW     float64 `json:"sw"`
	SH     float64 `json:"sh"`
	Canvas int     `json:"canvas"`
}

// NewFraming computes the framing for a width×height photo on a canvas×canvas
// square.
func NewFraming(width, height, canvas int) (Framing, error) {
	if width <= 0 || height <= 0 {
		return Framing{}, fmt.Errorf("invalid image size %dx%d", width, height)
	}
	if canvas <= 0 {
		return Framing{}, fmt.Errorf("invalid canvas size %d", canvas)
	}

	w, h := float64(width), float64(height)
	d := float64(canvas)

	var f Framing
	if width > height {
		f.SW, f.SH = w, w*d/d
		f.SX, f.SY = 0, h/2-f.SH/2
	} else {
		f.SW, f.SH = h*d/d, h
		f.SX, f.SY = w/2-f.SW/2, 0
	}
	f.Canvas = canvas
	return f, nil
}

// IsZero reports whether f is the zero Framing.
func (f Framing) IsZero() bool {
	return f == Framing{}
}

// SourceRect returns the source-space rectangle (x, y, w, h) that a selection
// covers. Scaling it to the full canvas yields the cropped stamp disc.
func (f Framing) SourceRect(sel Selection) (x, y, w, h float64) {
	d := float64(f.Canvas)
	r := d / 2
	x = f.SX + (sel.CX-sel.R)*f.SW/d
	y = f.SY + (sel.CY-sel.R)*f.SH/d
	w = f.SW * sel.R / r
	h = f.SH * sel.R / r
	return x, y, w, h
}

// Selection is a circle in canvas space.
type Selection struct {
	CX float64 `json:"cx"`
	CY float64 `json:"cy"`
	R  float64 `json:"r"`
}

// FullSelection is the circle inscribed in the whole canvas, the selection
// in effect right after a photo loads.
func FullSelection(canvas int) Selection {
	half := float64(canvas) / 2
	return Selection{CX: half, CY: half, R: half}
}

// ToCanvas converts a point in source pixels to canvas space.
func (f Framing) ToCanvas(x, y float64) (float64, float64) {
	d := float64(f.Canvas)
	return (x - f.SX) * d / f.SW, (y - f.SY) * d / f.SH
}
