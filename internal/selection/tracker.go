package selection

import (
	"fmt"
	"math"
	"sync"

	"github.com/ironsheep/stamp-mcp/internal/imaging"
)

// State is the phase of the pointer state machine.
type State int

const (
	// Idle means no drag is in progress.
	Idle State = iota
	// Selecting means the pointer is down and moves reshape the selection.
	Selecting
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Selecting:
		return "selecting"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// FromDrag derives a circle from a drag between two canvas points.
//
// The center is the midpoint. The radius is the horizontal half-span, except
// when the drag is wider than it is tall, where the vertical half-span is
// used instead.
func FromDrag(x1, y1, x2, y2 float64) imaging.Selection {
	cx, cy := (x1+x2)/2, (y1+y2)/2
	r := math.Abs(cx - x1)
	if math.Abs(x2-x1) > math.Abs(y2-y1) {
		r = math.Abs(cy - y1)
	}
	return imaging.Selection{CX: cx, CY: cy, R: r}
}

// Tracker follows pointer events on a canvas×canvas square. It is safe for
// concurrent use.
type Tracker struct {
	mu     sync.Mutex
	canvas float64
	state  State
	x1, y1 float64
	sel    imaging.Selection
}

// NewTracker returns an idle tracker whose selection covers the whole canvas.
func NewTracker(canvas int) *Tracker {
	t := &Tracker{canvas: float64(canvas)}
	t.sel = imaging.FullSelection(canvas)
	return t
}

// Reset returns to Idle and restores the full-canvas selection. It is called
// whenever a new photo loads.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = Idle
	t.sel = imaging.FullSelection(int(t.canvas))
}

// PointerDown anchors a drag at (x, y) and enters Selecting. The selection
// itself does not change until the pointer moves.
func (t *Tracker) PointerDown(x, y float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.x1, t.y1 = t.clamp(x), t.clamp(y)
	t.state = Selecting
}

// PointerMove reshapes the selection from the anchor to (x, y). It returns the
// new selection and true while Selecting; in Idle it is ignored.
func (t *Tracker) PointerMove(x, y float64) (imaging.Selection, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != Selecting {
		return t.sel, false
	}
	t.sel = FromDrag(t.x1, t.y1, t.clamp(x), t.clamp(y))
	return t.sel, true
}

// PointerUp ends the drag.
func (t *Tracker) PointerUp() {
	t.mu.Lock()
	t.state = Idle
	t.mu.Unlock()
}

// PointerLeave ends the drag when the pointer exits the canvas.
func (t *Tracker) PointerLeave() {
	t.PointerUp()
}

// Set replaces the selection and ends any drag.
func (t *Tracker) Set(sel imaging.Selection) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = Idle
	t.sel = sel
}

// Selection returns the current selection.
func (t *Tracker) Selection() imaging.Selection {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sel
}

// State returns the current state.
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

func (t *Tracker) clamp(v float64) float64 {
	return math.Max(0, math.Min(v, t.canvas))
}
