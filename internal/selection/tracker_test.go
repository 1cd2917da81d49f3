package selection

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ironsheep/stamp-mcp/internal/imaging"
)

func TestFromDrag(t *testing.T) {
	tests := []struct {
		name           string
		x1, y1, x2, y2 float64
		want           imaging.Selection
	}{
		{"taller than wide uses horizontal half-span", 100, 100, 100, 160, imaging.Selection{CX: 100, CY: 130, R: 0}},
		{"wider than tall uses vertical half-span", 100, 100, 160, 130, imaging.Selection{CX: 130, CY: 115, R: 15}},
		{"square drag", 0, 0, 40, 40, imaging.Selection{CX: 20, CY: 20, R: 20}},
		{"reverse direction", 160, 130, 100, 100, imaging.Selection{CX: 130, CY: 115, R: 15}},
		{"no movement", 50, 50, 50, 50, imaging.Selection{CX: 50, CY: 50, R: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromDrag(tt.x1, tt.y1, tt.x2, tt.y2))
		})
	}
}

func TestTracker_Initial(t *testing.T) {
	tr := NewTracker(400)

	assert.Equal(t, Idle, tr.State())
	assert.Equal(t, imaging.Selection{CX: 200, CY: 200, R: 200}, tr.Selection())
}

func TestTracker_DragCycle(t *testing.T) {
	tr := NewTracker(400)

	tr.PointerDown(100, 100)
	assert.Equal(t, Selecting, tr.State())
	assert.Equal(t, imaging.FullSelection(400), tr.Selection(), "down alone must not move the selection")

	sel, ok := tr.PointerMove(140, 120)
	assert.True(t, ok)
	assert.Equal(t, imaging.Selection{CX: 120, CY: 110, R: 10}, sel)

	sel, ok = tr.PointerMove(160, 130)
	assert.True(t, ok)
	assert.Equal(t, imaging.Selection{CX: 130, CY: 115, R: 15}, sel)

	tr.PointerUp()
	assert.Equal(t, Idle, tr.State())

	_, ok = tr.PointerMove(300, 300)
	assert.False(t, ok, "moves while idle are ignored")
	assert.Equal(t, imaging.Selection{CX: 130, CY: 115, R: 15}, tr.Selection())
}

func TestTracker_LeaveEndsDrag(t *testing.T) {
	tr := NewTracker(400)
	tr.PointerDown(10, 10)
	tr.PointerLeave()

	assert.Equal(t, Idle, tr.State())
	_, ok := tr.PointerMove(50, 50)
	assert.False(t, ok)
}

func TestTracker_ClampsToCanvas(t *testing.T) {
	tr := NewTracker(400)
	tr.PointerDown(-50, 200)

	sel, ok := tr.PointerMove(500, 260)
	assert.True(t, ok)
	// Anchor clamps to (0,200), pointer to (400,260).
	assert.Equal(t, imaging.Selection{CX: 200, CY: 230, R: 30}, sel)
}

func TestTracker_ResetAndSet(t *testing.T) {
	tr := NewTracker(400)
	tr.PointerDown(0, 0)
	tr.PointerMove(100, 100)

	tr.Reset()
	assert.Equal(t, Idle, tr.State())
	assert.Equal(t, imaging.FullSelection(400), tr.Selection())

	tr.PointerDown(0, 0)
	tr.Set(imaging.Selection{CX: 1, CY: 2, R: 3})
	assert.Equal(t, Idle, tr.State())
	assert.Equal(t, imaging.Selection{CX: 1, CY: 2, R: 3}, tr.Selection())
}

func TestTracker_ConcurrentAccess(t *testing.T) {
	tr := NewTracker(400)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				tr.PointerDown(float64(i), float64(j))
				tr.PointerMove(float64(i+j), float64(j))
				_ = tr.Selection()
				tr.PointerUp()
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, Idle, tr.State())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "selecting", Selecting.String())
	assert.Equal(t, "State(9)", State(9).String())
}
