package stamp

import (
	"fmt"
	"image/color"

	"github.com/ironsheep/stamp-mcp/internal/imaging"
)

// ThresholdScale converts a threshold step from the style controls into a
// luminance cut.
const ThresholdScale = 16

// EdgeKernel selects the convolution used by EdgeMask.
type EdgeKernel int

const (
	// ShiftedLaplacian samples row y+1 for every kernel row.
	ShiftedLaplacian EdgeKernel = iota
	// CenteredLaplacian is the standard 3×3 Laplacian centered on the pixel.
	CenteredLaplacian
)

func (k EdgeKernel) String() string {
	switch k {
	case ShiftedLaplacian:
		return "shifted"
	case CenteredLaplacian:
		return "centered"
	}
	return fmt.Sprintf("EdgeKernel(%d)", int(k))
}

// Style holds the user-facing knobs of a stamp.
type Style struct {
	EdgeDetection bool
	// Threshold is the luminance cut; pixels strictly darker take FillColor.
	Threshold int
	FillColor color.NRGBA
	Kernel    EdgeKernel
}

// NewStyle builds a Style from raw control values: step is scaled by
// ThresholdScale and fillHex must be "#RRGGBB".
func NewStyle(edgeDetection bool, step int, fillHex string) (Style, error) {
	if step < 0 {
		return Style{}, fmt.Errorf("threshold step must not be negative, got %d", step)
	}
	fill, err := imaging.ParseHexColor(fillHex)
	if err != nil {
		return Style{}, err
	}
	return Style{
		EdgeDetection: edgeDetection,
		Threshold:     step * ThresholdScale,
		FillColor:     fill,
	}, nil
}
