package selection

import (
	"fmt"
	"image"
	"math"
	"sort"

	"github.com/anthonynsimon/bild/parallel"
	"github.com/disintegration/imaging"

	stampimg "github.com/ironsheep/stamp-mcp/internal/imaging"
)

// Circle detection tuning. Distances are in analysis pixels.
const (
	analysisSide = 200 // the canvas is downscaled to this square before voting
	edgeStep     = 30  // gray difference to a right or lower neighbor that marks an edge
	minVoteRatio = 0.6 // share of the circumference that must vote for a center
	peakWindow   = 5   // a center must be the best score within this distance
	minRadius    = 4
)

// Candidate is a circle found in the photo, expressed as a canvas selection.
type Candidate struct {
	Selection  stampimg.Selection `json:"selection"`
	Confidence float64            `json:"confidence"`
}

// DetectCircles finds circular outlines in the framed photo with a Hough
// circle transform and returns them best first, so a round object (a coin, a
// plate, a badge) can become the stamp selection directly.
//
// minR and maxR bound the radius in canvas pixels; maxR <= 0 means half the
// canvas. Only circles lying entirely on the canvas are reported.
//
// # Algorithm
//
//  1. Render the framed canvas and downscale it to at most 200×200 gray.
//  2. Mark edge pixels whose right or lower neighbor differs by more than 30.
//  3. For each radius, every edge pixel votes once for each center on the
//     ring of that radius around it. Radii are processed in parallel.
//  4. A center scores the votes in its 3×3 neighborhood; it is kept if the
//     score reaches 60% of the circumference and no center within 5 pixels
//     scores higher.
//  5. Overlapping detections collapse into the best one.
//
// Confidence is score / circumference, capped at 1.
func DetectCircles(src image.Image, f stampimg.Framing, minR, maxR float64) ([]Candidate, error) {
	canvas, err := stampimg.Canvas(src, f)
	if err != nil {
		return nil, err
	}

	side := min(analysisSide, f.Canvas)
	scale := float64(f.Canvas) / float64(side)
	if maxR <= 0 {
		maxR = float64(f.Canvas) / 2
	}
	rMin := max(minRadius, int(math.Ceil(minR/scale)))
	rMax := min(side/2, int(maxR/scale))
	if rMin > rMax {
		return nil, fmt.Errorf("radius range %g-%g is empty on a %d px canvas", minR, maxR, f.Canvas)
	}

	gray := imaging.Grayscale(imaging.Resize(canvas, side, side, imaging.Box))
	edges := edgePoints(gray)
	if len(edges) == 0 {
		return nil, nil
	}

	found := make([][]peak, rMax-rMin+1)
	parallel.Line(len(found), func(start, end int) {
		acc := make([]int, side*side)
		score := make([]int, side*side)
		for i := start; i < end; i++ {
			clear(acc)
			found[i] = houghRadius(acc, score, edges, side, rMin+i)
		}
	})

	var peaks []peak
	for _, p := range found {
		peaks = append(peaks, p...)
	}
	sort.SliceStable(peaks, func(i, j int) bool {
		return peaks[i].score > peaks[j].score
	})

	var out []Candidate
	for _, p := range collapse(peaks) {
		out = append(out, Candidate{
			Selection: stampimg.Selection{
				CX: (float64(p.x) + 0.5) * scale,
				CY: (float64(p.y) + 0.5) * scale,
				R:  float64(p.r) * scale,
			},
			Confidence: math.Min(p.score, 1),
		})
	}
	return out, nil
}

// peak is a detection in analysis pixels; score is votes per circumference.
type peak struct {
	x, y, r int
	score   float64
}

// edgePoints returns the edge pixels of a gray image. Border pixels are never
// edges.
func edgePoints(gray *image.NRGBA) []image.Point {
	w, h := gray.Bounds().Dx(), gray.Bounds().Dy()
	at := func(x, y int) int {
		return int(gray.Pix[y*gray.Stride+x*4])
	}

	var pts []image.Point
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			c := at(x, y)
			if absInt(c-at(x+1, y)) > edgeStep || absInt(c-at(x, y+1)) > edgeStep {
				pts = append(pts, image.Pt(x, y))
			}
		}
	}
	return pts
}

// ringOffsets returns the distinct integer offsets on a circle of radius r.
func ringOffsets(r int) []image.Point {
	n := max(36, int(math.Ceil(2*math.Pi*float64(r))))
	seen := make(map[image.Point]bool, n)
	offs := make([]image.Point, 0, n)
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		p := image.Pt(int(math.Round(float64(r)*math.Cos(a))), int(math.Round(float64(r)*math.Sin(a))))
		if !seen[p] {
			seen[p] = true
			offs = append(offs, p)
		}
	}
	return offs
}

// houghRadius votes for centers of radius-r circles and returns the peaks.
// acc must be zeroed; acc and score are side×side scratch buffers.
func houghRadius(acc, score []int, edges []image.Point, side, r int) []peak {
	ring := ringOffsets(r)
	for _, e := range edges {
		for _, o := range ring {
			x, y := e.X+o.X, e.Y+o.Y
			if x >= 0 && x < side && y >= 0 && y < side {
				acc[y*side+x]++
			}
		}
	}

	lo, hi := max(1, r), min(side-2, side-r)
	if lo > hi {
		return nil
	}
	for y := lo; y <= hi; y++ {
		for x := lo; x <= hi; x++ {
			s := 0
			for dy := -1; dy <= 1; dy++ {
				row := (y + dy) * side
				s += acc[row+x-1] + acc[row+x] + acc[row+x+1]
			}
			score[y*side+x] = s
		}
	}

	circumference := 2 * math.Pi * float64(r)
	threshold := int(math.Ceil(minVoteRatio * circumference))

	var peaks []peak
	for y := lo; y <= hi; y++ {
		for x := lo; x <= hi; x++ {
			s := score[y*side+x]
			if s < threshold || !isPeak(score, side, x, y, lo, hi) {
				continue
			}
			peaks = append(peaks, peak{x: x, y: y, r: r, score: float64(s) / circumference})
		}
	}
	return peaks
}

func isPeak(score []int, side, x, y, lo, hi int) bool {
	s := score[y*side+x]
	for dy := -peakWindow; dy <= peakWindow; dy++ {
		for dx := -peakWindow; dx <= peakWindow; dx++ {
			nx, ny := x+dx, y+dy
			if nx < lo || nx > hi || ny < lo || ny > hi {
				continue
			}
			if score[ny*side+nx] > s {
				return false
			}
		}
	}
	return true
}

// collapse drops peaks whose center lies within the mean radius of a better
// peak. peaks must be sorted best first.
func collapse(peaks []peak) []peak {
	var kept []peak
	for _, p := range peaks {
		dup := false
		for _, k := range kept {
			d := math.Hypot(float64(p.x-k.x), float64(p.y-k.y))
			if d < float64(p.r+k.r)/2 {
				dup = true
				break
			}
		}
		if !dup {
			kept = append(kept, p)
		}
	}
	return kept
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
