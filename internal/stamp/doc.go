// Package stamp turns a circular selection of a photo into a stencil-style
// stamp image.
//
// The pipeline runs five stages, each reading one bitmap and writing a fresh
// one:
//
//  1. CircularCrop: scale the selected disc to fill a white D×D canvas,
//     clipped to the inscribed circle.
//  2. EdgeMask: a Laplacian-style convolution blackens pixels on strong edges.
//  3. Ring: a dark outline just inside the canvas circle.
//  4. Noise: Irwin–Hall approximated Gaussian grain on every channel.
//  5. Recolor: pixels darker than the threshold take the fill color, the rest
//     become transparent.
//
// Every stage is exported so it can be exercised on its own; Synthesizer
// chains them. Bitmaps are *image.NRGBA with straight (non-premultiplied)
// alpha and origin (0,0).
//
// # Edge Kernel
//
// The default ShiftedLaplacian kernel samples the row below each pixel for all
// three kernel rows, which reduces to a horizontal [3 -6 3] filter one row
// down. This is how stamps have always looked, so it stays the default;
// CenteredLaplacian applies the textbook 3×3 Laplacian instead.
package stamp
