// Package imaging provides the image plumbing around the stamp pipeline.
//
// It loads and caches source photos, computes the framing that maps a photo
// of arbitrary aspect ratio onto the fixed square working canvas, carries the
// circular selection geometry, parses colors, renders the selection preview
// and writes finished stamps to disk.
//
// # Coordinate System
//
// Two coordinate spaces are in play:
//   - Source space: pixels of the loaded photo, (0,0) at its top-left corner.
//   - Canvas space: the D×D working square (D is typically 400). Selections
//     are expressed in canvas space.
//
// A Framing converts between them. It is computed once when a photo loads and
// never changes afterwards; only the Selection moves while the user drags.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. All other functions are
// stateless and return freshly allocated images; they never modify their
// inputs.
//
// # Color Representation
//
// Colors travel as "#RRGGBB" hex strings at the edges of the system and as
// color.NRGBA (non-premultiplied, 8 bits per channel) inside it.
//
// # Error Handling
//
// Decoding problems wrap ErrDecodeFailure. Export without a filename returns
// ErrExportAborted, which callers treat as a silent no-op rather than a
// failure.
package imaging
