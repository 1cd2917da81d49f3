// Package selection turns pointer input into circular selections.
//
// A Tracker is a two-state machine (Idle, Selecting). PointerDown anchors a
// drag, PointerMove reshapes the circle while the button is held, and
// PointerUp or PointerLeave ends the drag. The resulting Selection is only
// read when a stamp is generated, never while a drag is in flight.
//
// Suggest proposes a starting selection from image content using smartcrop.
// DetectCircles finds round objects in the photo with a Hough transform so
// they can be selected exactly.
package selection
