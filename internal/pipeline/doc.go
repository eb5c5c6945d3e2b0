// Package pipeline runs the document scanner frame by frame.
//
// A Pipeline turns one 480×640 colour frame into a Result in four stages:
//
//  1. Preprocess: grayscale, Gaussian blur, Canny, dilate, erode
//  2. Extract: the largest four-vertex external contour above the area
//     threshold (detection.Extractor)
//  3. Order: canonical corner roles (detection.OrderCorners)
//  4. Rectify: perspective warp, margin crop and resize (rectify.Rectifier)
//
// The only branch is whether a quad was found. Without one the Result holds
// the diagnostic buffers but no Document.
//
// # Run Loop
//
// Run drives a Pipeline from a FrameSource into a DisplaySink. Each cycle
// reads a frame, normalises it to the working geometry, processes it, shows
// the tiled debug view and, when a document was found, the document itself.
//
// A single failed frame never stops the loop:
//   - ErrAcquisition: the source had no frame; the cycle is skipped
//   - ErrNoQuad: no candidate; only the debug view is shown
//   - rectify.ErrDegenerateQuad: the candidate could not be warped; only the
//     debug view is shown
//
// The loop ends when the source reports io.EOF, the context is cancelled,
// the sink returns ErrStopped, or MaxAcquisitionFailures reads fail in a row.
//
// # State
//
// Nothing is carried between frames. Every buffer is allocated by the cycle
// that uses it, so detection never depends on earlier frames.
package pipeline
