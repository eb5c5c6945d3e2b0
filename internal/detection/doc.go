// Package detection finds the document quadrilateral in a binary edge map.
//
// The package covers the two geometric stages between preprocessing and
// rectification: extracting the best four-vertex contour from the edge map,
// and labelling its corners in a canonical order.
//
// # Contour Extraction
//
// Contours are traced on a binary image (any non-zero pixel is foreground):
//
//  1. Border Following: Only the outer border of each outermost 8-connected
//     foreground region is traced. Regions nested inside another region's
//     hole are ignored, as are the hole borders themselves.
//  2. Compression: Straight horizontal, vertical and diagonal runs are
//     reduced to their end points.
//  3. Filtering: Contours enclosing an area of at most MinArea are dropped.
//  4. Simplification: Each survivor is approximated by a polygon within
//     EpsilonFraction of its perimeter (Douglas-Peucker).
//  5. Selection: The largest contour whose approximation has exactly four
//     vertices wins. Equal areas keep the first contour found.
//
// Contours are enumerated in raster order of their top-most, left-most pixel.
//
// # Corner Ordering
//
// OrderCorners labels four points using coordinate sums and differences:
//   - Top-left: minimum x + y
//   - Bottom-right: maximum x + y
//   - Top-right: minimum y - x
//   - Bottom-left: maximum y - x
//
// The labelling depends only on the coordinates, never on input order, so it
// is idempotent. It assumes the document is roughly aligned with the frame;
// quads rotated by more than about 45° get mislabelled.
//
// # Coordinate System
//
// All coordinates use the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
package detection
