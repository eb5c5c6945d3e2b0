// Package imaging provides the raster operations of the document scanner.
//
// This package implements the pixel-level stages the pipeline is built from:
// frame normalisation, grayscale conversion, Gaussian smoothing, Canny edge
// detection, binary morphology, margin cropping, diagnostic overlay drawing
// and debug tiling. All operations work with standard Go image types and use
// a coordinate system where (0,0) is at the top-left corner, X increases
// rightward, and Y increases downward.
//
// # Frame Types
//
// Colour frames are *image.NRGBA (the type disintegration/imaging produces),
// single-channel frames are *image.Gray. Binary maps are *image.Gray holding
// only 0 and 255.
//
// # Ownership
//
// Every operation allocates its result. Inputs are never modified, except by
// DrawPoints, which draws onto the overlay it is given. Buffers are owned by
// the pipeline invocation that created them and are not pooled.
//
// # Thread Safety
//
// The FrameCache type is safe for concurrent use. All other functions are
// stateless and can be called concurrently on different images.
//
// # Border Handling
//
// Convolutions (blur, Sobel) replicate edge pixels. Morphology ignores pixels
// outside the image, so dilation and erosion never grow or shrink foreground
// because of the border alone.
package imaging
