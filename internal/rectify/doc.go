// Package rectify flattens a detected document into a fixed-size top-down
// image.
//
// A Rectifier maps the four ordered corners of a quad onto the target
// rectangle (0,0), (W,0), (0,H), (W,H) with a projective transform, resamples
// the frame through it, then crops a fixed margin from every side and scales
// the result back to W×H.
//
// The homography is solved exactly from the four correspondences (no least
// squares) using gonum. Quads with coincident or collinear corners, or whose
// corners do not form a convex outline in role order, are rejected with
// ErrDegenerateQuad before any solve is attempted.
package rectify
