// Package pick implements point picking on a point cloud.
//
// A pick starts from a pointer position on the canvas. The position is
// converted into normalized device coordinates by Viewport, turned into a
// world space Ray through the Camera, and tested against every point of the
// cloud by a Selector. Gesture tells clicks from camera drags and Feedback
// reflects the result on a marker and a coordinate text.
//
// Nothing in this package blocks, allocates per point or keeps references to
// the inputs after returning.
package pick
