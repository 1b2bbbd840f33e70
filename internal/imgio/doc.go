// Package imgio exposes the high-level entry points of the conversion
// pipeline: load an image file into a numeric array, save an array as
// an image, preview an array, and dump/load arrays in a compact raw
// container.
//
// All functions are synchronous and stateless; independent calls may
// run concurrently.
package imgio
