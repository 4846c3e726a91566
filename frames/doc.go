// Package frames implements the in-memory model of a monochrome sprite
// animation: a store of fixed-size boolean pixel grids, the frame selected
// for editing, and the hexadecimal row export.
//
// A Frame's pixels are addressed with the origin at the top-left corner.
// Every frame of a Store shares the store's dimensions, fixed when the store
// is created.
//
// Out-of-range pixel or frame access is a programming error and panics;
// callers taking coordinates from user input validate them first.
package frames
