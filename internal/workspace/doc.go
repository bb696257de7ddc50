// Package workspace holds the named grids a session works on.
//
// Commands refer to images by name: "load photo.ppm koala" registers a grid under
// "koala", and every later command reads its inputs from the store and writes its
// result back under a new name. The engine itself never sees names; it only
// consumes and produces grids.
package workspace
