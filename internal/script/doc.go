// Package script executes the line-oriented image command language.
//
// Each line is a command name followed by whitespace-separated arguments, for
// example:
//
//	load images/koala.ppm koala
//	brighten 10 koala koala-bright
//	blur koala koala-blur split 50
//	partial sepia koala mask koala-masked
//	save out/koala-bright.png koala-bright
//
// Images are addressed by name through a workspace.Store. Blank lines and lines
// starting with '#' are ignored. Run stops at the first failing line and reports
// its line number. Use Commands to list the grammar.
package script
