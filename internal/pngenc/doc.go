// Package pngenc writes 8-bit RGBA PNG files with a selectable zlib level.
//
// The default level stores deflate blocks without compression and every
// scanline uses filter type None, producing a plain, unoptimized file that
// any PNG reader accepts.
package pngenc
