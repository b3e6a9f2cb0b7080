// Package raster decodes input images and converts them to 8-bit RGBA.
//
// Decode sniffs the container with mimetype, decodes through the image
// registry (PNG, JPEG, GIF plus BMP, TIFF and WebP from x/image), and reports
// the channel-layout mode. For PNG the mode comes from IHDR so RGB and RGBA
// files are told apart even though both decode to 4-channel Go images.
package raster
