// seehuhn.de/go/dem - elevation rasters from gridded point clouds
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package georef

import (
	"image"
	"io"

	"golang.org/x/image/tiff"

	"seehuhn.de/go/dem/grid"
)

// Gray returns img as a grayscale image.  The pixels are shared.
func Gray(img *grid.Grid[uint8]) *image.Gray {
	return &image.Gray{
		Pix:    img.Pix,
		Stride: img.Width,
		Rect:   image.Rect(0, 0, img.Width, img.Height),
	}
}

// WriteTIFF writes img as a deflate-compressed 8-bit grayscale TIFF.
func WriteTIFF(w io.Writer, img *grid.Grid[uint8]) error {
	return tiff.Encode(w, Gray(img), &tiff.Options{
		Compression: tiff.Deflate,
		Predictor:   true,
	})
}
