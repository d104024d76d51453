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

package dem

import (
	"gonum.org/v1/gonum/spatial/r3"

	"seehuhn.de/go/dem/grid"
)

// MakeDEM converts an elevation grid into a digital elevation model.
// Cells not covered by the mesh are set to the lowest valid elevation,
// whatever opt.Default says.
func MakeDEM(points *grid.Grid[r3.Vec], elevation *grid.Grid[float64], opt *Options) (*Result, error) {
	o := withDefault(opt, nil)
	return Convert(points, elevation, o)
}

// MakeDRG converts an image grid with intensities in [0, 1] into an
// orthorectified 8-bit image.  Cells not covered by the mesh are black.
// The float raster is returned alongside the quantized image.
func MakeDRG(points *grid.Grid[r3.Vec], texture *grid.Grid[float64], opt *Options) (*Result, *grid.Grid[uint8], error) {
	o := withDefault(opt, Float(0))
	res, err := Convert(points, texture, o)
	if err != nil {
		return nil, nil, err
	}
	return res, Quantize(res.Raster), nil
}

// Quantize maps intensities in [0, 1] to 8-bit values.  Values outside
// the interval are clamped; the scaled value is truncated.
func Quantize(raster *grid.Grid[float32]) *grid.Grid[uint8] {
	return grid.Map(raster, func(v float32) uint8 {
		switch {
		case !(v > 0):
			return 0
		case v >= 1:
			return 255
		default:
			return uint8(v * 255)
		}
	})
}

// withDefault returns a copy of opt with the fill value replaced.
func withDefault(opt *Options, def *float64) *Options {
	var o Options
	if opt != nil {
		o = *opt
	} else {
		o = *DefaultOptions()
	}
	o.Default = def
	return &o
}
