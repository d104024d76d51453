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
	"gonum.org/v1/gonum/mat"
)

// GeoTransform maps raster pixel coordinates (col, row) to world (x, y).
// It wraps the 3×3 homogeneous matrix
//
//	| s   0  XMin |
//	| 0  -s  YMax |
//	| 0   0   1   |
//
// so pixel (0, 0) is the world point (XMin, YMax), the corner of the
// top-left cell, and rows run towards decreasing y.
type GeoTransform struct {
	m *mat.Dense
}

// NewGeoTransform returns the transform for the raster described by l.
func NewGeoTransform(l *Layout) GeoTransform {
	m := mat.NewDense(3, 3, nil)
	m.Set(0, 0, l.Spacing)
	m.Set(1, 1, -l.Spacing)
	m.Set(2, 2, 1)
	m.Set(0, 2, l.Bounds.XMin)
	m.Set(1, 2, l.Bounds.YMax)
	return GeoTransform{m: m}
}

// Matrix returns a copy of the 3×3 matrix.
func (g GeoTransform) Matrix() *mat.Dense {
	return mat.DenseCopyOf(g.m)
}

// Apply maps the pixel position (col, row) to world coordinates.
// Fractional positions are allowed; (col+0.5, row+0.5) is a cell centre.
func (g GeoTransform) Apply(col, row float64) (x, y float64) {
	var out mat.VecDense
	out.MulVec(g.m, mat.NewVecDense(3, []float64{col, row, 1}))
	return out.AtVec(0), out.AtVec(1)
}

// Invert maps world coordinates back to pixel coordinates.
func (g GeoTransform) Invert(x, y float64) (col, row float64, err error) {
	var inv mat.Dense
	if err := inv.Inverse(g.m); err != nil {
		return 0, 0, err
	}
	var out mat.VecDense
	out.MulVec(&inv, mat.NewVecDense(3, []float64{x, y, 1}))
	return out.AtVec(0), out.AtVec(1), nil
}

// GDAL returns the transform in GDAL order: origin x, pixel width,
// row rotation, origin y, column rotation, pixel height.
func (g GeoTransform) GDAL() [6]float64 {
	return [6]float64{
		g.m.At(0, 2), g.m.At(0, 0), g.m.At(0, 1),
		g.m.At(1, 2), g.m.At(1, 0), g.m.At(1, 1),
	}
}

// Spacing returns the pixel width in world units.
func (g GeoTransform) Spacing() float64 {
	return g.m.At(0, 0)
}
