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

// Package testcases provides synthetic point clouds with known surfaces.
//
// Every test case describes a source grid, the map projection of its
// pixels into world (x, y) coordinates, and an analytic elevation in world
// coordinates.  The resampled raster of a case can therefore be checked
// against the exact surface.
package testcases

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"seehuhn.de/go/dem/grid"
)

type TestCase struct {
	Name    string  // lowercase a-z and _ only
	Width   int     // source grid columns
	Height  int     // source grid rows
	Spacing float64 // output spacing, 0 for automatic

	// Project maps a source pixel to world coordinates.
	Project func(col, row int) (x, y float64)

	// Surface is the elevation at a world position.
	Surface func(x, y float64) float64

	// Missing reports source pixels without a sample.  Nil means that
	// all pixels are valid.
	Missing func(col, row int) bool

	// Wraps is set if grid neighbours can be far apart in world space,
	// e.g. across the antimeridian.
	Wraps bool
}

// Grids returns the point cloud and the elevation grid of the test case.
// Missing pixels are set to nodata in both grids.
func (tc TestCase) Grids(nodata grid.NoData) (*grid.Grid[r3.Vec], *grid.Grid[float64]) {
	pts, err := grid.New[r3.Vec](tc.Width, tc.Height)
	if err != nil {
		panic(err)
	}
	elev, err := grid.New[float64](tc.Width, tc.Height)
	if err != nil {
		panic(err)
	}
	for row := range tc.Height {
		for col := range tc.Width {
			if tc.Missing != nil && tc.Missing(col, row) {
				pts.Set(col, row, nodata.Point())
				elev.Set(col, row, float64(nodata))
				continue
			}
			x, y := tc.Project(col, row)
			z := tc.Surface(x, y)
			pts.Set(col, row, r3.Vec{X: x, Y: y, Z: z})
			elev.Set(col, row, z)
		}
	}
	return pts, elev
}

// Texture returns the elevation grid scaled to [0, 1], for use as an
// orthoimage.  Missing pixels are 0.
func (tc TestCase) Texture() *grid.Grid[float64] {
	_, elev := tc.Grids(grid.NaN())
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, z := range elev.Pix {
		if !math.IsNaN(z) {
			lo, hi = min(lo, z), max(hi, z)
		}
	}
	scale := 0.0
	if hi > lo {
		scale = 1 / (hi - lo)
	}
	return grid.Map(elev, func(z float64) float64 {
		if math.IsNaN(z) {
			return 0
		}
		return (z - lo) * scale
	})
}

// regular is the projection of an axis-aligned grid with origin (x0, y0).
func regular(x0, y0, dx, dy float64) func(col, row int) (x, y float64) {
	return func(col, row int) (x, y float64) {
		return x0 + float64(col)*dx, y0 + float64(row)*dy
	}
}
