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

package testcases

import "math"

var surfaceCases = []TestCase{
	{
		Name:    "plane",
		Width:   21,
		Height:  16,
		Spacing: 0.5,
		Project: regular(100, 200, 1, 1),
		Surface: func(x, y float64) float64 { return 0.3*x - 0.2*y + 5 },
	},
	{
		Name:    "ridge",
		Width:   41,
		Height:  31,
		Project: regular(-20, -15, 1, 1),
		Surface: ridge(10, 6),
	},
	{
		Name:    "cone",
		Width:   41,
		Height:  41,
		Spacing: 0.75,
		Project: regular(-20, -20, 1, 1),
		Surface: func(x, y float64) float64 { return 20 - math.Hypot(x, y) },
	},
	{
		Name:    "saddle",
		Width:   33,
		Height:  33,
		Spacing: 1,
		Project: regular(-16, -16, 1, 1),
		Surface: func(x, y float64) float64 { return x * y / 20 },
	},
	{
		// rows run towards decreasing y, as in an image
		Name:    "flipped",
		Width:   25,
		Height:  20,
		Project: regular(0, 19, 1, -1),
		Surface: func(x, y float64) float64 { return x + 2*y },
	},
}

// ridge is a Gaussian ridge along the y axis with the given height and
// width.
func ridge(height, width float64) func(x, y float64) float64 {
	return func(x, y float64) float64 {
		u := x / width
		return height*math.Exp(-u*u) + 0.1*y
	}
}
