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

var holeCases = []TestCase{
	{
		Name:    "crater",
		Width:   31,
		Height:  31,
		Spacing: 0.5,
		Project: regular(0, 0, 1, 1),
		Surface: func(x, y float64) float64 { return 0.1 * (x + y) },
		Missing: func(col, row int) bool {
			return math.Hypot(float64(col-15), float64(row-15)) < 5
		},
	},
	{
		Name:    "ragged_border",
		Width:   24,
		Height:  18,
		Project: regular(0, 0, 2, 2),
		Surface: func(x, y float64) float64 { return math.Sin(x/8) + math.Cos(y/8) },
		Missing: func(col, row int) bool {
			return col < row/3 || col > 20+(row%4)
		},
	},
	{
		Name:    "single_point",
		Width:   3,
		Height:  3,
		Spacing: 1,
		Project: regular(0, 0, 1, 1),
		Surface: func(x, y float64) float64 { return 7 },
		Missing: func(col, row int) bool { return col != 1 || row != 1 },
	},
}
