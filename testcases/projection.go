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

var projectionCases = []TestCase{
	{
		Name:    "rotated",
		Width:   30,
		Height:  20,
		Spacing: 0.5,
		Project: rotated(5, 5, math.Pi/6),
		Surface: func(x, y float64) float64 { return 0.5*x + 0.25*y },
	},
	{
		// sinusoidal projection of a longitude/latitude grid, in degrees
		Name:    "sinusoidal",
		Width:   61,
		Height:  41,
		Project: sinusoidal(-30, -40, 1, 2, 0),
		Surface: func(x, y float64) float64 { return 2 - y/40 + x/100 },
	},
	{
		// longitudes 150 to 210 degrees, reduced to [-180, 180)
		Name:    "antimeridian",
		Width:   61,
		Height:  11,
		Project: wrapped(150, -5, 1, 1),
		Surface: func(x, y float64) float64 { return 1 },
		Wraps:   true,
	},
}

// rotated is the projection of a unit grid rotated by angle about its
// first pixel, which is placed at (x0, y0).
func rotated(x0, y0, angle float64) func(col, row int) (x, y float64) {
	sin, cos := math.Sincos(angle)
	return func(col, row int) (x, y float64) {
		c, r := float64(col), float64(row)
		return x0 + cos*c - sin*r, y0 + sin*c + cos*r
	}
}

// sinusoidal maps pixels of a longitude/latitude grid with origin
// (lon0, lat0) and pixel sizes dlon, dlat through the sinusoidal
// projection with central meridian lonC.
func sinusoidal(lon0, lat0, dlon, dlat, lonC float64) func(col, row int) (x, y float64) {
	return func(col, row int) (x, y float64) {
		lon := lon0 + float64(col)*dlon
		lat := lat0 + float64(row)*dlat
		return (lon - lonC) * math.Cos(lat*math.Pi/180), lat
	}
}

// wrapped is an axis-aligned grid whose x coordinate is reduced to
// [-180, 180).
func wrapped(x0, y0, dx, dy float64) func(col, row int) (x, y float64) {
	return func(col, row int) (x, y float64) {
		x = math.Mod(x0+float64(col)*dx+180, 360) - 180
		return x, y0 + float64(row)*dy
	}
}
