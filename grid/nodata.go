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

package grid

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// NoData is a reserved value marking a missing sample.
// Use [NaN] for a NaN sentinel; NaN never compares equal to itself,
// so the comparison is special-cased.
type NoData float64

// Conventional sentinels.
const (
	// MinFloat32 is the most negative finite float32, the convention used
	// for stereo point clouds and for unwritten raster cells.
	MinFloat32 NoData = -math.MaxFloat32
)

// NaN returns a NaN sentinel.
func NaN() NoData {
	return NoData(math.NaN())
}

// Is reports whether v is the sentinel.
func (n NoData) Is(v float64) bool {
	if math.IsNaN(float64(n)) {
		return math.IsNaN(v)
	}
	return v == float64(n)
}

// Is32 reports whether the float32 value v is the sentinel.
func (n NoData) Is32(v float32) bool {
	if math.IsNaN(float64(n)) {
		return v != v
	}
	return v == float32(n)
}

// IsPoint reports whether p is a missing sample.  A point counts as
// missing as soon as any coordinate holds the sentinel.
func (n NoData) IsPoint(p r3.Vec) bool {
	return n.Is(p.X) || n.Is(p.Y) || n.Is(p.Z)
}

// Point returns the position with all three coordinates set to the sentinel.
func (n NoData) Point() r3.Vec {
	v := float64(n)
	return r3.Vec{X: v, Y: v, Z: v}
}
