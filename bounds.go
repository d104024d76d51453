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
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"seehuhn.de/go/dem/grid"
)

// BoundingBox3D is an axis-aligned box.
type BoundingBox3D struct {
	XMin, XMax float64
	YMin, YMax float64
	ZMin, ZMax float64
}

// emptyBounds is the identity for [BoundingBox3D.Extend]; it is inverted
// on every axis.
func emptyBounds() BoundingBox3D {
	return BoundingBox3D{
		XMin: math.Inf(1), XMax: math.Inf(-1),
		YMin: math.Inf(1), YMax: math.Inf(-1),
		ZMin: math.Inf(1), ZMax: math.Inf(-1),
	}
}

// Extend grows b to include p.  The minimum and maximum of each axis are
// updated independently, so the first point sets both.
func (b *BoundingBox3D) Extend(p r3.Vec) {
	b.XMin = min(b.XMin, p.X)
	b.XMax = max(b.XMax, p.X)
	b.YMin = min(b.YMin, p.Y)
	b.YMax = max(b.YMax, p.Y)
	b.ZMin = min(b.ZMin, p.Z)
	b.ZMax = max(b.ZMax, p.Z)
}

// IsEmpty reports whether b is inverted on some axis.
func (b BoundingBox3D) IsEmpty() bool {
	return !(b.XMin <= b.XMax && b.YMin <= b.YMax && b.ZMin <= b.ZMax)
}

func (b BoundingBox3D) String() string {
	return fmt.Sprintf("[%g, %g] x [%g, %g] x [%g, %g]",
		b.XMin, b.XMax, b.YMin, b.YMax, b.ZMin, b.ZMax)
}

// FindBounds returns the extent of the valid samples of points.  Samples
// matching nodata are skipped.  If no valid sample exists, the error
// wraps [ErrEmptyInput].
//
// Samples with a NaN or infinite coordinate are skipped as well; they
// cannot contribute a usable extent.
func FindBounds(points *grid.Grid[r3.Vec], nodata grid.NoData) (BoundingBox3D, int, error) {
	b := emptyBounds()
	valid := 0
	for _, p := range points.Pix {
		if nodata.IsPoint(p) || !finite(p) {
			continue
		}
		b.Extend(p)
		valid++
	}
	if valid == 0 {
		return b, 0, fmt.Errorf("%w: no valid samples in %dx%d point cloud",
			ErrEmptyInput, points.Width, points.Height)
	}
	return b, valid, nil
}

func finite(p r3.Vec) bool {
	for _, v := range [3]float64{p.X, p.Y, p.Z} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
