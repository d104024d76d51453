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
)

// Layout describes the output raster grid.
type Layout struct {
	Spacing float64 // cell size in world units
	Width   int     // number of columns
	Height  int     // number of rows

	// Bounds is the extent of the valid samples, with XMax and YMax moved
	// outward so that the raster tiles it exactly:
	// XMax = XMin + Width*Spacing and YMax = YMin + Height*Spacing.
	Bounds BoundingBox3D
}

// ResolveSpacing chooses the output grid for data with extent b.
// If requested is zero, the spacing is (XMax-XMin)/sourceWidth, so the
// raster has about as many columns as the source grid.
//
// A spacing which resolves to zero or less, e.g. because all samples share
// one x coordinate, gives an error wrapping [ErrDegenerateGeometry].  If
// the raster would have more than maxCells cells, the error wraps
// [ErrAllocation].
func ResolveSpacing(b BoundingBox3D, requested float64, sourceWidth, maxCells int) (*Layout, error) {
	if b.IsEmpty() {
		return nil, fmt.Errorf("%w: bounding box %s", ErrEmptyInput, b)
	}
	if math.IsNaN(requested) || math.IsInf(requested, 0) {
		return nil, fmt.Errorf("%w: spacing %g", ErrInvalidInput, requested)
	}

	spacing := requested
	if spacing == 0 {
		if sourceWidth <= 0 {
			return nil, fmt.Errorf("%w: source width %d", ErrInvalidInput, sourceWidth)
		}
		spacing = math.Abs(b.XMax-b.XMin) / float64(sourceWidth)
		Logger().Info("automatic spacing", "spacing", spacing)
	}
	if !(spacing > 0) || math.IsInf(spacing, 0) {
		return nil, fmt.Errorf("%w: spacing %g for extent %s", ErrDegenerateGeometry, spacing, b)
	}

	w := math.Floor(math.Abs(b.XMax-b.XMin)/spacing) + 1
	h := math.Floor(math.Abs(b.YMax-b.YMin)/spacing) + 1
	if !(w*h <= float64(maxCells)) {
		return nil, fmt.Errorf("%w: %gx%g raster exceeds %d cells", ErrAllocation, w, h, maxCells)
	}

	l := &Layout{
		Spacing: spacing,
		Width:   int(w),
		Height:  int(h),
		Bounds:  b,
	}
	l.Bounds.XMax = l.Bounds.XMin + float64(l.Width)*spacing
	l.Bounds.YMax = l.Bounds.YMin + float64(l.Height)*spacing
	return l, nil
}
