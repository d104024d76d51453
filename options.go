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

	"seehuhn.de/go/dem/grid"
	"seehuhn.de/go/dem/mesh"
)

// Options controls a conversion.  The zero value is not usable; start
// from [DefaultOptions].
type Options struct {
	// Spacing is the requested output cell size in world units.
	// Zero selects a spacing which gives the raster about as many columns
	// as the source grid.
	Spacing float64

	// Missing marks invalid samples in the point cloud.
	Missing grid.NoData

	// RasterMissing marks raster cells not covered by any triangle, until
	// they are replaced by the fill value.
	RasterMissing grid.NoData

	// Default replaces uncovered raster cells.  Nil selects the minimum z
	// value of the valid samples.
	Default *float64

	// MaxCells limits the number of output raster cells.
	// Must be positive.
	MaxCells int

	// Mesh tessellates the point grid.  Nil selects [mesh.Uniform] with
	// unit steps, i.e. two triangles per 2×2 neighbourhood.
	Mesh mesh.Builder
}

// DefaultOptions returns the options used when converting with a nil
// *Options.
func DefaultOptions() *Options {
	return &Options{
		Missing:       grid.MinFloat32,
		RasterMissing: grid.MinFloat32,
		MaxCells:      defaultMaxCells,
		Mesh:          mesh.Uniform{HStep: 1, VStep: 1},
	}
}

// defaultMaxCells allows rasters of up to 1 GiB of float32 cells.
const defaultMaxCells = 1 << 28

func (o *Options) check() error {
	if math.IsNaN(o.Spacing) || math.IsInf(o.Spacing, 0) {
		return fmt.Errorf("%w: spacing %g", ErrInvalidInput, o.Spacing)
	}
	if o.MaxCells <= 0 {
		return fmt.Errorf("%w: MaxCells %d", ErrInvalidInput, o.MaxCells)
	}
	if o.Default != nil && (math.IsNaN(*o.Default) || o.RasterMissing.Is32(float32(*o.Default))) {
		return fmt.Errorf("%w: fill value %g equals the raster sentinel", ErrInvalidInput, *o.Default)
	}
	return nil
}

// Float returns a pointer to v, for use with [Options.Default].
func Float(v float64) *float64 {
	return &v
}
