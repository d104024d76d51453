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

import "seehuhn.de/go/dem/grid"

// FillMissing replaces every cell equal to missing by value and returns
// the number of cells changed.  No interpolation takes place: holes are
// expected only outside the footprint of the mesh.
func FillMissing(raster *grid.Grid[float32], missing grid.NoData, value float64) int {
	v := float32(value)
	n := 0
	for i, x := range raster.Pix {
		if missing.Is32(x) {
			raster.Pix[i] = v
			n++
		}
	}
	return n
}
