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

package mesh

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"seehuhn.de/go/dem/grid"
)

// Uniform tessellates the grid in fixed steps.  With HStep = VStep = 1
// every 2×2 neighbourhood of grid points becomes two triangles.  Larger
// steps skip intermediate points; the last column and row are always
// included so the mesh reaches the grid edge.
//
// Quads are emitted in row-major order.
type Uniform struct {
	HStep int // columns per quad, >= 1
	VStep int // rows per quad, >= 1
}

// Build implements [Builder].
func (u Uniform) Build(points *grid.Grid[r3.Vec], nodata grid.NoData) (*Mesh, error) {
	if err := checkGrid(points); err != nil {
		return nil, err
	}
	if u.HStep < 1 || u.VStep < 1 {
		return nil, fmt.Errorf("mesh: invalid step %dx%d", u.HStep, u.VStep)
	}

	m := &Mesh{Width: points.Width, Height: points.Height}
	if points.Width < 2 || points.Height < 2 {
		return m, nil
	}

	quadsX := (points.Width - 1 + u.HStep - 1) / u.HStep
	quadsY := (points.Height - 1 + u.VStep - 1) / u.VStep
	m.Triangles = make([]Triangle, 0, 2*quadsX*quadsY)

	for r0 := 0; r0 < points.Height-1; r0 += u.VStep {
		r1 := min(r0+u.VStep, points.Height-1)
		for c0 := 0; c0 < points.Width-1; c0 += u.HStep {
			c1 := min(c0+u.HStep, points.Width-1)
			m.quad(points, nodata, c0, r0, c1, r1)
		}
	}
	return m, nil
}
