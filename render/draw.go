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

package render

import (
	"fmt"

	"seehuhn.de/go/geom/vec"
)

// DrawTriangles fills indexed triangles from a shared vertex buffer and a
// parallel attribute buffer, in the order given.  Later triangles
// overwrite earlier ones where they overlap.
//
// The return value is the number of triangles which wrote at least one
// pixel.  An error is returned if the buffers disagree in length or an
// index is out of range; in that case nothing is drawn.
func (r *Rasterizer) DrawTriangles(vertices []vec.Vec2, values []float64, indices [][3]int, emit func(y, xMin int, values []float32)) (int, error) {
	if len(vertices) != len(values) {
		return 0, fmt.Errorf("render: %d vertices but %d attribute values", len(vertices), len(values))
	}
	for t, idx := range indices {
		for _, i := range idx {
			if i < 0 || i >= len(vertices) {
				return 0, fmt.Errorf("render: triangle %d references vertex %d of %d", t, i, len(vertices))
			}
		}
	}

	drawn := 0
	for _, idx := range indices {
		p := [3]vec.Vec2{vertices[idx[0]], vertices[idx[1]], vertices[idx[2]]}
		a := [3]float64{values[idx[0]], values[idx[1]], values[idx[2]]}
		if r.FillTriangle(p, a, emit) {
			drawn++
		}
	}
	return drawn, nil
}
