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

// Topology summarises how well the grid topology of the mesh matches the
// geometry of the projected points.  Meshes connect grid neighbours; near
// a pole or across the prime meridian, neighbours in the grid can be far
// apart or mirrored in world space.  Such triangles are still rendered.
type Topology struct {
	// Folded counts triangles whose orientation in world (x, y) is
	// opposite to that of the majority.
	Folded int

	// Wrapped counts triangles spanning more than half of the x extent
	// of the data while covering less than half of the grid, which
	// indicates a wrap-around of the x coordinate.
	Wrapped int
}

// OK reports whether no discontinuity was found.
func (t Topology) OK() bool {
	return t.Folded == 0 && t.Wrapped == 0
}

// CheckTopology inspects the triangles of tm.  All mesh builders emit
// triangles with the same orientation in (col, row) space, so a
// consistent mapping to world space keeps one orientation throughout.
func CheckTopology(tm *TriangleMesh, b BoundingBox3D) Topology {
	var pos, neg int
	var res Topology
	width := b.XMax - b.XMin
	if tm.Cols < 2 || tm.Rows < 2 {
		return res
	}
	for _, t := range tm.Triangles {
		p0, p1, p2 := tm.Vertices[t.V[0]], tm.Vertices[t.V[1]], tm.Vertices[t.V[2]]
		area := (p1.X-p0.X)*(p2.Y-p0.Y) - (p1.Y-p0.Y)*(p2.X-p0.X)
		switch {
		case area > 0:
			pos++
		case area < 0:
			neg++
		}

		span := max(p0.X, p1.X, p2.X) - min(p0.X, p1.X, p2.X)
		if width > 0 && span > width/2 && tm.gridFraction(t) < 0.5 {
			res.Wrapped++
		}
	}
	res.Folded = min(pos, neg)

	if !res.OK() {
		Logger().Warn("grid topology does not match the projected points",
			"folded", res.Folded, "wrapped", res.Wrapped,
			"triangles", len(tm.Triangles))
	}
	return res
}

// gridFraction returns the share of the source grid covered by t along
// its longer axis.
func (tm *TriangleMesh) gridFraction(t Triangle) float64 {
	cMin, cMax := tm.Cols, -1
	rMin, rMax := tm.Rows, -1
	for _, idx := range t.V {
		c, r := idx%tm.Cols, idx/tm.Cols
		cMin, cMax = min(cMin, c), max(cMax, c)
		rMin, rMax = min(rMin, r), max(rMax, r)
	}
	fc := float64(cMax-cMin) / float64(tm.Cols-1)
	fr := float64(rMax-rMin) / float64(tm.Rows-1)
	return max(fc, fr)
}
