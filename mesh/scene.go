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
	"bufio"
	"fmt"
	"io"

	"gonum.org/v1/gonum/spatial/r3"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/dem/grid"
)

// Texture describes an image draped over a scene.
type Texture struct {
	// File names the image file, relative to the scene file.
	File string

	// Extent, if not nil, is the world rectangle covered by the image,
	// e.g. the extent of an orthoimage resampled from the same points.
	// Texture coordinates are then taken from the (x, y) position of each
	// vertex.  If Extent is nil, the image is the source image of the
	// grid, with grid row 0 at the top.
	Extent *rect.Rect
}

// scene is the compacted form of a mesh used by the scene writers.
type scene struct {
	vertices []r3.Vec
	uv       [][2]float64
	tris     []Triangle
}

// newScene compacts m and assigns texture coordinates for tex.
// Texture coordinate (0, 0) is the bottom-left corner of the image.
func newScene(m *Mesh, points *grid.Grid[r3.Vec], tex *Texture) *scene {
	vertices, tris, source := m.Compact(points)
	s := &scene{vertices: vertices, tris: tris}
	if tex == nil {
		return s
	}

	s.uv = make([][2]float64, len(source))
	if e := tex.Extent; e != nil {
		dx, dy := e.URx-e.LLx, e.URy-e.LLy
		for i, p := range vertices {
			var u, v float64
			if dx > 0 {
				u = (p.X - e.LLx) / dx
			}
			if dy > 0 {
				v = (p.Y - e.LLy) / dy
			}
			s.uv[i] = [2]float64{u, v}
		}
		return s
	}
	for i, idx := range source {
		col, row := idx%m.Width, idx/m.Width
		var u, v float64
		if m.Width > 1 {
			u = float64(col) / float64(m.Width-1)
		}
		if m.Height > 1 {
			v = 1 - float64(row)/float64(m.Height-1)
		}
		s.uv[i] = [2]float64{u, v}
	}
	return s
}

// WriteVRML writes the mesh as a VRML 2.0 IndexedFaceSet.  If tex is not
// nil, the image it describes is draped over the surface.
func WriteVRML(w io.Writer, m *Mesh, points *grid.Grid[r3.Vec], tex *Texture) error {
	if m.Width != points.Width || m.Height != points.Height {
		return fmt.Errorf("mesh: mesh is %dx%d but points are %dx%d",
			m.Width, m.Height, points.Width, points.Height)
	}
	s := newScene(m, points, tex)

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "#VRML V2.0 utf8")
	fmt.Fprintln(bw, "Shape {")
	if tex != nil {
		fmt.Fprintf(bw, "  appearance Appearance { texture ImageTexture { url %q } }\n", tex.File)
	}
	fmt.Fprintln(bw, "  geometry IndexedFaceSet {")
	fmt.Fprintln(bw, "    solid FALSE")
	fmt.Fprintln(bw, "    coord Coordinate { point [")
	for _, p := range s.vertices {
		fmt.Fprintf(bw, "      %g %g %g,\n", p.X, p.Y, p.Z)
	}
	fmt.Fprintln(bw, "    ] }")
	if tex != nil {
		fmt.Fprintln(bw, "    texCoord TextureCoordinate { point [")
		for _, t := range s.uv {
			fmt.Fprintf(bw, "      %g %g,\n", t[0], t[1])
		}
		fmt.Fprintln(bw, "    ] }")
	}
	fmt.Fprintln(bw, "    coordIndex [")
	for _, t := range s.tris {
		fmt.Fprintf(bw, "      %d, %d, %d, -1,\n", t[0], t[1], t[2])
	}
	fmt.Fprintln(bw, "    ]")
	fmt.Fprintln(bw, "  }")
	fmt.Fprintln(bw, "}")
	return bw.Flush()
}

// WriteInventor writes the mesh as an Open Inventor 2.1 ASCII scene.  If
// tex is not nil, the image it describes is draped over the surface.
func WriteInventor(w io.Writer, m *Mesh, points *grid.Grid[r3.Vec], tex *Texture) error {
	if m.Width != points.Width || m.Height != points.Height {
		return fmt.Errorf("mesh: mesh is %dx%d but points are %dx%d",
			m.Width, m.Height, points.Width, points.Height)
	}
	s := newScene(m, points, tex)

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "#Inventor V2.1 ascii")
	fmt.Fprintln(bw, "Separator {")
	if tex != nil {
		fmt.Fprintf(bw, "  Texture2 { filename %q model DECAL }\n", tex.File)
	}
	fmt.Fprintln(bw, "  Coordinate3 { point [")
	for _, p := range s.vertices {
		fmt.Fprintf(bw, "    %g %g %g,\n", p.X, p.Y, p.Z)
	}
	fmt.Fprintln(bw, "  ] }")
	if tex != nil {
		fmt.Fprintln(bw, "  TextureCoordinate2 { point [")
		for _, t := range s.uv {
			fmt.Fprintf(bw, "    %g %g,\n", t[0], t[1])
		}
		fmt.Fprintln(bw, "  ] }")
	}
	fmt.Fprintln(bw, "  IndexedFaceSet { coordIndex [")
	for _, t := range s.tris {
		fmt.Fprintf(bw, "    %d, %d, %d, -1,\n", t[0], t[1], t[2])
	}
	fmt.Fprintln(bw, "  ] }")
	fmt.Fprintln(bw, "}")
	return bw.Flush()
}
