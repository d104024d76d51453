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
	"sync"

	"github.com/dustin/go-humanize"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/dem/grid"
	"seehuhn.de/go/dem/render"
)

// rasterizers holds idle rasterizers, so that consecutive conversions
// share span and edge buffers.
var rasterizers = sync.Pool{
	New: func() any { return render.NewRasterizer(rect.Rect{}) },
}

// Rasterize renders tm orthographically onto the grid described by l.
// Every cell starts out as the missing sentinel; cells whose centre lies
// inside a triangle receive the linear interpolation of its vertex
// attributes.  Triangles are drawn in order, later ones overwrite earlier
// ones.
//
// The rendered image has world y increasing with the row index.  The
// returned raster has been flipped, so row 0 is the top (YMax) edge.
// The second return value is the number of triangles which wrote at
// least one cell.
func Rasterize(tm *TriangleMesh, l *Layout, missing grid.NoData) (*grid.Grid[float32], int, error) {
	raster, err := grid.New[float32](l.Width, l.Height)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrAllocation, err)
	}
	raster.Fill(float32(missing))
	Logger().Debug("raster allocated",
		"width", l.Width, "height", l.Height,
		"size", humanize.Bytes(uint64(len(raster.Pix))*4))

	clip := rect.Rect{LLx: 0, LLy: 0, URx: float64(l.Width), URy: float64(l.Height)}
	r := rasterizers.Get().(*render.Rasterizer)
	defer rasterizers.Put(r)
	r.Reset(clip)
	r.Ortho2D(l.Bounds.XMin, l.Bounds.XMax, l.Bounds.YMin, l.Bounds.YMax)

	indices := make([][3]int, len(tm.Triangles))
	for i, t := range tm.Triangles {
		indices[i] = t.V
	}
	drawn, err := r.DrawTriangles(tm.Vertices, tm.Values, indices, func(y, xMin int, values []float32) {
		copy(raster.Row(y)[xMin:], values)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	Logger().Info("rasterized", "triangles", len(tm.Triangles), "drawn", drawn)

	raster.FlipVertical()
	return raster, drawn, nil
}
