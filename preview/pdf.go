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

package preview

import (
	"fmt"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/dem"
)

// PDFOptions controls [WritePDF].
type PDFOptions struct {
	// PageSize is the length of the longer page side in PDF points.
	// Zero selects 400.
	PageSize float64

	// MaxCells bounds the number of cells drawn along each axis.
	// Zero selects 256.
	MaxCells int

	// Mesh, if not nil, is drawn as a wireframe on top of the raster.
	Mesh *dem.TriangleMesh

	// Faces replaces the raster cells by the triangles of Mesh, each
	// filled with the gray of its mean vertex value.
	Faces bool
}

// WritePDF writes a one-page PDF showing the raster of res in shades of
// gray, black for the lowest and white for the highest value.  The page
// uses world coordinates with y pointing up.
func WritePDF(fileName string, res *dem.Result, opt *PDFOptions) error {
	if opt == nil {
		opt = &PDFOptions{}
	}
	size := opt.PageSize
	if size <= 0 {
		size = 400
	}
	maxCells := opt.MaxCells
	if maxCells <= 0 {
		maxCells = 256
	}

	b := res.Bounds
	dx, dy := b.XMax-b.XMin, b.YMax-b.YMin
	if !(dx > 0 && dy > 0) {
		return fmt.Errorf("preview: empty extent %s", b)
	}
	k := size / max(dx, dy)

	paper := &pdf.Rectangle{URx: dx * k, URy: dy * k}
	page, err := document.CreateSinglePage(fileName, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	// world to page
	page.Transform(matrix.Matrix{k, 0, 0, k, -b.XMin * k, -b.YMin * k})

	lo, hi := valueRange(res)
	scale := 0.0
	if hi > lo {
		scale = 1 / (hi - lo)
	}

	if tm := opt.Mesh; opt.Faces && tm != nil {
		for _, t := range tm.Triangles {
			page.SetFillColor(shade(t.Mean, lo, scale))
			trianglePath(page, tm, t)
			page.Fill()
		}
	} else {
		step := stride(res.Width, res.Height, maxCells)
		s := res.Spacing
		for row := 0; row < res.Height; row += step {
			for col := 0; col < res.Width; col += step {
				v := float64(res.Raster.At(col, row))
				w := float64(min(step, res.Width-col))
				h := float64(min(step, res.Height-row))
				x, y := res.Transform.Apply(float64(col), float64(row)+h)
				page.SetFillColor(shade(v, lo, scale))
				page.Rectangle(x, y, w*s, h*s)
				page.Fill()
			}
		}
	}

	if tm := opt.Mesh; tm != nil && len(tm.Triangles) > 0 {
		page.SetStrokeColor(color.DeviceGray(0.5))
		page.SetLineWidth(0.5 / k)
		page.SetLineCap(graphics.LineCapRound)
		page.SetLineJoin(graphics.LineJoinRound)
		for _, t := range tm.Triangles {
			trianglePath(page, tm, t)
		}
		page.Stroke()
	}

	return page.Close()
}

type pathBuilder interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	ClosePath()
}

// trianglePath appends the outline of t to the current path.
func trianglePath(page pathBuilder, tm *dem.TriangleMesh, t dem.Triangle) {
	p0 := tm.Vertices[t.V[0]]
	page.MoveTo(p0.X, p0.Y)
	for _, idx := range t.V[1:] {
		p := tm.Vertices[idx]
		page.LineTo(p.X, p.Y)
	}
	page.ClosePath()
}

// shade maps v to a gray level, black at lo.
func shade(v, lo, scale float64) color.DeviceGray {
	return color.DeviceGray(min(max((v-lo)*scale, 0), 1))
}

// valueRange returns the smallest and largest raster value.
func valueRange(res *dem.Result) (lo, hi float64) {
	if len(res.Raster.Pix) == 0 {
		return 0, 0
	}
	lo, hi = float64(res.Raster.Pix[0]), float64(res.Raster.Pix[0])
	for _, v := range res.Raster.Pix[1:] {
		lo = min(lo, float64(v))
		hi = max(hi, float64(v))
	}
	return lo, hi
}
