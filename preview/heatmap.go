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

// Package preview renders quick-look images of conversion results.
package preview

import (
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"seehuhn.de/go/dem"
)

// rasterXYZ presents a raster as a plotter.GridXYZ.  Plot rows count
// upwards, raster rows downwards, so rows are mirrored.  Only every
// step-th cell along each axis is shown.
type rasterXYZ struct {
	res  *dem.Result
	step int
}

var _ plotter.GridXYZ = rasterXYZ{}

func (g rasterXYZ) Dims() (c, r int) {
	return ceilDiv(g.res.Width, g.step), ceilDiv(g.res.Height, g.step)
}

func (g rasterXYZ) Z(c, r int) float64 {
	_, rows := g.Dims()
	return float64(g.res.Raster.At(c*g.step, (rows-1-r)*g.step))
}

func (g rasterXYZ) X(c int) float64 {
	x, _ := g.res.Transform.Apply(float64(c*g.step)+0.5, 0)
	return x
}

func (g rasterXYZ) Y(r int) float64 {
	_, rows := g.Dims()
	_, y := g.res.Transform.Apply(0, float64((rows-1-r)*g.step)+0.5)
	return y
}

// MaxHeatMapCells bounds the number of cells along each axis of a heat map.
const MaxHeatMapCells = 512

// HeatMap returns a plot showing the raster of res as a heat map in world
// coordinates.
func HeatMap(res *dem.Result, title string) (*plot.Plot, error) {
	if res.Width == 0 || res.Height == 0 {
		return nil, fmt.Errorf("preview: empty %dx%d raster", res.Width, res.Height)
	}
	g := rasterXYZ{res: res, step: stride(res.Width, res.Height, MaxHeatMapCells)}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	h := plotter.NewHeatMap(g, palette.Heat(32, 1))
	if h.Max <= h.Min {
		h.Max = h.Min + 1 // constant raster
	}
	p.Add(h)
	return p, nil
}

// WriteHeatMap renders res as a heat map and writes the image to w.
// The format is one of the formats known to gonum/plot, e.g. "png" or
// "svg".
func WriteHeatMap(w io.Writer, res *dem.Result, title, format string) error {
	p, err := HeatMap(res, title)
	if err != nil {
		return err
	}
	width := 6 * vg.Inch
	height := width * vg.Length(res.Height) / vg.Length(res.Width)
	height = min(max(height, 2*vg.Inch), 12*vg.Inch)

	wt, err := p.WriterTo(width, height, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// stride returns the smallest step which shows at most limit cells along
// each axis.
func stride(width, height, limit int) int {
	return max(1, ceilDiv(max(width, height), limit))
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
