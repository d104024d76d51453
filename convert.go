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

	"gonum.org/v1/gonum/spatial/r3"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/dem/grid"
	"seehuhn.de/go/dem/mesh"
)

// Result is the output of [Convert].
type Result struct {
	// Raster holds one value per output cell, row 0 at the top.
	// No cell holds the raster sentinel.
	Raster *grid.Grid[float32]

	// Spacing, Width and Height describe the raster grid.
	Spacing float64
	Width   int
	Height  int

	// Bounds is the snapped extent of the raster.  ZMin and ZMax are the
	// elevation range of the valid input samples.
	Bounds BoundingBox3D

	// Transform maps raster pixels to world coordinates.
	Transform GeoTransform

	// Default is the value assigned to cells outside the mesh.
	Default float64

	// Triangles is the number of triangles which were processed, Drawn
	// the number which wrote at least one cell.
	Triangles int
	Drawn     int

	// Filled is the number of cells set to Default.
	Filled int

	// Samples is the number of valid input points.
	Samples int

	// Topology reports grid topology problems in the input.
	Topology Topology
}

// CentralMeridian returns the x coordinate of the centre of the raster,
// for use as the central meridian of a sinusoidal projection.
func (r *Result) CentralMeridian() float64 {
	return r.Bounds.XMin + (r.Bounds.XMax-r.Bounds.XMin)/2
}

// Extent returns the world rectangle covered by the raster cells.
// Pixel (0, 0) has its top-left corner at (LLx, URy).
func (r *Result) Extent() rect.Rect {
	return rect.Rect{
		LLx: r.Bounds.XMin, LLy: r.Bounds.YMin,
		URx: r.Bounds.XMax, URy: r.Bounds.YMax,
	}
}

// Convert resamples a gridded point cloud into a uniformly spaced raster.
// points holds one 3D position per source pixel, attr the value to be
// rendered at that pixel (an elevation or an image intensity).  Both
// grids must have the same dimensions.  A nil opt selects
// [DefaultOptions].
//
// The conversion runs the following stages: find the extent of the valid
// samples, choose the output grid, tessellate the point grid, render the
// triangles orthographically and fill the cells outside the mesh.  Any
// failure aborts the conversion and no raster is returned; the error is a
// [*ConvertError] wrapping one of the Err* classes of this package.
func Convert(points *grid.Grid[r3.Vec], attr *grid.Grid[float64], opt *Options) (*Result, error) {
	if opt == nil {
		opt = DefaultOptions()
	}
	if err := opt.check(); err != nil {
		return nil, wrap("options", err)
	}
	if err := checkInput(points, attr); err != nil {
		return nil, wrap("input", err)
	}

	bounds, samples, err := FindBounds(points, opt.Missing)
	if err != nil {
		return nil, wrap("bounds", err)
	}
	Logger().Info("bounding box",
		"xmin", bounds.XMin, "ymin", bounds.YMin,
		"xmax", bounds.XMax, "ymax", bounds.YMax,
		"zmin", bounds.ZMin, "zmax", bounds.ZMax,
		"samples", samples)

	layout, err := ResolveSpacing(bounds, opt.Spacing, points.Width, opt.MaxCells)
	if err != nil {
		return nil, wrap("spacing", err)
	}
	Logger().Info("raster grid", "width", layout.Width, "height", layout.Height, "spacing", layout.Spacing)

	builder := opt.Mesh
	if builder == nil {
		builder = mesh.Uniform{HStep: 1, VStep: 1}
	}
	tm, err := Tessellate(points, attr, builder, opt.Missing)
	if err != nil {
		return nil, wrap("tessellate", err)
	}
	topo := CheckTopology(tm, bounds)

	raster, drawn, err := Rasterize(tm, layout, opt.RasterMissing)
	if err != nil {
		return nil, wrap("rasterize", err)
	}

	def := bounds.ZMin
	if opt.Default != nil {
		def = *opt.Default
	}
	filled := FillMissing(raster, opt.RasterMissing, def)
	Logger().Debug("filled uncovered cells", "cells", filled, "value", def)

	return &Result{
		Raster:    raster,
		Spacing:   layout.Spacing,
		Width:     layout.Width,
		Height:    layout.Height,
		Bounds:    layout.Bounds,
		Transform: NewGeoTransform(layout),
		Default:   def,
		Triangles: len(tm.Triangles),
		Drawn:     drawn,
		Filled:    filled,
		Samples:   samples,
		Topology:  topo,
	}, nil
}

// checkInput verifies the preconditions on the input grids.
func checkInput(points *grid.Grid[r3.Vec], attr *grid.Grid[float64]) error {
	if points == nil || attr == nil {
		return fmt.Errorf("%w: missing point cloud or attribute grid", ErrInvalidInput)
	}
	if len(points.Pix) != points.Width*points.Height || len(attr.Pix) != attr.Width*attr.Height {
		return fmt.Errorf("%w: grid storage does not match its dimensions", ErrInvalidInput)
	}
	if !grid.SameSize(points, attr) {
		return fmt.Errorf("%w: point cloud is %dx%d but attribute is %dx%d",
			ErrInvalidInput, points.Width, points.Height, attr.Width, attr.Height)
	}
	if points.Width == 0 || points.Height == 0 {
		return fmt.Errorf("%w: empty %dx%d grid", ErrEmptyInput, points.Width, points.Height)
	}
	return nil
}
