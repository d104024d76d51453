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

// Package dem resamples gridded 3D point clouds into uniformly spaced
// rasters.
//
// The input is a pair of grids of equal size: the projected position of
// every source pixel (as produced by stereo correlation and a map
// projection) and a scalar attribute for the same pixel, usually an
// elevation or an image intensity.  [Convert] triangulates the point grid,
// renders the triangles orthographically onto a regular grid and returns
// the raster together with its georeferencing.
//
// Missing samples are marked by a configurable sentinel, see
// [Options.Missing].  Raster cells outside the triangulated area receive
// a fill value, so the result never contains the raster sentinel.
//
// [MakeDEM] and [MakeDRG] wrap [Convert] with the fill conventions for
// elevation models and orthoimages.  The georef package writes the
// results in common container formats.
package dem
