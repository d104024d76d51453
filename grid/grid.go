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

// Package grid provides a bounds-checked, row-major 2D container.
//
// Cells are addressed as (col, row) with col in [0, Width) and row in
// [0, Height).  The backing slice stores row 0 first; within a row,
// columns are contiguous.
package grid

import (
	"errors"
	"fmt"
	"math"
)

// ErrTooLarge is returned when the requested dimensions cannot be
// represented as a single slice.
var ErrTooLarge = errors.New("grid: dimensions too large")

// Grid is a row-major 2D array of cells.
//
// A Grid is not safe for concurrent modification.
type Grid[T any] struct {
	Width  int
	Height int

	// Pix holds the cells, Pix[row*Width+col] for cell (col, row).
	Pix []T
}

// New allocates a zero-valued grid with the given dimensions.
func New[T any](width, height int) (*Grid[T], error) {
	n, err := Cells(width, height)
	if err != nil {
		return nil, err
	}
	return &Grid[T]{
		Width:  width,
		Height: height,
		Pix:    make([]T, n),
	}, nil
}

// Cells returns width*height, or an error if either dimension is negative
// or the product overflows int.
func Cells(width, height int) (int, error) {
	if width < 0 || height < 0 {
		return 0, fmt.Errorf("grid: invalid dimensions %dx%d", width, height)
	}
	if width > 0 && height > math.MaxInt/width {
		return 0, fmt.Errorf("%w: %dx%d", ErrTooLarge, width, height)
	}
	return width * height, nil
}

// FromRows builds a grid from a slice of equally long rows.
// The data is copied.
func FromRows[T any](rows [][]T) (*Grid[T], error) {
	if len(rows) == 0 {
		return &Grid[T]{}, nil
	}
	width := len(rows[0])
	g, err := New[T](width, len(rows))
	if err != nil {
		return nil, err
	}
	for row, r := range rows {
		if len(r) != width {
			return nil, fmt.Errorf("grid: row %d has %d cells, expected %d", row, len(r), width)
		}
		copy(g.Row(row), r)
	}
	return g, nil
}

// InBounds reports whether (col, row) addresses a cell of g.
func (g *Grid[T]) InBounds(col, row int) bool {
	return col >= 0 && col < g.Width && row >= 0 && row < g.Height
}

// Index returns the offset of cell (col, row) in Pix.
// It panics if the cell is out of bounds.
func (g *Grid[T]) Index(col, row int) int {
	if !g.InBounds(col, row) {
		panic(fmt.Sprintf("grid: cell (%d, %d) outside %dx%d", col, row, g.Width, g.Height))
	}
	return row*g.Width + col
}

// At returns the value of cell (col, row).
func (g *Grid[T]) At(col, row int) T {
	return g.Pix[g.Index(col, row)]
}

// Set stores v in cell (col, row).
func (g *Grid[T]) Set(col, row int, v T) {
	g.Pix[g.Index(col, row)] = v
}

// Row returns the cells of one row. The slice aliases Pix.
func (g *Grid[T]) Row(row int) []T {
	if row < 0 || row >= g.Height {
		panic(fmt.Sprintf("grid: row %d outside [0, %d)", row, g.Height))
	}
	return g.Pix[row*g.Width : (row+1)*g.Width]
}

// Fill sets every cell to v.
func (g *Grid[T]) Fill(v T) {
	for i := range g.Pix {
		g.Pix[i] = v
	}
}

// FlipVertical reverses the order of the rows in place.
func (g *Grid[T]) FlipVertical() {
	for top, bot := 0, g.Height-1; top < bot; top, bot = top+1, bot-1 {
		a, b := g.Row(top), g.Row(bot)
		for i := range a {
			a[i], b[i] = b[i], a[i]
		}
	}
}

// SameSize reports whether g and other have identical dimensions.
func SameSize[T, U any](g *Grid[T], other *Grid[U]) bool {
	return g.Width == other.Width && g.Height == other.Height
}

// Map returns a new grid with f applied to every cell of g.
func Map[T, U any](g *Grid[T], f func(T) U) *Grid[U] {
	out := &Grid[U]{
		Width:  g.Width,
		Height: g.Height,
		Pix:    make([]U, len(g.Pix)),
	}
	for i, v := range g.Pix {
		out.Pix[i] = f(v)
	}
	return out
}
