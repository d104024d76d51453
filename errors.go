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

import "errors"

// Error classes returned by [Convert].  Use [errors.Is] to test for them.
var (
	// ErrInvalidInput marks a violated precondition: mismatched or
	// malformed grids, or unusable options.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyInput marks a point cloud without a single valid sample.
	ErrEmptyInput = errors.New("empty input")

	// ErrDegenerateGeometry marks an extent from which no positive grid
	// spacing can be derived.
	ErrDegenerateGeometry = errors.New("degenerate geometry")

	// ErrAllocation marks working buffers which are too large to allocate.
	ErrAllocation = errors.New("allocation failed")
)

// ConvertError records the conversion stage which failed.
type ConvertError struct {
	Op  string // stage, e.g. "bounds" or "rasterize"
	Err error
}

func (e *ConvertError) Error() string {
	return "dem: " + e.Op + ": " + e.Err.Error()
}

func (e *ConvertError) Unwrap() error {
	return e.Err
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &ConvertError{Op: op, Err: err}
}
