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

// Package georef writes rasters in georeferenced container formats.
//
// The ENVI writer produces a raw band file and a separate text header.
// Orthoimages can also be written as 8-bit TIFF with an ESRI world file,
// elevation models as ESRI ASCII grids.
package georef

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"seehuhn.de/go/dem"
	"seehuhn.de/go/dem/grid"
)

// DataType is an ENVI band data type code.
type DataType int

// ENVI data type codes used by this package.
const (
	Byte    DataType = 1
	Float32 DataType = 4
)

func (d DataType) String() string {
	switch d {
	case Byte:
		return "byte"
	case Float32:
		return "float32"
	default:
		return fmt.Sprintf("DataType(%d)", int(d))
	}
}

// Header describes an ENVI raster with one band.
type Header struct {
	Width, Height int
	Spacing       float64

	// Bounds is the extent of the raster, ZMin and ZMax the value range.
	Bounds dem.BoundingBox3D

	// Default is the value of cells outside the data.
	Default float64

	DataType DataType

	// Datum and Units go into the "map info" field.
	Datum string
	Units string
}

// Conventions for planetary elevation models in geographic coordinates.
const (
	DefaultDatum = "Mars IAU 2000 Areoid"
	DefaultUnits = "Degrees"
)

// NewHeader returns the header for a conversion result.
func NewHeader(res *dem.Result, dt DataType) *Header {
	return &Header{
		Width:    res.Width,
		Height:   res.Height,
		Spacing:  res.Spacing,
		Bounds:   res.Bounds,
		Default:  res.Default,
		DataType: dt,
		Datum:    DefaultDatum,
		Units:    DefaultUnits,
	}
}

// WriteTo writes the header in ENVI text format.
//
// The map info field anchors the centre of the top-left pixel, which ENVI
// addresses as pixel (1.5, 1.5).
func (h *Header) WriteTo(w io.Writer) (int64, error) {
	if h.DataType != Byte && h.DataType != Float32 {
		return 0, fmt.Errorf("georef: unsupported ENVI data type %d", int(h.DataType))
	}
	b := h.Bounds
	cw := &countingWriter{w: w}
	bw := bufio.NewWriter(cw)

	fmt.Fprintln(bw, "ENVI")
	fmt.Fprintln(bw, "description = {")
	fmt.Fprintln(bw, "   Raster resampled from a gridded point cloud.")
	fmt.Fprintln(bw, "   Cell values are linear interpolations over a triangulation")
	fmt.Fprintln(bw, "   of the source grid, sampled at the cell centres.")
	fmt.Fprintln(bw, "   ")
	fmt.Fprintln(bw, "   Bounding box:")
	fmt.Fprintf(bw, "     Minimum X (left)    = %f\n", b.XMin)
	fmt.Fprintf(bw, "     Minimum Y (top)     = %f\n", b.YMax)
	fmt.Fprintf(bw, "     Maximum X (right)   = %f\n", b.XMax)
	fmt.Fprintf(bw, "     Maximum Y (bottom)  = %f\n", b.YMin)
	fmt.Fprintf(bw, "     Minimum Z           = %f\n", b.ZMin)
	fmt.Fprintf(bw, "     Maximum Z           = %f\n", b.ZMax)
	fmt.Fprintf(bw, "     Default Z           = %f\n", h.Default)
	fmt.Fprintln(bw, "}")
	fmt.Fprintf(bw, "samples = %d\n", h.Width)
	fmt.Fprintf(bw, "lines   = %d\n", h.Height)
	fmt.Fprintln(bw, "bands   = 1")
	fmt.Fprintln(bw, "header offset = 0")
	fmt.Fprintf(bw, "map info = { Geographic Lat/Lon, 1.5, 1.5, %f, %f, %f, %f, %s, units=%s}\n",
		b.XMin+h.Spacing/2, b.YMax-h.Spacing/2, h.Spacing, h.Spacing, h.Datum, h.Units)
	fmt.Fprintln(bw, "file type = ENVI Standard")
	fmt.Fprintf(bw, "data type = %d\n", int(h.DataType))
	fmt.Fprintln(bw, "interleave = bsq")
	fmt.Fprintln(bw, "byte order = 0")
	fmt.Fprintln(bw)

	err := bw.Flush()
	return cw.n, err
}

// WriteFloat32 writes the cells of raster as little-endian IEEE 754
// values, row 0 first.
func WriteFloat32(w io.Writer, raster *grid.Grid[float32]) error {
	bw := bufio.NewWriter(w)
	for row := range raster.Height {
		if err := binary.Write(bw, binary.LittleEndian, raster.Row(row)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteUint8 writes the cells of img, row 0 first.
func WriteUint8(w io.Writer, img *grid.Grid[uint8]) error {
	_, err := w.Write(img.Pix)
	return err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
