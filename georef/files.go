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

package georef

import (
	"errors"
	"io"
	"os"

	"github.com/dustin/go-humanize"

	"seehuhn.de/go/dem"
	"seehuhn.de/go/dem/grid"
)

// WriteDEM writes an elevation model as prefix.dem (raw float32 band) and
// prefix.hdr (ENVI header).  If asc is true, prefix.asc is written as
// well.  The names of the files written are returned.
func WriteDEM(prefix string, res *dem.Result, asc bool) ([]string, error) {
	steps := []step{
		{prefix + ".dem", func(w io.Writer) error { return WriteFloat32(w, res.Raster) }},
		{prefix + ".hdr", func(w io.Writer) error {
			_, err := NewHeader(res, Float32).WriteTo(w)
			return err
		}},
	}
	if asc {
		steps = append(steps, step{prefix + ".asc", func(w io.Writer) error {
			return WriteASCIIGrid(w, res, nil)
		}})
	}
	return run(steps)
}

// WriteDRG writes an 8-bit orthoimage as prefix.tif with the world file
// prefix.tfw, and as ENVI prefix.dem with header prefix.hdr.  The names of
// the files written are returned.
func WriteDRG(prefix string, res *dem.Result, img *grid.Grid[uint8]) ([]string, error) {
	if !grid.SameSize(res.Raster, img) {
		return nil, errors.New("georef: image and raster sizes differ")
	}

	steps := []step{
		{prefix + ".tif", func(w io.Writer) error { return WriteTIFF(w, img) }},
		{prefix + ".tfw", func(w io.Writer) error { return WriteWorldFile(w, res.Transform) }},
		{prefix + ".dem", func(w io.Writer) error { return WriteUint8(w, img) }},
		{prefix + ".hdr", func(w io.Writer) error {
			_, err := NewHeader(res, Byte).WriteTo(w)
			return err
		}},
	}
	return run(steps)
}

// step is one output file.
type step struct {
	name  string
	write func(io.Writer) error
}

// run writes the files in order and stops at the first error.  The names
// of all files created are returned.
func run(steps []step) ([]string, error) {
	var files []string
	for _, s := range steps {
		files = append(files, s.name)
		if err := writeFile(s.name, s.write); err != nil {
			return files, err
		}
	}
	return files, nil
}

// writeFile creates name and fills it using write.
func writeFile(name string, write func(io.Writer) error) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if err := write(f); err != nil {
		return err
	}
	if fi, err := f.Stat(); err == nil {
		dem.Logger().Debug("wrote file", "name", name, "size", humanize.Bytes(uint64(fi.Size())))
	}
	return nil
}
