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
	"bufio"
	"fmt"
	"io"
	"strconv"

	"seehuhn.de/go/dem"
)

// WriteASCIIGrid writes the raster of res in ESRI ASCII grid format.
// If nodata is not nil, it is declared as NODATA_value; convert with
// [dem.Options.Default] set to the same value to mark uncovered cells.
func WriteASCIIGrid(w io.Writer, res *dem.Result, nodata *float64) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "ncols %d\n", res.Width)
	fmt.Fprintf(bw, "nrows %d\n", res.Height)
	fmt.Fprintf(bw, "xllcorner %s\n", formatFloat(res.Bounds.XMin))
	fmt.Fprintf(bw, "yllcorner %s\n", formatFloat(res.Bounds.YMin))
	fmt.Fprintf(bw, "cellsize %s\n", formatFloat(res.Spacing))
	if nodata != nil {
		fmt.Fprintf(bw, "NODATA_value %s\n", formatFloat(*nodata))
	}

	var buf []byte
	for row := range res.Height {
		buf = buf[:0]
		for col, v := range res.Raster.Row(row) {
			if col > 0 {
				buf = append(buf, ' ')
			}
			buf = strconv.AppendFloat(buf, float64(v), 'g', -1, 32)
		}
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}
