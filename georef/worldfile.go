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
	"fmt"
	"io"

	"seehuhn.de/go/dem"
)

// WriteWorldFile writes the six-line ESRI world file for a raster with
// transform g.  Unlike g, a world file refers to the centre of the
// top-left pixel.
func WriteWorldFile(w io.Writer, g dem.GeoTransform) error {
	t := g.GDAL()
	x0, y0 := g.Apply(0.5, 0.5)
	_, err := fmt.Fprintf(w, "%.10f\n%.10f\n%.10f\n%.10f\n%.10f\n%.10f\n",
		t[1], t[4], t[2], t[5], x0, y0)
	return err
}
