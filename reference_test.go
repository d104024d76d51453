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

package dem_test

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"maps"
	"math"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"seehuhn.de/go/dem"
	"seehuhn.de/go/dem/grid"
	"seehuhn.de/go/dem/mesh"
	"seehuhn.de/go/dem/testcases"
)

// outside marks raster cells not covered by the mesh.
const outside = -12345

func TestAgainstSurface(t *testing.T) {
	builders := []struct {
		name string
		b    mesh.Builder
	}{
		{"uniform", mesh.Uniform{HStep: 1, VStep: 1}},
		{"adaptive", mesh.Adaptive{Tolerance: 0.01}},
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			for _, b := range builders {
				name := category + "_" + tc.Name + "_" + b.name
				t.Run(name, func(t *testing.T) {
					opt := dem.DefaultOptions()
					opt.Spacing = tc.Spacing
					opt.Default = dem.Float(outside)
					opt.Mesh = b.b

					pts, elev := tc.Grids(opt.Missing)
					res, err := dem.Convert(pts, elev, opt)
					if err != nil {
						t.Fatal(err)
					}

					if tc.Wraps {
						if res.Topology.OK() {
							t.Error("wrap-around not detected")
						}
						return
					}
					if !res.Topology.OK() {
						t.Errorf("unexpected topology problem %+v", res.Topology)
					}
					if err := compareSurface(name, res, tc.Surface); err != nil {
						t.Error(err)
					}
				})
			}
		}
	}
}

// compareSurface checks the covered cells of res against the exact
// surface at the cell centres.  Errors are measured relative to the
// elevation range of the data.
func compareSurface(name string, res *dem.Result, surface func(x, y float64) float64) error {
	zRange := max(res.Bounds.ZMax-res.Bounds.ZMin, 1)

	want := make([]float64, len(res.Raster.Pix))
	var errs []float64
	for row := range res.Height {
		for col := range res.Width {
			i := row*res.Width + col
			x, y := res.Transform.Apply(float64(col)+0.5, float64(row)+0.5)
			want[i] = surface(x, y)
			got := float64(res.Raster.Pix[i])
			if got == outside {
				want[i] = outside
				continue
			}
			errs = append(errs, math.Abs(got-want[i])/zRange)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	sort.Float64s(errs)

	p95 := errs[int(math.Round(0.95*float64(len(errs)-1)))]
	worst := errs[len(errs)-1]

	// - at least 95% of the cells are within 1% of the range
	// - no cell is off by more than 5% of the range
	var failures []string
	if p95 > 0.01 {
		failures = append(failures, fmt.Sprintf("95th percentile error is %.4f (want <= 0.01)", p95))
	}
	if worst > 0.05 {
		failures = append(failures, fmt.Sprintf("largest error is %.4f (want <= 0.05)", worst))
	}
	if len(failures) > 0 {
		_ = writeDiffImage(name, res, want)
		return fmt.Errorf("%s", strings.Join(failures, "; "))
	}
	return nil
}

// writeDiffImage writes a 3-panel image to debug/: the raster (left),
// the error (middle, green where too low, red where too high) and the
// exact surface (right).
func writeDiffImage(name string, res *dem.Result, want []float64) (err error) {
	if err := os.MkdirAll("debug", 0755); err != nil {
		return err
	}

	w, h := res.Width, res.Height
	lo, hi := res.Bounds.ZMin, res.Bounds.ZMax
	gray := func(z float64) uint8 {
		if z == outside || hi <= lo {
			return 0
		}
		return uint8(max(0, min(255, 255*(z-lo)/(hi-lo))))
	}

	img := image.NewRGBA(image.Rect(0, 0, w*3, h))
	for y := range h {
		for x := range w {
			i := y*w + x
			got := float64(res.Raster.Pix[i])

			a := gray(got)
			img.Set(x, y, color.RGBA{R: a, G: a, B: a, A: 255})

			diff := 0.0
			if got != outside && hi > lo {
				diff = 255 * 20 * (want[i] - got) / (hi - lo)
			}
			var c color.RGBA
			switch {
			case diff > 0:
				c = color.RGBA{G: uint8(min(255, diff)), A: 255}
			case diff < 0:
				c = color.RGBA{R: uint8(min(255, -diff)), A: 255}
			default:
				c = color.RGBA{A: 255}
			}
			img.Set(x+w, y, c)

			e := gray(want[i])
			img.Set(x+2*w, y, color.RGBA{R: e, G: e, B: e, A: 255})
		}
	}

	f, err := os.Create(filepath.Join("debug", name+".png"))
	if err != nil {
		return err
	}
	err = png.Encode(f, img)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

// TestNoDataConventions runs the cases with missing samples under both
// kinds of sentinel and checks that the results agree.
func TestNoDataConventions(t *testing.T) {
	for _, tc := range testcases.All["holes"] {
		t.Run(tc.Name, func(t *testing.T) {
			var results []*dem.Result
			for _, nodata := range []grid.NoData{grid.MinFloat32, grid.NaN()} {
				opt := dem.DefaultOptions()
				opt.Spacing = tc.Spacing
				opt.Missing = nodata
				pts, elev := tc.Grids(nodata)
				res, err := dem.Convert(pts, elev, opt)
				if err != nil {
					t.Fatal(err)
				}
				results = append(results, res)
			}
			a, b := results[0], results[1]
			if a.Width != b.Width || a.Height != b.Height || a.Samples != b.Samples {
				t.Fatalf("results differ: %dx%d (%d samples) vs %dx%d (%d samples)",
					a.Width, a.Height, a.Samples, b.Width, b.Height, b.Samples)
			}
			if !slices.Equal(a.Raster.Pix, b.Raster.Pix) {
				t.Error("rasters differ")
			}
		})
	}
}

// BenchmarkConvertAll measures the conversion of all test cases, with the
// input grids prepared up front.
func BenchmarkConvertAll(b *testing.B) {
	type input struct {
		spacing float64
		pts     *grid.Grid[r3.Vec]
		elev    *grid.Grid[float64]
	}
	var inputs []input
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			pts, elev := tc.Grids(grid.MinFloat32)
			inputs = append(inputs, input{tc.Spacing, pts, elev})
		}
	}

	b.ReportAllocs()
	for b.Loop() {
		for _, in := range inputs {
			opt := dem.DefaultOptions()
			opt.Spacing = in.spacing
			if _, err := dem.Convert(in.pts, in.elev, opt); err != nil {
				b.Fatal(err)
			}
		}
	}
}
