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
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/gonum/spatial/r3"

	"seehuhn.de/go/dem/grid"
)

func TestFindBoundsRandom(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	nodata := grid.MinFloat32
	for trial := range 20 {
		w, h := 1+rng.IntN(20), 1+rng.IntN(20)
		pts, err := grid.New[r3.Vec](w, h)
		if err != nil {
			t.Fatal(err)
		}

		var xs, ys, zs []float64
		for i := range pts.Pix {
			if rng.IntN(4) == 0 {
				pts.Pix[i] = nodata.Point()
				continue
			}
			p := r3.Vec{X: rng.NormFloat64() * 100, Y: rng.NormFloat64(), Z: rng.Float64() - 3}
			pts.Pix[i] = p
			xs, ys, zs = append(xs, p.X), append(ys, p.Y), append(zs, p.Z)
		}
		if len(xs) == 0 {
			continue
		}

		want := BoundingBox3D{
			XMin: slicesMin(xs), XMax: slicesMax(xs),
			YMin: slicesMin(ys), YMax: slicesMax(ys),
			ZMin: slicesMin(zs), ZMax: slicesMax(zs),
		}
		got, n, err := FindBounds(pts, nodata)
		if err != nil {
			t.Fatal(err)
		}
		if n != len(xs) {
			t.Errorf("trial %d: %d samples, want %d", trial, n, len(xs))
		}
		if d := cmp.Diff(want, got); d != "" {
			t.Errorf("trial %d: bounds mismatch (-want +got):\n%s", trial, d)
		}
	}
}

func slicesMin(v []float64) float64 {
	m := v[0]
	for _, x := range v[1:] {
		m = math.Min(m, x)
	}
	return m
}

func slicesMax(v []float64) float64 {
	m := v[0]
	for _, x := range v[1:] {
		m = math.Max(m, x)
	}
	return m
}

// A single point must set both the minimum and the maximum of every axis.
func TestFindBoundsSinglePoint(t *testing.T) {
	nodata := grid.MinFloat32
	pts, err := grid.FromRows([][]r3.Vec{
		{nodata.Point(), {X: 4, Y: -2, Z: 9}},
	})
	if err != nil {
		t.Fatal(err)
	}
	got, n, err := FindBounds(pts, nodata)
	if err != nil {
		t.Fatal(err)
	}
	want := BoundingBox3D{XMin: 4, XMax: 4, YMin: -2, YMax: -2, ZMin: 9, ZMax: 9}
	if n != 1 || got != want {
		t.Errorf("got %v (%d samples), want %v", got, n, want)
	}
}

func TestFindBoundsSkipsInvalid(t *testing.T) {
	nodata := grid.MinFloat32
	pts, err := grid.FromRows([][]r3.Vec{
		{{X: 0, Y: 0, Z: 0}, {X: 1, Y: float64(nodata), Z: 100}},
		{{X: math.Inf(1), Y: 1, Z: 1}, {X: 2, Y: 3, Z: math.NaN()}},
	})
	if err != nil {
		t.Fatal(err)
	}
	got, n, err := FindBounds(pts, nodata)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 || got != (BoundingBox3D{}) {
		t.Errorf("got %v (%d samples), want the origin only", got, n)
	}
}

func TestFindBoundsEmpty(t *testing.T) {
	nodata := grid.MinFloat32
	pts, err := grid.New[r3.Vec](3, 2)
	if err != nil {
		t.Fatal(err)
	}
	pts.Fill(nodata.Point())
	b, n, err := FindBounds(pts, nodata)
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("got error %v, want ErrEmptyInput", err)
	}
	if n != 0 || !b.IsEmpty() {
		t.Errorf("got %v (%d samples), want an empty box", b, n)
	}
}

func TestResolveSpacing(t *testing.T) {
	b := BoundingBox3D{XMin: 10, XMax: 20, YMin: -5, YMax: 0, ZMin: 1, ZMax: 2}

	tests := []struct {
		name      string
		requested float64
		source    int
		want      Layout
	}{
		{"explicit", 0.5, 0,
			Layout{Spacing: 0.5, Width: 21, Height: 11,
				Bounds: BoundingBox3D{XMin: 10, XMax: 20.5, YMin: -5, YMax: 0.5, ZMin: 1, ZMax: 2}}},
		{"automatic", 0, 4,
			Layout{Spacing: 2.5, Width: 5, Height: 3,
				Bounds: BoundingBox3D{XMin: 10, XMax: 22.5, YMin: -5, YMax: 2.5, ZMin: 1, ZMax: 2}}},
		{"coarse", 100, 0,
			Layout{Spacing: 100, Width: 1, Height: 1,
				Bounds: BoundingBox3D{XMin: 10, XMax: 110, YMin: -5, YMax: 95, ZMin: 1, ZMax: 2}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ResolveSpacing(b, tc.requested, tc.source, 1<<20)
			if err != nil {
				t.Fatal(err)
			}
			if d := cmp.Diff(&tc.want, got); d != "" {
				t.Errorf("layout mismatch (-want +got):\n%s", d)
			}
		})
	}
}

func TestResolveSpacingHalving(t *testing.T) {
	b := BoundingBox3D{XMin: 0.3, XMax: 17.9, YMin: -2.2, YMax: 3.1}
	for _, s := range []float64{3, 1, 0.7, 0.13} {
		l1, err := ResolveSpacing(b, s, 0, 1<<30)
		if err != nil {
			t.Fatal(err)
		}
		l2, err := ResolveSpacing(b, s/2, 0, 1<<30)
		if err != nil {
			t.Fatal(err)
		}
		if d := l2.Width - 2*l1.Width; d < -1 || d > 1 {
			t.Errorf("spacing %g: width %d, halved %d", s, l1.Width, l2.Width)
		}
		if d := l2.Height - 2*l1.Height; d < -1 || d > 1 {
			t.Errorf("spacing %g: height %d, halved %d", s, l1.Height, l2.Height)
		}
		for _, l := range []*Layout{l1, l2} {
			if l.Bounds.XMax != l.Bounds.XMin+float64(l.Width)*l.Spacing ||
				l.Bounds.YMax != l.Bounds.YMin+float64(l.Height)*l.Spacing {
				t.Errorf("spacing %g: bounds %v not snapped", l.Spacing, l.Bounds)
			}
			if l.Bounds.XMax < b.XMax || l.Bounds.YMax < b.YMax {
				t.Errorf("spacing %g: bounds %v do not cover %v", l.Spacing, l.Bounds, b)
			}
		}
	}
}

func TestResolveSpacingErrors(t *testing.T) {
	b := BoundingBox3D{XMin: 0, XMax: 1, YMin: 0, YMax: 1}
	flat := BoundingBox3D{XMin: 2, XMax: 2, YMin: 0, YMax: 1}

	tests := []struct {
		name      string
		b         BoundingBox3D
		requested float64
		want      error
	}{
		{"empty", emptyBounds(), 1, ErrEmptyInput},
		{"negative", b, -0.1, ErrDegenerateGeometry},
		{"infinite", b, math.Inf(1), ErrInvalidInput},
		{"zero extent", flat, 0, ErrDegenerateGeometry},
		{"too large", b, 1e-4, ErrAllocation},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ResolveSpacing(tc.b, tc.requested, 10, 1000)
			if !errors.Is(err, tc.want) {
				t.Errorf("got %v, want %v", err, tc.want)
			}
		})
	}
}
