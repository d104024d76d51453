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

package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/dem/grid"
	"seehuhn.de/go/dem/mesh"
)

const sample = `
[dem]
spacing = 0.5
missing = "nan"
default = -9999.0
max_cells = 1000000

[mesh]
kind = "adaptive"
tolerance = 0.25
max_triangles = 5000

[output]
dir = "products"
formats = ["envi", "asc", "pdf"]
`

func TestParse(t *testing.T) {
	c, err := Parse(sample)
	require.NoError(t, err)

	opt, err := c.Options()
	require.NoError(t, err)
	assert.Equal(t, 0.5, opt.Spacing)
	assert.True(t, math.IsNaN(float64(opt.Missing)))
	assert.Equal(t, grid.MinFloat32, opt.RasterMissing)
	require.NotNil(t, opt.Default)
	assert.Equal(t, -9999.0, *opt.Default)
	assert.Equal(t, 1000000, opt.MaxCells)
	assert.Equal(t, mesh.Adaptive{Tolerance: 0.25, MaxTriangles: 5000}, opt.Mesh)

	assert.True(t, c.Wants(FormatASC))
	assert.False(t, c.Wants(FormatTIFF))
}

func TestDefaults(t *testing.T) {
	c, err := Parse("")
	require.NoError(t, err)
	opt, err := c.Options()
	require.NoError(t, err)
	assert.Equal(t, grid.MinFloat32, opt.Missing)
	assert.Nil(t, opt.Default)
	assert.Equal(t, mesh.Uniform{HStep: 1, VStep: 1}, opt.Mesh)
	assert.Equal(t, []string{FormatENVI, FormatTIFF}, c.Output.Formats)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name, text string
	}{
		{"syntax", "[dem\n"},
		{"unknown key", "[dem]\nspcing = 1\n"},
		{"negative spacing", "[dem]\nspacing = -1\n"},
		{"bad sentinel", "[dem]\nmissing = \"none\"\n"},
		{"bad mesh", "[mesh]\nkind = \"delaunay\"\n"},
		{"bad step", "[mesh]\nhstep = 0\n"},
		{"bad format", "[output]\nformats = [\"jpeg\"]\n"},
		{"cells", "[dem]\nmax_cells = 0\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.text)
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "dem.toml")
	require.NoError(t, os.WriteFile(name, []byte(sample), 0o644))

	c, err := Load(name)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "products"), c.Output.Dir)

	_, err = Load(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}

func TestParseNoData(t *testing.T) {
	v, err := parseNoData("-3.5")
	require.NoError(t, err)
	assert.Equal(t, grid.NoData(-3.5), v)
}
