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

// Package config reads the TOML configuration of the command line tools.
//
// A configuration file looks like this; every key is optional:
//
//	[dem]
//	spacing = 0.5        # 0 selects the spacing automatically
//	missing = "min"      # "min" (-MaxFloat32), "nan" or a number
//	default = -9999      # fill value, omit for the lowest elevation
//	max_cells = 100000000
//
//	[mesh]
//	kind = "adaptive"    # "uniform" or "adaptive"
//	hstep = 1
//	vstep = 1
//	tolerance = 0.01
//	max_triangles = 0
//
//	[output]
//	dir = "out"
//	formats = ["envi", "asc", "tiff", "vrml", "png", "pdf"]
package config

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"seehuhn.de/go/dem"
	"seehuhn.de/go/dem/grid"
	"seehuhn.de/go/dem/mesh"
)

// Config is the contents of a configuration file.
type Config struct {
	DEM    DEMConfig
	Mesh   MeshConfig
	Output OutputConfig
}

// DEMConfig holds the conversion settings.
type DEMConfig struct {
	Spacing  float64
	Missing  string
	Default  *float64
	MaxCells int `toml:"max_cells"`
}

// MeshConfig selects the mesh builder.
type MeshConfig struct {
	Kind         string
	HStep        int     `toml:"hstep"`
	VStep        int     `toml:"vstep"`
	Tolerance    float64 `toml:"tolerance"`
	MaxTriangles int     `toml:"max_triangles"`
}

// OutputConfig describes the files written by the tools.
type OutputConfig struct {
	Dir     string
	Formats []string
}

// Output formats.
const (
	FormatENVI = "envi"
	FormatASC  = "asc"
	FormatTIFF = "tiff"
	FormatVRML = "vrml"
	FormatIV   = "inventor"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
)

// Mesh kinds.
const (
	meshUniform = "uniform"
	meshAdapt   = "adaptive"
)

var knownFormats = []string{FormatENVI, FormatASC, FormatTIFF, FormatVRML, FormatIV, FormatPNG, FormatPDF}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		DEM: DEMConfig{
			Missing:  "min",
			MaxCells: 1 << 28,
		},
		Mesh: MeshConfig{
			Kind:  meshUniform,
			HStep: 1,
			VStep: 1,
		},
		Output: OutputConfig{
			Dir:     ".",
			Formats: []string{FormatENVI, FormatTIFF},
		},
	}
}

// Load reads filename on top of the defaults.  Unknown keys are an error.
// A relative output directory is interpreted relative to the directory
// containing the file.
func Load(filename string) (*Config, error) {
	c := Default()
	md, err := toml.DecodeFile(filename, c)
	if err != nil {
		return nil, fmt.Errorf("could not decode TOML config: %w", err)
	}
	if err := checkUndecoded(md); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	if !filepath.IsAbs(c.Output.Dir) {
		c.Output.Dir = filepath.Join(filepath.Dir(filename), c.Output.Dir)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return c, nil
}

// Parse decodes a configuration from TOML text on top of the defaults.
func Parse(text string) (*Config, error) {
	c := Default()
	md, err := toml.Decode(text, c)
	if err != nil {
		return nil, fmt.Errorf("could not decode TOML config: %w", err)
	}
	if err := checkUndecoded(md); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func checkUndecoded(md toml.MetaData) error {
	keys := md.Undecoded()
	if len(keys) == 0 {
		return nil
	}
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}
	return fmt.Errorf("unknown keys %s", strings.Join(names, ", "))
}

// Validate checks the settings for consistency.
func (c *Config) Validate() error {
	var errs []error
	if math.IsNaN(c.DEM.Spacing) || c.DEM.Spacing < 0 {
		errs = append(errs, fmt.Errorf("dem.spacing: invalid value %g", c.DEM.Spacing))
	}
	if c.DEM.MaxCells <= 0 {
		errs = append(errs, fmt.Errorf("dem.max_cells: must be positive, got %d", c.DEM.MaxCells))
	}
	if _, err := parseNoData(c.DEM.Missing); err != nil {
		errs = append(errs, fmt.Errorf("dem.missing: %w", err))
	}
	if _, err := c.Mesh.Builder(); err != nil {
		errs = append(errs, err)
	}
	for _, f := range c.Output.Formats {
		if !slices.Contains(knownFormats, f) {
			errs = append(errs, fmt.Errorf("output.formats: unknown format %q", f))
		}
	}
	return errors.Join(errs...)
}

// Options returns the conversion options described by c.
func (c *Config) Options() (*dem.Options, error) {
	missing, err := parseNoData(c.DEM.Missing)
	if err != nil {
		return nil, err
	}
	b, err := c.Mesh.Builder()
	if err != nil {
		return nil, err
	}

	opt := dem.DefaultOptions()
	opt.Spacing = c.DEM.Spacing
	opt.Missing = missing
	opt.MaxCells = c.DEM.MaxCells
	opt.Mesh = b
	if c.DEM.Default != nil {
		opt.Default = dem.Float(*c.DEM.Default)
	}
	return opt, nil
}

// Wants reports whether format is among the requested output formats.
func (c *Config) Wants(format string) bool {
	return slices.Contains(c.Output.Formats, format)
}

// Builder returns the mesh builder described by m.
func (m MeshConfig) Builder() (mesh.Builder, error) {
	switch m.Kind {
	case "", meshUniform:
		if m.HStep < 1 || m.VStep < 1 {
			return nil, fmt.Errorf("mesh: steps must be at least 1, got %dx%d", m.HStep, m.VStep)
		}
		return mesh.Uniform{HStep: m.HStep, VStep: m.VStep}, nil
	case meshAdapt:
		if m.Tolerance < 0 || math.IsNaN(m.Tolerance) {
			return nil, fmt.Errorf("mesh: invalid tolerance %g", m.Tolerance)
		}
		return mesh.Adaptive{Tolerance: m.Tolerance, MaxTriangles: m.MaxTriangles}, nil
	default:
		return nil, fmt.Errorf("mesh: unknown kind %q", m.Kind)
	}
}

func parseNoData(s string) (grid.NoData, error) {
	switch strings.ToLower(s) {
	case "", "min":
		return grid.MinFloat32, nil
	case "nan":
		return grid.NaN(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid sentinel %q", s)
	}
	return grid.NoData(v), nil
}
