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

// Export converts every test case into elevation and orthoimage products.
//
// Usage:
//
//	export [-config dem.toml] [-out dir] [-case name] [-v]
//
// The output directory receives one set of files per test case, named
// <category>_<case>, and an index testcases.json describing them.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"

	"seehuhn.de/go/dem"
	"seehuhn.de/go/dem/config"
	"seehuhn.de/go/dem/georef"
	"seehuhn.de/go/dem/mesh"
	"seehuhn.de/go/dem/preview"
	"seehuhn.de/go/dem/testcases"
)

func main() {
	configFile := flag.String("config", "", "TOML configuration file")
	outDir := flag.String("out", "", "output directory (overrides the configuration)")
	only := flag.String("case", "", "only export test cases whose name contains this string")
	verbose := flag.Bool("v", false, "log debug messages")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	dem.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(*configFile, *outDir, *only); err != nil {
		fmt.Fprintln(os.Stderr, "export:", err)
		os.Exit(1)
	}
}

func run(configFile, outDir, only string) error {
	cfg := config.Default()
	if configFile != "" {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return err
		}
	}
	if outDir != "" {
		cfg.Output.Dir = outDir
	}
	opt, err := cfg.Options()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
		return err
	}

	var index struct {
		TestCases []jsonTestCase `json:"testcases"`
	}
	var total uint64
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			if !strings.Contains(name, only) {
				continue
			}
			entry, err := export(cfg, opt, name, tc)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			for _, f := range entry.Files {
				if fi, err := os.Stat(filepath.Join(cfg.Output.Dir, f)); err == nil {
					total += uint64(fi.Size())
				}
			}
			index.TestCases = append(index.TestCases, entry)
		}
	}

	f, err := os.Create(filepath.Join(cfg.Output.Dir, "testcases.json"))
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(index); err != nil {
		return err
	}

	dem.Logger().Info("export complete",
		"cases", len(index.TestCases), "dir", cfg.Output.Dir, "size", humanize.Bytes(total))
	return nil
}

type jsonTestCase struct {
	Name      string     `json:"name"`
	Width     int        `json:"width"`
	Height    int        `json:"height"`
	Spacing   float64    `json:"spacing"`
	Raster    [2]int     `json:"raster"`
	GeoTrans  [6]float64 `json:"geotransform"`
	Samples   int        `json:"samples"`
	Triangles int        `json:"triangles"`
	Filled    int        `json:"filled"`
	Topology  string     `json:"topology,omitempty"`
	Files     []string   `json:"files"`
}

func export(cfg *config.Config, base *dem.Options, name string, tc testcases.TestCase) (jsonTestCase, error) {
	opt := *base
	if opt.Spacing == 0 {
		opt.Spacing = tc.Spacing
	}
	pts, elev := tc.Grids(opt.Missing)
	prefix := filepath.Join(cfg.Output.Dir, name)

	// An explicit fill value in the configuration overrides the DEM
	// convention of filling with the lowest elevation.
	convert := dem.MakeDEM
	if opt.Default != nil {
		convert = dem.Convert
	}
	res, err := convert(pts, elev, &opt)
	if err != nil {
		return jsonTestCase{}, err
	}
	entry := jsonTestCase{
		Name:      name,
		Width:     tc.Width,
		Height:    tc.Height,
		Spacing:   res.Spacing,
		Raster:    [2]int{res.Width, res.Height},
		GeoTrans:  res.Transform.GDAL(),
		Samples:   res.Samples,
		Triangles: res.Triangles,
		Filled:    res.Filled,
	}
	if !res.Topology.OK() {
		entry.Topology = fmt.Sprintf("%d folded, %d wrapped", res.Topology.Folded, res.Topology.Wrapped)
	}

	var files []string
	if cfg.Wants(config.FormatENVI) || cfg.Wants(config.FormatASC) {
		fs, err := georef.WriteDEM(prefix, res, cfg.Wants(config.FormatASC))
		if err != nil {
			return entry, err
		}
		files = append(files, fs...)
	}

	var texture *mesh.Texture
	if cfg.Wants(config.FormatTIFF) {
		drgRes, img, err := dem.MakeDRG(pts, tc.Texture(), &opt)
		if err != nil {
			return entry, err
		}
		fs, err := georef.WriteDRG(prefix+"_drg", drgRes, img)
		if err != nil {
			return entry, err
		}
		files = append(files, fs...)
		ext := drgRes.Extent()
		texture = &mesh.Texture{File: filepath.Base(prefix) + "_drg.tif", Extent: &ext}
	}

	if cfg.Wants(config.FormatVRML) || cfg.Wants(config.FormatIV) {
		m, err := opt.Mesh.Build(pts, opt.Missing)
		if err != nil {
			return entry, err
		}
		if cfg.Wants(config.FormatVRML) {
			files = append(files, prefix+".wrl")
			err = writeFile(prefix+".wrl", func(w io.Writer) error {
				return mesh.WriteVRML(w, m, pts, texture)
			})
		}
		if err == nil && cfg.Wants(config.FormatIV) {
			files = append(files, prefix+".iv")
			err = writeFile(prefix+".iv", func(w io.Writer) error {
				return mesh.WriteInventor(w, m, pts, texture)
			})
		}
		if err != nil {
			return entry, err
		}
	}

	if cfg.Wants(config.FormatPNG) {
		files = append(files, prefix+".png")
		err := writeFile(prefix+".png", func(w io.Writer) error {
			return preview.WriteHeatMap(w, res, name, "png")
		})
		if err != nil {
			return entry, err
		}
	}

	for _, f := range files {
		entry.Files = append(entry.Files, filepath.Base(f))
	}
	return entry, nil
}

func writeFile(name string, write func(io.Writer) error) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	err = write(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
