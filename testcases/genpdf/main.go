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

// Genpdf writes a PDF preview of every test case, showing the resampled
// raster with the triangle mesh on top.  If Ghostscript is installed, each
// PDF is also rendered to PNG.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"os/exec"
	"path/filepath"
	"slices"

	"seehuhn.de/go/dem"
	"seehuhn.de/go/dem/config"
	"seehuhn.de/go/dem/preview"
	"seehuhn.de/go/dem/testcases"
)

func main() {
	configFile := flag.String("config", "", "TOML configuration file")
	outDir := flag.String("out", "testdata/preview", "output directory")
	png := flag.Bool("png", true, "render the PDF files to PNG using Ghostscript")
	faces := flag.Bool("faces", false, "shade mesh triangles instead of raster cells")
	flag.Parse()

	dem.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	cfg := config.Default()
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			panic(err)
		}
	}
	opt, err := cfg.Options()
	if err != nil {
		panic(err)
	}

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		panic(err)
	}
	gs, err := exec.LookPath("gs")
	if *png && err != nil {
		dem.Logger().Warn("Ghostscript not found, skipping PNG output")
		*png = false
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			pdfPath := filepath.Join(*outDir, name+".pdf")
			pngPath := filepath.Join(*outDir, name+".png")

			if err := generatePDF(tc, opt, pdfPath, *faces); err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
			if *png {
				if err := renderPNG(gs, pdfPath, pngPath); err != nil {
					panic(fmt.Errorf("%s: %w", name, err))
				}
			}
		}
	}
}

func generatePDF(tc testcases.TestCase, base *dem.Options, pdfPath string, faces bool) error {
	opt := *base
	if opt.Spacing == 0 {
		opt.Spacing = tc.Spacing
	}
	pts, elev := tc.Grids(opt.Missing)

	res, err := dem.MakeDEM(pts, elev, &opt)
	if err != nil {
		return err
	}
	tm, err := dem.Tessellate(pts, elev, opt.Mesh, opt.Missing)
	if err != nil {
		return err
	}
	return preview.WritePDF(pdfPath, res, &preview.PDFOptions{Mesh: tm, Faces: faces})
}

func renderPNG(gs, pdfPath, pngPath string) error {
	// -sDEVICE=pnggray: 8-bit grayscale
	// -r72: 72 DPI (1 point = 1 pixel)
	cmd := exec.Command(
		gs, "-q",
		"-sDEVICE=pnggray",
		"-r72",
		"-dGraphicsAlphaBits=4",
		"-o", pngPath,
		pdfPath,
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
