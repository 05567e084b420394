// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/ifckit/internal/errors"
	"github.com/kraklabs/ifckit/internal/ui"
	"github.com/kraklabs/ifckit/pkg/ifcconfig"
	"github.com/kraklabs/ifckit/pkg/metrics"
	"github.com/kraklabs/ifckit/pkg/stepwriter"
)

// runExport executes `ifckit export <file.ifc> --out out.ifc
// [--visible-only]`: it re-serializes a parsed model, optionally dropping
// entities the model marks invisible unless they're a structural
// prerequisite of something that survives.
func runExport(args []string, configPath string, globals GlobalFlags) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	out := fs.String("out", "", "Output file path (required)")
	visibleOnly := fs.Bool("visible-only", false, "Drop invisible entities, keeping structural prerequisites")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: ifckit export <file.ifc> --out <file.ifc> [options]

Re-serializes a parsed model as ISO-10303-21 text. With --visible-only,
entities the model's whole-file visibility flag reports hidden are dropped
unless they're a structural prerequisite of a retained entity.

Options:
`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < 1 || *out == "" {
		fs.Usage()
		os.Exit(1)
	}
	path := fs.Arg(0)

	reg := metrics.New()
	logger := newLogger(globals)
	m, err := loadModel(path, logger, reg, nil)
	if err != nil {
		errors.FatalError(err, globals.JSON)
	}

	cfg, err := ifcconfig.LoadConfig(configPath)
	if err != nil {
		errors.FatalError(err, globals.JSON)
	}
	opts := writerOptions(cfg, logger, reg)

	exportOpts := stepwriter.ExportOptions{}
	if *visibleOnly {
		// The Model carries only a whole-model Visible flag (no per-entity
		// column); a single-model CLI export can only honor it uniformly.
		exportOpts.VisibleOnly = true
		exportOpts.IsVisible = func(uint32) bool { return m.Visible }
	}

	content, err := stepwriter.Export(m, nil, opts, exportOpts,
		fmt.Sprintf("Exported from %s", path), *out, "ifckit", "ifckit", timeStampNow())
	if err != nil {
		errors.FatalError(errors.NewInternalError(
			"Export failed",
			err.Error(),
			"Pass --config to enable best-effort writing, or report this as a bug",
			err,
		), globals.JSON)
	}

	writeOutput(*out, content, globals)
	if globals.JSON {
		return
	}
	ui.Successf("Exported %s -> %s", path, *out)
}
