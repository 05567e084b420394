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
	"time"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/ifckit/internal/errors"
	"github.com/kraklabs/ifckit/internal/ui"
	"github.com/kraklabs/ifckit/pkg/ifcconfig"
	"github.com/kraklabs/ifckit/pkg/metrics"
	"github.com/kraklabs/ifckit/pkg/stepwriter"
)

// runCreate executes `ifckit create --name Demo --out out.ifc`: it builds a
// fresh model with the Creator path's preamble and a single ground storey.
func runCreate(args []string, configPath string, globals GlobalFlags) {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	name := fs.String("name", "Untitled Project", "Project name")
	site := fs.String("site", "Site", "Site name")
	building := fs.String("building", "Building", "Building name")
	storey := fs.String("storey", "Ground Floor", "Initial storey name")
	out := fs.String("out", "", "Output file path (required)")
	author := fs.String("author", "ifckit", "FILE_NAME author field")
	org := fs.String("organization", "ifckit", "FILE_NAME organization field")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: ifckit create --name <name> --out <file.ifc> [options]

Builds a fresh model from scratch: preamble, one Project/Site/Building
spatial tree, and a single initial storey. Elements are added by a separate
editing session; this command only seeds the empty project.

Options:
`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *out == "" {
		fs.Usage()
		os.Exit(1)
	}

	cfg, err := ifcconfig.LoadConfig(configPath)
	if err != nil {
		errors.FatalError(err, globals.JSON)
	}

	reg := metrics.New()
	logger := newLogger(globals)
	opts := writerOptions(cfg, logger, reg)

	creator, err := stepwriter.NewCreator(opts, stepwriter.ProjectInfo{
		PersonGivenName:    "ifckit",
		PersonFamilyName:   "user",
		OrganizationName:   *org,
		ApplicationName:    "ifckit",
		ApplicationVersion: version,
		ProjectName:        *name,
		SiteName:           *site,
		BuildingName:       *building,
		LengthUnit:         cfg.Units.Length,
		TimeStamp:          time.Now().Unix(),
	})
	if err != nil {
		errors.FatalError(errors.NewInternalError(
			"Cannot initialize writer",
			err.Error(),
			"This is a bug; please report it",
			err,
		), globals.JSON)
	}

	if _, err := creator.AddStorey(*storey, 0); err != nil {
		errors.FatalError(errors.NewInternalError(
			"Cannot add initial storey",
			err.Error(),
			"This is a bug; please report it",
			err,
		), globals.JSON)
	}

	content := creator.Finalize(fmt.Sprintf("Created by ifckit: %s", *name), *out, *author, *org, timeStampNow())
	writeOutput(*out, content, globals)

	if globals.JSON {
		return
	}
	ui.Successf("Created %s", *out)
}
