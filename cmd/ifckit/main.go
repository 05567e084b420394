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

// Package main implements the ifckit CLI for reading, inspecting, editing,
// and writing IFC/STEP files.
//
// Usage:
//
//	ifckit parse <file.ifc> [--json] [--diagnostics]
//	ifckit inspect <file.ifc> --type IFCWALL [--json]
//	ifckit create --name Demo --out out.ifc
//	ifckit export <file.ifc> --out out.ifc [--visible-only]
//	ifckit merge <a.ifc> <b.ifc>... --out merged.ifc [--strategy keep-first|merge-metadata]
//	ifckit edit <file.ifc> --entity 42 --param Depth --value 3.5 --out out.ifc
package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/ifckit/internal/ui"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// GlobalFlags holds the global CLI flags that apply to all commands.
type GlobalFlags struct {
	JSON    bool
	NoColor bool
	Verbose int
	Quiet   bool
}

func main() {
	var (
		showVersion = flag.BoolP("version", "V", false, "Show version and exit")
		configPath  = flag.StringP("config", "c", "", "Path to .ifckit/project.yaml")
		jsonOutput  = flag.Bool("json", false, "Output in JSON format (for applicable commands)")
		noColor     = flag.Bool("no-color", false, "Disable color output")
		verbose     = flag.CountP("verbose", "v", "Increase verbosity (-v for info, -vv for debug)")
		quiet       = flag.BoolP("quiet", "q", false, "Suppress non-essential output")
	)

	// Stop parsing at the first non-flag argument so subcommand-specific
	// flags (e.g. "export --visible-only") reach the subcommand parser
	// rather than being rejected here.
	flag.SetInterspersed(false)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `ifckit - an IFC/STEP reading, editing, and writing toolkit

Usage:
  ifckit <command> [options]

Commands:
  parse     Parse a file and report entity/diagnostic counts
  inspect   List entities of a given type
  create    Build a new model from scratch
  export    Re-serialize a parsed model, optionally visible-only
  merge     Federate several models into one file
  edit      Apply a single geometry parameter edit and export the result

Global Options:
  --json            Output in JSON format (for applicable commands)
  --no-color        Disable color output (respects NO_COLOR env var)
  -v, --verbose     Increase verbosity (-v for info, -vv for debug)
  -q, --quiet       Suppress non-essential output
  -c, --config      Path to .ifckit/project.yaml
  -V, --version     Show version and exit

Examples:
  ifckit parse model.ifc --diagnostics
  ifckit inspect model.ifc --type IFCWALL --json
  ifckit create --name Demo --out demo.ifc
  ifckit export model.ifc --out out.ifc --visible-only
  ifckit merge a.ifc b.ifc --out merged.ifc --strategy merge-metadata
  ifckit edit model.ifc --entity 42 --param Depth --value 3.5 --out edited.ifc

For detailed command help: ifckit <command> --help

`)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("ifckit version %s\n", version)
		fmt.Printf("commit: %s\n", commit)
		fmt.Printf("built: %s\n", date)
		os.Exit(0)
	}

	if os.Getenv("NO_COLOR") != "" {
		*noColor = true
	}

	if *quiet && *verbose > 0 {
		fmt.Fprintf(os.Stderr, "Error: cannot use --quiet and --verbose together\n")
		os.Exit(1)
	}
	if *jsonOutput {
		*quiet = true
	}

	globals := GlobalFlags{
		JSON:    *jsonOutput,
		NoColor: *noColor,
		Verbose: *verbose,
		Quiet:   *quiet,
	}

	ui.InitColors(globals.NoColor)

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(1)
	}

	command := args[0]
	cmdArgs := args[1:]

	switch command {
	case "parse":
		runParse(cmdArgs, *configPath, globals)
	case "inspect":
		runInspect(cmdArgs, *configPath, globals)
	case "create":
		runCreate(cmdArgs, *configPath, globals)
	case "export":
		runExport(cmdArgs, *configPath, globals)
	case "merge":
		runMerge(cmdArgs, *configPath, globals)
	case "edit":
		runEdit(cmdArgs, *configPath, globals)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		flag.Usage()
		os.Exit(1)
	}
}
