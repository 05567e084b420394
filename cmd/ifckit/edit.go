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
	"strconv"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/ifckit/internal/errors"
	"github.com/kraklabs/ifckit/internal/ui"
	"github.com/kraklabs/ifckit/pkg/geomedit"
	"github.com/kraklabs/ifckit/pkg/ifcconfig"
	"github.com/kraklabs/ifckit/pkg/metrics"
	"github.com/kraklabs/ifckit/pkg/model"
	"github.com/kraklabs/ifckit/pkg/stepwriter"
)

// runEdit executes `ifckit edit <file.ifc> --entity 42 --param Depth
// --value 3.5 --out out.ifc`: it extracts productID's geometry parameters,
// validates and applies a single edit, then exports the result.
func runEdit(args []string, configPath string, globals GlobalFlags) {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	entity := fs.Uint("entity", 0, "expressId of the product to edit (required)")
	paramName := fs.String("param", "", "Parameter name or dotted path, e.g. Depth (required)")
	value := fs.Float64("value", 0, "New numeric value (required)")
	out := fs.String("out", "", "Output file path (required)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: ifckit edit <file.ifc> --entity <id> --param <name> --value <n> --out <file.ifc>

Extracts productID's editable geometry parameters (spec §4.5), validates
--value against the named parameter's declared constraints, applies it as
a single GeometryMutation, and exports the result. Rejects the edit with a
constraint violation rather than clamping an out-of-domain value.

Options:
`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < 1 || *paramName == "" || *out == "" || *entity == 0 {
		fs.Usage()
		os.Exit(1)
	}
	path := fs.Arg(0)

	logger := newLogger(globals)
	reg := metrics.New()
	m, err := loadModel(path, logger, reg, nil)
	if err != nil {
		errors.FatalError(err, globals.JSON)
	}

	params, ok := geomedit.ExtractParameters(m, uint32(*entity))
	if !ok {
		errors.FatalError(errors.NewInputError(
			"No editable geometry found",
			fmt.Sprintf("Entity #%d has no Body representation with a recognized parametric item", *entity),
			"Use 'ifckit inspect' to confirm the entity id, or edit via mesh-edit mode instead",
			nil,
		), globals.JSON)
	}

	param, found := findParam(params, *paramName)
	if !found {
		errors.FatalError(errors.NewInputError(
			"Unknown parameter",
			fmt.Sprintf("Entity #%d has no parameter named %q", *entity, *paramName),
			fmt.Sprintf("Available parameters: %s", paramNames(params)),
			nil,
		), globals.JSON)
	}

	mutations := model.NewMutationView(m.ID)
	newValue := model.ParamValue{Kind: model.ParamNumber, Number: *value}
	if err := geomedit.SetParameter(mutations, m.ID, param, newValue); err != nil {
		logger.Warn("edit.constraint_violation", "entity", *entity, "param", param.Path, "error", err.Error())
		errors.FatalError(errors.NewInputError(
			"Edit rejected",
			err.Error(),
			"Choose a value within the parameter's declared domain",
			err,
		), globals.JSON)
	}

	cfg, err := ifcconfig.LoadConfig(configPath)
	if err != nil {
		errors.FatalError(err, globals.JSON)
	}
	opts := writerOptions(cfg, logger, reg)

	content, err := stepwriter.Export(m, mutations, opts, stepwriter.ExportOptions{},
		fmt.Sprintf("Edited %s.%s on #%d", path, param.Path, *entity), *out, "ifckit", "ifckit", timeStampNow())
	if err != nil {
		errors.FatalError(errors.NewInternalError(
			"Export after edit failed",
			err.Error(),
			"Pass --config to enable best-effort writing, or report this as a bug",
			err,
		), globals.JSON)
	}

	writeOutput(*out, content, globals)
	if globals.JSON {
		return
	}
	ui.Successf("Set %s = %v on #%d -> %s", param.Path, *value, *entity, *out)
}

// findParam matches name against a parameter's full dotted Path (case
// insensitive) or its final path segment, so "--param Depth" matches a
// parameter whose Path is "Depth" as well as one nested as "X.Depth".
func findParam(params []model.GeometryParameter, name string) (model.GeometryParameter, bool) {
	for _, p := range params {
		if strings.EqualFold(p.Path, name) {
			return p, true
		}
		segs := strings.Split(p.Path, ".")
		if strings.EqualFold(segs[len(segs)-1], name) {
			return p, true
		}
	}
	return model.GeometryParameter{}, false
}

func paramNames(params []model.GeometryParameter) string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Path
	}
	return strconv.Quote(strings.Join(names, ", "))
}
