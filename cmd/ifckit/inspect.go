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
	"encoding/json"
	"fmt"
	"os"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/ifckit/internal/errors"
	"github.com/kraklabs/ifckit/internal/ui"
	"github.com/kraklabs/ifckit/pkg/metrics"
	"github.com/kraklabs/ifckit/pkg/model"
)

// inspectEntity is the --json rendering of one matched entity.
type inspectEntity struct {
	ExpressID   uint32 `json:"express_id"`
	GlobalID    string `json:"global_id"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	ObjectType  string `json:"object_type,omitempty"`
}

// runInspect executes `ifckit inspect <file.ifc> --type IFCWALL [--json]`:
// it lists every entity of the given type.
func runInspect(args []string, configPath string, globals GlobalFlags) {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	typeName := fs.String("type", "", "IFC type name to list, e.g. IFCWALL (required)")
	jsonFlag := fs.Bool("json", globals.JSON, "Output in JSON format")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: ifckit inspect <file.ifc> --type <TYPE> [options]

Lists every entity of the given IFC type, showing its expressId, GlobalId,
Name, Description, and ObjectType.

Options:
`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *jsonFlag {
		globals.JSON = true
		globals.Quiet = true
	}
	if fs.NArg() < 1 || *typeName == "" {
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

	tag := model.TypeTagFromName(strings.ToUpper(*typeName))
	ids := m.Entities.GetByType(tag)

	entities := make([]inspectEntity, 0, len(ids))
	for _, id := range ids {
		entities = append(entities, inspectEntity{
			ExpressID:   id,
			GlobalID:    m.Entities.GetGlobalID(id),
			Name:        m.Entities.GetName(id),
			Description: m.Entities.GetDescription(id),
			ObjectType:  m.Entities.GetObjectType(id),
		})
	}

	if globals.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(entities)
		return
	}

	ui.Header(fmt.Sprintf("%s (%s)", strings.ToUpper(*typeName), ui.CountText(len(entities))))
	for _, e := range entities {
		fmt.Printf("#%-6d %s  %s\n", e.ExpressID, e.GlobalID, e.Name)
	}
}
