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

// Package geomedit exposes a small, typed, constrained set of editable
// parameters for a selected IFC product, without the caller needing to
// understand the full product -> representation -> item graph (spec
// §4.5). It reads the EntityStore and the model's source bytes (via
// pkg/stepparse's lazy byte-range decoder) and writes only into a
// MutationView — it never mutates the EntityStore baseline.
package geomedit

import (
	"strings"

	"github.com/kraklabs/ifckit/pkg/model"
	"github.com/kraklabs/ifckit/pkg/stepparse"
)

var parametricTypes = map[string]bool{
	"IFCEXTRUDEDAREASOLID":         true,
	"IFCRECTANGLEPROFILEDEF":       true,
	"IFCCIRCLEPROFILEDEF":          true,
	"IFCELLIPSEPROFILEDEF":         true,
	"IFCISHAPEPROFILEDEF":          true,
	"IFCARBITRARYCLOSEDPROFILEDEF": true,
	"IFCBOOLEANCLIPPINGRESULT":     true,
}

var bodyRepresentationKinds = map[string]bool{
	"BODY": true, "SWEPTSOLID": true, "BREP": true, "CLIPPING": true, "TESSELLATION": true,
}

// item is one resolved representation-item node: its expressId, uppercase
// type name, and decoded argument list.
type item struct {
	id   uint32
	typ  string
	args []stepparse.Arg
}

// FindParametricItem runs the Navigation procedure of spec §4.5 for
// productID and returns the representation item the Edit Layer should
// extract parameters from. ok is false if productID has no Body-like
// shape representation, or none of its items are a recognized parametric
// type — the caller should fall back to mesh-edit mode.
func FindParametricItem(m *model.Model, productID uint32) (entityID uint32, typeName string, args []stepparse.Arg, ok bool) {
	args, typeName, found := stepparse.DecodeEntityArgs(m, productID)
	if !found {
		return 0, "", nil, false
	}
	if parametricTypes[typeName] {
		return productID, typeName, args, true
	}

	repRef, isRef := stepparse.At(args, 6).AsRef()
	if !isRef {
		return 0, "", nil, false
	}
	shapeArgs, shapeType, found := stepparse.DecodeEntityArgs(m, repRef)
	if !found || shapeType != "IFCPRODUCTDEFINITIONSHAPE" {
		return 0, "", nil, false
	}

	reps, _ := stepparse.At(shapeArgs, 2).AsList()
	for _, repItem := range reps {
		shapeRepRef, isRef := repItem.AsRef()
		if !isRef {
			continue
		}
		shapeRepArgs, shapeRepType, found := stepparse.DecodeEntityArgs(m, shapeRepRef)
		if !found || shapeRepType != "IFCSHAPEREPRESENTATION" {
			continue
		}
		ident, _ := stepparse.At(shapeRepArgs, 1).AsString()
		kind, _ := stepparse.At(shapeRepArgs, 2).AsString()
		if !bodyRepresentationKinds[strings.ToUpper(ident)] && !bodyRepresentationKinds[strings.ToUpper(kind)] {
			continue
		}
		items, _ := stepparse.At(shapeRepArgs, 3).AsList()
		for _, itemArg := range items {
			itemRef, isRef := itemArg.AsRef()
			if !isRef {
				continue
			}
			if found, resolved := resolveItem(m, itemRef); found {
				return resolved.id, resolved.typ, resolved.args, true
			}
		}
	}
	return 0, "", nil, false
}

// resolveItem classifies a single representation item, recursing through
// a plain Boolean result's FirstOperand when the item itself isn't one of
// the recognized parametric types (IfcBooleanClippingResult IS one of
// those types and is returned directly, never recursed into).
func resolveItem(m *model.Model, entityID uint32) (bool, item) {
	args, typeName, found := stepparse.DecodeEntityArgs(m, entityID)
	if !found {
		return false, item{}
	}
	if parametricTypes[typeName] {
		return true, item{id: entityID, typ: typeName, args: args}
	}
	if typeName == "IFCBOOLEANRESULT" {
		firstOperand, isRef := stepparse.At(args, 1).AsRef()
		if isRef {
			return resolveItem(m, firstOperand)
		}
	}
	return false, item{}
}
