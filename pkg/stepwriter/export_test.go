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

package stepwriter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/ifckit/pkg/model"
)

func simpleWallModel() *model.Model {
	return buildTestModel([]fakeEntity{
		{1, "IFCCARTESIANPOINT", "(0.,0.,0.)"},
		{2, "IFCDIRECTION", "(0.,0.,1.)"},
		{3, "IFCRECTANGLEPROFILEDEF", ".AREA.,$,#1,2.,3."},
		{4, "IFCEXTRUDEDAREASOLID", "#3,#1,#2,5."},
		{5, "IFCWALL", "'GID',#100,'Wall',$,$,#1,#4,$"},
	})
}

func TestExportVerbatimRoundTripsUnmutatedEntities(t *testing.T) {
	m := simpleWallModel()
	out, err := Export(m, nil, Options{}, ExportOptions{}, "d", "f.ifc", "a", "o", "2026-07-31T00:00:00")
	require.NoError(t, err)
	assert.Contains(t, out, "#4=IFCEXTRUDEDAREASOLID(#3,#1,#2,5.);")
	assert.Contains(t, out, "#5=IFCWALL('GID',#100,'Wall',$,$,#1,#4,$);")
}

func TestExportSubstitutesMutatedNumberSlot(t *testing.T) {
	m := simpleWallModel()
	mutations := model.NewMutationView(m.ID)
	mutations.Apply(model.GeometryMutation{
		ModelID:       m.ID,
		EntityID:      4,
		ParameterPath: "Depth",
		OldValue:      model.ParamValue{Kind: model.ParamNumber, Number: 5},
		NewValue:      model.ParamValue{Kind: model.ParamNumber, Number: 8.25},
	})

	out, err := Export(m, mutations, Options{}, ExportOptions{}, "d", "f.ifc", "a", "o", "2026-07-31T00:00:00")
	require.NoError(t, err)
	assert.Contains(t, out, "#4=IFCEXTRUDEDAREASOLID(#3,#1,#2,8.25);")
	assert.NotContains(t, out, ",5.);")
}

func TestExportSubstitutesMutatedVec3ThroughReference(t *testing.T) {
	m := simpleWallModel()
	mutations := model.NewMutationView(m.ID)
	mutations.Apply(model.GeometryMutation{
		ModelID:       m.ID,
		EntityID:      4,
		ParameterPath: "ExtrudedDirection",
		OldValue:      model.ParamValue{Kind: model.ParamVec3, Vec3: model.ParamVec3{0, 0, 1}},
		NewValue:      model.ParamValue{Kind: model.ParamVec3, Vec3: model.ParamVec3{1, 0, 0}},
	})

	out, err := Export(m, mutations, Options{}, ExportOptions{}, "d", "f.ifc", "a", "o", "2026-07-31T00:00:00")
	require.NoError(t, err)
	// The extrusion's own line (#4) is untouched; the *referenced* direction
	// entity (#2) is the one rewritten, since ExtrudedDirection is stored as
	// a ref indirection rather than inline on IfcExtrudedAreaSolid.
	assert.Contains(t, out, "#4=IFCEXTRUDEDAREASOLID(#3,#1,#2,5.);")
	assert.Contains(t, out, "#2=IFCDIRECTION((1.,0.,0.));")
}

func TestExportVisibleOnlyKeepsStructuralPrerequisites(t *testing.T) {
	m := simpleWallModel()
	opts := ExportOptions{
		VisibleOnly: true,
		IsVisible:   func(id uint32) bool { return id == 5 }, // only the wall is "visible"
	}
	out, err := Export(m, nil, Options{}, opts, "d", "f.ifc", "a", "o", "2026-07-31T00:00:00")
	require.NoError(t, err)

	for _, id := range []string{"#1=", "#2=", "#3=", "#4=", "#5="} {
		assert.True(t, strings.Contains(out, id), "expected %s to be retained as a structural prerequisite of the visible wall", id)
	}
}

func TestExportVisibleOnlyDropsUnreferencedHiddenEntities(t *testing.T) {
	m := buildTestModel([]fakeEntity{
		{1, "IFCCARTESIANPOINT", "0.,0.,0."},
		{9, "IFCCARTESIANPOINT", "9.,9.,9."}, // unreferenced, hidden, and not a prerequisite of anything
		{5, "IFCWALL", "'GID',#100,'Wall',$,$,#1,$,$"},
	})
	opts := ExportOptions{
		VisibleOnly: true,
		IsVisible:   func(id uint32) bool { return id == 5 },
	}
	out, err := Export(m, nil, Options{}, opts, "d", "f.ifc", "a", "o", "2026-07-31T00:00:00")
	require.NoError(t, err)
	assert.Contains(t, out, "#1=")
	assert.Contains(t, out, "#5=")
	assert.NotContains(t, out, "#9=")
}
