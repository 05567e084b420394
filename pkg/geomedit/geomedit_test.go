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

package geomedit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/ifckit/pkg/model"
	"github.com/kraklabs/ifckit/pkg/stepparse"
)

const fixture = `ISO-10303-21;
HEADER;
FILE_DESCRIPTION(('ViewDefinition [CoordinationView]'),'2;1');
FILE_NAME('test.ifc','2026-07-31T00:00:00',('Author'),('Org'),'ifckit','ifckit','');
FILE_SCHEMA(('IFC4'));
ENDSEC;
DATA;
#1=IFCPROJECT('1xS3BCk291SPw10bnGjeze',$,'My Project',$,$,$,$,$,$);
#10=IFCWALL('1xS3BCk291SPw10bnGjezj',$,'Wall-01',$,$,#20,#21,$);
#21=IFCPRODUCTDEFINITIONSHAPE($,$,(#200));
#200=IFCSHAPEREPRESENTATION($,'Body','SweptSolid',(#210));
#210=IFCEXTRUDEDAREASOLID(#211,$,#213,2.5);
#211=IFCRECTANGLEPROFILEDEF(.AREA.,$,$,4.,3.);
#213=IFCDIRECTION((0.,0.,1.));
ENDSEC;
END-ISO-10303-21;
`

func parseFixture(t *testing.T) *model.Model {
	t.Helper()
	m, err := stepparse.Parse("m1", []byte(fixture))
	require.NoError(t, err)
	return m
}

func TestFindParametricItem_NavigatesToExtrudedAreaSolid(t *testing.T) {
	m := parseFixture(t)
	entityID, typeName, _, ok := FindParametricItem(m, 10)
	require.True(t, ok)
	assert.Equal(t, uint32(210), entityID)
	assert.Equal(t, "IFCEXTRUDEDAREASOLID", typeName)
}

func TestExtractParameters_ExtrudedAreaSolidWithRectangleProfile(t *testing.T) {
	m := parseFixture(t)
	params, ok := ExtractParameters(m, 10)
	require.True(t, ok)

	byPath := make(map[string]model.GeometryParameter)
	for _, p := range params {
		byPath[p.Path] = p
	}

	depth, ok := byPath["Depth"]
	require.True(t, ok)
	assert.Equal(t, uint32(210), depth.OwningEntityID)
	assert.Equal(t, 2.5, depth.Current.Number)
	assert.Contains(t, depth.Constraints, model.ConstraintMinValue)

	dir, ok := byPath["ExtrudedDirection"]
	require.True(t, ok)
	assert.Equal(t, model.ParamVec3{0, 0, 1}, dir.Current.Vec3)

	xdim, ok := byPath["XDim"]
	require.True(t, ok)
	assert.Equal(t, uint32(211), xdim.OwningEntityID)
	assert.Equal(t, 4.0, xdim.Current.Number)

	ydim, ok := byPath["YDim"]
	require.True(t, ok)
	assert.Equal(t, 3.0, ydim.Current.Number)
}

func TestExtractParameters_NoRepresentationFallsBackFalse(t *testing.T) {
	m := parseFixture(t)
	_, ok := ExtractParameters(m, 1) // IfcProject has no Representation slot
	assert.False(t, ok)
}

func TestSetParameter_AcceptsValidEdit(t *testing.T) {
	m := parseFixture(t)
	params, ok := ExtractParameters(m, 10)
	require.True(t, ok)
	var depth model.GeometryParameter
	for _, p := range params {
		if p.Path == "Depth" {
			depth = p
		}
	}

	view := model.NewMutationView("m1")
	err := SetParameter(view, "m1", depth, model.ParamValue{Kind: model.ParamNumber, Number: 3.0})
	require.NoError(t, err)

	mut, ok := view.Get(depth.OwningEntityID, "Depth")
	require.True(t, ok)
	assert.Equal(t, 2.5, mut.OldValue.Number)
	assert.Equal(t, 3.0, mut.NewValue.Number)
}

func TestSetParameter_RejectsBelowMinimum(t *testing.T) {
	m := parseFixture(t)
	params, ok := ExtractParameters(m, 10)
	require.True(t, ok)
	var depth model.GeometryParameter
	for _, p := range params {
		if p.Path == "Depth" {
			depth = p
		}
	}

	view := model.NewMutationView("m1")
	err := SetParameter(view, "m1", depth, model.ParamValue{Kind: model.ParamNumber, Number: 0.0005})
	require.Error(t, err)
	var violation *ConstraintViolation
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, model.ConstraintMinValue, violation.Constraint)

	_, found := view.Get(depth.OwningEntityID, "Depth")
	assert.False(t, found, "rejected mutation must not be recorded")
}

func TestSetParameter_RejectsProfileWithTooFewPoints(t *testing.T) {
	param := model.GeometryParameter{
		OwningEntityID: 99,
		Path:           "OuterCurve",
		ValueKind:      model.ParamProfile,
		Current:        model.ParamValue{Kind: model.ParamProfile, Profile: []model.Point2D{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}},
		Constraints:    []model.Constraint{model.ConstraintClosedProfile},
		Editable:       true,
	}
	view := model.NewMutationView("m1")
	err := SetParameter(view, "m1", param, model.ParamValue{
		Kind:    model.ParamProfile,
		Profile: []model.Point2D{{X: 0, Y: 0}, {X: 1, Y: 0}},
	})
	require.Error(t, err)
}
