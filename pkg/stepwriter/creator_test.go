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

func newTestCreator(t *testing.T) *Creator {
	t.Helper()
	c, err := NewCreator(Options{}, ProjectInfo{
		PersonGivenName:    "Ada",
		PersonFamilyName:   "Lovelace",
		OrganizationName:   "KrakLabs",
		ApplicationName:    "ifckit",
		ApplicationVersion: "0.1.0",
		ProjectName:        "Demo",
		SiteName:           "Site",
		BuildingName:       "Building",
		LengthUnit:         "meter",
		TimeStamp:          1700000000,
	})
	require.NoError(t, err)
	return c
}

func TestNewCreatorEmitsPreambleHeaderEntities(t *testing.T) {
	c := newTestCreator(t)
	out := c.Finalize("demo file", "demo.ifc", "Ada Lovelace", "KrakLabs", "2026-07-31T00:00:00")

	assert.True(t, strings.HasPrefix(out, "ISO-10303-21;\n"))
	assert.Contains(t, out, "FILE_SCHEMA(('IFC4'));")
	assert.Contains(t, out, "IFCPROJECT(")
	assert.Contains(t, out, "IFCSITE(")
	assert.Contains(t, out, "IFCBUILDING(")
	assert.True(t, strings.HasSuffix(out, "END-ISO-10303-21;\n"))
}

func TestAddWallBeforeStoreyFails(t *testing.T) {
	c := newTestCreator(t)
	_, err := c.AddWall(WallParams{Storey: 999, Name: "W1", Start: vec3{0, 0, 0}, End: vec3{5, 0, 0}, Height: 3, Thickness: 0.2})
	assert.Error(t, err)
}

func TestAddWallEmitsASingleRectangularExtrusion(t *testing.T) {
	c := newTestCreator(t)
	storey, err := c.AddStorey("Ground", 0)
	require.NoError(t, err)

	wallID, err := c.AddWall(WallParams{Storey: storey, Name: "W1", Start: vec3{0, 0, 0}, End: vec3{5, 0, 0}, Height: 3, Thickness: 0.2})
	require.NoError(t, err)
	assert.NotZero(t, wallID)

	out := c.Finalize("d", "f.ifc", "a", "o", "2026-07-31T00:00:00")
	assert.Contains(t, out, "IFCWALL(")
	assert.Contains(t, out, "'SweptSolid'")
	assert.Contains(t, out, "IFCRELCONTAINEDINSPATIALSTRUCTURE(")
}

func TestAddStairEmitsOneSolidModelPerRiser(t *testing.T) {
	c := newTestCreator(t)
	storey, err := c.AddStorey("Ground", 0)
	require.NoError(t, err)

	_, err = c.AddStair(StairParams{
		Storey: storey, Name: "S1", Origin: vec3{0, 0, 0},
		TreadLength: 0.3, Width: 1.0, RiserHeight: 0.18, NumSteps: 10,
	})
	require.NoError(t, err)

	out := c.Finalize("d", "f.ifc", "a", "o", "2026-07-31T00:00:00")
	assert.Contains(t, out, "IFCSTAIR(")
	assert.Contains(t, out, "'SolidModel'")
	assert.Equal(t, 10, strings.Count(out, "IFCEXTRUDEDAREASOLID("))
}

func TestAddOpeningInWallLinksViaRelVoidsElement(t *testing.T) {
	c := newTestCreator(t)
	storey, err := c.AddStorey("Ground", 0)
	require.NoError(t, err)

	wallID, err := c.AddWall(WallParams{Storey: storey, Name: "W1", Start: vec3{0, 0, 0}, End: vec3{5, 0, 0}, Height: 3, Thickness: 0.2})
	require.NoError(t, err)

	_, err = c.AddOpeningInWall(OpeningInWallParams{
		Storey: storey, Name: "Door Opening", HostWall: wallID, HostPlacement: 0,
		HostThickness: 0.2, OffsetAlongWall: 1.0, SillHeight: 0, Width: 0.9, Height: 2.1,
	})
	require.NoError(t, err)

	out := c.Finalize("d", "f.ifc", "a", "o", "2026-07-31T00:00:00")
	assert.Contains(t, out, "IFCOPENINGELEMENT(")
	assert.Contains(t, out, "IFCRELVOIDSELEMENT(")
}

func TestAddPropertySetAndQuantitySet(t *testing.T) {
	c := newTestCreator(t)
	storey, err := c.AddStorey("Ground", 0)
	require.NoError(t, err)
	wallID, err := c.AddWall(WallParams{Storey: storey, Name: "W1", Start: vec3{0, 0, 0}, End: vec3{5, 0, 0}, Height: 3, Thickness: 0.2})
	require.NoError(t, err)

	c.AddPropertySet(wallID, "Pset_WallCommon", []PropertyValue{
		{Name: "IsExternal", Kind: model.ValueBoolean, Bool: true},
	})
	c.AddQuantitySet(wallID, "Qto_WallBaseQuantities", []QuantityValue{
		{Name: "Length", Kind: model.QuantityLength, Value: 5},
	})

	out := c.Finalize("d", "f.ifc", "a", "o", "2026-07-31T00:00:00")
	assert.Contains(t, out, "IFCPROPERTYSET(")
	assert.Contains(t, out, "IFCELEMENTQUANTITY(")
	assert.Contains(t, out, "IFCQUANTITYLENGTH(")
}
