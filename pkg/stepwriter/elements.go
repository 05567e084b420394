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
	"fmt"
	"math"
)

// WallParams places a straight wall from Start to End (spec §4.7 table:
// "origin at Start; local X along (End-Start); profile centered at (L/2, 0)
// so solid spans 0..L along local X, +-t/2 along local Y").
type WallParams struct {
	Storey             uint32
	Name               string
	Start, End         vec3
	Height, Thickness  float64
}

// AddWall emits a wall as a single rectangular extrusion.
func (c *Creator) AddWall(p WallParams) (uint32, error) {
	dir := vnormalize(vsub(p.End, p.Start))
	length := vlength(vsub(p.End, p.Start))

	axisID := c.placement3D(p.Start, nil, &dir)
	placementID := c.localPlacement(axisID, 0)

	profileID := c.rectangleProfile(length, p.Thickness, length/2, 0)
	solidID := c.extrudedAreaSolid(profileID, vec3{0, 0, 1}, p.Height)
	shapeID := c.shapeRepresentation(solidID)
	pdShapeID := c.productDefinitionShape(shapeID)

	return c.product("IFCWALL", p.Storey, p.Name, placementID, pdShapeID, "")
}

// SlabParams places a horizontal slab; Points overrides the rectangular
// profile with an IfcArbitraryClosedProfileDef when set (spec §4.7 table).
type SlabParams struct {
	Storey    uint32
	Name      string
	Position  vec3
	W, D      float64
	Points    [][2]float64
	Thickness float64
}

// AddSlab emits a slab as a single vertical extrusion.
func (c *Creator) AddSlab(p SlabParams) (uint32, error) {
	axisID := c.placement3D(p.Position, nil, nil)
	placementID := c.localPlacement(axisID, 0)

	var profileID uint32
	if len(p.Points) > 0 {
		profileID = c.arbitraryClosedProfile(p.Points)
	} else {
		profileID = c.rectangleProfile(p.W, p.D, p.W/2, p.D/2)
	}
	solidID := c.extrudedAreaSolid(profileID, vec3{0, 0, 1}, p.Thickness)
	shapeID := c.shapeRepresentation(solidID)
	pdShapeID := c.productDefinitionShape(shapeID)

	return c.product("IFCSLAB", p.Storey, p.Name, placementID, pdShapeID, "")
}

// ColumnParams places a vertical column with its base centered on Base
// (spec §4.7 table: "origin at base center; profile centered").
type ColumnParams struct {
	Storey    uint32
	Name      string
	Base      vec3
	W, D      float64
	Height    float64
}

// AddColumn emits a column as a single vertical extrusion.
func (c *Creator) AddColumn(p ColumnParams) (uint32, error) {
	axisID := c.placement3D(p.Base, nil, nil)
	placementID := c.localPlacement(axisID, 0)

	profileID := c.rectangleProfile(p.W, p.D, 0, 0)
	solidID := c.extrudedAreaSolid(profileID, vec3{0, 0, 1}, p.Height)
	shapeID := c.shapeRepresentation(solidID)
	pdShapeID := c.productDefinitionShape(shapeID)

	return c.product("IFCCOLUMN", p.Storey, p.Name, placementID, pdShapeID, "")
}

// BeamParams runs a beam along its own local Z axis from Start to End (spec
// §4.7 table: "origin at Start; local Z along beam axis; RefDirection
// chosen perpendicular").
type BeamParams struct {
	Storey     uint32
	Name       string
	Start, End vec3
	W, H       float64
}

// AddBeam emits a beam as a single extrusion along its own local Z.
func (c *Creator) AddBeam(p BeamParams) (uint32, error) {
	axis := vnormalize(vsub(p.End, p.Start))
	length := vlength(vsub(p.End, p.Start))

	up := vec3{0, 0, 1}
	if vdot(up, axis) > 0.999 || vdot(up, axis) < -0.999 {
		up = vec3{1, 0, 0}
	}
	refDir := vnormalize(vcross(up, axis))

	axisID := c.placement3D(p.Start, &axis, &refDir)
	placementID := c.localPlacement(axisID, 0)

	profileID := c.rectangleProfile(p.W, p.H, 0, 0)
	solidID := c.extrudedAreaSolid(profileID, vec3{0, 0, 1}, length)
	shapeID := c.shapeRepresentation(solidID)
	pdShapeID := c.productDefinitionShape(shapeID)

	return c.product("IFCBEAM", p.Storey, p.Name, placementID, pdShapeID, "")
}

// StairParams builds a stair as a stack of riser extrusions (spec §4.7
// table: "one extrusion per riser at (i*TreadLength, 0, i*RiserHeight);
// rotation via LocalPlacement RefDirection = (cos delta, sin delta, 0)").
type StairParams struct {
	Storey               uint32
	Name                 string
	Origin               vec3 // first-tread nose
	TreadLength, Width   float64
	RiserHeight          float64
	NumSteps             int
	RotationDeltaRadians float64
}

// AddStair emits a stair as NumSteps riser extrusions sharing one
// IfcShapeRepresentation.
func (c *Creator) AddStair(p StairParams) (uint32, error) {
	refDir := vec3{math.Cos(p.RotationDeltaRadians), math.Sin(p.RotationDeltaRadians), 0}
	axisID := c.placement3D(p.Origin, nil, &refDir)
	placementID := c.localPlacement(axisID, 0)

	profileID := c.rectangleProfile(p.TreadLength, p.Width, p.TreadLength/2, p.Width/2)

	solids := make([]uint32, 0, p.NumSteps)
	for i := 0; i < p.NumSteps; i++ {
		location := vec3{float64(i) * p.TreadLength, 0, float64(i) * p.RiserHeight}
		solids = append(solids, c.extrudedAreaSolidAt(profileID, location, vec3{0, 0, 1}, p.RiserHeight))
	}
	shapeID := c.shapeRepresentation(solids...)
	pdShapeID := c.productDefinitionShape(shapeID)

	return c.product("IFCSTAIR", p.Storey, p.Name, placementID, pdShapeID, "")
}

// RoofParams places a roof at its minimum corner, optionally sloped around
// the local Y axis (spec §4.7 table).
type RoofParams struct {
	Storey           uint32
	Name             string
	Origin           vec3
	W, D, Thickness  float64
	SlopeRadians     float64
}

// AddRoof emits a roof as a single extrusion, rotated by SlopeRadians
// around Y when nonzero.
func (c *Creator) AddRoof(p RoofParams) (uint32, error) {
	var axisID uint32
	if p.SlopeRadians == 0 {
		axisID = c.placement3D(p.Origin, nil, nil)
	} else {
		axis := vec3{math.Sin(p.SlopeRadians), 0, math.Cos(p.SlopeRadians)}
		refDir := vec3{math.Cos(p.SlopeRadians), 0, -math.Sin(p.SlopeRadians)}
		axisID = c.placement3D(p.Origin, &axis, &refDir)
	}
	placementID := c.localPlacement(axisID, 0)

	profileID := c.rectangleProfile(p.W, p.D, p.W/2, p.D/2)
	solidID := c.extrudedAreaSolid(profileID, vec3{0, 0, 1}, p.Thickness)
	shapeID := c.shapeRepresentation(solidID)
	pdShapeID := c.productDefinitionShape(shapeID)

	return c.product("IFCROOF", p.Storey, p.Name, placementID, pdShapeID, "")
}

// OpeningInWallParams cuts an opening through a host wall (spec §4.7 table:
// "placement relative to host wall; orient local Z along wall's local Y
// (thickness axis); profile (Width, Height) offset up by Height/2; extrude
// depth = hostThickness + 0.1").
type OpeningInWallParams struct {
	Storey        uint32
	Name          string
	HostWall      uint32
	HostPlacement uint32
	HostThickness float64
	OffsetAlongWall float64 // position along the wall's local X
	SillHeight      float64 // vertical offset of the opening's base
	Width, Height   float64
}

// AddOpeningInWall emits an opening element through a wall and links it
// with an IfcRelVoidsElement.
func (c *Creator) AddOpeningInWall(p OpeningInWallParams) (uint32, error) {
	axis := vec3{0, 1, 0} // local Z along the wall's thickness (Y) axis
	refDir := vec3{1, 0, 0}
	location := vec3{p.OffsetAlongWall, -(p.HostThickness/2 + 0.05), p.SillHeight}
	axisID := c.placement3D(location, &axis, &refDir)
	placementID := c.localPlacement(axisID, p.HostPlacement)

	profileID := c.rectangleProfile(p.Width, p.Height, 0, p.Height/2)
	solidID := c.extrudedAreaSolid(profileID, vec3{0, 0, 1}, p.HostThickness+0.1)
	shapeID := c.shapeRepresentation(solidID)
	pdShapeID := c.productDefinitionShape(shapeID)

	openingID, err := c.product("IFCOPENINGELEMENT", p.Storey, p.Name, placementID, pdShapeID, "")
	if err != nil {
		return 0, err
	}
	c.voidsElement(p.HostWall, openingID)
	return openingID, nil
}

// OpeningInSlabParams cuts a vertical opening through a host slab (spec
// §4.7 table: "placement relative to host slab; profile centered; extrude
// 10 m through slab").
type OpeningInSlabParams struct {
	Storey        uint32
	Name          string
	HostSlab      uint32
	HostPlacement uint32
	OffsetX, OffsetY float64
	W, D             float64
}

const openingInSlabDepth = 10.0

// AddOpeningInSlab emits an opening element through a slab and links it
// with an IfcRelVoidsElement.
func (c *Creator) AddOpeningInSlab(p OpeningInSlabParams) (uint32, error) {
	location := vec3{p.OffsetX, p.OffsetY, -openingInSlabDepth / 2}
	axisID := c.placement3D(location, nil, nil)
	placementID := c.localPlacement(axisID, p.HostPlacement)

	profileID := c.rectangleProfile(p.W, p.D, p.W/2, p.D/2)
	solidID := c.extrudedAreaSolid(profileID, vec3{0, 0, 1}, openingInSlabDepth)
	shapeID := c.shapeRepresentation(solidID)
	pdShapeID := c.productDefinitionShape(shapeID)

	openingID, err := c.product("IFCOPENINGELEMENT", p.Storey, p.Name, placementID, pdShapeID, "")
	if err != nil {
		return 0, err
	}
	c.voidsElement(p.HostSlab, openingID)
	return openingID, nil
}

// voidsElement emits the IfcRelVoidsElement linking host to opening (spec
// §4.7 "Openings are linked via IfcRelVoidsElement").
func (c *Creator) voidsElement(host, opening uint32) {
	c.w.emitNew("IFCRELVOIDSELEMENT", fmt.Sprintf("%s,%s,$,$,%s,%s",
		mustGlobalID(c.w), formatRef(c.ownerHistoryID), formatRef(host), formatRef(opening)))
}
