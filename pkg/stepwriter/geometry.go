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

import "fmt"

// vec3 is a plain 3-component point/direction used only to pass geometry
// arguments into the Creator's emission helpers.
type vec3 [3]float64

// placement3D emits an IfcAxis2Placement3D at location, with optional axis
// (Z) and refDirection (X) directions. A nil axis/refDirection omits that
// slot ($), letting IFC default to the world Z/X.
func (c *Creator) placement3D(location vec3, axis, refDirection *vec3) uint32 {
	locID := c.w.emitNew("IFCCARTESIANPOINT", reals(location[0], location[1], location[2]))
	axisArg, refArg := "$", "$"
	if axis != nil {
		axisArg = formatRef(c.w.emitNew("IFCDIRECTION", reals(axis[0], axis[1], axis[2])))
	}
	if refDirection != nil {
		refArg = formatRef(c.w.emitNew("IFCDIRECTION", reals(refDirection[0], refDirection[1], refDirection[2])))
	}
	return c.w.emitNew("IFCAXIS2PLACEMENT3D", fmt.Sprintf("%s,%s,%s", formatRef(locID), axisArg, refArg))
}

// localPlacement wraps an IfcAxis2Placement3D in an IfcLocalPlacement,
// optionally relative to a host placement (relativeTo == 0 means relative
// to the world placement).
func (c *Creator) localPlacement(axisPlacement uint32, relativeTo uint32) uint32 {
	rel := formatRef(c.worldPlacementID)
	if relativeTo != 0 {
		rel = formatRef(relativeTo)
	}
	return c.w.emitNew("IFCLOCALPLACEMENT", fmt.Sprintf("%s,%s", rel, formatRef(axisPlacement)))
}

// rectangleProfile emits an IfcRectangleProfileDef of (xdim, ydim) centered
// at (xoff, yoff) in its own local 2D axis placement.
func (c *Creator) rectangleProfile(xdim, ydim, xoff, yoff float64) uint32 {
	pointID := c.w.emitNew("IFCCARTESIANPOINT", reals(xoff, yoff))
	placementID := c.w.emitNew("IFCAXIS2PLACEMENT2D", fmt.Sprintf("%s,$", formatRef(pointID)))
	return c.w.emitNew("IFCRECTANGLEPROFILEDEF", fmt.Sprintf(".AREA.,$,%s,%s,%s",
		formatRef(placementID), formatReal(xdim), formatReal(ydim)))
}

// arbitraryClosedProfile emits an IfcArbitraryClosedProfileDef wrapping an
// IfcPolyline over points, which must already form a closed (or
// closing-implied) loop of at least 3 vertices.
func (c *Creator) arbitraryClosedProfile(points [][2]float64) uint32 {
	pointIDs := make([]uint32, len(points))
	for i, p := range points {
		pointIDs[i] = c.w.emitNew("IFCCARTESIANPOINT", reals(p[0], p[1]))
	}
	polylineID := c.w.emitNew("IFCPOLYLINE", refs(pointIDs...))
	return c.w.emitNew("IFCARBITRARYCLOSEDPROFILEDEF", fmt.Sprintf(".AREA.,$,%s", formatRef(polylineID)))
}

// extrudedAreaSolid emits an IfcExtrudedAreaSolid sweeping profile along
// direction by depth, positioned at a fresh unplaced (origin) local
// IfcAxis2Placement3D — the caller's outer IfcLocalPlacement already
// carries the element's world position.
func (c *Creator) extrudedAreaSolid(profile uint32, direction vec3, depth float64) uint32 {
	return c.extrudedAreaSolidAt(profile, vec3{0, 0, 0}, direction, depth)
}

// extrudedAreaSolidAt is extrudedAreaSolid with an explicit local-frame
// location for the solid's own placement, used when several solids share
// one element (e.g. one IfcExtrudedAreaSolid per stair riser).
func (c *Creator) extrudedAreaSolidAt(profile uint32, location, direction vec3, depth float64) uint32 {
	placementID := c.placement3D(location, nil, nil)
	dirID := c.w.emitNew("IFCDIRECTION", reals(direction[0], direction[1], direction[2]))
	return c.w.emitNew("IFCEXTRUDEDAREASOLID", fmt.Sprintf("%s,%s,%s,%s",
		formatRef(profile), formatRef(placementID), formatRef(dirID), formatReal(depth)))
}

// shapeRepresentation wraps one or more solids in an IfcShapeRepresentation
// against the Body subcontext, using SweptSolid for a single solid and
// SolidModel for several (spec §4.7 "Each element wraps its solid in...").
func (c *Creator) shapeRepresentation(solids ...uint32) uint32 {
	repType := "SweptSolid"
	if len(solids) > 1 {
		repType = "SolidModel"
	}
	return c.w.emitNew("IFCSHAPEREPRESENTATION", fmt.Sprintf("%s,'Body','%s',%s",
		formatRef(c.bodyContextID), repType, refs(solids...)))
}

// productDefinitionShape wraps a shape representation for assignment to a
// product's Representation slot.
func (c *Creator) productDefinitionShape(rep uint32) uint32 {
	return c.w.emitNew("IFCPRODUCTDEFINITIONSHAPE", fmt.Sprintf("$,$,%s", refs(rep)))
}

// product emits the leading IfcRoot/IfcObject/IfcProduct slots shared by
// every building element type, then assigns it to storey and returns its
// expressId.
func (c *Creator) product(typeName string, storey uint32, name string, placement, shape uint32, trailing string) (uint32, error) {
	if err := c.requireStorey(storey); err != nil {
		return 0, err
	}
	gid, err := c.w.NewGlobalID()
	if err != nil {
		return 0, err
	}
	args := fmt.Sprintf("%s,%s,%s,$,$,%s,%s,$",
		formatString(gid), formatRef(c.ownerHistoryID), formatString(name), formatRef(placement), formatRef(shape))
	if trailing != "" {
		args += "," + trailing
	}
	id := c.w.emitNew(typeName, args)
	c.contain(storey, id)
	return id, nil
}
