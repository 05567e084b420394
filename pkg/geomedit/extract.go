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
	"github.com/kraklabs/ifckit/pkg/model"
	"github.com/kraklabs/ifckit/pkg/stepparse"
)

// MinDimension is the shared lower bound for every length-like parameter
// this package extracts (Depth, XDim, Radius, ...). Below it a profile or
// extrusion degenerates, so SetParameter rejects rather than clamps (spec
// §8 test: Depth=0.0005 is rejected with ConstraintViolation, not
// silently floored).
const MinDimension = 0.001

// ExtractParameters runs Navigation then parameter extraction for
// productID, returning the fixed roster spec §4.5's table defines for
// whichever parametric entity was found. ok is false if productID has no
// edit mode at all (no Body representation, or no recognized parametric
// item within it) — the caller should offer mesh-edit mode instead.
func ExtractParameters(m *model.Model, productID uint32) (params []model.GeometryParameter, ok bool) {
	entityID, typeName, args, found := FindParametricItem(m, productID)
	if !found {
		return nil, false
	}
	return extractByType(m, entityID, typeName, args), true
}

func extractByType(m *model.Model, entityID uint32, typeName string, args []stepparse.Arg) []model.GeometryParameter {
	switch typeName {
	case "IFCEXTRUDEDAREASOLID":
		return extractExtrudedAreaSolid(m, entityID, args)
	case "IFCRECTANGLEPROFILEDEF":
		return extractRectangleProfile(entityID, args, "")
	case "IFCCIRCLEPROFILEDEF":
		return extractCircleProfile(entityID, args, "")
	case "IFCELLIPSEPROFILEDEF":
		return extractEllipseProfile(entityID, args, "")
	case "IFCISHAPEPROFILEDEF":
		return extractIShapeProfile(entityID, args, "")
	case "IFCARBITRARYCLOSEDPROFILEDEF":
		return extractArbitraryClosedProfile(m, entityID, args, "")
	case "IFCBOOLEANCLIPPINGRESULT":
		return extractBooleanClippingResult(m, entityID, args)
	default:
		return nil
	}
}

func numberParam(entityID uint32, path, display string, value float64, slot int, unit string, constraints ...model.Constraint) model.GeometryParameter {
	v := model.ParamValue{Kind: model.ParamNumber, Number: value}
	return model.GeometryParameter{
		OwningEntityID: entityID,
		Path:           path,
		DisplayName:    display,
		ValueKind:      model.ParamNumber,
		Current:        v,
		Original:       v,
		Unit:           unit,
		Constraints:    constraints,
		Editable:       true,
	}.WithSlot(slot)
}

func vec3Param(entityID uint32, path, display string, v model.ParamVec3, slot int, nested ...string) model.GeometryParameter {
	val := model.ParamValue{Kind: model.ParamVec3, Vec3: v}
	return model.GeometryParameter{
		OwningEntityID: entityID,
		Path:           path,
		DisplayName:    display,
		ValueKind:      model.ParamVec3,
		Current:        val,
		Original:       val,
		Editable:       true,
	}.WithSlot(slot, nested...)
}

func profileParam(entityID uint32, path, display string, pts []model.Point2D, slot int) model.GeometryParameter {
	val := model.ParamValue{Kind: model.ParamProfile, Profile: pts}
	return model.GeometryParameter{
		OwningEntityID: entityID,
		Path:           path,
		DisplayName:    display,
		ValueKind:      model.ParamProfile,
		Current:        val,
		Original:       val,
		Constraints:    []model.Constraint{model.ConstraintClosedProfile},
		Editable:       true,
	}.WithSlot(slot)
}

func prefixPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

// extractExtrudedAreaSolid: IfcExtrudedAreaSolid(SweptArea, Position,
// ExtrudedDirection, Depth).
func extractExtrudedAreaSolid(m *model.Model, entityID uint32, args []stepparse.Arg) []model.GeometryParameter {
	var out []model.GeometryParameter

	depth, _ := stepparse.At(args, 3).AsReal()
	out = append(out, numberParam(entityID, "Depth", "Depth", depth, 3, "m", model.ConstraintMinValue))

	if dirRef, ok := stepparse.At(args, 2).AsRef(); ok {
		if v, ok := decodeDirectionVec3(m, dirRef); ok {
			out = append(out, vec3Param(entityID, "ExtrudedDirection", "Extruded Direction", v, 2))
		}
	}

	if areaRef, ok := stepparse.At(args, 0).AsRef(); ok {
		areaArgs, areaType, found := stepparse.DecodeEntityArgs(m, areaRef)
		if found {
			out = append(out, extractByType(m, areaRef, areaType, areaArgs)...)
		}
	}
	return out
}

// extractRectangleProfile: IfcRectangleProfileDef(ProfileType, ProfileName,
// Position, XDim, YDim).
func extractRectangleProfile(entityID uint32, args []stepparse.Arg, prefix string) []model.GeometryParameter {
	xDim, _ := stepparse.At(args, 3).AsReal()
	yDim, _ := stepparse.At(args, 4).AsReal()
	return []model.GeometryParameter{
		numberParam(entityID, prefixPath(prefix, "XDim"), "Width", xDim, 3, "m", model.ConstraintMinValue),
		numberParam(entityID, prefixPath(prefix, "YDim"), "Depth", yDim, 4, "m", model.ConstraintMinValue),
	}
}

// extractCircleProfile: IfcCircleProfileDef(ProfileType, ProfileName,
// Position, Radius).
func extractCircleProfile(entityID uint32, args []stepparse.Arg, prefix string) []model.GeometryParameter {
	radius, _ := stepparse.At(args, 3).AsReal()
	return []model.GeometryParameter{
		numberParam(entityID, prefixPath(prefix, "Radius"), "Radius", radius, 3, "m", model.ConstraintMinValue),
	}
}

// extractEllipseProfile: IfcEllipseProfileDef(..., SemiAxis1, SemiAxis2).
func extractEllipseProfile(entityID uint32, args []stepparse.Arg, prefix string) []model.GeometryParameter {
	a, _ := stepparse.At(args, 3).AsReal()
	b, _ := stepparse.At(args, 4).AsReal()
	return []model.GeometryParameter{
		numberParam(entityID, prefixPath(prefix, "SemiAxis1"), "Semi-Axis 1", a, 3, "m", model.ConstraintMinValue),
		numberParam(entityID, prefixPath(prefix, "SemiAxis2"), "Semi-Axis 2", b, 4, "m", model.ConstraintMinValue),
	}
}

// extractIShapeProfile: IfcIShapeProfileDef(..., OverallWidth, OverallDepth,
// WebThickness, FlangeThickness, FilletRadius?).
func extractIShapeProfile(entityID uint32, args []stepparse.Arg, prefix string) []model.GeometryParameter {
	width, _ := stepparse.At(args, 3).AsReal()
	depth, _ := stepparse.At(args, 4).AsReal()
	web, _ := stepparse.At(args, 5).AsReal()
	flange, _ := stepparse.At(args, 6).AsReal()
	return []model.GeometryParameter{
		numberParam(entityID, prefixPath(prefix, "OverallWidth"), "Overall Width", width, 3, "m", model.ConstraintMinValue),
		numberParam(entityID, prefixPath(prefix, "OverallDepth"), "Overall Depth", depth, 4, "m", model.ConstraintMinValue),
		numberParam(entityID, prefixPath(prefix, "WebThickness"), "Web Thickness", web, 5, "m", model.ConstraintMinValue),
		numberParam(entityID, prefixPath(prefix, "FlangeThickness"), "Flange Thickness", flange, 6, "m", model.ConstraintMinValue),
	}
}

// extractArbitraryClosedProfile: IfcArbitraryClosedProfileDef(ProfileType,
// ProfileName, OuterCurve -> IfcPolyline(Points[])). A profile with fewer
// than 3 points is silently dropped (spec §8): no parameter is produced.
func extractArbitraryClosedProfile(m *model.Model, entityID uint32, args []stepparse.Arg, prefix string) []model.GeometryParameter {
	curveRef, ok := stepparse.At(args, 2).AsRef()
	if !ok {
		return nil
	}
	curveArgs, curveType, found := stepparse.DecodeEntityArgs(m, curveRef)
	if !found || curveType != "IFCPOLYLINE" {
		return nil
	}
	pointRefs, _ := stepparse.At(curveArgs, 0).AsList()
	points := make([]model.Point2D, 0, len(pointRefs))
	for _, pr := range pointRefs {
		ref, ok := pr.AsRef()
		if !ok {
			continue
		}
		v, ok := decodeCartesianPointVec3(m, ref)
		if !ok {
			continue
		}
		points = append(points, model.Point2D{X: v[0], Y: v[1]})
	}
	if len(points) < 3 {
		return nil
	}
	return []model.GeometryParameter{profileParam(entityID, prefixPath(prefix, "OuterCurve"), "Outer Curve", points, 2)}
}

// extractBooleanClippingResult: SecondOperand -> IfcHalfSpaceSolid ->
// BaseSurface (IfcPlane) -> Position (IfcAxis2Placement3D) -> Location /
// Axis.
func extractBooleanClippingResult(m *model.Model, entityID uint32, args []stepparse.Arg) []model.GeometryParameter {
	secondOperand, ok := stepparse.At(args, 2).AsRef()
	if !ok {
		return nil
	}
	halfSpaceArgs, _, found := stepparse.DecodeEntityArgs(m, secondOperand)
	if !found {
		return nil
	}
	baseSurface, ok := stepparse.At(halfSpaceArgs, 0).AsRef()
	if !ok {
		return nil
	}
	surfaceArgs, _, found := stepparse.DecodeEntityArgs(m, baseSurface)
	if !found {
		return nil
	}
	posRef, ok := stepparse.At(surfaceArgs, 0).AsRef()
	if !ok {
		return nil
	}
	posArgs, _, found := stepparse.DecodeEntityArgs(m, posRef)
	if !found {
		return nil
	}

	var out []model.GeometryParameter
	if locRef, ok := stepparse.At(posArgs, 0).AsRef(); ok {
		if v, ok := decodeCartesianPointVec3(m, locRef); ok {
			out = append(out, vec3Param(entityID, "SecondOperand.BaseSurface.Position.Location", "Clip Plane Origin", v, 2, "BaseSurface", "Position", "Location"))
		}
	}
	if axisRef, ok := stepparse.At(posArgs, 1).AsRef(); ok {
		if v, ok := decodeDirectionVec3(m, axisRef); ok {
			out = append(out, vec3Param(entityID, "SecondOperand.BaseSurface.Position.Axis", "Clip Plane Normal", v, 2, "BaseSurface", "Position", "Axis"))
		}
	}
	return out
}

func decodeDirectionVec3(m *model.Model, ref uint32) (model.ParamVec3, bool) {
	args, _, found := stepparse.DecodeEntityArgs(m, ref)
	if !found {
		return model.ParamVec3{}, false
	}
	return ratiosToVec3(stepparse.At(args, 0)), true
}

func decodeCartesianPointVec3(m *model.Model, ref uint32) (model.ParamVec3, bool) {
	args, _, found := stepparse.DecodeEntityArgs(m, ref)
	if !found {
		return model.ParamVec3{}, false
	}
	return ratiosToVec3(stepparse.At(args, 0)), true
}

func ratiosToVec3(a stepparse.Arg) model.ParamVec3 {
	list, ok := a.AsList()
	if !ok {
		return model.ParamVec3{}
	}
	var v model.ParamVec3
	for i := 0; i < len(list) && i < 3; i++ {
		if n, ok := list[i].AsReal(); ok {
			v[i] = n
		}
	}
	return v
}
