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

package model

import "strings"

// TypeTag is the stable 16-bit mapping from an uppercase IFC type name to a
// small integer. The exact numbers are part of the on-disk contract for
// cached stores (spec §6) and must never be renumbered.
type TypeTag uint16

// Spatial tags.
const (
	TagProject TypeTag = 1 + iota
	TagSite
	TagBuilding
	TagBuildingStorey
	TagSpace
)

// Building element tags.
const (
	TagWall TypeTag = 10 + iota
	TagWallStandardCase
	TagDoor
	TagWindow
	TagSlab
	TagColumn
	TagBeam
	TagStair
	TagRamp
	TagRoof
	TagCurtainWall
	TagRailing
	TagFurnishingElement
	TagFlowTerminal
	TagFlowSegment
	TagMember
	TagPlate
	TagFooting
	TagBuildingElementProxy
)

// Opening tag.
const (
	TagOpeningElement TypeTag = 30
)

// Relationship entity tags (100-109).
const (
	TagRelAggregates TypeTag = 100 + iota
	TagRelContainedInSpatialStructure
	TagRelDefinesByProperties
	TagRelDefinesByType
	TagRelVoidsElement
	TagRelFillsElement
	TagRelAssociatesMaterial
	TagRelAssociatesClassification
	TagRelConnectsPathElements
	TagRelSpaceBoundary
)

// Property entity tags (200-215).
const (
	TagPropertySet TypeTag = 200 + iota
	TagPropertySingleValue
	TagElementQuantity
	TagQuantityLength
	TagQuantityArea
	TagQuantityVolume
	TagQuantityCount
	TagQuantityWeight
	TagMaterial
	TagMaterialLayer
	TagMaterialLayerSet
	TagStyledItem
	TagSurfaceStyle
	TagClassification
)

// Type-definition tags (300-316): IfcXxxType entities referenced via
// IfcRelDefinesByType.
const (
	TagWallType TypeTag = 300 + iota
	TagDoorType
	TagWindowType
	TagSlabType
	TagColumnType
	TagBeamType
	TagFurnitureType
	TagMemberType
	TagPlateType
)

// TagUnknown marks an entity whose type name was not recognized, or whose
// line was malformed. The byte range is preserved so the Writer's Export
// path can still round-trip it verbatim.
const TagUnknown TypeTag = 9999

var nameToTag = map[string]TypeTag{
	"IFCPROJECT":                      TagProject,
	"IFCSITE":                         TagSite,
	"IFCBUILDING":                     TagBuilding,
	"IFCBUILDINGSTOREY":               TagBuildingStorey,
	"IFCSPACE":                        TagSpace,
	"IFCWALL":                         TagWall,
	"IFCWALLSTANDARDCASE":             TagWallStandardCase,
	"IFCDOOR":                         TagDoor,
	"IFCWINDOW":                       TagWindow,
	"IFCSLAB":                         TagSlab,
	"IFCCOLUMN":                       TagColumn,
	"IFCBEAM":                         TagBeam,
	"IFCSTAIR":                        TagStair,
	"IFCRAMP":                         TagRamp,
	"IFCROOF":                         TagRoof,
	"IFCCURTAINWALL":                  TagCurtainWall,
	"IFCRAILING":                      TagRailing,
	"IFCFURNISHINGELEMENT":            TagFurnishingElement,
	"IFCFLOWTERMINAL":                 TagFlowTerminal,
	"IFCFLOWSEGMENT":                  TagFlowSegment,
	"IFCMEMBER":                       TagMember,
	"IFCPLATE":                        TagPlate,
	"IFCFOOTING":                      TagFooting,
	"IFCBUILDINGELEMENTPROXY":         TagBuildingElementProxy,
	"IFCOPENINGELEMENT":               TagOpeningElement,
	"IFCRELAGGREGATES":                TagRelAggregates,
	"IFCRELCONTAINEDINSPATIALSTRUCTURE": TagRelContainedInSpatialStructure,
	"IFCRELDEFINESBYPROPERTIES":       TagRelDefinesByProperties,
	"IFCRELDEFINESBYTYPE":             TagRelDefinesByType,
	"IFCRELVOIDSELEMENT":              TagRelVoidsElement,
	"IFCRELFILLSELEMENT":              TagRelFillsElement,
	"IFCRELASSOCIATESMATERIAL":        TagRelAssociatesMaterial,
	"IFCRELASSOCIATESCLASSIFICATION":  TagRelAssociatesClassification,
	"IFCRELCONNECTSPATHELEMENTS":      TagRelConnectsPathElements,
	"IFCRELSPACEBOUNDARY":             TagRelSpaceBoundary,
	"IFCPROPERTYSET":                  TagPropertySet,
	"IFCPROPERTYSINGLEVALUE":         TagPropertySingleValue,
	"IFCELEMENTQUANTITY":              TagElementQuantity,
	"IFCQUANTITYLENGTH":               TagQuantityLength,
	"IFCQUANTITYAREA":                 TagQuantityArea,
	"IFCQUANTITYVOLUME":               TagQuantityVolume,
	"IFCQUANTITYCOUNT":                TagQuantityCount,
	"IFCQUANTITYWEIGHT":               TagQuantityWeight,
	"IFCMATERIAL":                     TagMaterial,
	"IFCMATERIALLAYER":                TagMaterialLayer,
	"IFCMATERIALLAYERSET":             TagMaterialLayerSet,
	"IFCSTYLEDITEM":                   TagStyledItem,
	"IFCSURFACESTYLE":                 TagSurfaceStyle,
	"IFCCLASSIFICATION":               TagClassification,
	"IFCWALLTYPE":                     TagWallType,
	"IFCDOORTYPE":                     TagDoorType,
	"IFCWINDOWTYPE":                   TagWindowType,
	"IFCSLABTYPE":                     TagSlabType,
	"IFCCOLUMNTYPE":                   TagColumnType,
	"IFCBEAMTYPE":                     TagBeamType,
	"IFCFURNITURETYPE":                TagFurnitureType,
	"IFCMEMBERTYPE":                   TagMemberType,
	"IFCPLATETYPE":                    TagPlateType,
}

var tagToName map[TypeTag]string

func init() {
	tagToName = make(map[TypeTag]string, len(nameToTag))
	for name, tag := range nameToTag {
		// StandardCase variants fold into their base type's display name
		// only when the base type isn't already registered under that tag.
		if _, exists := tagToName[tag]; !exists {
			tagToName[tag] = name
		}
	}
}

// TypeTagFromName maps an uppercase IFC type name (without leading '#N=')
// to its stable tag. Unknown names return TagUnknown.
func TypeTagFromName(name string) TypeTag {
	tag, ok := nameToTag[strings.ToUpper(name)]
	if !ok {
		return TagUnknown
	}
	return tag
}

// TypeName returns the canonical uppercase IFC name for a tag, or "UNKNOWN"
// if the tag has no registered name.
func TypeName(tag TypeTag) string {
	if name, ok := tagToName[tag]; ok {
		return name
	}
	return "UNKNOWN"
}

// relationshipTypeNames lists every IFC type name that Phase C treats as a
// relationship and routes into the RelationshipGraph instead of (or in
// addition to) the EntityStore.
var relationshipTypeNames = map[string]bool{
	"IFCRELAGGREGATES":                  true,
	"IFCRELCONTAINEDINSPATIALSTRUCTURE": true,
	"IFCRELDEFINESBYPROPERTIES":         true,
	"IFCRELDEFINESBYTYPE":               true,
	"IFCRELVOIDSELEMENT":                true,
	"IFCRELFILLSELEMENT":                true,
	"IFCRELASSOCIATESMATERIAL":          true,
	"IFCRELASSOCIATESCLASSIFICATION":    true,
	"IFCRELCONNECTSPATHELEMENTS":        true,
	"IFCRELSPACEBOUNDARY":               true,
}

// IsRelationshipType reports whether an uppercase IFC type name is one of
// the IfcRel* entities wired into the RelationshipGraph during Phase C.
func IsRelationshipType(name string) bool {
	return relationshipTypeNames[strings.ToUpper(name)]
}

// productLikeTypeNames are eagerly parsed in Phase B for their leading
// GlobalId / Name / Description / ObjectType / Tag / ObjectPlacement /
// Representation slots (spec §4.3 Phase B, step 2).
var productLikeTypeNames = map[string]bool{
	"IFCWALL": true, "IFCWALLSTANDARDCASE": true, "IFCSLAB": true,
	"IFCCOLUMN": true, "IFCBEAM": true, "IFCDOOR": true, "IFCWINDOW": true,
	"IFCROOF": true, "IFCSTAIR": true, "IFCRAMP": true, "IFCSPACE": true,
	"IFCOPENINGELEMENT": true, "IFCBUILDINGELEMENTPROXY": true,
	"IFCFLOWTERMINAL": true, "IFCFLOWSEGMENT": true, "IFCFURNISHINGELEMENT": true,
	"IFCMEMBER": true, "IFCPLATE": true, "IFCFOOTING": true,
	"IFCCURTAINWALL": true, "IFCRAILING": true,
}

// IsProductLike reports whether an uppercase IFC type name gets eager
// leading-slot extraction during entity discovery instead of pure
// byte-range deferral.
func IsProductLike(name string) bool {
	return productLikeTypeNames[strings.ToUpper(name)]
}
