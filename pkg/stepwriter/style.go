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

// styleFor returns the IfcSurfaceStyle id for an rgba tuple, creating and
// caching one on first use. Identical rgba tuples share one style entity
// (spec §4.7 "Styling").
func (c *Creator) styleFor(rgba [4]float32) uint32 {
	if id, ok := c.styleCache[rgba]; ok {
		return id
	}
	colourID := c.w.emitNew("IFCCOLOURRGB", fmt.Sprintf("$,%s", reals(float64(rgba[0]), float64(rgba[1]), float64(rgba[2]))))
	renderingID := c.w.emitNew("IFCSURFACESTYLERENDERING", fmt.Sprintf(
		"%s,$,$,$,$,$,$,%s,.NOTDEFINED.", formatRef(colourID), formatReal(0.5)))
	styleID := c.w.emitNew("IFCSURFACESTYLE", fmt.Sprintf("$,.BOTH.,%s", refs(renderingID)))
	c.styleCache[rgba] = styleID
	return styleID
}

// styleItem wraps a representation item's shape with an IfcStyledItem
// referencing the cached surface style for rgba.
func (c *Creator) styleItem(itemID uint32, rgba [4]float32) uint32 {
	styleID := c.styleFor(rgba)
	return c.w.emitNew("IFCSTYLEDITEM", fmt.Sprintf("%s,%s,$", formatRef(itemID), refs(styleID)))
}

// MaterialSpec describes a simple (single) or layered material to associate
// with one or more elements (spec §4.7 "Materials").
type MaterialSpec struct {
	Name   string
	Layers []MaterialLayer // empty => simple IfcMaterial
}

// MaterialLayer is one layer of a layered material (thickness in meters).
type MaterialLayer struct {
	MaterialName string
	Thickness    float64
}

// key identifies a MaterialSpec for caching so two elements sharing
// an identical material batch into one IfcRelAssociatesMaterial (spec §4.7
// "Materials": "one rel per material, listing all elements sharing it").
func (spec MaterialSpec) key() string {
	k := spec.Name
	for _, l := range spec.Layers {
		k += "|" + l.MaterialName + fmt.Sprintf(":%g", l.Thickness)
	}
	return k
}

// AssociateMaterial links element to spec, creating the material entity on
// first use and batching the association by material identity.
func (c *Creator) AssociateMaterial(element uint32, spec MaterialSpec) {
	key := spec.key()
	entry, ok := c.materialCache[key]
	if !ok {
		entry = materialEntry{ID: c.emitMaterial(spec)}
	}
	entry.Elements = append(entry.Elements, element)
	c.materialCache[key] = entry
}

func (c *Creator) emitMaterial(spec MaterialSpec) uint32 {
	if len(spec.Layers) == 0 {
		return c.w.emitNew("IFCMATERIAL", fmt.Sprintf("%s,$,$", formatString(spec.Name)))
	}
	layerIDs := make([]uint32, len(spec.Layers))
	for i, l := range spec.Layers {
		matID := c.w.emitNew("IFCMATERIAL", fmt.Sprintf("%s,$,$", formatString(l.MaterialName)))
		layerIDs[i] = c.w.emitNew("IFCMATERIALLAYER", fmt.Sprintf("%s,%s,$,$,$,$,$",
			formatRef(matID), formatReal(l.Thickness)))
	}
	return c.w.emitNew("IFCMATERIALLAYERSET", fmt.Sprintf("%s,%s,$", refs(layerIDs...), formatString(spec.Name)))
}

// finalizeMaterials emits one IfcRelAssociatesMaterial per distinct
// material, listing every element that shares it.
func (c *Creator) finalizeMaterials() {
	for _, entry := range c.materialCache {
		c.w.emitNew("IFCRELASSOCIATESMATERIAL", fmt.Sprintf("%s,%s,$,$,%s,%s",
			mustGlobalID(c.w), formatRef(c.ownerHistoryID), refs(entry.Elements...), formatRef(entry.ID)))
	}
}
