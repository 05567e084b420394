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

	"github.com/kraklabs/ifckit/pkg/model"
)

// PropertyValue is one (name, typed value) pair destined for an
// IfcPropertySingleValue (spec §4.7 "Property & Quantity sets").
type PropertyValue struct {
	Name  string
	Kind  model.ValueKind
	Str   string
	Num   float64
	Int   int64
	Bool  bool
}

// AddPropertySet emits one IfcPropertySingleValue per property, an
// IfcPropertySet wrapping them, and an IfcRelDefinesByProperties linking it
// to target.
func (c *Creator) AddPropertySet(target uint32, name string, props []PropertyValue) uint32 {
	propIDs := make([]uint32, len(props))
	for i, p := range props {
		propIDs[i] = c.w.emitNew("IFCPROPERTYSINGLEVALUE", fmt.Sprintf("%s,$,%s,$",
			formatString(p.Name), valueTypeTag(p)))
	}
	psetID := c.w.emitNew("IFCPROPERTYSET", fmt.Sprintf("%s,%s,%s,$,%s",
		mustGlobalID(c.w), formatRef(c.ownerHistoryID), formatString(name), refs(propIDs...)))
	c.w.emitNew("IFCRELDEFINESBYPROPERTIES", fmt.Sprintf("%s,%s,$,$,%s,%s",
		mustGlobalID(c.w), formatRef(c.ownerHistoryID), refs(target), formatRef(psetID)))
	return psetID
}

func valueTypeTag(p PropertyValue) string {
	switch p.Kind {
	case model.ValueReal:
		return formatTyped("IFCREAL", formatReal(p.Num))
	case model.ValueInteger:
		return formatTyped("IFCINTEGER", fmt.Sprintf("%d", p.Int))
	case model.ValueBoolean:
		return formatTyped("IFCBOOLEAN", formatBool(p.Bool))
	default:
		return formatTyped("IFCLABEL", formatString(p.Str))
	}
}

// QuantityValue is one named quantity destined for an IfcQuantityX entity.
type QuantityValue struct {
	Name  string
	Kind  model.QuantityKind
	Value float64
}

// AddQuantitySet emits one IfcQuantityLength/Area/Volume/Count/Weight per
// quantity, an IfcElementQuantity wrapping them, and an
// IfcRelDefinesByProperties linking it to target (spec §4.7).
func (c *Creator) AddQuantitySet(target uint32, name string, quantities []QuantityValue) uint32 {
	qIDs := make([]uint32, len(quantities))
	for i, q := range quantities {
		qIDs[i] = c.w.emitNew(quantityTypeName(q.Kind), fmt.Sprintf("%s,$,$,%s",
			formatString(q.Name), formatReal(q.Value)))
	}
	qsetID := c.w.emitNew("IFCELEMENTQUANTITY", fmt.Sprintf("%s,%s,%s,$,$,%s",
		mustGlobalID(c.w), formatRef(c.ownerHistoryID), formatString(name), refs(qIDs...)))
	c.w.emitNew("IFCRELDEFINESBYPROPERTIES", fmt.Sprintf("%s,%s,$,$,%s,%s",
		mustGlobalID(c.w), formatRef(c.ownerHistoryID), refs(target), formatRef(qsetID)))
	return qsetID
}

func quantityTypeName(kind model.QuantityKind) string {
	switch kind {
	case model.QuantityArea:
		return "IFCQUANTITYAREA"
	case model.QuantityVolume:
		return "IFCQUANTITYVOLUME"
	case model.QuantityCount:
		return "IFCQUANTITYCOUNT"
	case model.QuantityWeight:
		return "IFCQUANTITYWEIGHT"
	default:
		return "IFCQUANTITYLENGTH"
	}
}

// StyleElement wraps element's shape representation items with an
// IfcStyledItem for rgba, reusing a cached IfcSurfaceStyle for repeated
// colors (spec §4.7 "Styling").
func (c *Creator) StyleElement(itemID uint32, rgba [4]float32) uint32 {
	return c.styleItem(itemID, rgba)
}
