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

// ValueKind tags the dynamic type carried by a Property.Value.
type ValueKind uint8

// Tagged value kinds a Property or Quantity can carry (spec §3).
const (
	ValueString ValueKind = iota
	ValueReal
	ValueInteger
	ValueBoolean
	ValueLogical
	ValueLabel
	ValueIdentifier
	ValueText
	ValueEnum
	ValueReference
	ValueList
)

// Value is a tagged union over the property value kinds above. Only the
// field matching Kind is meaningful.
type Value struct {
	Kind ValueKind
	Str  string
	Num  float64
	Int  int64
	Bool bool
	Ref  uint32
	List []Value
}

// QuantityKind distinguishes the five IfcQuantity* flavors (spec §3).
type QuantityKind uint8

const (
	QuantityLength QuantityKind = iota
	QuantityArea
	QuantityVolume
	QuantityCount
	QuantityWeight
)

// Property is one member of a PropertySet (an IfcPropertySingleValue, in
// the common case).
type Property struct {
	Name  string
	Value Value
	Unit  string // optional; "" if the IFC attribute slot was $
}

// PropertySet mirrors one IfcPropertySet entity, materialized during
// Phase E.
type PropertySet struct {
	ExpressID  uint32
	Name       string
	Properties []Property
}

// Quantity is one member of a QuantitySet (an IfcQuantityLength/Area/
// Volume/Count/Weight, in the common case).
type Quantity struct {
	Name  string
	Kind  QuantityKind
	Value float64
}

// QuantitySet mirrors one IfcElementQuantity entity.
type QuantitySet struct {
	ExpressID  uint32
	Name       string
	Quantities []Quantity
}

// PropertyTable is the columnar-by-pset store of every PropertySet found
// during Phase E, plus the DefinesByProperties linkage that connects a
// pset to the entities it targets.
type PropertyTable struct {
	sets        map[uint32]*PropertySet
	byEntity    map[uint32][]uint32 // target entity -> pset expressIds
}

// NewPropertyTable creates an empty table.
func NewPropertyTable() *PropertyTable {
	return &PropertyTable{
		sets:     make(map[uint32]*PropertySet),
		byEntity: make(map[uint32][]uint32),
	}
}

// AddSet registers a materialized PropertySet.
func (t *PropertyTable) AddSet(ps PropertySet) {
	cp := ps
	t.sets[ps.ExpressID] = &cp
}

// LinkEntity records that pset targets entity (from a DefinesByProperties
// edge). One pset can target many entities.
func (t *PropertyTable) LinkEntity(entity, pset uint32) {
	t.byEntity[entity] = append(t.byEntity[entity], pset)
}

// Get returns the PropertySet for a given expressId, or nil if absent.
func (t *PropertyTable) Get(expressID uint32) *PropertySet {
	return t.sets[expressID]
}

// SetsFor returns every PropertySet targeting entity.
func (t *PropertyTable) SetsFor(entity uint32) []*PropertySet {
	ids := t.byEntity[entity]
	out := make([]*PropertySet, 0, len(ids))
	for _, id := range ids {
		if ps := t.sets[id]; ps != nil {
			out = append(out, ps)
		}
	}
	return out
}

// QuantityTable parallels PropertyTable for IfcElementQuantity entities.
type QuantityTable struct {
	sets     map[uint32]*QuantitySet
	byEntity map[uint32][]uint32
}

// NewQuantityTable creates an empty table.
func NewQuantityTable() *QuantityTable {
	return &QuantityTable{
		sets:     make(map[uint32]*QuantitySet),
		byEntity: make(map[uint32][]uint32),
	}
}

// AddSet registers a materialized QuantitySet.
func (t *QuantityTable) AddSet(qs QuantitySet) {
	cp := qs
	t.sets[qs.ExpressID] = &cp
}

// LinkEntity records that qset targets entity.
func (t *QuantityTable) LinkEntity(entity, qset uint32) {
	t.byEntity[entity] = append(t.byEntity[entity], qset)
}

// Get returns the QuantitySet for expressId, or nil if absent.
func (t *QuantityTable) Get(expressID uint32) *QuantitySet {
	return t.sets[expressID]
}

// SetsFor returns every QuantitySet targeting entity.
func (t *QuantityTable) SetsFor(entity uint32) []*QuantitySet {
	ids := t.byEntity[entity]
	out := make([]*QuantitySet, 0, len(ids))
	for _, id := range ids {
		if qs := t.sets[id]; qs != nil {
			out = append(out, qs)
		}
	}
	return out
}
