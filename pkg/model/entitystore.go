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

import "github.com/kraklabs/ifckit/pkg/intern"

// Flag bits for EntityStore.flags. HAS_GEOMETRY through IS_FILLING from
// spec §3's EntityRecord.
const (
	FlagHasGeometry   uint8 = 1 << iota // at least one reachable Body/SweptSolid/Brep/Clipping/Tessellation representation
	FlagHasProperties                  // target of at least one DefinesByProperties edge to a Pset
	FlagHasQuantities                  // target of at least one DefinesByProperties edge to a Qset
	FlagIsType                         // an IfcXxxType definition entity
	FlagHasOpenings                    // host of at least one VoidsElement edge
	FlagIsFilling                      // filling side of a FillsElement edge
)

// noIndex marks "no row" in idToIndex lookups.
const noIndex = -1

// EntityStore is the columnar table of every entity discovered during
// parsing. For N entities it keeps N parallel slices indexed 0..N-1, plus
// O(1) auxiliary indices. Once Phase E completes the arrays are frozen:
// no column is reallocated or reassigned again for the life of the Model
// (spec §5 "Shared resource policy").
type EntityStore struct {
	interner *intern.Table

	expressID         []uint32
	typeTag           []TypeTag
	globalID          []uint32 // interned
	name              []uint32 // interned
	description       []uint32 // interned
	objectType        []uint32 // interned
	flags             []uint8
	containedInStorey []int32 // -1 = none
	definedByType     []int32 // -1 = none
	geometryIndex     []int32 // -1 = none
	byteOffset        []int64
	byteLength        []int32

	idToIndex         map[uint32]int
	globalIDToExpress map[string]uint32
	typeIndices       map[TypeTag][]int

	frozen bool
}

// NewEntityStore creates an empty store backed by the given interner. The
// interner is shared with the parser so GlobalId/Name/ObjectType columns
// intern into the same table as everything else in the Model.
func NewEntityStore(interner *intern.Table) *EntityStore {
	return &EntityStore{
		interner:          interner,
		idToIndex:         make(map[uint32]int, 1024),
		globalIDToExpress: make(map[string]uint32, 1024),
		typeIndices:       make(map[TypeTag][]int),
	}
}

// NewRecord is the mutable form of EntityRecord passed to Add during parsing.
type NewRecord struct {
	ExpressID   uint32
	TypeTag     TypeTag
	GlobalID    string
	Name        string
	Description string
	ObjectType  string
	Flags       uint8
	ByteOffset  int64
	ByteLength  int32
}

// Add appends a new row. Returns the row index. Calling Add after Freeze
// panics — it would violate the "no column reallocated after Phase E"
// invariant and silently corrupt typeIndices.
func (s *EntityStore) Add(r NewRecord) int {
	if s.frozen {
		panic("model: Add called on a frozen EntityStore")
	}
	idx := len(s.expressID)

	s.expressID = append(s.expressID, r.ExpressID)
	s.typeTag = append(s.typeTag, r.TypeTag)
	s.globalID = append(s.globalID, s.interner.Intern(r.GlobalID))
	s.name = append(s.name, s.interner.Intern(r.Name))
	s.description = append(s.description, s.interner.Intern(r.Description))
	s.objectType = append(s.objectType, s.interner.Intern(r.ObjectType))
	s.flags = append(s.flags, r.Flags)
	s.containedInStorey = append(s.containedInStorey, noIndex)
	s.definedByType = append(s.definedByType, noIndex)
	s.geometryIndex = append(s.geometryIndex, noIndex)
	s.byteOffset = append(s.byteOffset, r.ByteOffset)
	s.byteLength = append(s.byteLength, r.ByteLength)

	s.idToIndex[r.ExpressID] = idx
	if r.GlobalID != "" {
		s.globalIDToExpress[r.GlobalID] = r.ExpressID
	}
	s.typeIndices[r.TypeTag] = append(s.typeIndices[r.TypeTag], idx)
	return idx
}

// Freeze marks the store read-only. Called once at the end of Phase E.
func (s *EntityStore) Freeze() { s.frozen = true }

// Len returns the number of entities in the store.
func (s *EntityStore) Len() int { return len(s.expressID) }

// indexOf resolves an expressId to its row, or (0, false) if unknown.
func (s *EntityStore) indexOf(expressID uint32) (int, bool) {
	idx, ok := s.idToIndex[expressID]
	return idx, ok
}

// Exists reports whether expressID is present in the store.
func (s *EntityStore) Exists(expressID uint32) bool {
	_, ok := s.idToIndex[expressID]
	return ok
}

// TypeTagOf returns the type tag of expressID, or TagUnknown if absent.
func (s *EntityStore) TypeTagOf(expressID uint32) TypeTag {
	idx, ok := s.indexOf(expressID)
	if !ok {
		return TagUnknown
	}
	return s.typeTag[idx]
}

// TypeNameOf returns the canonical uppercase type name of expressID, or
// "UNKNOWN" if absent.
func (s *EntityStore) TypeNameOf(expressID uint32) string {
	return TypeName(s.TypeTagOf(expressID))
}

// GetName returns the interned Name column, or "" if unknown.
func (s *EntityStore) GetName(expressID uint32) string {
	idx, ok := s.indexOf(expressID)
	if !ok {
		return ""
	}
	return s.interner.Get(s.name[idx])
}

// GetDescription returns the interned Description column, or "" if unknown.
func (s *EntityStore) GetDescription(expressID uint32) string {
	idx, ok := s.indexOf(expressID)
	if !ok {
		return ""
	}
	return s.interner.Get(s.description[idx])
}

// GetObjectType returns the interned ObjectType column, or "" if unknown.
func (s *EntityStore) GetObjectType(expressID uint32) string {
	idx, ok := s.indexOf(expressID)
	if !ok {
		return ""
	}
	return s.interner.Get(s.objectType[idx])
}

// GetGlobalID returns the interned GlobalId column, or "" if unknown.
func (s *EntityStore) GetGlobalID(expressID uint32) string {
	idx, ok := s.indexOf(expressID)
	if !ok {
		return ""
	}
	return s.interner.Get(s.globalID[idx])
}

// HasGeometry reports whether expressID carries FlagHasGeometry.
func (s *EntityStore) HasGeometry(expressID uint32) bool {
	return s.hasFlag(expressID, FlagHasGeometry)
}

// HasFlag reports whether expressID carries the given flag bit.
func (s *EntityStore) HasFlag(expressID uint32, flag uint8) bool {
	return s.hasFlag(expressID, flag)
}

func (s *EntityStore) hasFlag(expressID uint32, flag uint8) bool {
	idx, ok := s.indexOf(expressID)
	if !ok {
		return false
	}
	return s.flags[idx]&flag != 0
}

// SetFlag ORs flag into expressID's flags column. No-op if expressID is
// unknown. Used by Phase C relationship wiring (HAS_PROPERTIES,
// HAS_OPENINGS, IS_FILLING, ...).
func (s *EntityStore) SetFlag(expressID uint32, flag uint8) {
	idx, ok := s.indexOf(expressID)
	if !ok {
		return
	}
	s.flags[idx] |= flag
}

// SetContainedInStorey records the storey an element is directly contained
// in (from an IfcRelContainedInSpatialStructure edge). No-op if unknown.
func (s *EntityStore) SetContainedInStorey(expressID, storeyID uint32) {
	idx, ok := s.indexOf(expressID)
	if !ok {
		return
	}
	s.containedInStorey[idx] = int32(storeyID)
}

// ContainedInStorey returns the storey expressId an element is directly
// contained in, or (0, false) if none.
func (s *EntityStore) ContainedInStorey(expressID uint32) (uint32, bool) {
	idx, ok := s.indexOf(expressID)
	if !ok || s.containedInStorey[idx] < 0 {
		return 0, false
	}
	return uint32(s.containedInStorey[idx]), true
}

// SetDefinedByType records the type entity an occurrence is defined by
// (from an IfcRelDefinesByType edge). No-op if unknown.
func (s *EntityStore) SetDefinedByType(expressID, typeID uint32) {
	idx, ok := s.indexOf(expressID)
	if !ok {
		return
	}
	s.definedByType[idx] = int32(typeID)
}

// DefinedByType returns the defining type expressId, or (0, false).
func (s *EntityStore) DefinedByType(expressID uint32) (uint32, bool) {
	idx, ok := s.indexOf(expressID)
	if !ok || s.definedByType[idx] < 0 {
		return 0, false
	}
	return uint32(s.definedByType[idx]), true
}

// SetGeometryIndex records the row of this entity's MeshData in a parallel
// geometry store. No-op if unknown.
func (s *EntityStore) SetGeometryIndex(expressID uint32, geomIdx int) {
	idx, ok := s.indexOf(expressID)
	if !ok {
		return
	}
	s.geometryIndex[idx] = int32(geomIdx)
}

// GeometryIndex returns the geometry row for expressID, or (0, false).
func (s *EntityStore) GeometryIndex(expressID uint32) (int, bool) {
	idx, ok := s.indexOf(expressID)
	if !ok || s.geometryIndex[idx] < 0 {
		return 0, false
	}
	return int(s.geometryIndex[idx]), true
}

// ByteRange returns the (offset, length) slice of the source buffer this
// entity's line occupies, for lazy attribute decoding.
func (s *EntityStore) ByteRange(expressID uint32) (offset int64, length int32, ok bool) {
	idx, found := s.indexOf(expressID)
	if !found {
		return 0, 0, false
	}
	return s.byteOffset[idx], s.byteLength[idx], true
}

// GetByType returns every expressId tagged with tag, in discovery order.
// The result is exact even when the source file interleaves types with
// other entities (typeIndices is built incrementally in Add, not assumed
// contiguous).
func (s *EntityStore) GetByType(tag TypeTag) []uint32 {
	rows := s.typeIndices[tag]
	out := make([]uint32, len(rows))
	for i, r := range rows {
		out[i] = s.expressID[r]
	}
	return out
}

// GetExpressIDByGlobalID resolves a 22-character GlobalId to its expressId,
// or (0, false) if no entity carries that GlobalId.
func (s *EntityStore) GetExpressIDByGlobalID(globalID string) (uint32, bool) {
	id, ok := s.globalIDToExpress[globalID]
	return id, ok
}

// MaxExpressID returns the largest expressId seen, or 0 for an empty store.
func (s *EntityStore) MaxExpressID() uint32 {
	var max uint32
	for _, id := range s.expressID {
		if id > max {
			max = id
		}
	}
	return max
}

// All returns every expressId in discovery (row) order. Used by the Writer's
// Export path, which must preserve original source order.
func (s *EntityStore) All() []uint32 {
	out := make([]uint32, len(s.expressID))
	copy(out, s.expressID)
	return out
}
