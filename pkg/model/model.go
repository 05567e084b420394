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

// Package model holds the columnar data model that the parser fills in and
// the edit layer, writer, and viewers read from: the entity store, the
// string interner, the property/quantity tables, the relationship graph,
// and the spatial hierarchy.
package model

import "github.com/kraklabs/ifckit/pkg/intern"

// Schema identifies which of the three IFC schema versions a model was
// parsed against or should be written as (spec §6).
type Schema string

// Recognized schema tokens. The reader accepts all three; the writer emits
// IFC4 by default.
const (
	SchemaIFC2X3 Schema = "IFC2X3"
	SchemaIFC4   Schema = "IFC4"
	SchemaIFC4X3 Schema = "IFC4X3"
)

// ParseSchema normalizes a FILE_SCHEMA token to a Schema, reporting ok=false
// for anything not in {IFC2X3, IFC4, IFC4X3} — a fatal MalformedHeader
// condition for the parser (spec §4.3 Phase A).
func ParseSchema(token string) (Schema, bool) {
	switch Schema(token) {
	case SchemaIFC2X3, SchemaIFC4, SchemaIFC4X3:
		return Schema(token), true
	default:
		return "", false
	}
}

// MeshData is the indexed triangle mesh skin for one product, produced by
// the geometry engine and consumed by the Edit Layer, renderer (out of
// scope), and Writer.
type MeshData struct {
	ExpressID  uint32 // owning product
	Positions  []float32 // tight-packed xyz
	Normals    []float32 // same layout as Positions
	Indices    []uint32  // triples
	BaseColor  [4]float32
	ModelIndex int
}

// VertexCount returns the number of vertices in the mesh.
func (m *MeshData) VertexCount() int { return len(m.Positions) / 3 }

// TriangleCount returns the number of triangles in the mesh.
func (m *MeshData) TriangleCount() int { return len(m.Indices) / 3 }

// Model is one parsed (or freshly created) IFC file: its entity store,
// spatial hierarchy, property/quantity tables, relationship graph, and the
// source bytes the byte-offset columns point into. Model owns all of its
// arrays flatly; there is no pointer ownership between entities.
type Model struct {
	ID     string
	Name   string
	Schema Schema

	// IDOffset is this model's session-wide id base in a federated
	// session: SessionID(expressID) = expressID + IDOffset. Zero for a
	// standalone model.
	IDOffset uint32

	Source []byte // shared-immutable for the life of the Model; byte-range columns point into it

	Interner    *intern.Table
	Entities    *EntityStore
	Spatial     *SpatialHierarchy
	Properties  *PropertyTable
	Quantities  *QuantityTable
	Graph       *RelationshipGraph
	Meshes      []MeshData

	Diagnostics Diagnostics

	Visible bool
}

// NewModel creates an empty Model ready to be filled in by the parser or
// the Creator.
func NewModel(id string) *Model {
	interner := intern.New()
	return &Model{
		ID:         id,
		Schema:     SchemaIFC4,
		Interner:   interner,
		Entities:   NewEntityStore(interner),
		Spatial:    NewSpatialHierarchy(),
		Properties: NewPropertyTable(),
		Quantities: NewQuantityTable(),
		Graph:      NewRelationshipGraph(),
		Visible:    true,
	}
}

// MaxExpressID returns the Model's MaxExpressID, computed from the entity
// store.
func (m *Model) MaxExpressID() uint32 {
	return m.Entities.MaxExpressID()
}

// SessionID translates a file-local expressId to the session-wide id used
// for cross-model selection and visibility in a federated session (spec §3
// identifier conventions, §9 "Federation and id offsets").
func (m *Model) SessionID(expressID uint32) uint32 {
	return expressID + m.IDOffset
}

// FileID translates a session-wide id back to this model's file-local
// expressId. Callers must already know which model owns the id.
func (m *Model) FileID(sessionID uint32) uint32 {
	return sessionID - m.IDOffset
}
