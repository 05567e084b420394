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

// Package meshedit operates directly on an indexed triangle mesh
// (model.MeshData) for products that have no parametric representation,
// or when the caller wants to override one (spec §4.6). Every operation
// validates its selection against the mesh's current vertex/triangle
// counts before touching anything, and mutates the mesh in place only
// once validation passes — a rejected operation leaves the mesh exactly
// as it was.
package meshedit

import "github.com/kraklabs/ifckit/pkg/model"

// MinEdgeLength is the shortest an edge may become after a move before
// the operation is rejected as a degenerate collapse.
const MinEdgeLength = 0.001

// SelectionKind tags which of the three mesh-addressing schemes a
// Selection uses.
type SelectionKind uint8

const (
	SelectVertex SelectionKind = iota
	SelectEdge
	SelectFace
)

// Selection identifies the vertices an operation acts on. Exactly one of
// the fields is meaningful, per Kind.
type Selection struct {
	Kind     SelectionKind
	Vertices []int   // SelectVertex: arbitrary vertex index set
	Edge     [2]int  // SelectEdge: ordered vertex pair
	Face     int     // SelectFace: triangle index
}

// Result reports whether an operation committed. A false Success always
// comes with Reason set and an untouched mesh.
type Result struct {
	Success bool
	Reason  string
}

func fail(reason string) Result { return Result{Success: false, Reason: reason} }

var success = Result{Success: true}

// affectedVertices resolves sel against mesh's current bounds, returning
// the deduplicated vertex index set the operation touches. An
// out-of-range index is reported instead of silently dropped.
func affectedVertices(mesh *model.MeshData, sel Selection) ([]int, error) {
	vc := mesh.VertexCount()
	switch sel.Kind {
	case SelectVertex:
		for _, v := range sel.Vertices {
			if v < 0 || v >= vc {
				return nil, errOutOfRange("vertex", v, vc)
			}
		}
		return dedupInts(sel.Vertices), nil

	case SelectEdge:
		for _, v := range sel.Edge {
			if v < 0 || v >= vc {
				return nil, errOutOfRange("vertex", v, vc)
			}
		}
		return []int{sel.Edge[0], sel.Edge[1]}, nil

	case SelectFace:
		tc := mesh.TriangleCount()
		if sel.Face < 0 || sel.Face >= tc {
			return nil, errOutOfRange("face", sel.Face, tc)
		}
		i0, i1, i2 := faceVertices(mesh, sel.Face)
		return []int{i0, i1, i2}, nil

	default:
		return nil, errUnknownSelection
	}
}

func dedupInts(in []int) []int {
	seen := make(map[int]bool, len(in))
	out := make([]int, 0, len(in))
	for _, v := range in {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

func faceVertices(mesh *model.MeshData, face int) (int, int, int) {
	base := face * 3
	return int(mesh.Indices[base]), int(mesh.Indices[base+1]), int(mesh.Indices[base+2])
}
