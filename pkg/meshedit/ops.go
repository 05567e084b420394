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

package meshedit

import (
	"math"

	"github.com/kraklabs/ifckit/pkg/model"
)

// Move translates the vertices in sel by delta. If constrainToNormal,
// delta is first projected onto the selection's averaged vertex normal.
// If axisLock is one of "x", "y", "z", the other two components are
// zeroed. If gridSnap > 0 each final component is rounded to the nearest
// multiple of it. The move is rejected, with the mesh unchanged, if it
// would collapse any touched edge below MinEdgeLength.
func Move(mesh *model.MeshData, sel Selection, delta [3]float32, constrainToNormal bool, axisLock string, gridSnap float32) Result {
	affected, err := affectedVertices(mesh, sel)
	if err != nil {
		return fail(err.Error())
	}

	d := vec3(delta)
	if constrainToNormal {
		n := averageNormal(mesh, affected)
		d = scale(n, dot(d, n))
	}
	switch axisLock {
	case "x":
		d = vec3{d[0], 0, 0}
	case "y":
		d = vec3{0, d[1], 0}
	case "z":
		d = vec3{0, 0, d[2]}
	}
	if gridSnap > 0 {
		d = vec3{snap(d[0], gridSnap), snap(d[1], gridSnap), snap(d[2], gridSnap)}
	}

	return applyWithCollapseCheck(mesh, affected, func(old vec3) vec3 { return add(old, d) })
}

// Scale scales the vertices in sel by factor around their centroid.
func Scale(mesh *model.MeshData, sel Selection, factor float32) Result {
	affected, err := affectedVertices(mesh, sel)
	if err != nil {
		return fail(err.Error())
	}
	centroid := centroidOf(mesh, affected)
	return applyWithCollapseCheck(mesh, affected, func(old vec3) vec3 {
		return add(centroid, scale(sub(old, centroid), factor))
	})
}

// Extrude raises face by delta: three new top-face vertices at v+delta
// carrying the face normal, the original face's winding flipped so it
// faces back into the new volume, and three side quads (six triangles)
// built from their own vertex copies so side shading stays flat instead
// of blending into the top/bottom normals (spec §4.6). New vertex count
// is old+9, new triangle count is old+7.
func Extrude(mesh *model.MeshData, face int, delta [3]float32) Result {
	tc := mesh.TriangleCount()
	if face < 0 || face >= tc {
		return fail(errOutOfRange("face", face, tc).Error())
	}
	d := vec3(delta)
	if length(d) < MinEdgeLength {
		return fail("extrusion delta is too small")
	}

	i0, i1, i2 := faceVertices(mesh, face)
	p0, p1, p2 := getVertex(mesh, i0), getVertex(mesh, i1), getVertex(mesh, i2)

	cap0 := appendVertex(mesh, add(p0, d))
	cap1 := appendVertex(mesh, add(p1, d))
	cap2 := appendVertex(mesh, add(p2, d))

	type quad struct{ a, b, capA, capB int }
	quads := [3]quad{
		{i0, i1, cap0, cap1},
		{i1, i2, cap1, cap2},
		{i2, i0, cap2, cap0},
	}

	affected := map[int]bool{i0: true, i1: true, i2: true, cap0: true, cap1: true, cap2: true}
	for _, q := range quads {
		sideCapA := appendVertex(mesh, getVertex(mesh, q.capA))
		sideCapB := appendVertex(mesh, getVertex(mesh, q.capB))
		affected[sideCapA] = true
		affected[sideCapB] = true
		appendTriangle(mesh, q.a, q.b, sideCapB)
		appendTriangle(mesh, q.a, sideCapB, sideCapA)
	}

	appendTriangle(mesh, cap0, cap1, cap2)
	flipFaceWinding(mesh, face)

	recomputeNormals(mesh, affected)
	return success
}

func flipFaceWinding(mesh *model.MeshData, face int) {
	base := face * 3
	mesh.Indices[base+1], mesh.Indices[base+2] = mesh.Indices[base+2], mesh.Indices[base+1]
}

func appendVertex(mesh *model.MeshData, pos vec3) int {
	idx := mesh.VertexCount()
	mesh.Positions = append(mesh.Positions, pos[0], pos[1], pos[2])
	mesh.Normals = append(mesh.Normals, 0, 0, 0)
	return idx
}

func appendTriangle(mesh *model.MeshData, a, b, c int) {
	mesh.Indices = append(mesh.Indices, uint32(a), uint32(b), uint32(c))
}

// applyWithCollapseCheck computes transform for every vertex in affected,
// rejects the whole operation if any edge touching affected would fall
// below MinEdgeLength, and otherwise commits the new positions and
// recomputes normals for the affected subset.
func applyWithCollapseCheck(mesh *model.MeshData, affected []int, transform func(vec3) vec3) Result {
	affectedSet := toSet(affected)
	candidates := make(map[int]vec3, len(affected))
	for _, v := range affected {
		candidates[v] = transform(getVertex(mesh, v))
	}

	tc := mesh.TriangleCount()
	for t := 0; t < tc; t++ {
		i0, i1, i2 := faceVertices(mesh, t)
		for _, e := range [3][2]int{{i0, i1}, {i1, i2}, {i2, i0}} {
			a, b := e[0], e[1]
			if !affectedSet[a] && !affectedSet[b] {
				continue
			}
			pa, pb := positionOf(mesh, a, candidates, affectedSet), positionOf(mesh, b, candidates, affectedSet)
			if length(sub(pa, pb)) < MinEdgeLength {
				return fail("move would collapse an edge below MinEdgeLength")
			}
		}
	}

	for v, p := range candidates {
		setVertex(mesh, v, p)
	}
	recomputeNormals(mesh, affectedSet)
	return success
}

func positionOf(mesh *model.MeshData, v int, candidates map[int]vec3, affected map[int]bool) vec3 {
	if affected[v] {
		return candidates[v]
	}
	return getVertex(mesh, v)
}

func averageNormal(mesh *model.MeshData, affected []int) vec3 {
	var sum vec3
	for _, v := range affected {
		sum = add(sum, getNormal(mesh, v))
	}
	return normalize(sum)
}

func centroidOf(mesh *model.MeshData, vs []int) vec3 {
	var sum vec3
	for _, v := range vs {
		sum = add(sum, getVertex(mesh, v))
	}
	return scale(sum, 1/float32(len(vs)))
}

func snap(x, grid float32) float32 {
	return float32(math.Round(float64(x/grid))) * grid
}
