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

import "github.com/kraklabs/ifckit/pkg/model"

// recomputeNormals recomputes vertex normals only for the subset of
// triangles whose vertex set intersects affected (spec §4.6): face
// normals are accumulated into each affected vertex and renormalized.
// Vertices that only belong to untouched triangles keep whatever normal
// they already had.
func recomputeNormals(mesh *model.MeshData, affected map[int]bool) {
	accum := make(map[int]vec3, len(affected))

	tc := mesh.TriangleCount()
	for t := 0; t < tc; t++ {
		i0, i1, i2 := faceVertices(mesh, t)
		if !affected[i0] && !affected[i1] && !affected[i2] {
			continue
		}
		p0, p1, p2 := getVertex(mesh, i0), getVertex(mesh, i1), getVertex(mesh, i2)
		n := cross(sub(p1, p0), sub(p2, p0))
		for _, v := range [3]int{i0, i1, i2} {
			if affected[v] {
				accum[v] = add(accum[v], n)
			}
		}
	}

	for v, n := range accum {
		setNormal(mesh, v, normalize(n))
	}
}

func toSet(vs []int) map[int]bool {
	m := make(map[int]bool, len(vs))
	for _, v := range vs {
		m[v] = true
	}
	return m
}
