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

// vec3 is a plain 3-component vector used for the mesh math below. None of
// the example repos pull in a vector-math dependency for this, so these
// few operations (add/sub/scale/cross/normalize) are hand-rolled rather
// than reaching for a library this corpus never imports.
type vec3 [3]float32

func add(a, b vec3) vec3 { return vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]} }
func sub(a, b vec3) vec3 { return vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }

func scale(a vec3, f float32) vec3 { return vec3{a[0] * f, a[1] * f, a[2] * f} }

func dot(a, b vec3) float32 { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }

func cross(a, b vec3) vec3 {
	return vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func length(a vec3) float32 {
	return float32(math.Sqrt(float64(dot(a, a))))
}

func normalize(a vec3) vec3 {
	l := length(a)
	if l == 0 {
		return vec3{}
	}
	return scale(a, 1/l)
}

func getVertex(mesh *model.MeshData, i int) vec3 {
	return vec3{mesh.Positions[i*3], mesh.Positions[i*3+1], mesh.Positions[i*3+2]}
}

func setVertex(mesh *model.MeshData, i int, v vec3) {
	mesh.Positions[i*3] = v[0]
	mesh.Positions[i*3+1] = v[1]
	mesh.Positions[i*3+2] = v[2]
}

func getNormal(mesh *model.MeshData, i int) vec3 {
	return vec3{mesh.Normals[i*3], mesh.Normals[i*3+1], mesh.Normals[i*3+2]}
}

func setNormal(mesh *model.MeshData, i int, v vec3) {
	mesh.Normals[i*3] = v[0]
	mesh.Normals[i*3+1] = v[1]
	mesh.Normals[i*3+2] = v[2]
}
