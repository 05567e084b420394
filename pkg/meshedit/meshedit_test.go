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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/ifckit/pkg/model"
)

// quadMesh is a single flat quad (two triangles) in the XY plane, normals
// pointing +Z.
func quadMesh() *model.MeshData {
	return &model.MeshData{
		ExpressID: 1,
		Positions: []float32{
			0, 0, 0,
			1, 0, 0,
			1, 1, 0,
			0, 1, 0,
		},
		Normals: []float32{
			0, 0, 1,
			0, 0, 1,
			0, 0, 1,
			0, 0, 1,
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
}

func TestMove_VertexSelectionTranslatesOnlyThoseVertices(t *testing.T) {
	mesh := quadMesh()
	res := Move(mesh, Selection{Kind: SelectVertex, Vertices: []int{0}}, [3]float32{0, 0, 1}, false, "", 0)
	require.True(t, res.Success)
	assert.Equal(t, float32(1), mesh.Positions[2])
	assert.Equal(t, float32(0), mesh.Positions[5]) // vertex 1 untouched
}

func TestMove_AxisLockZeroesOtherComponents(t *testing.T) {
	mesh := quadMesh()
	res := Move(mesh, Selection{Kind: SelectVertex, Vertices: []int{0}}, [3]float32{5, 5, 5}, false, "z", 0)
	require.True(t, res.Success)
	assert.Equal(t, float32(0), mesh.Positions[0])
	assert.Equal(t, float32(0), mesh.Positions[1])
	assert.Equal(t, float32(5), mesh.Positions[2])
}

func TestMove_ConstrainToNormalProjectsDelta(t *testing.T) {
	mesh := quadMesh()
	res := Move(mesh, Selection{Kind: SelectVertex, Vertices: []int{0}}, [3]float32{1, 1, 1}, true, "", 0)
	require.True(t, res.Success)
	// normal is +Z, so only the Z component of the delta should survive.
	assert.Equal(t, float32(0), mesh.Positions[0])
	assert.Equal(t, float32(0), mesh.Positions[1])
	assert.Equal(t, float32(1), mesh.Positions[2])
}

func TestMove_GridSnapRoundsComponents(t *testing.T) {
	mesh := quadMesh()
	res := Move(mesh, Selection{Kind: SelectVertex, Vertices: []int{0}}, [3]float32{0.12, 0, 0}, false, "", 0.1)
	require.True(t, res.Success)
	assert.InDelta(t, 0.1, mesh.Positions[0], 1e-6)
}

func TestMove_RejectsOutOfRangeVertex(t *testing.T) {
	mesh := quadMesh()
	res := Move(mesh, Selection{Kind: SelectVertex, Vertices: []int{99}}, [3]float32{0, 0, 1}, false, "", 0)
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Reason)
	// mesh unchanged
	assert.Equal(t, float32(0), mesh.Positions[0])
}

func TestMove_RejectsEdgeCollapse(t *testing.T) {
	mesh := quadMesh()
	// move vertex 0 almost on top of vertex 1 (distance ~0 along the shared edge)
	res := Move(mesh, Selection{Kind: SelectVertex, Vertices: []int{0}}, [3]float32{1, 0, 0}, false, "", 0)
	assert.False(t, res.Success)
	assert.Equal(t, float32(0), mesh.Positions[0], "rejected move must not mutate the mesh")
}

func TestScale_ScalesAroundCentroid(t *testing.T) {
	mesh := quadMesh()
	res := Scale(mesh, Selection{Kind: SelectFace, Face: 0}, 2.0)
	require.True(t, res.Success)
	// centroid of triangle (0,0),(1,0),(1,1) is (2/3, 1/3); vertex 0 should
	// move away from it.
	assert.NotEqual(t, float32(0), mesh.Positions[0])
}

func TestScale_RejectsOutOfRangeFace(t *testing.T) {
	mesh := quadMesh()
	res := Scale(mesh, Selection{Kind: SelectFace, Face: 99}, 2.0)
	assert.False(t, res.Success)
}

func TestExtrude_GrowsVertexAndTriangleCounts(t *testing.T) {
	mesh := quadMesh()
	beforeV, beforeT := mesh.VertexCount(), mesh.TriangleCount()
	res := Extrude(mesh, 0, [3]float32{0, 0, 1})
	require.True(t, res.Success)
	assert.Equal(t, beforeV+9, mesh.VertexCount())
	assert.Equal(t, beforeT+7, mesh.TriangleCount())
}

func TestExtrude_FlipsOriginalFaceWinding(t *testing.T) {
	mesh := quadMesh()
	original := [3]uint32{mesh.Indices[0], mesh.Indices[1], mesh.Indices[2]}
	res := Extrude(mesh, 0, [3]float32{0, 0, 1})
	require.True(t, res.Success)
	assert.Equal(t, original[0], mesh.Indices[0])
	assert.Equal(t, original[1], mesh.Indices[2])
	assert.Equal(t, original[2], mesh.Indices[1])
}

func TestExtrude_RejectsOutOfRangeFace(t *testing.T) {
	mesh := quadMesh()
	res := Extrude(mesh, 99, [3]float32{0, 0, 1})
	assert.False(t, res.Success)
}

func TestExtrude_RejectsNegligibleDelta(t *testing.T) {
	mesh := quadMesh()
	res := Extrude(mesh, 0, [3]float32{0, 0, 0.00001})
	assert.False(t, res.Success)
}
