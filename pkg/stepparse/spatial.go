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

package stepparse

import "github.com/kraklabs/ifckit/pkg/model"

// buildSpatialHierarchy is Phase D: walk Aggregates edges from the single
// IfcProject root, restricting the tree to descendants Phase B already
// recognized as spatial-kind nodes (Site/Building/Storey/Space). An
// Aggregates edge to anything else — an IfcElementAssembly's parts, for
// instance — is a real edge in the RelationshipGraph but doesn't belong in
// this tree, so it's simply not a node Node() can find here.
func (p *parser) buildSpatialHierarchy() {
	h := p.m.Spatial
	if h.ProjectID == 0 {
		return
	}

	var walk func(parent uint32)
	walk = func(parent uint32) {
		for _, child := range p.m.Graph.Neighbors(parent, model.RelAggregates, model.Forward) {
			node := h.Node(child)
			if node == nil {
				continue
			}
			h.AddChild(parent, child)
			switch node.Kind {
			case model.SpatialBuilding:
				h.AddSiteBuilding(parent, child)
			case model.SpatialStorey:
				h.AddBuildingStorey(parent, child)
			}
			walk(child)
		}
	}
	walk(h.ProjectID)
	h.ComputeStoreyHeights()
}
