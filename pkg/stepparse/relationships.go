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

// wireRelationships is Phase C: walk every pending IfcRel* entity and turn
// it into one or more RelationshipGraph edges, plus the EntityStore side
// columns (containedInStorey, definedByType, HAS_OPENINGS/IS_FILLING
// flags) that let downstream code skip a graph traversal for the common
// case. A ref that doesn't resolve to a known entity is dropped with a
// DiagDanglingReference diagnostic rather than treated as fatal (spec §7
// kind 3).
func (p *parser) wireRelationships() {
	for id, pe := range p.pending {
		if !model.IsRelationshipType(pe.name) {
			continue
		}
		switch pe.tag {
		case model.TagRelAggregates:
			p.wireAggregates(id, pe.args)
		case model.TagRelContainedInSpatialStructure:
			p.wireContainedIn(id, pe.args)
		case model.TagRelDefinesByProperties:
			p.wireDefinesByProperties(id, pe.args)
		case model.TagRelDefinesByType:
			p.wireDefinesByType(id, pe.args)
		case model.TagRelVoidsElement:
			p.wireVoidsElement(id, pe.args)
		case model.TagRelFillsElement:
			p.wireFillsElement(id, pe.args)
		case model.TagRelAssociatesMaterial:
			p.wireAssociates(id, pe.args, model.RelAssociatesMaterial)
		case model.TagRelAssociatesClassification:
			p.wireAssociates(id, pe.args, model.RelAssociatesClassification)
		case model.TagRelConnectsPathElements:
			p.wirePairwise(id, pe.args, 4, 5, model.RelConnectsPathElements)
		case model.TagRelSpaceBoundary:
			p.wirePairwise(id, pe.args, 4, 5, model.RelSpaceBoundary)
		}
	}
}

// resolveRef validates that ref points at a known entity, recording a
// dangling-reference diagnostic on relID and returning ok=false otherwise.
func (p *parser) resolveRef(relID uint32, a Arg) (uint32, bool) {
	ref, ok := a.AsRef()
	if !ok {
		return 0, false
	}
	if !p.m.Entities.Exists(ref) {
		p.logger.Debug("parser.dangling_reference", "relationship", relID, "ref", ref)
		p.m.Diagnostics.Add(model.Diagnostic{
			Kind:      model.DiagDanglingReference,
			ExpressID: relID,
			Reason:    "reference to unknown entity",
		})
		if p.metrics != nil {
			p.metrics.DiagnosticCount.WithLabelValues("dangling_reference").Inc()
		}
		return 0, false
	}
	return ref, true
}

func (p *parser) resolveRefList(relID uint32, a Arg) []uint32 {
	list, ok := a.AsList()
	if !ok {
		return nil
	}
	out := make([]uint32, 0, len(list))
	for _, item := range list {
		if ref, ok := p.resolveRef(relID, item); ok {
			out = append(out, ref)
		}
	}
	return out
}

func (p *parser) wireAggregates(id uint32, args []Arg) {
	relating, ok := p.resolveRef(id, argAt(args, 4))
	if !ok {
		return
	}
	for _, related := range p.resolveRefList(id, argAt(args, 5)) {
		p.m.Graph.AddEdge(model.RelAggregates, relating, related)
	}
}

func (p *parser) wireContainedIn(id uint32, args []Arg) {
	structure, ok := p.resolveRef(id, argAt(args, 5))
	if !ok {
		return
	}
	isStorey := p.m.Entities.TypeTagOf(structure) == model.TagBuildingStorey
	for _, elem := range p.resolveRefList(id, argAt(args, 4)) {
		p.m.Graph.AddEdge(model.RelContainsElements, structure, elem)
		if isStorey {
			p.m.Entities.SetContainedInStorey(elem, structure)
		}
		p.m.Spatial.AddContainment(structure, elem)
	}
}

func (p *parser) wireDefinesByProperties(id uint32, args []Arg) {
	pset, ok := p.resolveRef(id, argAt(args, 5))
	if !ok {
		return
	}
	isQset := p.pending[pset].tag == model.TagElementQuantity
	for _, obj := range p.resolveRefList(id, argAt(args, 4)) {
		p.m.Graph.AddEdge(model.RelDefinesByProperties, obj, pset)
		if isQset {
			p.m.Entities.SetFlag(obj, model.FlagHasQuantities)
			p.m.Quantities.LinkEntity(obj, pset)
		} else {
			p.m.Entities.SetFlag(obj, model.FlagHasProperties)
			p.m.Properties.LinkEntity(obj, pset)
		}
	}
}

func (p *parser) wireDefinesByType(id uint32, args []Arg) {
	typ, ok := p.resolveRef(id, argAt(args, 5))
	if !ok {
		return
	}
	p.m.Entities.SetFlag(typ, model.FlagIsType)
	for _, obj := range p.resolveRefList(id, argAt(args, 4)) {
		p.m.Graph.AddEdge(model.RelDefinesByType, obj, typ)
		p.m.Entities.SetDefinedByType(obj, typ)
	}
}

func (p *parser) wireVoidsElement(id uint32, args []Arg) {
	host, ok1 := p.resolveRef(id, argAt(args, 4))
	opening, ok2 := p.resolveRef(id, argAt(args, 5))
	if !ok1 || !ok2 {
		return
	}
	p.m.Graph.AddEdge(model.RelVoidsElement, host, opening)
	p.m.Entities.SetFlag(host, model.FlagHasOpenings)
}

func (p *parser) wireFillsElement(id uint32, args []Arg) {
	opening, ok1 := p.resolveRef(id, argAt(args, 4))
	filling, ok2 := p.resolveRef(id, argAt(args, 5))
	if !ok1 || !ok2 {
		return
	}
	p.m.Graph.AddEdge(model.RelFillsElement, opening, filling)
	p.m.Entities.SetFlag(filling, model.FlagIsFilling)
}

func (p *parser) wireAssociates(id uint32, args []Arg, kind model.RelKind) {
	target, ok := p.resolveRef(id, argAt(args, 5))
	if !ok {
		return
	}
	for _, obj := range p.resolveRefList(id, argAt(args, 4)) {
		p.m.Graph.AddEdge(kind, obj, target)
	}
}

func (p *parser) wirePairwise(id uint32, args []Arg, aIdx, bIdx int, kind model.RelKind) {
	a, ok1 := p.resolveRef(id, argAt(args, aIdx))
	b, ok2 := p.resolveRef(id, argAt(args, bIdx))
	if !ok1 || !ok2 {
		return
	}
	p.m.Graph.AddEdge(kind, a, b)
}
