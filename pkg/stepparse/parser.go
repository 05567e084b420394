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

// Package stepparse implements the five-phase ISO-10303-21 / IFC reader
// (spec §4.3): a header scan, entity discovery with eager leading-slot
// decoding for product-like entities, relationship wiring, spatial
// hierarchy construction, and property/quantity materialization. Every
// argument list is decoded through a small positional tokenizer (args.go)
// rather than regular expressions, per spec §9.
package stepparse

import (
	"io"
	"log/slog"
	"runtime"
	"strings"

	"github.com/kraklabs/ifckit/pkg/metrics"
	"github.com/kraklabs/ifckit/pkg/model"
)

// pendingEntity is the decoded argument list kept in memory across phases
// for entities that a later phase needs to revisit: relationships,
// property/quantity sets and their members. Product-like entities don't
// need this — their few eager slots are pulled straight into the
// EntityStore in Phase B and everything else is read back lazily from the
// byte range when the edit layer or writer needs it.
type pendingEntity struct {
	tag  model.TypeTag
	name string
	args []Arg
}

// parser holds the state threaded through Phase B discovery.
type parser struct {
	m       *model.Model
	pending map[uint32]pendingEntity

	logger     *slog.Logger
	metrics    *metrics.Registry
	yieldEvery int
	progress   io.Writer
}

// discoverEntities is Phase B: scan the DATA section statement by
// statement, recording every entity's expressId/type/byte range, eagerly
// decoding the leading GlobalId/Name/Description slots shared by every
// IfcRoot subtype (plus ObjectType for product-like types), and stashing
// the full argument list for any
// type a later phase needs to revisit.
func (p *parser) discoverEntities(src []byte) {
	bodyStart, bodyEnd, ok := findSection(src, "DATA")
	if !ok {
		return
	}

	bar := newProgressBar(p.progress, bodyEnd-bodyStart, "parsing entities")
	if bar != nil {
		defer func() { _ = bar.Finish() }()
	}

	pos := bodyStart
	statements := 0
	for pos < bodyEnd {
		start, end, ok := scanStatement(src, pos)
		if end > bodyEnd {
			end = bodyEnd
		}
		if start >= bodyEnd {
			break
		}
		pos = end
		if !ok {
			p.logger.Warn("parser.malformed_entity", "byte_offset", start, "reason", "unterminated statement")
			p.m.Diagnostics.Add(model.Diagnostic{
				Kind:       model.DiagMalformedEntity,
				ByteOffset: int64(start),
				Reason:     "unterminated statement",
			})
			break
		}

		stmt := string(src[start:end])
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		p.discoverOne(stmt, start, end)

		statements++
		if statements%p.yieldEvery == 0 {
			if bar != nil {
				bar.Set(pos - bodyStart)
			}
			runtime.Gosched()
		}
	}
	if bar != nil {
		bar.Set(bodyEnd - bodyStart)
	}
}

func (p *parser) discoverOne(stmt string, start, end int) {
	id, typeName, argsBody, ok := splitEntityHeader(stmt)
	if !ok {
		// Complex-instance form ("#N=(A(...)B(...));") or genuinely
		// malformed text. Either way the entity is preserved verbatim by
		// byte range so Export can still round-trip it, just tagged
		// Unknown.
		recID, _ := extractLeadingID(stmt)
		p.m.Entities.Add(model.NewRecord{
			ExpressID:  recID,
			TypeTag:    model.TagUnknown,
			ByteOffset: int64(start),
			ByteLength: int32(end - start),
		})
		p.logger.Warn("parser.malformed_entity", "entity", recID, "byte_offset", start, "reason", "could not parse entity header")
		p.m.Diagnostics.Add(model.Diagnostic{
			Kind:       model.DiagMalformedEntity,
			ExpressID:  recID,
			ByteOffset: int64(start),
			Reason:     "could not parse entity header",
		})
		if p.metrics != nil {
			p.metrics.DiagnosticCount.WithLabelValues("malformed_entity").Inc()
		}
		return
	}

	expressID := uint32(id)
	tag := model.TypeTagFromName(typeName)
	rec := model.NewRecord{
		ExpressID:  expressID,
		TypeTag:    tag,
		ByteOffset: int64(start),
		ByteLength: int32(end - start),
	}

	if tag == model.TagUnknown {
		p.logger.Debug("parser.entity_skipped", "entity", expressID, "type", typeName)
		p.m.Diagnostics.Add(model.Diagnostic{
			Kind:       model.DiagMalformedEntity,
			ExpressID:  expressID,
			ByteOffset: int64(start),
			Reason:     "unrecognized type " + typeName,
		})
		p.m.Entities.Add(rec)
		if p.metrics != nil {
			p.metrics.DiagnosticCount.WithLabelValues("entity_skipped").Inc()
		}
		return
	}

	args := parseArgs(argsBody)

	if hasRootPrefix(tag) {
		rec.GlobalID, _ = argAt(args, 0).AsString()
		rec.Name, _ = argAt(args, 2).AsString()
		rec.Description, _ = argAt(args, 3).AsString()
	}
	if model.IsProductLike(typeName) {
		rec.ObjectType, _ = argAt(args, 4).AsString()
	}

	p.m.Entities.Add(rec)
	if p.metrics != nil {
		p.metrics.EntitiesParsed.WithLabelValues(typeName).Inc()
	}

	switch {
	case model.IsRelationshipType(typeName):
		p.pending[expressID] = pendingEntity{tag: tag, name: typeName, args: args}
	case tag == model.TagPropertySet, tag == model.TagElementQuantity:
		p.pending[expressID] = pendingEntity{tag: tag, name: typeName, args: args}
	case tag == model.TagPropertySingleValue:
		p.pending[expressID] = pendingEntity{tag: tag, name: typeName, args: args}
	case isQuantityTag(tag):
		p.pending[expressID] = pendingEntity{tag: tag, name: typeName, args: args}
	case tag >= model.TagProject && tag <= model.TagSpace:
		// Phase D needs Elevation for storeys and the full args for
		// Aggregates-walk bookkeeping isn't required here since the
		// relationship graph already carries that; storeys need one
		// extra eager field.
		if tag == model.TagBuildingStorey {
			elev, _ := argAt(args, 9).AsReal()
			p.m.Spatial.AddNode(model.SpatialNode{ExpressID: expressID, Kind: model.SpatialStorey, Name: rec.Name, Elevation: elev})
		} else {
			p.m.Spatial.AddNode(model.SpatialNode{ExpressID: expressID, Kind: spatialKindOf(tag), Name: rec.Name})
		}
		if tag == model.TagProject {
			p.m.Spatial.ProjectID = expressID
		}
	}
}

// hasRootPrefix reports whether tag's IFC type extends IfcRoot, and so
// carries GlobalId/OwnerHistory/Name/Description as attributes 0-3 — the
// slots Phase B decodes eagerly for every recognized entity.
func hasRootPrefix(tag model.TypeTag) bool {
	switch tag {
	case model.TagPropertySingleValue,
		model.TagQuantityLength, model.TagQuantityArea, model.TagQuantityVolume,
		model.TagQuantityCount, model.TagQuantityWeight,
		model.TagMaterial, model.TagMaterialLayer, model.TagMaterialLayerSet,
		model.TagStyledItem, model.TagSurfaceStyle, model.TagClassification,
		model.TagUnknown:
		return false
	default:
		return true
	}
}

func isQuantityTag(tag model.TypeTag) bool {
	switch tag {
	case model.TagQuantityLength, model.TagQuantityArea, model.TagQuantityVolume,
		model.TagQuantityCount, model.TagQuantityWeight:
		return true
	default:
		return false
	}
}

func spatialKindOf(tag model.TypeTag) model.SpatialKind {
	switch tag {
	case model.TagProject:
		return model.SpatialProject
	case model.TagSite:
		return model.SpatialSite
	case model.TagBuilding:
		return model.SpatialBuilding
	case model.TagBuildingStorey:
		return model.SpatialStorey
	case model.TagSpace:
		return model.SpatialSpace
	default:
		return model.SpatialProject
	}
}

// extractLeadingID best-efforts a "#<digits>" prefix out of an otherwise
// unparseable statement, for diagnostic attribution. Returns (0, false) if
// none is found.
func extractLeadingID(stmt string) (uint32, bool) {
	stmt = strings.TrimSpace(stmt)
	if len(stmt) == 0 || stmt[0] != '#' {
		return 0, false
	}
	i := 1
	for i < len(stmt) && stmt[i] >= '0' && stmt[i] <= '9' {
		i++
	}
	if i == 1 {
		return 0, false
	}
	n, err := parseUintStrict(stmt[1:i])
	if err != nil {
		return 0, false
	}
	return uint32(n), true
}
