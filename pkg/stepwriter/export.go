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

package stepwriter

import (
	"fmt"
	"strings"

	"github.com/kraklabs/ifckit/pkg/geomedit"
	"github.com/kraklabs/ifckit/pkg/model"
	"github.com/kraklabs/ifckit/pkg/stepparse"
)

// ExportOptions configures the Export path's visibility filtering (spec
// §4.7 "Export path").
type ExportOptions struct {
	// VisibleOnly drops every entity IsVisible reports hidden for, unless it
	// is a structural prerequisite (transitively referenced) of a retained
	// entity.
	VisibleOnly bool
	// IsVisible reports whether expressID should be retained under
	// VisibleOnly. A nil IsVisible makes VisibleOnly a no-op (everything is
	// treated as visible) — the Model itself carries no per-entity
	// visibility column, so the caller (the CLI's viewer-state, typically)
	// supplies it.
	IsVisible func(expressID uint32) bool
}

// Export re-serializes m: entities are walked in declaration order and each
// is written either verbatim (re-decoded from its source byte range, with
// any pending GeometryMutation's slot substituted) or omitted, if
// VisibleOnly and the entity is neither visible nor a structural
// prerequisite of a retained entity (spec §4.7 "Export path"). mutations may
// be nil for a plain re-serialization with no pending edits.
func Export(m *model.Model, mutations *model.MutationView, opts Options, exportOpts ExportOptions,
	description, fileName, author, organization, timeStamp string) (string, error) {
	w := New(opts)

	all := m.Entities.All()
	retained := computeRetained(m, all, exportOpts)
	overrides := buildOverrides(m, mutations)

	for _, id := range all {
		if !retained[id] {
			continue
		}
		line, err := renderEntityLine(m, overrides, id)
		if err != nil {
			if !opts.BestEffort {
				return "", err
			}
			w.logger.Warn("writer.precondition_failed", "entity", id, "error", err.Error())
			if opts.Metrics != nil {
				opts.Metrics.DiagnosticCount.WithLabelValues("export_skip").Inc()
			}
			continue
		}
		w.emitRaw(line)
	}

	return w.Render(description, fileName, timeStamp, []string{author}, []string{organization}), nil
}

// computeRetained decides which entities survive VisibleOnly filtering. With
// VisibleOnly off (or no IsVisible supplied) every entity is retained.
func computeRetained(m *model.Model, all []uint32, opts ExportOptions) map[uint32]bool {
	retained := make(map[uint32]bool, len(all))
	if !opts.VisibleOnly || opts.IsVisible == nil {
		for _, id := range all {
			retained[id] = true
		}
		return retained
	}

	queue := make([]uint32, 0, len(all))
	for _, id := range all {
		if opts.IsVisible(id) {
			retained[id] = true
			queue = append(queue, id)
		}
	}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, ref := range referencedEntities(m, id) {
			if retained[ref] {
				continue
			}
			retained[ref] = true
			queue = append(queue, ref)
		}
	}
	return retained
}

// referencedEntities returns every expressId directly referenced (at any
// nesting depth within the argument list) by id's own entity line. Building
// the structural-prerequisite set is a BFS over this one-hop relation (spec
// §4.7: "A structural prerequisite is any entity transitively referenced by
// a retained entity").
func referencedEntities(m *model.Model, id uint32) []uint32 {
	args, _, ok := stepparse.DecodeEntityArgs(m, id)
	if !ok {
		return nil
	}
	var out []uint32
	var walk func(a stepparse.Arg)
	walk = func(a stepparse.Arg) {
		switch a.Kind {
		case stepparse.ArgRef:
			out = append(out, a.Ref)
		case stepparse.ArgList, stepparse.ArgTyped:
			for _, item := range a.List {
				walk(item)
			}
		}
	}
	for _, a := range args {
		walk(a)
	}
	return out
}

// slotOverride replaces one positional argument of an entity's re-serialized
// line with a freshly rendered value.
type slotOverride struct {
	slot int
	arg  stepparse.Arg
}

// buildOverrides turns every pending mutation into a (targetEntity, slot,
// newArg) triple. A ParamNumber mutation patches its owning entity's own
// slot directly; a ParamVec3 mutation patches the coordinate slot of the
// IfcCartesianPoint/IfcDirection the owning entity's slot (and any nested
// hop) ultimately references, since geomedit's vec3 parameters are always
// extracted through one or more reference indirections rather than stored
// inline (see geomedit/extract.go).
func buildOverrides(m *model.Model, mutations *model.MutationView) map[uint32][]slotOverride {
	overrides := make(map[uint32][]slotOverride)
	if mutations == nil {
		return overrides
	}
	for _, mut := range mutations.History() {
		args, typeName, found := stepparse.DecodeEntityArgs(m, mut.EntityID)
		if !found {
			continue
		}
		slot, nested, ok := geomedit.ResolveSlot(m, mut.EntityID, typeName, args, mut.ParameterPath)
		if !ok {
			continue
		}
		switch mut.NewValue.Kind {
		case model.ParamNumber:
			overrides[mut.EntityID] = append(overrides[mut.EntityID],
				slotOverride{slot, stepparse.Arg{Kind: stepparse.ArgReal, Real: mut.NewValue.Number}})
		case model.ParamVec3:
			targetID, ok := resolveVec3Target(m, mut.EntityID, slot, nested)
			if !ok {
				continue
			}
			overrides[targetID] = append(overrides[targetID], slotOverride{0, vec3ToArg(mut.NewValue.Vec3)})
		case model.ParamProfile:
			// Editing OuterCurve would add or remove IfcCartesianPoint entities
			// rather than patch one slot in place; the Edit Layer does not
			// currently round-trip a resized point list back through Export, so
			// a pending profile mutation is left unapplied here rather than
			// risking a point count mismatch between the polyline and its own
			// referenced points.
		}
	}
	return overrides
}

// resolveVec3Target walks from owningID's args[slot] through nestedPath to
// the entity whose own slot-0 argument is the coordinate list a vec3
// parameter's Current/NewValue describes. Every hop before the last
// nestedPath segment is a fixed slot-0 reference (IfcHalfSpaceSolid's
// BaseSurface, IfcPlane's Position); the last segment instead selects
// between Location (slot 0) and Axis (slot 1) on the reached
// IfcAxis2Placement3D, whose own referenced point/direction entity is the
// true target.
func resolveVec3Target(m *model.Model, owningID uint32, slot int, nestedPath []string) (targetID uint32, ok bool) {
	args, _, found := stepparse.DecodeEntityArgs(m, owningID)
	if !found {
		return 0, false
	}
	current, ok := stepparse.At(args, slot).AsRef()
	if !ok {
		return 0, false
	}
	for i, seg := range nestedPath {
		if i == len(nestedPath)-1 {
			finalSlot, ok := axis2PlacementSlot(seg)
			if !ok {
				return 0, false
			}
			curArgs, _, found := stepparse.DecodeEntityArgs(m, current)
			if !found {
				return 0, false
			}
			ref, ok := stepparse.At(curArgs, finalSlot).AsRef()
			if !ok {
				return 0, false
			}
			current = ref
			continue
		}
		curArgs, _, found := stepparse.DecodeEntityArgs(m, current)
		if !found {
			return 0, false
		}
		ref, ok := stepparse.At(curArgs, 0).AsRef()
		if !ok {
			return 0, false
		}
		current = ref
	}
	return current, true
}

func axis2PlacementSlot(name string) (int, bool) {
	switch name {
	case "Location":
		return 0, true
	case "Axis":
		return 1, true
	default:
		return 0, false
	}
}

func vec3ToArg(v model.ParamVec3) stepparse.Arg {
	return stepparse.Arg{Kind: stepparse.ArgList, List: []stepparse.Arg{
		{Kind: stepparse.ArgReal, Real: v[0]},
		{Kind: stepparse.ArgReal, Real: v[1]},
		{Kind: stepparse.ArgReal, Real: v[2]},
	}}
}

// renderEntityLine re-serializes id's own line, applying any slot overrides
// computed for it, or returns the untouched source slice verbatim when it
// has none.
func renderEntityLine(m *model.Model, overrides map[uint32][]slotOverride, id uint32) (string, error) {
	offset, length, found := m.Entities.ByteRange(id)
	if !found {
		return "", fmt.Errorf("stepwriter: entity #%d has no byte range", id)
	}
	ov, has := overrides[id]
	if !has {
		return strings.TrimSpace(string(m.Source[offset : offset+int64(length)])), nil
	}

	args, typeName, found := stepparse.DecodeEntityArgs(m, id)
	if !found {
		return "", fmt.Errorf("stepwriter: entity #%d could not be decoded for mutation", id)
	}
	for _, o := range ov {
		if o.slot < 0 || o.slot >= len(args) {
			continue
		}
		args[o.slot] = o.arg
	}
	rendered := make([]string, len(args))
	for i, a := range args {
		rendered[i] = renderArg(a)
	}
	return fmt.Sprintf("#%d=%s(%s);", id, typeName, strings.Join(rendered, ",")), nil
}
