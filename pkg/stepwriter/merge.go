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

	"github.com/kraklabs/ifckit/pkg/model"
	"github.com/kraklabs/ifckit/pkg/stepparse"
)

// ProjectStrategy picks how Merge reconciles the N input models' IfcProject
// entities into the single one a merged file may contain (spec §4.7 "Merged
// / federated export").
type ProjectStrategy string

const (
	// StrategyKeepFirst keeps the first model's IfcProject untouched and
	// discards every other model's own IfcProject entity.
	StrategyKeepFirst ProjectStrategy = "keep-first"
	// StrategyMergeMetadata keeps the first model's IfcProject but joins
	// every model's Name into its Name slot.
	StrategyMergeMetadata ProjectStrategy = "merge-metadata"
)

// MergeOptions configures Merge.
type MergeOptions struct {
	Strategy ProjectStrategy
}

// MergeResult is the rendered merged file plus the summary Merge reports
// (spec §4.7: "report {modelCount, totalEntityCount}").
type MergeResult struct {
	Content       string
	ModelCount    int
	TotalEntities int
}

// Merge federates models into a single ISO-10303-21 file: each model's
// entities keep their own relative ordering but are renumbered into
// disjoint id ranges (by offsetting every expressId, and every #ref inside
// its preserved text, by a running sum of the preceding models'
// MaxExpressID); one project entity survives per Strategy, with every
// model's sites re-aggregated under it (spec §4.7 "Merged / federated
// export").
func Merge(models []*model.Model, opts Options, mergeOpts MergeOptions,
	description, fileName, author, organization, timeStamp string) (*MergeResult, error) {
	if len(models) == 0 {
		return nil, fmt.Errorf("stepwriter: merge requires at least one model")
	}
	if mergeOpts.Strategy == "" {
		mergeOpts.Strategy = StrategyKeepFirst
	}

	offsets := make([]uint32, len(models))
	projectOf := make([]uint32, len(models))
	var running uint32
	var keptProjectSession uint32
	var allSiteSessions []uint32
	var names []string

	for i, m := range models {
		offsets[i] = running
		running += m.MaxExpressID()

		projectIDs := m.Entities.GetByType(model.TagProject)
		if len(projectIDs) > 0 {
			projectOf[i] = projectIDs[0]
		}
		if i == 0 && projectOf[i] != 0 {
			keptProjectSession = projectOf[i] + offsets[i]
		}
		for _, siteID := range m.Entities.GetByType(model.TagSite) {
			allSiteSessions = append(allSiteSessions, siteID+offsets[i])
		}
		if projectOf[i] != 0 {
			if args, _, ok := stepparse.DecodeEntityArgs(m, projectOf[i]); ok {
				if name, ok := stepparse.At(args, 2).AsString(); ok && name != "" {
					names = append(names, name)
				}
			}
		}
	}

	w := New(opts)
	total := 0

	for i, m := range models {
		offset := offsets[i]
		thisProject := projectOf[i]
		for _, id := range m.Entities.All() {
			total++
			if thisProject != 0 && id == thisProject {
				if i != 0 {
					continue // only the first model's IFCPROJECT survives
				}
				line, err := renderMergedProjectLine(m, id, offset, mergeOpts.Strategy, names)
				if err != nil {
					if !opts.BestEffort {
						return nil, err
					}
					continue
				}
				w.emitRaw(line)
				continue
			}
			if thisProject != 0 && m.Entities.TypeTagOf(id) == model.TagRelAggregates && relatesRelatingObject(m, id, thisProject) {
				continue // dropped; replaced by one merged aggregation below
			}
			line, err := renderMergedLine(m, id, offset)
			if err != nil {
				if !opts.BestEffort {
					return nil, err
				}
				continue
			}
			w.emitRaw(line)
		}
	}

	if keptProjectSession != 0 && len(allSiteSessions) > 0 {
		w.emitNew("IFCRELAGGREGATES", fmt.Sprintf("%s,$,$,$,%s,%s",
			mustGlobalID(w), formatRef(keptProjectSession), refs(allSiteSessions...)))
	}

	return &MergeResult{
		Content:       w.Render(description, fileName, timeStamp, []string{author}, []string{organization}),
		ModelCount:    len(models),
		TotalEntities: total,
	}, nil
}

// relatesRelatingObject reports whether id is an IfcRelAggregates whose
// RelatingObject (slot 4) is relatingID.
func relatesRelatingObject(m *model.Model, id, relatingID uint32) bool {
	args, _, ok := stepparse.DecodeEntityArgs(m, id)
	if !ok {
		return false
	}
	ref, ok := stepparse.At(args, 4).AsRef()
	return ok && ref == relatingID
}

// renderMergedLine re-decodes id's own line and renders it with its own
// expressId and every ArgRef inside it shifted by offset.
func renderMergedLine(m *model.Model, id, offset uint32) (string, error) {
	args, typeName, ok := stepparse.DecodeEntityArgs(m, id)
	if !ok {
		return "", fmt.Errorf("stepwriter: entity #%d could not be decoded for merge", id)
	}
	offsetArgs(args, offset)
	rendered := make([]string, len(args))
	for i, a := range args {
		rendered[i] = renderArg(a)
	}
	return fmt.Sprintf("#%d=%s(%s);", id+offset, typeName, strings.Join(rendered, ",")), nil
}

// renderMergedProjectLine is renderMergedLine for the one IfcProject that
// survives the merge, additionally joining every model's project Name into
// the kept project's Name slot (slot 2) under StrategyMergeMetadata.
func renderMergedProjectLine(m *model.Model, id, offset uint32, strategy ProjectStrategy, names []string) (string, error) {
	args, typeName, ok := stepparse.DecodeEntityArgs(m, id)
	if !ok {
		return "", fmt.Errorf("stepwriter: entity #%d could not be decoded for merge", id)
	}
	offsetArgs(args, offset)
	if strategy == StrategyMergeMetadata && len(names) > 1 {
		args[2] = stepparse.Arg{Kind: stepparse.ArgString, Str: strings.Join(names, " + ")}
	}
	rendered := make([]string, len(args))
	for i, a := range args {
		rendered[i] = renderArg(a)
	}
	return fmt.Sprintf("#%d=%s(%s);", id+offset, typeName, strings.Join(rendered, ",")), nil
}

// offsetArgs shifts every ArgRef (at any nesting depth) in args by offset,
// in place.
func offsetArgs(args []stepparse.Arg, offset uint32) {
	var walk func(a *stepparse.Arg)
	walk = func(a *stepparse.Arg) {
		switch a.Kind {
		case stepparse.ArgRef:
			a.Ref += offset
		case stepparse.ArgList, stepparse.ArgTyped:
			for i := range a.List {
				walk(&a.List[i])
			}
		}
	}
	for i := range args {
		walk(&args[i])
	}
}
