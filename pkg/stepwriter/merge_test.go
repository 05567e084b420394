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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/ifckit/pkg/model"
)

func projectModel(name string, siteID, projectID uint32) *model.Model {
	m := buildTestModel([]fakeEntity{
		{siteID, "IFCSITE", "'SGID',$,'Site',$,$,$,$,$,.ELEMENT.,$,$,$,$,$"},
		{projectID, "IFCPROJECT", "'PGID',$,'" + name + "',$,$,$,$,(#900),#901"},
		{projectID + 1, "IFCRELAGGREGATES", "'RGID',$,$,$,#" + itoa(projectID) + ",(#" + itoa(siteID) + ")"},
	})
	return m
}

func itoa(v uint32) string {
	// local helper so the test fixtures above stay readable without importing
	// strconv at call sites.
	if v == 0 {
		return "0"
	}
	digits := ""
	for v > 0 {
		digits = string(rune('0'+v%10)) + digits
		v /= 10
	}
	return digits
}

func TestMergeKeepFirstKeepsOnlyFirstProject(t *testing.T) {
	a := projectModel("Alpha", 1, 2)
	b := projectModel("Beta", 1, 2) // deliberately overlapping local ids, disjoint after offsetting

	result, err := Merge([]*model.Model{a, b}, Options{}, MergeOptions{Strategy: StrategyKeepFirst},
		"d", "f.ifc", "auth", "org", "2026-07-31T00:00:00")
	require.NoError(t, err)

	assert.Equal(t, 2, result.ModelCount)
	assert.Contains(t, result.Content, "'Alpha'")
	assert.NotContains(t, result.Content, "'Beta'")
	// Exactly one surviving IFCPROJECT line.
	assert.Equal(t, 1, strings.Count(result.Content, "IFCPROJECT("))
}

func TestMergeMergeMetadataJoinsProjectNames(t *testing.T) {
	a := projectModel("Alpha", 1, 2)
	b := projectModel("Beta", 1, 2)

	result, err := Merge([]*model.Model{a, b}, Options{}, MergeOptions{Strategy: StrategyMergeMetadata},
		"d", "f.ifc", "auth", "org", "2026-07-31T00:00:00")
	require.NoError(t, err)
	assert.Contains(t, result.Content, "'Alpha + Beta'")
}

func TestMergeOffsetsDisjointIdsAndRewritesReferences(t *testing.T) {
	a := projectModel("Alpha", 1, 2)
	b := projectModel("Beta", 1, 2)

	result, err := Merge([]*model.Model{a, b}, Options{}, MergeOptions{},
		"d", "f.ifc", "auth", "org", "2026-07-31T00:00:00")
	require.NoError(t, err)

	// model b's site (local id 1) must have been renumbered past model a's
	// highest id, and the one merged aggregation under the kept project
	// (#2) must reference the renumbered site, not the stale local one.
	assert.Contains(t, result.Content, "IFCSITE(")
	aMax := a.MaxExpressID()
	assert.Contains(t, result.Content, "#"+itoa(1+aMax)+"=IFCSITE(")
	assert.Contains(t, result.Content, ",#2,(#1,#"+itoa(1+aMax)+"));")
}
