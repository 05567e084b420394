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

package geomedit

import (
	"github.com/kraklabs/ifckit/pkg/model"
	"github.com/kraklabs/ifckit/pkg/stepparse"
)

// ResolveSlot re-runs parameter extraction for entityID (already known to be
// typeName, with args already decoded) and returns the positional slot and
// nested-path segments of the parameter whose Path equals path. A
// GeometryMutation only carries EntityID and ParameterPath (spec §4.5); this
// lets the Writer's Export path recover the SlotIndex/NestedPath a
// GeometryParameter computed at extraction time without keeping a second
// copy of the slot table in extract.go in sync with it.
func ResolveSlot(m *model.Model, entityID uint32, typeName string, args []stepparse.Arg, path string) (slot int, nested []string, ok bool) {
	for _, p := range extractByType(m, entityID, typeName, args) {
		if p.Path == path {
			return p.SlotIndex(), p.NestedPath(), true
		}
	}
	return 0, nil, false
}
