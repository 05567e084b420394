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

// DecodeEntityArgs re-slices m.Source at expressID's recorded byte range
// and decodes its argument list on demand. This is the lazy path the Edit
// Layer and Writer use instead of keeping every entity's full attribute
// list resident for the life of the Model (spec §9 "Byte-offset
// references").
func DecodeEntityArgs(m *model.Model, expressID uint32) (args []Arg, typeName string, ok bool) {
	offset, length, found := m.Entities.ByteRange(expressID)
	if !found || m.Source == nil {
		return nil, "", false
	}
	end := offset + int64(length)
	if offset < 0 || end > int64(len(m.Source)) {
		return nil, "", false
	}
	stmt := string(m.Source[offset:end])
	_, typeName, body, ok := splitEntityHeader(stmt)
	if !ok {
		return nil, "", false
	}
	return parseArgs(body), typeName, true
}

// ParseArgs exposes the positional argument-list tokenizer for callers that
// already have an argument-list body in hand (e.g. the Writer re-assembling
// a mutated line).
func ParseArgs(body string) []Arg { return parseArgs(body) }

// At indexes into a decoded argument slice, returning the zero Arg
// (ArgUnset) rather than panicking when i is out of range.
func At(args []Arg, i int) Arg { return argAt(args, i) }
