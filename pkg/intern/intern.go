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

// Package intern deduplicates the strings that recur constantly in an IFC
// file — entity names, GlobalIds, object types, type names — and hands back
// a dense, stable 32-bit id in their place. Every EntityStore column that
// would otherwise hold a string holds an interned id instead.
package intern

// emptyID is the reserved id for the empty string. It is always valid and
// always resolves back to "", so callers never need a presence check before
// calling Get.
const emptyID uint32 = 0

// Table is an append-only string interner. It is safe to use from a single
// parser goroutine; it is not synchronized internally because parsing is
// single-threaded per model (see spec §5).
type Table struct {
	strings []string
	ids     map[string]uint32
}

// New creates an interner with the empty string preloaded at id 0.
func New() *Table {
	t := &Table{
		strings: make([]string, 0, 64),
		ids:     make(map[string]uint32, 64),
	}
	t.strings = append(t.strings, "")
	t.ids[""] = emptyID
	return t
}

// Intern assigns s a dense, monotonically increasing id on first sight and
// returns the same id on every later call with an equal string.
func (t *Table) Intern(s string) uint32 {
	if s == "" {
		return emptyID
	}
	if id, ok := t.ids[s]; ok {
		return id
	}
	id := uint32(len(t.strings))
	t.strings = append(t.strings, s)
	t.ids[s] = id
	return id
}

// Get resolves id back to its string. An id that was never assigned
// (including one produced by a different Table) resolves to "" rather than
// panicking — lookups must never crash a viewer walking untrusted ids.
func (t *Table) Get(id uint32) string {
	if id >= uint32(len(t.strings)) {
		return ""
	}
	return t.strings[id]
}

// Len returns the number of distinct strings interned, including the empty
// string entry at id 0.
func (t *Table) Len() int {
	return len(t.strings)
}

// Freeze is a no-op marker call documenting that parsing has finished and
// the table is no longer expected to grow. It exists so call sites in the
// parser can express the Phase E → frozen transition explicitly without the
// interner needing to enforce it at runtime.
func (t *Table) Freeze() {}
