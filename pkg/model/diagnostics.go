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

package model

import "fmt"

// DiagnosticKind classifies a non-fatal parse issue (spec §7, kinds 2-3).
type DiagnosticKind uint8

const (
	DiagMalformedEntity DiagnosticKind = iota
	DiagDanglingReference
)

// Diagnostic records one non-fatal issue encountered while parsing. Kinds
// 1 (MalformedHeader) abort the parse outright and are returned as a Go
// error instead; kinds 2-3 are accumulated here and never silently lost
// (spec §7 propagation policy).
type Diagnostic struct {
	Kind       DiagnosticKind
	ExpressID  uint32 // entity the diagnostic is attached to, if any
	ByteOffset int64
	Reason     string
}

func (d Diagnostic) String() string {
	switch d.Kind {
	case DiagMalformedEntity:
		return fmt.Sprintf("malformed entity #%d at byte %d: %s", d.ExpressID, d.ByteOffset, d.Reason)
	case DiagDanglingReference:
		return fmt.Sprintf("dangling reference from #%d: %s", d.ExpressID, d.Reason)
	default:
		return d.Reason
	}
}

// Diagnostics is the per-model accumulator for non-fatal parse issues.
type Diagnostics []Diagnostic

// Add appends a diagnostic.
func (d *Diagnostics) Add(diag Diagnostic) {
	*d = append(*d, diag)
}

// MalformedEntityCount returns how many DiagMalformedEntity entries were
// recorded.
func (d Diagnostics) MalformedEntityCount() int {
	n := 0
	for _, diag := range d {
		if diag.Kind == DiagMalformedEntity {
			n++
		}
	}
	return n
}

// DanglingReferenceCount returns how many DiagDanglingReference entries
// were recorded.
func (d Diagnostics) DanglingReferenceCount() int {
	n := 0
	for _, diag := range d {
		if diag.Kind == DiagDanglingReference {
			n++
		}
	}
	return n
}
