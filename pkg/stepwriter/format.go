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

// Package stepwriter implements the STEP Writer/Creator (spec §4.7): strict
// ISO-10303-21 emission for both a from-scratch Creator path and an
// Export/merge path over an already-parsed model.Model.
package stepwriter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kraklabs/ifckit/pkg/stepparse"
)

// formatReal renders a float64 as an IFC REAL: always carrying a decimal
// point, so a bare integral value like 5 is written "5." rather than "5"
// (spec §4.7 "strict conformance").
func formatReal(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		return s + "."
	}
	// strconv may render "1e+06"; IFC REALs use the same exponent form, so
	// only the missing-dot case needs fixing up.
	if strings.ContainsAny(s, "eE") && !strings.Contains(s, ".") {
		idx := strings.IndexAny(s, "eE")
		return s[:idx] + "." + s[idx:]
	}
	return s
}

// formatString single-quotes s, doubling embedded quotes and escaping any
// non-ASCII rune as a \X\HH (extended ASCII) or \X2\HHHH\X0\ (UTF-16)
// sequence per ISO-10303-21 §5.
func formatString(s string) string {
	var b strings.Builder
	b.WriteByte('\'')
	for _, r := range s {
		switch {
		case r == '\'':
			b.WriteString("''")
		case r < 0x80:
			b.WriteRune(r)
		case r <= 0xFF:
			fmt.Fprintf(&b, `\X\%02X`, r)
		default:
			fmt.Fprintf(&b, `\X2\%04X\X0\`, r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}

// formatEnum renders an IFC enumeration/logical literal, e.g. ".T.".
func formatEnum(e string) string { return "." + e + "." }

// formatBool renders a boolean as the IFC logical literal .T./.F.
func formatBool(b bool) string {
	if b {
		return ".T."
	}
	return ".F."
}

// formatRef renders an entity reference, e.g. "#42".
func formatRef(id uint32) string { return "#" + strconv.FormatUint(uint64(id), 10) }

// formatList joins pre-rendered argument tokens with "," inside
// parentheses.
func formatList(items ...string) string {
	return "(" + strings.Join(items, ",") + ")"
}

// formatTyped wraps an already-rendered inner value in a select-type
// keyword, e.g. formatTyped("IFCLABEL", formatString("x")) -> IFCLABEL('x').
func formatTyped(keyword, inner string) string {
	return keyword + "(" + inner + ")"
}

// reals renders a slice of float64 as a parenthesized REAL list, e.g.
// (1.,0.,0.).
func reals(vs ...float64) string {
	items := make([]string, len(vs))
	for i, v := range vs {
		items[i] = formatReal(v)
	}
	return formatList(items...)
}

// refs renders a slice of expressIds as a parenthesized reference list.
func refs(ids ...uint32) string {
	items := make([]string, len(ids))
	for i, id := range ids {
		items[i] = formatRef(id)
	}
	return formatList(items...)
}

// renderArg is the inverse of stepparse's positional arg parser, used by the
// Export path to re-serialize an entity's decoded argument list after a
// mutation has replaced one slot (spec §4.7 "Export path").
func renderArg(a stepparse.Arg) string {
	switch a.Kind {
	case stepparse.ArgUnset:
		return "$"
	case stepparse.ArgDerived:
		return "*"
	case stepparse.ArgRef:
		return formatRef(a.Ref)
	case stepparse.ArgInteger:
		return strconv.FormatInt(a.Int, 10)
	case stepparse.ArgReal:
		return formatReal(a.Real)
	case stepparse.ArgString:
		return formatString(a.Str)
	case stepparse.ArgEnum:
		return formatEnum(a.Enum)
	case stepparse.ArgList:
		items := make([]string, len(a.List))
		for i, item := range a.List {
			items[i] = renderArg(item)
		}
		return formatList(items...)
	case stepparse.ArgTyped:
		items := make([]string, len(a.List))
		for i, item := range a.List {
			items[i] = renderArg(item)
		}
		return formatTyped(a.Keyword, strings.Join(items, ","))
	default:
		return "$"
	}
}
