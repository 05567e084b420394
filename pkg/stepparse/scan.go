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

import "strings"

// scanStatement finds the next ';'-terminated statement in src starting at
// pos, skipping leading whitespace and /* */ comments, while tracking
// single-quoted string state so that a ';' inside a string literal (legal,
// if unusual) doesn't end the statement early.
//
// Returns the [start,end) byte range of the statement including its
// trailing ';', and ok=false if EOF was reached before a terminator was
// found (an unterminated statement — malformed).
func scanStatement(src []byte, pos int) (start, end int, ok bool) {
	i := pos
	for i < len(src) {
		switch {
		case isSpace(src[i]):
			i++
		case src[i] == '/' && i+1 < len(src) && src[i+1] == '*':
			if end := strIndex(src, "*/", i+2); end >= 0 {
				i = end + 2
			} else {
				return i, len(src), false
			}
		default:
			start = i
			return scanToSemicolon(src, start)
		}
	}
	return len(src), len(src), false
}

func scanToSemicolon(src []byte, start int) (int, int, bool) {
	inStr := false
	i := start
	for i < len(src) {
		c := src[i]
		switch {
		case inStr:
			if c == '\'' {
				if i+1 < len(src) && src[i+1] == '\'' {
					i += 2
					continue
				}
				inStr = false
			}
			i++
		case c == '\'':
			inStr = true
			i++
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			if end := strIndex(src, "*/", i+2); end >= 0 {
				i = end + 2
			} else {
				return start, len(src), false
			}
		case c == ';':
			return start, i + 1, true
		default:
			i++
		}
	}
	return start, len(src), false
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func strIndex(src []byte, sub string, from int) int {
	if from > len(src) {
		return -1
	}
	idx := strings.Index(string(src[from:]), sub)
	if idx < 0 {
		return -1
	}
	return from + idx
}

// findSection locates the byte range of the body between "<name>;" and the
// following "ENDSEC;", not including either marker. Returns ok=false if the
// section is absent.
func findSection(src []byte, name string) (bodyStart, bodyEnd int, ok bool) {
	s := string(src)
	needle := name + ";"
	at := strings.Index(s, needle)
	if at < 0 {
		return 0, 0, false
	}
	bodyStart = at + len(needle)
	end := strings.Index(s[bodyStart:], "ENDSEC;")
	if end < 0 {
		return bodyStart, len(src), false
	}
	return bodyStart, bodyStart + end, true
}

// splitEntityHeader splits a statement of the form "#N=TYPENAME(args);"
// into its id, type name, and argument-list body (without the outer
// parens or trailing ';'). ok is false if the statement doesn't match this
// shape (e.g. a complex-instance line "#N=(A(...)B(...));" or malformed
// text) — callers should fall back to recording an Unknown entity over the
// raw byte range.
func splitEntityHeader(stmt string) (id uint64, typeName, body string, ok bool) {
	stmt = strings.TrimSpace(stmt)
	if len(stmt) == 0 || stmt[0] != '#' {
		return 0, "", "", false
	}
	eq := strings.IndexByte(stmt, '=')
	if eq < 0 {
		return 0, "", "", false
	}
	idStr := strings.TrimSpace(stmt[1:eq])
	id, err := parseUintStrict(idStr)
	if err != nil {
		return 0, "", "", false
	}
	rest := strings.TrimSpace(stmt[eq+1:])
	open := strings.IndexByte(rest, '(')
	if open < 0 {
		return 0, "", "", false
	}
	typeName = strings.TrimSpace(rest[:open])
	if !isIdent(typeName) {
		return 0, "", "", false
	}
	if rest[len(rest)-1] != ';' {
		return 0, "", "", false
	}
	inner := rest[open : len(rest)-1] // "(args)"
	if len(inner) < 1 || inner[0] != '(' || inner[len(inner)-1] != ')' {
		return 0, "", "", false
	}
	return id, typeName, inner[1 : len(inner)-1], true
}

func parseUintStrict(s string) (uint64, error) {
	var n uint64
	if s == "" {
		return 0, errEmptyInt
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, errEmptyInt
		}
		n = n*10 + uint64(c-'0')
	}
	return n, nil
}
