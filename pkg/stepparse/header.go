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

import (
	"strings"

	"github.com/kraklabs/ifckit/pkg/model"
)

// Header is the materialized result of Phase A: the three FILE_* records
// from the HEADER section, plus the recognized schema.
type Header struct {
	Schema      model.Schema
	Description []string
	FileName    string
	TimeStamp   string
	Author      []string
	Organization []string
	DataEnd     int // byte offset where the DATA section body starts
}

// parseHeader runs Phase A over src: locate HEADER;...ENDSEC;, parse its
// three FILE_* statements, and resolve FILE_SCHEMA to a model.Schema. A
// missing HEADER section, a missing FILE_SCHEMA record, or a FILE_SCHEMA
// naming a schema other than IFC2X3/IFC4/IFC4X3 is fatal (spec §7 kind 1,
// MalformedHeader) — the parser never recovers from this the way it
// recovers from a bad entity line.
func parseHeader(src []byte) (*Header, error) {
	bodyStart, bodyEnd, ok := findSection(src, "HEADER")
	if !ok {
		return nil, &HeaderError{Reason: "no HEADER section found", Offset: 0}
	}
	body := src[bodyStart:bodyEnd]

	h := &Header{}
	var sawSchema bool

	pos := 0
	for pos < len(body) {
		start, end, ok := scanStatement(body, pos)
		if !ok {
			break
		}
		pos = end
		stmt := strings.TrimSpace(string(body[start:end]))
		if stmt == "" {
			continue
		}
		name, argsBody, ok := splitCall(stmt)
		if !ok {
			continue
		}
		args := parseArgs(argsBody)
		switch name {
		case "FILE_DESCRIPTION":
			h.Description = stringList(argAt(args, 0))
		case "FILE_NAME":
			h.FileName, _ = argAt(args, 0).AsString()
			h.TimeStamp, _ = argAt(args, 1).AsString()
			h.Author = stringList(argAt(args, 2))
			h.Organization = stringList(argAt(args, 3))
		case "FILE_SCHEMA":
			items := stringList(argAt(args, 0))
			if len(items) == 0 {
				return nil, &HeaderError{Reason: "FILE_SCHEMA has no schema identifier", Offset: bodyStart + start}
			}
			schema, ok := model.ParseSchema(items[0])
			if !ok {
				return nil, &HeaderError{Reason: "unrecognized schema " + items[0], Offset: bodyStart + start}
			}
			h.Schema = schema
			sawSchema = true
		}
	}

	if !sawSchema {
		return nil, &HeaderError{Reason: "no FILE_SCHEMA record in HEADER section", Offset: bodyStart}
	}

	_, dataBodyStart, ok := locateDataSection(src)
	if !ok {
		return nil, &HeaderError{Reason: "no DATA section found", Offset: bodyEnd}
	}
	h.DataEnd = dataBodyStart
	return h, nil
}

// splitCall splits a statement of the form "NAME(args);" into its name and
// argument-list body.
func splitCall(stmt string) (name, body string, ok bool) {
	stmt = strings.TrimSuffix(strings.TrimSpace(stmt), ";")
	open := strings.IndexByte(stmt, '(')
	if open < 0 || stmt[len(stmt)-1] != ')' {
		return "", "", false
	}
	name = strings.TrimSpace(stmt[:open])
	return name, stmt[open+1 : len(stmt)-1], true
}

// stringList unwraps a FILE_* list argument (an ArgList of ArgString) to a
// plain []string, tolerating a bare single string too.
func stringList(a Arg) []string {
	if s, ok := a.AsString(); ok {
		return []string{s}
	}
	list, ok := a.AsList()
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.AsString(); ok {
			out = append(out, s)
		}
	}
	return out
}

// locateDataSection returns the byte offset of "DATA;" itself and of the
// start of its body (just past "DATA;").
func locateDataSection(src []byte) (dataStart, bodyStart int, ok bool) {
	s := string(src)
	at := strings.Index(s, "DATA;")
	if at < 0 {
		return 0, 0, false
	}
	return at, at + len("DATA;"), true
}
