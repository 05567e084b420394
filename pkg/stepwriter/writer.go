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
	"log/slog"
	"strconv"
	"strings"

	"github.com/kraklabs/ifckit/pkg/metrics"
	"github.com/kraklabs/ifckit/pkg/model"
)

// Options configures a Writer's behavior (spec §4.7 + §4.1 config wiring).
type Options struct {
	Schema           model.Schema
	BestEffort       bool // spec §7 kind 6: emit a partial file instead of aborting
	GlobalIDAlphabet string
	Logger           *slog.Logger
	Metrics          *metrics.Registry
}

// Writer accumulates emitted entity lines and assigns fresh expressIds,
// shared by both the Creator path (building a model from scratch) and the
// Export path (re-serializing a parsed model.Model).
type Writer struct {
	opts Options
	ids  *globalIDAllocator

	nextID uint32
	lines  []string // rendered "#ID=TYPE(args);" lines, in emission order

	logger *slog.Logger
}

// New creates a Writer. A zero Options.Schema defaults to IFC4 (spec §6).
func New(opts Options) *Writer {
	if opts.Schema == "" {
		opts.Schema = model.SchemaIFC4
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{
		opts:   opts,
		ids:    newGlobalIDAllocator(opts.GlobalIDAlphabet),
		nextID: 1,
		logger: logger,
	}
}

// AllocID reserves the next unused expressId.
func (w *Writer) AllocID() uint32 {
	id := w.nextID
	w.nextID++
	return id
}

// NewGlobalID draws a fresh, file-unique 22-character GlobalId.
func (w *Writer) NewGlobalID() (string, error) { return w.ids.next() }

// emit appends a rendered "#ID=TYPE(args);" line and bumps the writer's
// id allocator past id if necessary (so manual and auto-allocated ids never
// collide).
func (w *Writer) emit(id uint32, typeName, argsBody string) uint32 {
	w.lines = append(w.lines, fmt.Sprintf("#%d=%s(%s);", id, typeName, argsBody))
	if w.opts.Metrics != nil {
		w.opts.Metrics.WriterEmitted.WithLabelValues(typeName).Inc()
	}
	if id >= w.nextID {
		w.nextID = id + 1
	}
	return id
}

// emitNew allocates a fresh id and emits a new entity line in one step.
func (w *Writer) emitNew(typeName, argsBody string) uint32 {
	id := w.AllocID()
	return w.emit(id, typeName, argsBody)
}

// emitRaw appends an already fully-rendered "#ID=TYPE(args);" statement line
// verbatim (used by the Export path to re-serialize untouched entities byte
// for byte aside from trailing whitespace normalization), bumping nextID
// past its leading id the same way emit does so export and federation can
// still allocate fresh ids afterward without colliding.
func (w *Writer) emitRaw(line string) {
	w.lines = append(w.lines, line)
	if id, ok := leadingID(line); ok && id >= w.nextID {
		w.nextID = id + 1
	}
}

// leadingID parses the "#N" id prefix of a rendered entity line.
func leadingID(line string) (uint32, bool) {
	if len(line) < 2 || line[0] != '#' {
		return 0, false
	}
	i := 1
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i == 1 {
		return 0, false
	}
	n, err := strconv.ParseUint(line[1:i], 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(n), true
}

// Render joins the header and every emitted line into the final
// ISO-10303-21 text (spec §4.7 "Header").
func (w *Writer) Render(description, fileName, timeStamp string, author, organization []string) string {
	var b strings.Builder
	b.WriteString("ISO-10303-21;\n")
	b.WriteString("HEADER;\n")
	fmt.Fprintf(&b, "FILE_DESCRIPTION((%s),'2;1');\n", formatString(description))
	fmt.Fprintf(&b, "FILE_NAME(%s,%s,(%s),(%s),'ifckit','ifckit','');\n",
		formatString(fileName), formatString(timeStamp),
		quotedJoin(author), quotedJoin(organization))
	fmt.Fprintf(&b, "FILE_SCHEMA(('%s'));\n", w.opts.Schema)
	b.WriteString("ENDSEC;\n")
	b.WriteString("DATA;\n")
	for _, line := range w.lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString("ENDSEC;\n")
	b.WriteString("END-ISO-10303-21;\n")
	return b.String()
}

func quotedJoin(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = formatString(s)
	}
	return strings.Join(quoted, ",")
}
