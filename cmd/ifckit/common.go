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

package main

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/kraklabs/ifckit/internal/errors"
	"github.com/kraklabs/ifckit/pkg/ifcconfig"
	"github.com/kraklabs/ifckit/pkg/metrics"
	"github.com/kraklabs/ifckit/pkg/model"
	"github.com/kraklabs/ifckit/pkg/stepparse"
	"github.com/kraklabs/ifckit/pkg/stepwriter"
)

// newLogger builds the process-wide structured logger, leveled from the
// global verbosity/quiet flags (spec §4.3 logging).
func newLogger(globals GlobalFlags) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case globals.Quiet:
		level = slog.LevelError
	case globals.Verbose >= 2:
		level = slog.LevelDebug
	case globals.Verbose >= 1:
		level = slog.LevelInfo
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}

// loadModel reads path and runs it through the five-phase reader, wiring the
// shared logger and metrics registry into the parse (spec §4.3 Logging
// events parser.malformed_entity, parser.dangling_reference,
// parser.entity_skipped). progress, if non-nil, renders a live byte-offset
// bar across Phase B; pass nil outside of verbose/interactive use.
func loadModel(path string, logger *slog.Logger, reg *metrics.Registry, progress io.Writer) (*model.Model, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewInputError(
			"Cannot read input file",
			"Failed to read "+path,
			"Check the path and file permissions",
			err,
		)
	}
	m, err := stepparse.ParseWithOptions(path, src, stepparse.ParseOptions{Logger: logger, Metrics: reg, Progress: progress})
	if err != nil {
		return nil, errors.NewInputError(
			"Cannot parse input file",
			err.Error(),
			"Verify the file is a well-formed ISO-10303-21 / IFC file",
			err,
		)
	}
	return m, nil
}

// writerOptions builds a stepwriter.Options from the loaded project
// configuration, wiring the shared logger and metrics registry into it.
func writerOptions(cfg *ifcconfig.Config, logger *slog.Logger, reg *metrics.Registry) stepwriter.Options {
	schema, ok := model.ParseSchema(cfg.Schema)
	if !ok {
		schema = model.SchemaIFC4
	}
	return stepwriter.Options{
		Schema:           schema,
		BestEffort:       cfg.Writer.BestEffort,
		GlobalIDAlphabet: cfg.Writer.GlobalIDAlphabet,
		Logger:           logger,
		Metrics:          reg,
	}
}

// writeOutput writes content to path, creating the file or overwriting an
// existing one, and exits through FatalError if the write fails.
func writeOutput(path, content string, globals GlobalFlags) {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		errors.FatalError(errors.NewPermissionError(
			"Cannot write output file",
			"Failed to write "+path,
			"Check directory permissions and available disk space",
			err,
		), globals.JSON)
	}
}

// timeStampNow renders the current time in the ISO-10303-21 FILE_NAME
// time-stamp form.
func timeStampNow() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05")
}
