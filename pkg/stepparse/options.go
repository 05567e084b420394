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
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"github.com/kraklabs/ifckit/pkg/metrics"
	"github.com/kraklabs/ifckit/pkg/model"
)

// defaultYieldEvery matches ifcconfig.DefaultConfig's Parser.YieldEvery: how
// often Phase B checks in with the progress bar and cooperatively yields the
// goroutine scheduler during a large DATA section scan.
const defaultYieldEvery = 5000

// ParseOptions wires the ambient logging, metrics, and progress-reporting
// stack into a parse (spec §4.3 Logging, §4 Progress reporting). The zero
// value logs through slog.Default() and records no metrics or progress:
// Parse uses it as-is.
type ParseOptions struct {
	// Logger receives structured events for non-fatal diagnostics
	// (parser.malformed_entity, parser.dangling_reference,
	// parser.entity_skipped). Defaults to slog.Default() if nil.
	Logger *slog.Logger
	// Metrics, if non-nil, is incremented with per-type entity counts, the
	// diagnostic taxonomy, and overall parse duration.
	Metrics *metrics.Registry
	// YieldEvery sets how many DATA-section statements Phase B processes
	// between progress-bar updates and scheduler yields. Zero uses
	// defaultYieldEvery.
	YieldEvery int
	// Progress, if non-nil, receives a live byte-offset progress bar across
	// Phase B's scan of the DATA section.
	Progress io.Writer
}

// Parse runs the full five-phase reader with default options: logging
// through slog.Default(), no metrics, and no progress reporting.
func Parse(modelID string, src []byte) (*model.Model, error) {
	return ParseWithOptions(modelID, src, ParseOptions{})
}

// ParseWithOptions is Parse with the ambient stack wired in: see
// ParseOptions.
func ParseWithOptions(modelID string, src []byte, popts ParseOptions) (*model.Model, error) {
	logger := popts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	yieldEvery := popts.YieldEvery
	if yieldEvery <= 0 {
		yieldEvery = defaultYieldEvery
	}

	header, err := parseHeader(src)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	m := model.NewModel(modelID)
	m.Schema = header.Schema
	m.Source = src
	if header.FileName != "" {
		m.Name = header.FileName
	}

	p := &parser{
		m:          m,
		pending:    make(map[uint32]pendingEntity, 4096),
		logger:     logger,
		metrics:    popts.Metrics,
		yieldEvery: yieldEvery,
		progress:   popts.Progress,
	}
	p.discoverEntities(src)
	m.Entities.Freeze()

	p.wireRelationships()
	p.buildSpatialHierarchy()
	p.materializeProperties()

	if popts.Metrics != nil {
		popts.Metrics.ParseDuration.Observe(time.Since(start).Seconds())
	}

	return m, nil
}

// ParseFiles parses each path independently and concurrently, federating
// failures through the first error encountered (spec §5 batch ingestion).
// Models are returned in the same order as paths; a later caller typically
// feeds the slice straight into stepwriter.Merge.
func ParseFiles(ctx context.Context, paths []string, read func(path string) ([]byte, error), popts ParseOptions) ([]*model.Model, error) {
	models := make([]*model.Model, len(paths))
	g, _ := errgroup.WithContext(ctx)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			src, err := read(path)
			if err != nil {
				return err
			}
			m, err := ParseWithOptions(path, src, popts)
			if err != nil {
				return err
			}
			models[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return models, nil
}

// newProgressBar builds a schollz/progressbar tracking byte offset through
// [0, total) in Phase B, or nil if w is nil.
func newProgressBar(w io.Writer, total int, description string) *progressbar.ProgressBar {
	if w == nil {
		return nil
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionThrottle(100*time.Millisecond),
	)
}
