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

package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotReflectsRecordedValues(t *testing.T) {
	r := New()
	r.ParseDuration.Observe(0.25)
	r.EntitiesParsed.WithLabelValues("IFCWALL").Add(3)
	r.WriterEmitted.WithLabelValues("IFCSLAB").Inc()
	r.DiagnosticCount.WithLabelValues("MalformedEntity").Add(2)

	snap, err := r.Snapshot()
	require.NoError(t, err)

	assert.Equal(t, uint64(1), snap.ParseDurationSeconds.SampleCount)
	assert.InDelta(t, 0.25, snap.ParseDurationSeconds.SampleSum, 1e-9)
	assert.Equal(t, float64(3), snap.EntitiesParsed["IFCWALL"])
	assert.Equal(t, float64(1), snap.WriterEmitted["IFCSLAB"])
	assert.Equal(t, float64(2), snap.Diagnostics["MalformedEntity"])
}

func TestSnapshotEmptyRegistry(t *testing.T) {
	r := New()
	snap, err := r.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), snap.ParseDurationSeconds.SampleCount)
	assert.Empty(t, snap.EntitiesParsed)
}
