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

package ifcconfig

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, configVersion, cfg.Version)
	assert.Equal(t, "IFC4", cfg.Schema)
	assert.Equal(t, "meter", cfg.Units.Length)
	assert.Equal(t, 5000, cfg.Parser.YieldEvery)
	assert.False(t, cfg.Writer.BestEffort)
	assert.Equal(t, defaultGlobalIDAlphabet, cfg.Writer.GlobalIDAlphabet)
}

func TestSaveAndLoadConfigRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := ConfigPath(dir)

	cfg := DefaultConfig()
	cfg.Schema = "IFC2X3"
	cfg.Units.Length = "millimeter"
	cfg.Parser.YieldEvery = 1000

	require.NoError(t, SaveConfig(cfg, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "IFC2X3", loaded.Schema)
	assert.Equal(t, "millimeter", loaded.Units.Length)
	assert.Equal(t, 1000, loaded.Parser.YieldEvery)
}

func TestLoadConfigRejectsUnsupportedVersion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "project.yaml")

	require.NoError(t, SaveConfig(&Config{Version: "99"}, path))

	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestLoadConfigMissingExplicitFileIsError(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadConfig(filepath.Join(dir, "nope", "project.yaml"))
	require.Error(t, err)
	assert.Nil(t, cfg)
}
