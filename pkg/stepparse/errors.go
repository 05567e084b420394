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
	"errors"
	"fmt"
)

var errEmptyInt = errors.New("stepparse: empty or non-numeric expressId")

// HeaderError is returned for fatal Phase A failures: a missing or
// unrecognized FILE_SCHEMA, or a HEADER section that can't be located at
// all. Parse always stops at the first HeaderError; it never tries to
// recover from a bad header the way it recovers from a malformed entity.
type HeaderError struct {
	Reason string
	Offset int
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("stepparse: malformed header at byte %d: %s", e.Offset, e.Reason)
}
