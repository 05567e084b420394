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

package meshedit

import (
	"errors"
	"fmt"
)

var errUnknownSelection = errors.New("unrecognized selection kind")

type outOfRangeError struct {
	kind  string
	index int
	count int
}

func (e *outOfRangeError) Error() string {
	return fmt.Sprintf("%s index %d is out of range (count %d)", e.kind, e.index, e.count)
}

func errOutOfRange(kind string, index, count int) error {
	return &outOfRangeError{kind: kind, index: index, count: count}
}
