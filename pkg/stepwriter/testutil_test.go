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

	"github.com/kraklabs/ifckit/pkg/model"
)

// fakeEntity is one line a test model.Model is assembled from: "#id=typeName(body);".
type fakeEntity struct {
	id       uint32
	typeName string
	body     string
}

// buildTestModel assembles a model.Model whose Source and EntityStore byte
// ranges are consistent with each other, the same way the real parser's
// Phase B does, so stepparse.DecodeEntityArgs and EntityStore.ByteRange work
// against it exactly as they would against a parsed file.
func buildTestModel(entities []fakeEntity) *model.Model {
	m := model.NewModel("test")
	var src []byte
	for _, e := range entities {
		line := fmt.Sprintf("#%d=%s(%s);", e.id, e.typeName, e.body)
		offset := int64(len(src))
		src = append(src, line...)
		src = append(src, '\n')
		m.Entities.Add(model.NewRecord{
			ExpressID:  e.id,
			TypeTag:    model.TypeTagFromName(e.typeName),
			ByteOffset: offset,
			ByteLength: int32(len(line)),
		})
	}
	m.Entities.Freeze()
	m.Source = src
	return m
}
