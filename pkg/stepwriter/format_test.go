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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kraklabs/ifckit/pkg/stepparse"
)

func TestFormatRealAlwaysCarriesADecimalPoint(t *testing.T) {
	assert.Equal(t, "5.", formatReal(5))
	assert.Equal(t, "0.", formatReal(0))
	assert.Equal(t, "-3.", formatReal(-3))
	assert.Equal(t, "3.5", formatReal(3.5))
}

func TestFormatStringDoublesEmbeddedQuotes(t *testing.T) {
	assert.Equal(t, "'it''s'", formatString("it's"))
	assert.Equal(t, "''", formatString(""))
}

func TestFormatStringEscapesNonASCII(t *testing.T) {
	assert.Equal(t, `'\X\E9'`, formatString("é")) // é fits in one extended-ASCII byte
	assert.Equal(t, `'\X2\4E2D\X0\'`, formatString("中"))
}

func TestFormatEnumAndBool(t *testing.T) {
	assert.Equal(t, ".T.", formatEnum("T"))
	assert.Equal(t, ".T.", formatBool(true))
	assert.Equal(t, ".F.", formatBool(false))
}

func TestFormatListAndRefs(t *testing.T) {
	assert.Equal(t, "(#1,#2,#3)", refs(1, 2, 3))
	assert.Equal(t, "()", refs())
	assert.Equal(t, "(1.,2.5)", reals(1, 2.5))
}

func TestRenderArgRoundTripsEveryArgKind(t *testing.T) {
	cases := []struct {
		name string
		arg  stepparse.Arg
		want string
	}{
		{"unset", stepparse.Arg{Kind: stepparse.ArgUnset}, "$"},
		{"derived", stepparse.Arg{Kind: stepparse.ArgDerived}, "*"},
		{"ref", stepparse.Arg{Kind: stepparse.ArgRef, Ref: 42}, "#42"},
		{"integer", stepparse.Arg{Kind: stepparse.ArgInteger, Int: -7}, "-7"},
		{"real", stepparse.Arg{Kind: stepparse.ArgReal, Real: 1.5}, "1.5"},
		{"string", stepparse.Arg{Kind: stepparse.ArgString, Str: "hi"}, "'hi'"},
		{"enum", stepparse.Arg{Kind: stepparse.ArgEnum, Enum: "T"}, ".T."},
		{
			"list",
			stepparse.Arg{Kind: stepparse.ArgList, List: []stepparse.Arg{
				{Kind: stepparse.ArgReal, Real: 1},
				{Kind: stepparse.ArgReal, Real: 2},
			}},
			"(1.,2.)",
		},
		{
			"typed",
			stepparse.Arg{Kind: stepparse.ArgTyped, Keyword: "IFCLABEL", List: []stepparse.Arg{
				{Kind: stepparse.ArgString, Str: "x"},
			}},
			"IFCLABEL('x')",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, renderArg(tc.arg))
		})
	}
}
