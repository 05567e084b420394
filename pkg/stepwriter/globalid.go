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
	"github.com/google/uuid"

	ifcerrors "github.com/kraklabs/ifckit/internal/errors"
)

// globalIDLength is the fixed length of an IFC GlobalId (spec §4.7, §6).
const globalIDLength = 22

// maxGlobalIDRetries bounds the SerializationOverflow retry loop (spec §7
// kind 7).
const maxGlobalIDRetries = 8

// globalIDAllocator draws 22-character GlobalIds from a caller-supplied
// alphabet, guaranteeing uniqueness within one emitted file. Entropy comes
// from google/uuid's crypto/rand-backed random generator rather than a
// hand-rolled RNG: 16 bytes of uuid.New() output cover the 128 bits a
// 64-symbol, 22-character id needs (64^22 >> 2^128), so the UUID's raw bytes
// are reused directly as the entropy source and re-encoded into the IFC
// alphabet instead of emitting the UUID's own hyphenated string form (see
// DESIGN.md).
type globalIDAllocator struct {
	alphabet string
	seen     map[string]bool
}

func newGlobalIDAllocator(alphabet string) *globalIDAllocator {
	if alphabet == "" {
		alphabet = defaultGlobalIDAlphabet
	}
	return &globalIDAllocator{alphabet: alphabet, seen: make(map[string]bool)}
}

const defaultGlobalIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz_$"

// reserve marks an externally-sourced GlobalId (e.g. one preserved verbatim
// from a re-serialized entity in the Export path) as taken, so the
// allocator never regenerates a colliding id.
func (a *globalIDAllocator) reserve(id string) { a.seen[id] = true }

// next draws a fresh, unique 22-character GlobalId. It retries up to
// maxGlobalIDRetries times on collision before failing with a
// WriterPrecondition-adjacent SerializationOverflow error (spec §7 kind 7).
func (a *globalIDAllocator) next() (string, error) {
	for attempt := 0; attempt < maxGlobalIDRetries; attempt++ {
		id := a.encode(uuid.New())
		if !a.seen[id] {
			a.seen[id] = true
			return id, nil
		}
	}
	return "", ifcerrors.NewInternalError(
		"GlobalId allocation exhausted",
		"Could not generate a unique 22-character GlobalId after repeated collisions",
		"This indicates an extremely large file or a degenerate alphabet; retry the export",
		nil,
	)
}

// encode maps 128 bits of UUID entropy onto the allocator's alphabet,
// producing exactly globalIDLength characters.
func (a *globalIDAllocator) encode(id uuid.UUID) string {
	base := uint64(len(a.alphabet))
	// Treat the 16 UUID bytes as a 128-bit big-endian integer split into two
	// 64-bit halves, then base-N encode each half independently into 11
	// characters (11 * log2(64) = 66 bits, enough to hold a 64-bit half for
	// any alphabet of 57 or more symbols; with a smaller alphabet the high
	// bits of each half are dropped).
	hi := beUint64(id[0:8])
	lo := beUint64(id[8:16])

	out := make([]byte, globalIDLength)
	encodeHalf(out[:globalIDLength/2], hi, base, a.alphabet)
	encodeHalf(out[globalIDLength/2:], lo, base, a.alphabet)
	return string(out)
}

func beUint64(b []byte) uint64 {
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v
}

func encodeHalf(dst []byte, v, base uint64, alphabet string) {
	for i := len(dst) - 1; i >= 0; i-- {
		dst[i] = alphabet[v%base]
		v /= base
	}
}
