// Copyright 2026 The Pospace Authors. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package item defines the fixed-width value type that the sector, its
// Merkle commitment, and its proofs are built from.
package item

import (
	"encoding/binary"

	"github.com/proofofspace/sector/compress"
)

// Size is the byte width of an Item on disk and on the wire.
const Size = 32

// Item is a 32-byte value interpreted as eight 32-bit little-endian words.
// It is a plain value type: copy it freely, never alias it beyond a single
// function body.
type Item struct {
	W [8]uint32
}

// Xor returns the bitwise XOR of a and b, word by word.
func Xor(a, b Item) Item {
	var r Item
	for i := range r.W {
		r.W[i] = a.W[i] ^ b.W[i]
	}
	return r
}

// Compress folds two items into one via a single invocation of the
// compression primitive: h(a.w ∥ b.w).
func Compress(a, b Item) Item {
	var in [16]uint32
	copy(in[0:8], a.W[:])
	copy(in[8:16], b.W[:])
	out := compress.Block(in)
	return Item{W: out}
}

// FromUint64 builds an Item from a 64-bit value: w[0] is the low 32 bits,
// w[1] the high 32 bits, and w[2..7] are zero.
func FromUint64(n uint64) Item {
	var it Item
	it.W[0] = uint32(n)
	it.W[1] = uint32(n >> 32)
	return it
}

// FromID derives the sector Prefix from the identity strings. The two IDs
// are concatenated, then the result is zero-padded or truncated to exactly
// 32 bytes and read back as eight big-endian 32-bit words. This is the only
// place in the system that uses big-endian word decoding; the stored Item
// bytes everywhere else are little-endian.
func FromID(userID, sectorID string) Item {
	buf := make([]byte, Size)
	copy(buf, userID+sectorID)

	var it Item
	for i := 0; i < 8; i++ {
		it.W[i] = binary.BigEndian.Uint32(buf[i*4 : i*4+4])
	}
	return it
}

// ParentX is the structural parent index: the immediate predecessor. By
// convention ParentX(0) is 0; the prover relies on this for challenge 0.
func ParentX(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	return n - 1
}

// Fold64 reinterprets the eight 32-bit words of source as four little-endian
// 64-bit values, pairing w[2i] (low half) with w[2i+1] (high half), and
// XOR-folds them into one 64-bit value. The pairing must be preserved
// exactly: prover and verifier would otherwise disagree on ancestor indices.
func Fold64(source Item) uint64 {
	var v uint64
	for i := 0; i < 4; i++ {
		pair := uint64(source.W[2*i]) | uint64(source.W[2*i+1])<<32
		v ^= pair
	}
	return v
}

// ParentY is the pseudo-random ancestor index, derived from the item at
// position n-1 (the "source" item): fold64(source) mod n. By convention
// ParentY(_, 0) is 0; the prover and verifier rely on this for challenge 0
// and for cy == 0.
func ParentY(source Item, n uint64) uint64 {
	if n == 0 {
		return 0
	}
	return Fold64(source) % n
}
