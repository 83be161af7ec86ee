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

package merkle

import (
	"fmt"

	"github.com/proofofspace/sector/item"
)

// RootMismatchError is returned by Authenticate when a recomputed root
// does not match the value stored in the meta region at construction
// time — a sign the sector is corrupt, not a proof-construction bug.
type RootMismatchError struct {
	Index    uint64 // the meta index the mismatch was found at.
	Computed item.Item
	Expected item.Item
}

// Error returns the error string for RootMismatchError.
func (e RootMismatchError) Error() string {
	return fmt.Sprintf("merkle: root at meta index %d mismatched: computed %08x, expected %08x", e.Index, e.Computed.W, e.Expected.W)
}

// group collects the leaves (by their position in the caller's leaves
// slice) that fall in one block of the data region.
type group struct {
	indices   []int
	positions []uint64
}

// Authenticate builds the full two-level authentication path for each of
// leaves, against a data region partitioned into blocks of blockSize
// items whose roots are stored in meta[0..metaCount-1), with
// meta[metaCount-1] the root of the perfect tree over those block roots.
//
// The lower segment of each path comes from a single batched pass per
// distinct block (leaves sharing a block share that pass); the upper
// segment comes from one batched pass over the block roots. Every
// intermediate root is checked against the stored value in meta, and a
// mismatch is reported as an error — it indicates the sector is corrupt,
// not a proof-construction bug.
func Authenticate(data, meta item.Reader, blockSize, metaCount uint64, leaves []uint64) ([][]item.Item, error) {
	n := len(leaves)
	lower := make([][]item.Item, n)

	blocks := make(map[uint64]*group)
	for idx, leaf := range leaves {
		b := leaf / blockSize
		g := blocks[b]
		if g == nil {
			g = &group{}
			blocks[b] = g
		}
		g.indices = append(g.indices, idx)
		g.positions = append(g.positions, leaf%blockSize)
	}

	for block, g := range blocks {
		begin := block * blockSize
		root := Root(data, begin, blockSize)
		if want := meta.At(block); root != want {
			return nil, RootMismatchError{Index: block, Computed: root, Expected: want}
		}

		paths := Paths(data, begin, blockSize, g.positions)
		for i, idx := range g.indices {
			lower[idx] = paths[i]
		}
	}

	topCount := metaCount - 1
	topRoot := Root(meta, 0, topCount)
	if want := meta.At(metaCount - 1); topRoot != want {
		return nil, RootMismatchError{Index: metaCount - 1, Computed: topRoot, Expected: want}
	}

	upperPositions := make([]uint64, n)
	for i, leaf := range leaves {
		upperPositions[i] = leaf / blockSize
	}
	upper := Paths(meta, 0, topCount, upperPositions)

	full := make([][]item.Item, n)
	for i := range leaves {
		path := make([]item.Item, 0, len(lower[i])+len(upper[i]))
		path = append(path, lower[i]...)
		path = append(path, upper[i]...)
		full[i] = path
	}
	return full, nil
}
