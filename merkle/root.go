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

// Package merkle computes roots and batched authentication paths over a
// perfect binary Merkle tree, using only O(log count) working memory
// regardless of how large the leaf range is. Unlike an append-only log
// tree, the trees here are always a power of two in size (block_size and
// meta_count-1 both are, by construction — see sector.Params), so the walk
// never needs to synthesize an "ephemeral" node for a partially-filled
// subtree.
package merkle

import "github.com/proofofspace/sector/item"

// frame is one entry of the explicit stack used by Root and Paths: an
// item paired with its height in the tree (0 for a leaf).
type frame struct {
	it     item.Item
	height int
}

// Root computes the Merkle root of count leaves starting at begin in
// leaves, using a stack of (item, height) pairs: whenever the top two
// frames share a height they fold into one frame at height+1, otherwise
// the next leaf is pushed. count must be a power of two.
//
// This must produce the same result as the classical bottom-up
// construction on the same inputs; see TestRootMatchesBottomUp.
func Root(leaves item.Reader, begin, count uint64) item.Item {
	if count == 0 {
		panic("merkle: Root called with count == 0")
	}

	stack := make([]frame, 0, 64)
	var offset uint64

	for {
		if n := len(stack); n >= 2 && stack[n-1].height == stack[n-2].height {
			merged := item.Compress(stack[n-2].it, stack[n-1].it)
			stack[n-2] = frame{it: merged, height: stack[n-2].height + 1}
			stack = stack[:n-1]
			continue
		}

		if offset == count {
			break
		}

		stack = append(stack, frame{it: leaves.At(begin + offset), height: 0})
		offset++
	}

	if len(stack) != 1 {
		panic("merkle: Root left more than one frame on the stack — count was not a power of two")
	}
	if uint64(1)<<uint(stack[0].height) != count {
		panic("merkle: Root stack height does not match log2(count)")
	}

	return stack[0].it
}
