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

import "github.com/proofofspace/sector/item"

// pathFrame is a stack entry for the batched path walk: in addition to the
// folded item and its height, it tracks which of the requested positions
// fall under this frame's subtree.
type pathFrame struct {
	it       item.Item
	height   int
	contains []bool
}

// Paths extracts the authentication path for every position in positions
// against the Merkle tree over count leaves starting at begin, in a single
// pass over the leaves. Each returned path has exactly log2(count) entries,
// built bottom-up. Duplicate positions are supported: every occurrence is
// tracked separately during the walk and gets its own, identical path;
// duplicates are not merged before the walk.
func Paths(leaves item.Reader, begin, count uint64, positions []uint64) [][]item.Item {
	for _, p := range positions {
		if p >= count {
			panic("merkle: Paths position out of range")
		}
	}

	paths := make([][]item.Item, len(positions))
	stack := make([]pathFrame, 0, 64)
	var offset uint64

	for {
		if n := len(stack); n >= 2 && stack[n-1].height == stack[n-2].height {
			left := &stack[n-2]
			right := &stack[n-1]

			contains := make([]bool, len(positions))
			for i := range positions {
				switch {
				case right.contains[i]:
					paths[i] = append(paths[i], left.it)
					contains[i] = true
				case left.contains[i]:
					paths[i] = append(paths[i], right.it)
					contains[i] = true
				}
			}

			left.it = item.Compress(left.it, right.it)
			left.height++
			left.contains = contains
			stack = stack[:n-1]
			continue
		}

		if offset == count {
			break
		}

		contains := make([]bool, len(positions))
		for i, p := range positions {
			contains[i] = p == offset
		}
		stack = append(stack, pathFrame{it: leaves.At(begin + offset), height: 0, contains: contains})
		offset++
	}

	if len(stack) != 1 {
		panic("merkle: Paths left more than one frame on the stack — count was not a power of two")
	}

	return paths
}
