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

package sector

import "github.com/proofofspace/sector/item"

// Derive computes D[n] = h(Prefix XOR dx, Item(n) XOR dy). Both the builder
// (C2) and the verifier (C5) call this single implementation so that the
// two sides can never disagree about the derivation rule.
func Derive(prefix item.Item, n uint64, dx, dy item.Item) item.Item {
	left := item.Xor(prefix, dx)
	right := item.Xor(item.FromUint64(n), dy)
	return item.Compress(left, right)
}

// D0 returns the canonical Item for position 0, where both parents are
// conventionally the zero Item.
func D0(prefix item.Item) item.Item {
	var zero item.Item
	return Derive(prefix, 0, zero, zero)
}
