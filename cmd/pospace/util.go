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

package main

import (
	"bytes"
	"math/bits"

	"github.com/proofofspace/sector/item"
)

// rootBytes renders an Item as its little-endian wire bytes, for hex
// printing at the CLI boundary.
func rootBytes(it item.Item) []byte {
	var buf bytes.Buffer
	writeItem(&buf, it)
	return buf.Bytes()
}

// mklPathLen returns log2(n) for a power-of-two n, the fixed Merkle
// authentication path length for a sector with that many data items.
func mklPathLen(n uint64) uint64 {
	return uint64(bits.Len64(n) - 1)
}
