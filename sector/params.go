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

// Package sector builds the sector's data region: the chained,
// graph-labeled derivation D[0..N) that every other component is built on
// top of.
package sector

import (
	"fmt"
	"math/bits"

	"github.com/proofofspace/sector/item"
)

// Params holds the sizes derived from a sector's data_size, per §3 of the
// sector layout: N data items, a block size B close to √N, and a meta
// region of M = N/B + 1 items (block roots plus the top root).
type Params struct {
	DataSize  uint64
	ItemSize  uint64
	N         uint64 // data_count
	B         uint64 // block_size
	M         uint64 // meta_count
	MetaSize  uint64
}

// NewParams validates data_size and derives the rest of the sector
// parameters. data_size must be a power of two, and the resulting meta
// count must be at least 2.
func NewParams(dataSize uint64) (Params, error) {
	if dataSize == 0 || dataSize&(dataSize-1) != 0 {
		return Params{}, fmt.Errorf("sector: data_size %d is not a power of two", dataSize)
	}

	const itemSize = uint64(item.Size)
	n := dataSize / itemSize
	if n < itemSize {
		// Sectors with fewer than 32 items (data_size below 1024 bytes)
		// are rejected. B = 2^floor(log2(n)/2) divides n for every power
		// of two, so this bound is the smallest data_size accepted.
		return Params{}, fmt.Errorf("sector: data_size %d too small", dataSize)
	}

	b := uint64(1) << (uint(bits.Len64(n)-1) / 2)
	m := n/b + 1
	if m < 2 {
		return Params{}, fmt.Errorf("sector: meta_count %d < 2", m)
	}

	return Params{
		DataSize: dataSize,
		ItemSize: itemSize,
		N:        n,
		B:        b,
		M:        m,
		MetaSize: m * itemSize,
	}, nil
}
