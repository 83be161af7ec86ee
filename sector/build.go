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

// ProgressFunc reports build progress. percent is a coarse estimate in
// [0, 100]; desc is a short human-readable description of the current
// step. It may be invoked from whatever goroutine is driving the build.
type ProgressFunc func(percent int, desc string)

// progressEvery throttles progress reporting so it doesn't dominate the
// build for large sectors.
const progressEvery = 1_000_000

// BuildData fills region with D[0..N) following the derivation invariant:
//
//	D[0] = h(Prefix, 0)
//	D[n] = h(Prefix XOR D[x(n)], Item(n) XOR D[y(n)])   for n >= 1
//
// where x(n) = n-1 and y(n) is derived from D[n-1] via item.ParentY. The
// pass is strictly sequential: each step depends on the immediately
// preceding item, so there is no parallelism to exploit without changing
// the derivation rule itself.
func BuildData(region item.Writer, prefix item.Item, progress ProgressFunc) error {
	n := region.Len()
	if n == 0 {
		return nil
	}

	region.Set(0, D0(prefix))

	for i := uint64(1); i < n; i++ {
		s := region.At(i - 1)
		x := item.ParentX(i)
		y := item.ParentY(s, i)
		dn := Derive(prefix, i, region.At(x), region.At(y))
		region.Set(i, dn)

		if progress != nil && i%progressEvery == 0 {
			progress(int(i*100/n), "init data")
		}
	}

	return nil
}
