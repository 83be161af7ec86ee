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

package item

// Reader is a fixed-length, random-access view over a sequence of Items —
// typically a memory-mapped region, but a plain in-memory slice satisfies it
// too (see Slice).
type Reader interface {
	At(i uint64) Item
	Len() uint64
}

// Writer extends Reader with in-place mutation. The sector builder requires
// only this much of the backing provider: a sized, randomly-addressable
// region it can both read and write.
type Writer interface {
	Reader
	Set(i uint64, v Item)
}

// Slice is an in-memory Reader/Writer, useful for tests and for small trees
// (e.g. the meta-root pass over block roots) that comfortably fit in RAM.
type Slice []Item

func (s Slice) At(i uint64) Item     { return s[i] }
func (s Slice) Len() uint64          { return uint64(len(s)) }
func (s Slice) Set(i uint64, v Item) { s[i] = v }
