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
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/proofofspace/sector/item"
)

func leavesOf(n int) item.Slice {
	s := make(item.Slice, n)
	for i := range s {
		s[i] = item.FromUint64(uint64(i)*2 + 1)
	}
	return s
}

// bottomUpRoot is the classical, non-incremental reference implementation:
// recursively fold pairs until one item remains. It's O(count) memory,
// which is fine for the small trees used in tests.
func bottomUpRoot(leaves item.Reader, begin, count uint64) item.Item {
	if count == 1 {
		return leaves.At(begin)
	}
	half := count / 2
	left := bottomUpRoot(leaves, begin, half)
	right := bottomUpRoot(leaves, begin+half, half)
	return item.Compress(left, right)
}

func TestRootMatchesBottomUp(t *testing.T) {
	for _, count := range []uint64{1, 2, 4, 8, 16, 64, 256} {
		leaves := leavesOf(int(count))
		got := Root(leaves, 0, count)
		want := bottomUpRoot(leaves, 0, count)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("count=%d: Root mismatch (-want +got):\n%s", count, diff)
		}
	}
}

func TestRootOfSubrange(t *testing.T) {
	leaves := leavesOf(16)
	got := Root(leaves, 8, 4)
	want := bottomUpRoot(leaves, 8, 4)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Root mismatch (-want +got):\n%s", diff)
	}
}

func TestPathsAuthenticateAgainstRoot(t *testing.T) {
	leaves := leavesOf(32)
	root := Root(leaves, 0, 32)

	positions := []uint64{0, 1, 7, 17, 31}
	paths := Paths(leaves, 0, 32, positions)

	for i, pos := range positions {
		got := fold(leaves.At(pos), pos, paths[i])
		if got != root {
			t.Errorf("position %d: path does not authenticate to root", pos)
		}
		if len(paths[i]) != 5 { // log2(32)
			t.Errorf("position %d: path length = %d, want 5", pos, len(paths[i]))
		}
	}
}

func TestPathsDuplicatePositionsIdentical(t *testing.T) {
	leaves := leavesOf(16)
	paths := Paths(leaves, 0, 16, []uint64{5, 5, 5})
	if diff := cmp.Diff(paths[0], paths[1]); diff != "" {
		t.Errorf("duplicate positions produced different paths (-a +b):\n%s", diff)
	}
	if diff := cmp.Diff(paths[0], paths[2]); diff != "" {
		t.Errorf("duplicate positions produced different paths (-a +c):\n%s", diff)
	}
}

func TestAuthenticateTwoLevel(t *testing.T) {
	const blockSize = 4
	const numBlocks = 8 // 32 data items total
	data := leavesOf(blockSize * numBlocks)

	meta := make(item.Slice, numBlocks+1)
	for b := 0; b < numBlocks; b++ {
		meta[b] = Root(data, uint64(b*blockSize), blockSize)
	}
	meta[numBlocks] = Root(meta[:numBlocks], 0, numBlocks)

	leaves := []uint64{0, 1, 4, 31, 31}
	paths, err := Authenticate(data, meta, blockSize, uint64(numBlocks+1), leaves)
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}

	for i, leaf := range leaves {
		got := fold(data.At(leaf), leaf, paths[i])
		if got != meta[numBlocks] {
			t.Errorf("leaf %d: path does not authenticate to top root", leaf)
		}
	}

	if diff := cmp.Diff(paths[3], paths[4]); diff != "" {
		t.Errorf("duplicate leaf 31 produced different paths (-a +b):\n%s", diff)
	}
}

func TestAuthenticateDetectsCorruption(t *testing.T) {
	const blockSize = 4
	const numBlocks = 4
	data := leavesOf(blockSize * numBlocks)

	meta := make(item.Slice, numBlocks+1)
	for b := 0; b < numBlocks; b++ {
		meta[b] = Root(data, uint64(b*blockSize), blockSize)
	}
	meta[numBlocks] = Root(meta[:numBlocks], 0, numBlocks)

	// Corrupt a stored block root.
	meta[1] = item.FromUint64(0xbad)

	_, err := Authenticate(data, meta, blockSize, uint64(numBlocks+1), []uint64{5})
	if err == nil {
		t.Fatalf("expected an error when a block root has been tampered with")
	}
	var mismatch RootMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected a RootMismatchError, got %T: %v", err, err)
	}
	if mismatch.Index != 1 {
		t.Errorf("RootMismatchError.Index = %d, want 1", mismatch.Index)
	}
	if mismatch.Expected != meta[1] {
		t.Errorf("RootMismatchError.Expected = %+v, want the corrupted stored root %+v", mismatch.Expected, meta[1])
	}
}

// fold authenticates leaf against a path bottom-up: at each level, if pos
// is even the accumulator is the left child, odd the right child.
func fold(leaf item.Item, pos uint64, path []item.Item) item.Item {
	acc := leaf
	for _, sibling := range path {
		if pos%2 == 0 {
			acc = item.Compress(acc, sibling)
		} else {
			acc = item.Compress(sibling, acc)
		}
		pos /= 2
	}
	return acc
}

func FuzzRootAndPathsAgree(f *testing.F) {
	f.Add(uint8(3), uint64(0)) // log2(count)=3 -> count=8, leaf 0
	f.Add(uint8(6), uint64(40))
	f.Fuzz(func(t *testing.T, logCount uint8, seed uint64) {
		logCount %= 10 // cap at 512 leaves to keep fuzzing fast
		count := uint64(1) << logCount
		leaves := leavesOf(int(count))
		pos := seed % count

		root := Root(leaves, 0, count)
		paths := Paths(leaves, 0, count, []uint64{pos})
		if got := fold(leaves.At(pos), pos, paths[0]); got != root {
			t.Fatalf("count=%d pos=%d: path does not authenticate", count, pos)
		}
		if len(paths[0]) != int(logCount) {
			t.Fatalf("count=%d pos=%d: path length %d, want %d", count, pos, len(paths[0]), logCount)
		}
	})
}
