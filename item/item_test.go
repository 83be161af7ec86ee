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

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestXorSelfIsZero(t *testing.T) {
	a := FromUint64(0xdeadbeef)
	got := Xor(a, a)
	if diff := cmp.Diff(Item{}, got); diff != "" {
		t.Errorf("Xor(a, a) mismatch (-want +got):\n%s", diff)
	}
}

func TestXorCommutative(t *testing.T) {
	a := FromUint64(1)
	b := FromUint64(2)
	if diff := cmp.Diff(Xor(a, b), Xor(b, a)); diff != "" {
		t.Errorf("Xor not commutative (-ab +ba):\n%s", diff)
	}
}

func TestFromUint64Layout(t *testing.T) {
	it := FromUint64(0x0000000200000001)
	want := Item{W: [8]uint32{1, 2, 0, 0, 0, 0, 0, 0}}
	if diff := cmp.Diff(want, it); diff != "" {
		t.Errorf("FromUint64 mismatch (-want +got):\n%s", diff)
	}
}

func TestFromIDPadsAndTruncates(t *testing.T) {
	short := FromID("abcd", "1234")
	// "abcd1234" is 8 bytes; the remaining 24 bytes are zero, so only the
	// first two big-endian words are non-zero.
	if short.W[0] == 0 {
		t.Errorf("expected first word of short id to be non-zero")
	}
	for i := 2; i < 8; i++ {
		if short.W[i] != 0 {
			t.Errorf("expected word %d to be zero-padded, got %#x", i, short.W[i])
		}
	}

	long := FromID("this-user-id-string-is-over-32-bytes-long", "sector")
	if long == (Item{}) {
		t.Errorf("truncated id must not be all zero")
	}
}

func TestFromIDDeterministic(t *testing.T) {
	a := FromID("abcd", "1234")
	b := FromID("abcd", "1234")
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("FromID not deterministic (-a +b):\n%s", diff)
	}
}

func TestParentXConvention(t *testing.T) {
	if got := ParentX(0); got != 0 {
		t.Errorf("ParentX(0) = %d, want 0", got)
	}
	for n := uint64(1); n < 100; n++ {
		if got := ParentX(n); got != n-1 {
			t.Errorf("ParentX(%d) = %d, want %d", n, got, n-1)
		}
	}
}

func TestParentYZeroConvention(t *testing.T) {
	if got := ParentY(FromUint64(123), 0); got != 0 {
		t.Errorf("ParentY(_, 0) = %d, want 0", got)
	}
}

func TestParentYInRange(t *testing.T) {
	src := FromUint64(0xffffffffffffffff)
	for n := uint64(1); n < 1000; n++ {
		y := ParentY(src, n)
		if y >= n {
			t.Fatalf("ParentY(src, %d) = %d, out of range", n, y)
		}
	}
}

func TestFold64PairingOrder(t *testing.T) {
	// w[0] is the low half, w[1] the high half, of the first 64-bit value.
	it := Item{W: [8]uint32{0xaaaaaaaa, 0xbbbbbbbb, 0, 0, 0, 0, 0, 0}}
	want := uint64(0xaaaaaaaa) | uint64(0xbbbbbbbb)<<32
	if got := Fold64(it); got != want {
		t.Errorf("Fold64 = %#x, want %#x", got, want)
	}
}

func TestFold64XorFoldsAllFourPairs(t *testing.T) {
	zero := Fold64(Item{})
	if zero != 0 {
		t.Errorf("Fold64(zero item) = %#x, want 0", zero)
	}

	// Two pairs with the same value XOR to zero, leaving only the others.
	it := Item{W: [8]uint32{1, 0, 1, 0, 2, 0, 0, 0}}
	if got := Fold64(it); got != 2 {
		t.Errorf("Fold64 = %#x, want 2", got)
	}
}
