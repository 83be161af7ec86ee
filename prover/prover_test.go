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

package prover

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/proofofspace/sector/item"
	"github.com/proofofspace/sector/sectorproof"
	"github.com/proofofspace/sector/verifier"
)

// testDataSize is small enough to build instantly in-process: N=32,
// B=4, M=9 — the same shape exercised by merkle's two-level test.
const testDataSize = 32 * 32

func newTestProver(t *testing.T) *Prover {
	t.Helper()
	dir := t.TempDir()
	p, err := New("alice", "sector-1", testDataSize, dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !p.Create(nil) {
		t.Fatalf("Create: returned false")
	}
	t.Cleanup(func() { p.Close() })
	return p
}

func TestCreateGenerateVerifyRoundTrip(t *testing.T) {
	p := newTestProver(t)

	challenges := []uint64{0, 1, 5, 31, 31, 17}
	proofs := p.GenerateProofs(challenges)
	if len(proofs) != len(challenges) {
		t.Fatalf("GenerateProofs: got %d proofs, want %d", len(proofs), len(challenges))
	}

	v, err := verifier.New("alice", "sector-1", testDataSize, p.MklRoot())
	if err != nil {
		t.Fatalf("verifier.New: %v", err)
	}
	if !v.VerifyProofs(challenges, proofs) {
		t.Fatalf("VerifyProofs: want true")
	}

	packed := p.PackProofs(proofs)
	if !v.VerifyPackedProofs(challenges, packed) {
		t.Fatalf("VerifyPackedProofs: want true")
	}

	unpacked := sectorproof.Unpack(packed, 5) // log2(32)
	if diff := cmp.Diff(proofs, unpacked); diff != "" {
		t.Errorf("round-tripped proofs differ (-want +got):\n%s", diff)
	}
}

func TestChallengeZeroIsD0(t *testing.T) {
	p := newTestProver(t)
	proofs := p.GenerateProofs([]uint64{0})
	if proofs[0].NodeC != p.D0() {
		t.Errorf("challenge 0: node_c != D0")
	}
	if len(proofs[0].MklPathC) != 5 {
		t.Errorf("challenge 0: path length = %d, want 5", len(proofs[0].MklPathC))
	}
}

func TestOddChallengeNodeCxMatchesPathHead(t *testing.T) {
	p := newTestProver(t)
	proofs := p.GenerateProofs([]uint64{17}) // odd
	if proofs[0].NodeCX != proofs[0].MklPathC[0] {
		t.Errorf("odd challenge: node_cx != mkl_path_c[0]")
	}
}

func TestChallengeReductionModN(t *testing.T) {
	p := newTestProver(t)
	v, err := verifier.New("alice", "sector-1", testDataSize, p.MklRoot())
	if err != nil {
		t.Fatalf("verifier.New: %v", err)
	}

	// N + 5 must behave identically to challenge 5.
	big := uint64(32 + 5)
	proofs := p.GenerateProofs([]uint64{big})
	if !v.VerifyProof(big, proofs[0]) {
		t.Errorf("VerifyProof(N+5): want true")
	}
	if !v.VerifyProof(5, proofs[0]) {
		t.Errorf("a proof for N+5 must also verify for the reduced challenge 5")
	}
}

func TestMutatedProofFailsVerification(t *testing.T) {
	p := newTestProver(t)
	v, err := verifier.New("alice", "sector-1", testDataSize, p.MklRoot())
	if err != nil {
		t.Fatalf("verifier.New: %v", err)
	}

	proofs := p.GenerateProofs([]uint64{9})
	mutated := proofs[0]
	mutated.NodeC = item.FromUint64(^uint64(0))
	if v.VerifyProof(9, mutated) {
		t.Errorf("mutated node_c: want verification to fail")
	}

	mutated = proofs[0]
	mutated.MklPathC = append([]item.Item{}, mutated.MklPathC...)
	mutated.MklPathC[0] = item.FromUint64(^uint64(0))
	if v.VerifyProof(9, mutated) {
		t.Errorf("mutated path sibling: want verification to fail")
	}
}

func TestVerifyAgainstWrongRootFails(t *testing.T) {
	p := newTestProver(t)
	wrongRoot := item.FromUint64(12345)
	v, err := verifier.New("alice", "sector-1", testDataSize, wrongRoot)
	if err != nil {
		t.Fatalf("verifier.New: %v", err)
	}
	proofs := p.GenerateProofs([]uint64{3})
	if v.VerifyProof(3, proofs[0]) {
		t.Errorf("proof against wrong root: want false")
	}
}

func TestFullIntegrityCheckOnFreshSector(t *testing.T) {
	dir := t.TempDir()
	p, err := New("bob", "sector-2", testDataSize, dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !p.Create(nil) {
		t.Fatalf("Create: returned false")
	}
	p.Close()

	reopened, err := New("bob", "sector-2", testDataSize, dir)
	if err != nil {
		t.Fatalf("New (reopen): %v", err)
	}
	if !reopened.Open(FullIntegrityCheck) {
		t.Fatalf("Open(FullIntegrityCheck): want true on an untouched sector")
	}
	reopened.Close()
}

func TestFastIntegrityCheckOnFreshSector(t *testing.T) {
	dir := t.TempDir()
	p, err := New("carol", "sector-3", testDataSize, dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !p.Create(nil) {
		t.Fatalf("Create: returned false")
	}
	p.Close()

	reopened, err := New("carol", "sector-3", testDataSize, dir)
	if err != nil {
		t.Fatalf("New (reopen): %v", err)
	}
	if !reopened.Open(FastIntegrityCheck) {
		t.Fatalf("Open(FastIntegrityCheck): want true on an untouched sector")
	}
	reopened.Close()
}

func TestGenerateProofsPanicsWithoutOpen(t *testing.T) {
	dir := t.TempDir()
	p, err := New("dave", "sector-4", testDataSize, dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer func() {
		if recover() == nil {
			t.Errorf("GenerateProofs before Open/Create: want panic")
		}
	}()
	p.GenerateProofs([]uint64{0})
}

func TestGenerateProofsPanicsOnEmptyChallenges(t *testing.T) {
	p := newTestProver(t)
	defer func() {
		if recover() == nil {
			t.Errorf("GenerateProofs with no challenges: want panic")
		}
	}()
	p.GenerateProofs(nil)
}

func TestNewRejectsBadDataSize(t *testing.T) {
	dir := t.TempDir()
	if _, err := New("erin", "sector-5", 100, dir); err == nil {
		t.Errorf("New: want error for non-power-of-two data_size")
	}
}

func TestNewRejectsMissingPath(t *testing.T) {
	if _, err := New("erin", "sector-6", testDataSize, "/nonexistent/path/does/not/exist"); err == nil {
		t.Errorf("New: want error for missing path")
	}
}
