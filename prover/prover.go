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

// Package prover opens or creates a sector and answers challenges against
// it with SectorProof bundles.
package prover

import (
	"fmt"
	"math/bits"
	"math/rand"
	"os"
	"path/filepath"
	"syscall"

	"github.com/proofofspace/sector/item"
	"github.com/proofofspace/sector/merkle"
	"github.com/proofofspace/sector/sector"
	"github.com/proofofspace/sector/sectorio"
	"github.com/proofofspace/sector/sectorproof"
)

// OpenFlag selects which integrity pass, if any, Open runs after mapping
// the two regions.
type OpenFlag int

const (
	NoneIntegrityCheck OpenFlag = iota
	FullIntegrityCheck
	FastIntegrityCheck
)

// slackBytes is the extra free space required beyond data_size+meta_size
// before Create will proceed.
const slackBytes = 1 << 20 // 1 MiB

// Prover owns an opened sector's two regions for the lifetime of a
// session. A Prover is not safe for concurrent Create/Open calls against
// the same (path, sectorID); the session model is single-threaded.
type Prover struct {
	userID   string
	sectorID string
	params   sector.Params
	path     string

	dataPathname string
	metaPathname string

	prefix item.Item
	d0     item.Item

	data *sectorio.Region
	meta *sectorio.Region
}

// New validates the sector parameters and target directory and returns an
// unopened Prover. It returns an error for any of the programmer-facing
// construction failures in spec §7 (non-power-of-two size, meta_count < 2,
// missing or non-directory path).
func New(userID, sectorID string, dataSize uint64, path string) (*Prover, error) {
	params, err := sector.NewParams(dataSize)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, fmt.Errorf("prover: empty path")
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("prover: path does not exist: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("prover: path is not a directory")
	}

	prefix := item.FromID(userID, sectorID)
	return &Prover{
		userID:       userID,
		sectorID:     sectorID,
		params:       params,
		path:         path,
		dataPathname: filepath.Join(path, sectorID+".dat"),
		metaPathname: filepath.Join(path, sectorID+".mta"),
		prefix:       prefix,
		d0:           sector.D0(prefix),
	}, nil
}

// isOpened reports whether both regions are currently mapped.
func (p *Prover) isOpened() bool {
	return p.data != nil && p.meta != nil
}

// Prefix returns the sector's identity-derived Prefix item.
func (p *Prover) Prefix() item.Item { return p.prefix }

// D0 returns the canonical Item for position 0.
func (p *Prover) D0() item.Item { return p.d0 }

// MklRoot returns the top Merkle root. Panics if the prover is not opened.
func (p *Prover) MklRoot() item.Item {
	if !p.isOpened() {
		panic("prover: MklRoot called before Open/Create")
	}
	return p.meta.At(p.params.M - 1)
}

// Create builds a fresh sector: the data region via sector.BuildData, then
// the meta region's block roots and top root, leaving both regions mapped
// read-only. It refuses if the prover is already opened, and if free disk
// space is insufficient. Any failure removes both files and returns false.
func (p *Prover) Create(progress sector.ProgressFunc) bool {
	if p.isOpened() {
		return false
	}

	free, err := freeSpace(p.path)
	if err != nil {
		return false
	}
	want := p.params.DataSize + p.params.MetaSize + slackBytes
	if free < want {
		return false
	}

	ok := false
	defer func() {
		if !ok {
			os.Remove(p.dataPathname)
			os.Remove(p.metaPathname)
		}
	}()

	w, err := sectorio.Create(p.dataPathname, p.params.N)
	if err != nil {
		return false
	}
	if err := sector.BuildData(w, p.prefix, progress); err != nil {
		w.Close()
		return false
	}
	if err := w.Flush(); err != nil {
		w.Close()
		return false
	}
	w.Close()

	data, err := sectorio.Open(p.dataPathname, p.params.N)
	if err != nil {
		return false
	}

	metaW, err := sectorio.Create(p.metaPathname, p.params.M)
	if err != nil {
		data.Close()
		return false
	}
	numBlocks := p.params.N / p.params.B
	for i := uint64(0); i < numBlocks; i++ {
		metaW.Set(i, merkle.Root(data, i*p.params.B, p.params.B))
		if progress != nil && i%1000 == 0 {
			progress(int(i*100/numBlocks), "calculate block root")
		}
	}
	metaW.Set(p.params.M-1, merkle.Root(metaW, 0, numBlocks))
	if err := metaW.Flush(); err != nil {
		metaW.Close()
		data.Close()
		return false
	}
	metaW.Close()

	meta, err := sectorio.Open(p.metaPathname, p.params.M)
	if err != nil {
		data.Close()
		return false
	}

	p.data = data
	p.meta = meta
	ok = true
	return true
}

// Open maps both existing regions read-only and validates their sizes. If
// flag requests an integrity pass, it is run before Open returns.
func (p *Prover) Open(flag OpenFlag) bool {
	if p.isOpened() {
		return false
	}

	data, err := sectorio.Open(p.dataPathname, p.params.N)
	if err != nil {
		return false
	}
	meta, err := sectorio.Open(p.metaPathname, p.params.M)
	if err != nil {
		data.Close()
		return false
	}

	p.data = data
	p.meta = meta

	switch flag {
	case FullIntegrityCheck:
		return p.fullCheckIntegrity()
	case FastIntegrityCheck:
		return p.fastCheckIntegrity()
	default:
		return true
	}
}

func (p *Prover) fullCheckIntegrity() bool {
	numBlocks := p.params.N / p.params.B
	for i := uint64(0); i < numBlocks; i++ {
		got := merkle.Root(p.data, i*p.params.B, p.params.B)
		if got != p.meta.At(i) {
			return false
		}
	}
	top := merkle.Root(p.meta, 0, numBlocks)
	return top == p.meta.At(p.params.M-1)
}

func (p *Prover) fastCheckIntegrity() bool {
	c := []uint64{0, p.params.N - 1}
	for i := 0; i < 8; i++ {
		c = append(c, rand.Uint64())
	}

	proofs := p.GenerateProofs(c)
	if len(proofs) != len(c) {
		return false
	}

	v, err := newSelfVerifier(p.userID, p.sectorID, p.params.DataSize, p.MklRoot())
	if err != nil {
		return false
	}
	return v.VerifyProofs(c, proofs)
}

// mklPathLen returns log2(N), the fixed length of every Merkle
// authentication path in this sector.
func (p *Prover) mklPathLen() int {
	return bits.Len64(p.params.N) - 1
}

// GenerateProofs answers each challenge with a SectorProof, in
// input-challenge order. Panics if challenges is empty or the prover has
// not been opened — both are programmer errors, not environmental ones.
func (p *Prover) GenerateProofs(challenges []uint64) []sectorproof.SectorProof {
	if len(challenges) == 0 {
		panic("prover: GenerateProofs called with no challenges")
	}
	if !p.isOpened() {
		panic("prover: GenerateProofs called before Open/Create")
	}

	proofs := make([]sectorproof.SectorProof, len(challenges))
	leaves := make([]uint64, len(challenges))

	for i, raw := range challenges {
		c := raw % p.params.N
		leaves[i] = c

		nodeC := p.data.At(c)
		var src item.Item
		if c > 0 {
			src = p.data.At(c - 1)
		} else {
			src = p.data.At(0)
		}
		cx := item.ParentX(c)
		cy := item.ParentY(src, c)
		nodeCX := p.data.At(cx)
		nodeCY := p.data.At(cy)

		var src2 item.Item
		if cy > 0 {
			src2 = p.data.At(cy - 1)
		} else {
			src2 = p.data.At(0)
		}
		yx := item.ParentX(cy)
		yy := item.ParentY(src2, cy)
		nodeCYX := p.data.At(yx)
		nodeCYY := p.data.At(yy)

		proofs[i] = sectorproof.SectorProof{
			NodeC:   nodeC,
			NodeCX:  nodeCX,
			NodeCY:  nodeCY,
			NodeCYX: nodeCYX,
			NodeCYY: nodeCYY,
		}
	}

	paths, err := merkle.Authenticate(p.data, p.meta, p.params.B, p.params.M, leaves)
	if err != nil {
		panic(fmt.Sprintf("prover: %v", err))
	}

	want := p.mklPathLen()
	for i := range proofs {
		if len(paths[i]) != want {
			panic(fmt.Sprintf("prover: authentication path length %d, want %d", len(paths[i]), want))
		}
		proofs[i].MklPathC = paths[i]
	}

	return proofs
}

// PackProofs gzip-packs proofs into the wire format described in
// SPEC_FULL.md §1 (sectorproof).
func (p *Prover) PackProofs(proofs []sectorproof.SectorProof) []byte {
	return sectorproof.Pack(proofs)
}

// Close unmaps both regions. Safe to call on a Prover that was never
// opened; idempotent.
func (p *Prover) Close() error {
	if !p.isOpened() {
		return nil
	}
	errData := p.data.Close()
	errMeta := p.meta.Close()
	p.data = nil
	p.meta = nil
	if errData != nil {
		return errData
	}
	return errMeta
}

func freeSpace(path string) (uint64, error) {
	var stat syscall.Statfs_t
	if err := syscall.Statfs(path, &stat); err != nil {
		return 0, err
	}
	return stat.Bavail * uint64(stat.Bsize), nil
}
