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

// Package sectorproof defines the SectorProof wire bundle shared by the
// prover and the verifier, and its packed (gzip) wire encoding. Keeping
// the type and its codec in one place guarantees the two sides agree
// bit-for-bit on layout.
package sectorproof

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"

	"github.com/proofofspace/sector/item"
)

// SectorProof is the witness for a single challenge c: the five opened
// items (node_c and its two pairs of ancestors) plus the Merkle
// authentication path for node_c.
type SectorProof struct {
	NodeC    item.Item
	NodeCX   item.Item
	NodeCY   item.Item
	NodeCYX  item.Item
	NodeCYY  item.Item
	MklPathC []item.Item
}

// fixedItems is the number of fixed (non-path) items carried by every
// SectorProof.
const fixedItems = 5

// Pack concatenates the raw little-endian item bytes of every proof — the
// five fixed items followed by the Merkle path — and gzip-compresses the
// result. There is no framing; the decoder infers the proof count from the
// decompressed length and the expected path length.
func Pack(proofs []SectorProof) []byte {
	var raw bytes.Buffer
	for _, p := range proofs {
		writeItem(&raw, p.NodeC)
		writeItem(&raw, p.NodeCX)
		writeItem(&raw, p.NodeCY)
		writeItem(&raw, p.NodeCYX)
		writeItem(&raw, p.NodeCYY)
		for _, it := range p.MklPathC {
			writeItem(&raw, it)
		}
	}

	var out bytes.Buffer
	gw := gzip.NewWriter(&out)
	gw.Write(raw.Bytes())
	gw.Close()
	return out.Bytes()
}

// Unpack gzip-decompresses packed and splits it into SectorProof values,
// each carrying a path of exactly mklPathLen items. It enforces a hard
// inflation limit of min(10*len(packed), 1_000_000) bytes to resist
// decompression bombs. If the decompressed length is not a positive
// multiple of the per-proof size, Unpack returns nil (treated as failure
// by the caller, never a panic).
func Unpack(packed []byte, mklPathLen uint64) []SectorProof {
	limit := len(packed) * 10
	if limit > 1_000_000 || limit <= 0 {
		limit = 1_000_000
	}

	gr, err := gzip.NewReader(bytes.NewReader(packed))
	if err != nil {
		return nil
	}
	defer gr.Close()

	raw, err := io.ReadAll(io.LimitReader(gr, int64(limit)+1))
	if err != nil {
		return nil
	}
	if len(raw) > limit {
		return nil
	}

	proofLen := item.Size * (int(mklPathLen) + fixedItems)
	if proofLen == 0 || len(raw) == 0 || len(raw)%proofLen != 0 {
		return nil
	}

	count := len(raw) / proofLen
	proofs := make([]SectorProof, count)
	r := bytes.NewReader(raw)
	for i := range proofs {
		proofs[i].NodeC = readItem(r)
		proofs[i].NodeCX = readItem(r)
		proofs[i].NodeCY = readItem(r)
		proofs[i].NodeCYX = readItem(r)
		proofs[i].NodeCYY = readItem(r)
		proofs[i].MklPathC = make([]item.Item, mklPathLen)
		for j := range proofs[i].MklPathC {
			proofs[i].MklPathC[j] = readItem(r)
		}
	}
	return proofs
}

func writeItem(w io.Writer, it item.Item) {
	var buf [item.Size]byte
	for i, word := range it.W {
		binary.LittleEndian.PutUint32(buf[i*4:i*4+4], word)
	}
	w.Write(buf[:])
}

func readItem(r io.Reader) item.Item {
	var buf [item.Size]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		panic(fmt.Sprintf("sectorproof: short read: %v", err))
	}
	var it item.Item
	for i := range it.W {
		it.W[i] = binary.LittleEndian.Uint32(buf[i*4 : i*4+4])
	}
	return it
}
