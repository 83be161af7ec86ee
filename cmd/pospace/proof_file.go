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
	"encoding/binary"
	"fmt"
	"io"

	"github.com/proofofspace/sector/item"
	"github.com/proofofspace/sector/sectorproof"
)

// proofFileHeaderSize is the fixed prefix before the repeated proof
// entries: the padded (user_id, sector_id) identity, then the root.
const proofFileHeaderSize = item.Size * 2

// padIdentity zero-pads or truncates the concatenated identity strings to
// exactly item.Size bytes, matching item.FromID's own padding rule.
func padIdentity(userID, sectorID string) [item.Size]byte {
	var buf [item.Size]byte
	copy(buf[:], userID+sectorID)
	return buf
}

// writeProofFile emits the driver-level proof-file layout: padded
// identity, root, then one [challenge | 5 fixed items | path] record per
// proof, in input order. This framing exists only at the driver layer —
// the core's packed wire format (sectorproof.Pack) carries no challenge
// numbers or header at all.
func writeProofFile(w io.Writer, userID, sectorID string, root item.Item, challenges []uint64, proofs []sectorproof.SectorProof) error {
	if len(challenges) != len(proofs) {
		return fmt.Errorf("pospace: %d challenges but %d proofs", len(challenges), len(proofs))
	}

	pad := padIdentity(userID, sectorID)
	if _, err := w.Write(pad[:]); err != nil {
		return err
	}
	if err := writeItem(w, root); err != nil {
		return err
	}

	for i, proof := range proofs {
		var challengeBuf [8]byte
		binary.LittleEndian.PutUint64(challengeBuf[:], challenges[i])
		if _, err := w.Write(challengeBuf[:]); err != nil {
			return err
		}
		for _, it := range []item.Item{proof.NodeC, proof.NodeCX, proof.NodeCY, proof.NodeCYX, proof.NodeCYY} {
			if err := writeItem(w, it); err != nil {
				return err
			}
		}
		for _, it := range proof.MklPathC {
			if err := writeItem(w, it); err != nil {
				return err
			}
		}
	}
	return nil
}

// proofFile is the parsed result of readProofFile.
type proofFile struct {
	identity   [item.Size]byte
	root       item.Item
	challenges []uint64
	proofs     []sectorproof.SectorProof
}

// readProofFile parses the layout written by writeProofFile. mklPathLen
// must be supplied by the caller (derived from the sector's known
// data_size), since the file carries no path-length framing of its own.
func readProofFile(r io.Reader, mklPathLen uint64) (proofFile, error) {
	var pf proofFile

	var pad [item.Size]byte
	if _, err := io.ReadFull(r, pad[:]); err != nil {
		return pf, fmt.Errorf("pospace: reading identity header: %w", err)
	}
	pf.identity = pad

	root, err := readItem(r)
	if err != nil {
		return pf, fmt.Errorf("pospace: reading root: %w", err)
	}
	pf.root = root

	for {
		var challengeBuf [8]byte
		_, err := io.ReadFull(r, challengeBuf[:])
		if err == io.EOF {
			break
		}
		if err != nil {
			return pf, fmt.Errorf("pospace: reading challenge: %w", err)
		}
		challenge := binary.LittleEndian.Uint64(challengeBuf[:])

		var proof sectorproof.SectorProof
		fixed := make([]item.Item, 5)
		for i := range fixed {
			fixed[i], err = readItem(r)
			if err != nil {
				return pf, fmt.Errorf("pospace: reading proof %d fixed items: %w", len(pf.proofs), err)
			}
		}
		proof.NodeC, proof.NodeCX, proof.NodeCY, proof.NodeCYX, proof.NodeCYY = fixed[0], fixed[1], fixed[2], fixed[3], fixed[4]

		proof.MklPathC = make([]item.Item, mklPathLen)
		for i := range proof.MklPathC {
			proof.MklPathC[i], err = readItem(r)
			if err != nil {
				return pf, fmt.Errorf("pospace: reading proof %d path: %w", len(pf.proofs), err)
			}
		}

		pf.challenges = append(pf.challenges, challenge)
		pf.proofs = append(pf.proofs, proof)
	}

	return pf, nil
}

func writeItem(w io.Writer, it item.Item) error {
	var buf [item.Size]byte
	for i, word := range it.W {
		binary.LittleEndian.PutUint32(buf[i*4:i*4+4], word)
	}
	_, err := w.Write(buf[:])
	return err
}

func readItem(r io.Reader) (item.Item, error) {
	var buf [item.Size]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return item.Item{}, err
	}
	var it item.Item
	for i := range it.W {
		it.W[i] = binary.LittleEndian.Uint32(buf[i*4 : i*4+4])
	}
	return it, nil
}
