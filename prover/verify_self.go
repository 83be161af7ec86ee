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
	"github.com/proofofspace/sector/item"
	"github.com/proofofspace/sector/verifier"
)

// newSelfVerifier builds a verifier bound to this prover's own identity
// and root, for FastIntegrityCheck's self-test. This is the one place
// prover depends on verifier; verifier never depends back on prover.
func newSelfVerifier(userID, sectorID string, dataSize uint64, root item.Item) (*verifier.Verifier, error) {
	return verifier.New(userID, sectorID, dataSize, root)
}
