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

import "github.com/spf13/cobra"

// sectorFlags are the identity and sizing knobs every subcommand needs to
// rebuild a Prover or Verifier for the same sector; verify ignores path.
type sectorFlags struct {
	userID   string
	sectorID string
	dataSize uint64
	path     string
}

func addSectorFlags(cmd *cobra.Command, f *sectorFlags) {
	cmd.Flags().StringVar(&f.userID, "user-id", "", "user identity string (required)")
	cmd.Flags().StringVar(&f.sectorID, "sector-id", "", "sector identity string (required)")
	cmd.Flags().Uint64Var(&f.dataSize, "data-size", 0, "sector data size in bytes, a power of two >= 2048 (required)")
	cmd.Flags().StringVar(&f.path, "path", ".", "directory holding the sector's .dat/.mta files")
	cmd.MarkFlagRequired("user-id")
	cmd.MarkFlagRequired("sector-id")
	cmd.MarkFlagRequired("data-size")
}
