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
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/proofofspace/sector/sector"
	"github.com/proofofspace/sector/verifier"
)

func newVerifyCommand(logger *zap.Logger) *cobra.Command {
	f := &sectorFlags{}
	var proofPath string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check a proof file against this sector's identity and data_size",
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := sector.NewParams(f.dataSize)
			if err != nil {
				return fmt.Errorf("pospace: %w", err)
			}

			in, err := os.Open(proofPath)
			if err != nil {
				return fmt.Errorf("pospace: %w", err)
			}
			defer in.Close()

			pf, err := readProofFile(in, mklPathLen(params.N))
			if err != nil {
				return fmt.Errorf("pospace: %w", err)
			}

			wantIdentity := padIdentity(f.userID, f.sectorID)
			if !bytes.Equal(pf.identity[:], wantIdentity[:]) {
				return fmt.Errorf("pospace: proof file identity does not match --user-id/--sector-id")
			}

			v, err := verifier.New(f.userID, f.sectorID, f.dataSize, pf.root)
			if err != nil {
				return fmt.Errorf("pospace: %w", err)
			}

			defer tick(logger, "verify")()
			ok := v.VerifyProofs(pf.challenges, pf.proofs)

			logger.Info("verification complete", zap.Bool("ok", ok), zap.Int("count", len(pf.proofs)))
			if !ok {
				return fmt.Errorf("pospace: verification failed")
			}
			fmt.Println("OK")
			return nil
		},
	}
	addSectorFlags(cmd, f)
	cmd.Flags().StringVar(&proofPath, "proof-file", "proofs.bin", "proof-file path produced by `pospace prove`")
	return cmd
}
