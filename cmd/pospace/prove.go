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
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/proofofspace/sector/prover"
)

func newProveCommand(logger *zap.Logger) *cobra.Command {
	f := &sectorFlags{}
	var challengesCSV string
	var outPath string

	cmd := &cobra.Command{
		Use:   "prove",
		Short: "Answer challenges against an opened sector and write a proof file",
		RunE: func(cmd *cobra.Command, args []string) error {
			challenges, err := parseChallenges(challengesCSV)
			if err != nil {
				return err
			}

			p, err := prover.New(f.userID, f.sectorID, f.dataSize, f.path)
			if err != nil {
				return fmt.Errorf("pospace: %w", err)
			}
			if !p.Open(prover.NoneIntegrityCheck) {
				return fmt.Errorf("pospace: failed to open sector")
			}
			defer p.Close()

			defer tick(logger, "prove")()
			proofs := p.GenerateProofs(challenges)

			out, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("pospace: %w", err)
			}
			defer out.Close()

			if err := writeProofFile(out, f.userID, f.sectorID, p.MklRoot(), challenges, proofs); err != nil {
				return fmt.Errorf("pospace: writing proof file: %w", err)
			}

			logger.Info("proofs written", zap.Int("count", len(proofs)), zap.String("out", outPath))
			return nil
		},
	}
	addSectorFlags(cmd, f)
	cmd.Flags().StringVar(&challengesCSV, "challenges", "", "comma-separated challenge indices (required)")
	cmd.Flags().StringVar(&outPath, "out", "proofs.bin", "output proof-file path")
	cmd.MarkFlagRequired("challenges")
	return cmd
}

func parseChallenges(csv string) ([]uint64, error) {
	parts := strings.Split(csv, ",")
	challenges := make([]uint64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		c, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("pospace: invalid challenge %q: %w", p, err)
		}
		challenges = append(challenges, c)
	}
	if len(challenges) == 0 {
		return nil, fmt.Errorf("pospace: --challenges must name at least one index")
	}
	return challenges, nil
}
