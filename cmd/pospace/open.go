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

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/proofofspace/sector/prover"
)

func newOpenCommand(logger *zap.Logger) *cobra.Command {
	f := &sectorFlags{}
	var integrity string

	cmd := &cobra.Command{
		Use:   "open",
		Short: "Open an existing sector, optionally checking its integrity",
		RunE: func(cmd *cobra.Command, args []string) error {
			flag, err := parseIntegrityFlag(integrity)
			if err != nil {
				return err
			}

			p, err := prover.New(f.userID, f.sectorID, f.dataSize, f.path)
			if err != nil {
				return fmt.Errorf("pospace: %w", err)
			}

			defer tick(logger, "open")()

			if !p.Open(flag) {
				return fmt.Errorf("pospace: open failed (missing sector, size mismatch, or integrity check failed)")
			}
			defer p.Close()

			logger.Info("sector opened", zap.String("integrity", integrity))
			fmt.Printf("root: %x\n", rootBytes(p.MklRoot()))
			return nil
		},
	}
	addSectorFlags(cmd, f)
	cmd.Flags().StringVar(&integrity, "integrity", "none", "integrity pass to run: none, full, or fast")
	return cmd
}

func parseIntegrityFlag(s string) (prover.OpenFlag, error) {
	switch s {
	case "none":
		return prover.NoneIntegrityCheck, nil
	case "full":
		return prover.FullIntegrityCheck, nil
	case "fast":
		return prover.FastIntegrityCheck, nil
	default:
		return 0, fmt.Errorf("pospace: unknown --integrity %q (want none, full, or fast)", s)
	}
}
