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

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/proofofspace/sector/prover"
)

func newCreateCommand(logger *zap.Logger) *cobra.Command {
	f := &sectorFlags{}
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Build a new sector and its Merkle commitment",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger.Info("creating sector",
				zap.String("sector_id", f.sectorID),
				zap.String("data_size", humanize.Bytes(f.dataSize)),
				zap.String("path", f.path),
			)

			p, err := prover.New(f.userID, f.sectorID, f.dataSize, f.path)
			if err != nil {
				return fmt.Errorf("pospace: %w", err)
			}

			defer tick(logger, "create")()

			lastPct := -1
			ok := p.Create(func(percent int, desc string) {
				if percent != lastPct {
					logger.Info("create progress", zap.Int("percent", percent), zap.String("stage", desc))
					lastPct = percent
				}
			})
			if !ok {
				return fmt.Errorf("pospace: create failed (see log for details)")
			}
			defer p.Close()

			fmt.Printf("root: %x\n", rootBytes(p.MklRoot()))
			return nil
		},
	}
	addSectorFlags(cmd, f)
	return cmd
}
