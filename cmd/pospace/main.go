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

// Command pospace drives the prover and verifier from the shell: create a
// sector, open one with an integrity pass, answer challenges into a
// proof file, or check a proof file against a published root. None of
// this is part of the core (see the item/compress/sector/merkle/prover/
// verifier packages); it's the thin operator surface around them.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "pospace: failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	root := newRootCommand(logger)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand(logger *zap.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "pospace",
		Short:         "Build, open, prove, and verify proof-of-space sectors",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.AddCommand(
		newCreateCommand(logger),
		newOpenCommand(logger),
		newProveCommand(logger),
		newVerifyCommand(logger),
	)
	return cmd
}
