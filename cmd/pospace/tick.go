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
	"time"

	"go.uber.org/zap"
)

// tick is the Go analogue of the original driver's RAII Tick: where that
// logged elapsed time from a destructor, tick returns a closure the
// caller defers, logging elapsed time when the enclosing scope exits.
func tick(logger *zap.Logger, op string) func() {
	start := time.Now()
	return func() {
		logger.Info(op+" finished", zap.Duration("elapsed", time.Since(start)))
	}
}
