// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package fuzztesting holds helpers shared by fuzz tests.
package fuzztesting

import (
	"context"
	"testing"
	"time"
)

// RunWithTimeout calls fn up to three times under a deadline, and fails
// the test if the deadline passes. The go fuzzer rejects targets that are
// much slower than this.
func RunWithTimeout(t *testing.T, fn func(ctx context.Context)) {
	t.Helper()

	allowed := 2 * time.Second
	if raceEnabled {
		// The race detector slows parsing down by close to an order of
		// magnitude.
		allowed = 20 * time.Second
	}

	ctx, cancel := context.WithTimeout(t.Context(), allowed)
	defer cancel()
	for range 3 {
		if ctx.Err() != nil {
			break
		}
		fn(ctx)
	}
	if ctx.Err() != nil {
		t.Errorf("input took longer than %v to process", allowed)
	}
}
