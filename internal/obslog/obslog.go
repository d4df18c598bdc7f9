// Copyright 2026 The tombi Authors
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

// Package obslog centralizes the module's one structured logger so every
// package logs through the same sink and level instead of reaching for
// charm.land/log/v2 directly. This is the same indirection cue/cmd/cue
// uses around its stats encoder (cmd/cue/cmd/root.go's statsEncoder):
// one place owns the handle, everything else just calls it.
package obslog

import (
	"os"
	"sync"

	charmlog "charm.land/log/v2"
)

var (
	mu      sync.RWMutex
	current = charmlog.New(os.Stderr)
)

func init() {
	current.SetLevel(charmlog.WarnLevel)
	current.SetReportTimestamp(false)
}

// SetLevel adjusts verbosity; -v/-vv on cmd/tombi maps to Info/Debug.
func SetLevel(l charmlog.Level) {
	mu.Lock()
	defer mu.Unlock()
	current.SetLevel(l)
}

// For returns a child logger scoped to component, e.g. obslog.For("schema").
func For(component string) *charmlog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return current.With("component", component)
}
