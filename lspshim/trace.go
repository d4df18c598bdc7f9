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

package lspshim

import (
	"time"

	"github.com/tombi-toml/tombi/internal/obslog"
)

var traceLog = obslog.For("lspshim")

// TraceRequest logs a wire adapter's dispatch of one request and returns a
// func to call on completion, recording latency and outcome. A wire
// implementation wraps each textDocument/* handler in this; the core
// packages never call it themselves.
func TraceRequest(method string, id RequestID) func(err error) {
	start := time.Now()
	traceLog.Debug("request start", "method", method, "id", id.String())
	return func(err error) {
		elapsed := time.Since(start)
		if err != nil {
			traceLog.Warn("request failed", "method", method, "id", id.String(), "elapsed", elapsed, "err", err)
			return
		}
		traceLog.Debug("request done", "method", method, "id", id.String(), "elapsed", elapsed)
	}
}
