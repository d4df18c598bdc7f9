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
	"errors"
	"testing"

	"github.com/go-quicktest/qt"
)

func TestNewRequestIDIsUnique(t *testing.T) {
	a := NewRequestID()
	b := NewRequestID()
	qt.Assert(t, qt.Not(qt.Equals(a.String(), b.String())))
	qt.Assert(t, qt.Not(qt.Equals(a.String(), "")))
}

func TestTraceRequestCompletesWithoutError(t *testing.T) {
	done := TraceRequest("initialize", NewRequestID())
	done(nil)
}

func TestTraceRequestRecordsFailure(t *testing.T) {
	done := TraceRequest("completion", NewRequestID())
	done(errors.New("boom"))
}
