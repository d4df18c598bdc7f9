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

package schema

import (
	"github.com/cockroachdb/apd/v3"
)

// numericContext is shared across one completion/diagnostic request: apd's
// Context carries rounding/precision settings the same way cue's OpContext
// carries one for internal/core/adt's arbitrary-precision arithmetic
// (internal/core/adt/context.go newNum/apd.New use the package-level
// apd.BaseContext the same way).
var numericContext = apd.BaseContext.WithPrecision(40)

// CheckNumeric evaluates a literal's decimal text against a schema's
// multipleOf/minimum/maximum/exclusiveMinimum/exclusiveMaximum keywords
// using exact decimal arithmetic, never float64, so that e.g.
// `multipleOf: 0.01` doesn't misfire on values like 0.29 the way binary
// floats would. Returns the names of every constraint violated.
func CheckNumeric(literal string, c NumericConstraints) []string {
	d, _, err := apd.NewFromString(literal)
	if err != nil {
		return nil
	}
	var violated []string
	cmp := func(bound *string) (int, bool) {
		if bound == nil {
			return 0, false
		}
		b, _, err := apd.NewFromString(*bound)
		if err != nil {
			return 0, false
		}
		return d.Cmp(b), true
	}
	if n, ok := cmp(c.Minimum); ok && n < 0 {
		violated = append(violated, "minimum")
	}
	if n, ok := cmp(c.Maximum); ok && n > 0 {
		violated = append(violated, "maximum")
	}
	if n, ok := cmp(c.ExclusiveMinimum); ok && n <= 0 {
		violated = append(violated, "exclusiveMinimum")
	}
	if n, ok := cmp(c.ExclusiveMaximum); ok && n >= 0 {
		violated = append(violated, "exclusiveMaximum")
	}
	if c.MultipleOf != nil {
		m, _, err := apd.NewFromString(*c.MultipleOf)
		if err == nil && !m.IsZero() {
			var quot, rem apd.Decimal
			if _, err := numericContext.QuoRem(&quot, &rem, d, m); err == nil && !rem.IsZero() {
				violated = append(violated, "multipleOf")
			}
		}
	}
	return violated
}
