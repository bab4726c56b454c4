// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package ir

import (
	"fmt"

	"github.com/noel2004/ceno/pkg/util/field"
)

// FixedAccess represents reading the value of a given fixed (i.e.
// precomputed) cell on the row being evaluated.  Only table circuits declare
// fixed columns.
type FixedAccess[F field.Element[F]] struct {
	// Index of the fixed cell being accessed.
	Index uint
}

// NewFixedAccess constructs an expression reading a given fixed cell.
func NewFixedAccess[F field.Element[F]](index uint) Expr[F] {
	return &FixedAccess[F]{index}
}

// Degree implementation for Expr interface.
func (p *FixedAccess[F]) Degree() uint {
	return 1
}

// EvalAt implementation for Expr interface.
func (p *FixedAccess[F]) EvalAt(env Environment[F]) F {
	return env.Fixed[p.Index]
}

func (p *FixedAccess[F]) String() string {
	return fmt.Sprintf("f%d", p.Index)
}
