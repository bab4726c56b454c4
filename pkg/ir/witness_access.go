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

// WitnessAccess represents reading the value of a given witness cell on the
// row being evaluated.
type WitnessAccess[F field.Element[F]] struct {
	// Index of the witness cell being accessed.
	Index uint
}

// NewWitnessAccess constructs an expression reading a given witness cell.
func NewWitnessAccess[F field.Element[F]](index uint) Expr[F] {
	return &WitnessAccess[F]{index}
}

// Degree implementation for Expr interface.
func (p *WitnessAccess[F]) Degree() uint {
	return 1
}

// EvalAt implementation for Expr interface.
func (p *WitnessAccess[F]) EvalAt(env Environment[F]) F {
	return env.Witness[p.Index]
}

func (p *WitnessAccess[F]) String() string {
	return fmt.Sprintf("w%d", p.Index)
}
