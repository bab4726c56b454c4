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

// ChallengeAccess represents reading a given verifier challenge.  Challenges
// are sampled once per proof, not per row, hence they contribute nothing to
// the degree of an expression.
type ChallengeAccess[F field.Element[F]] struct {
	// Index of the challenge being accessed.
	Index uint
}

// NewChallengeAccess constructs an expression reading a given challenge.
func NewChallengeAccess[F field.Element[F]](index uint) Expr[F] {
	return &ChallengeAccess[F]{index}
}

// Degree implementation for Expr interface.
func (p *ChallengeAccess[F]) Degree() uint {
	return 0
}

// EvalAt implementation for Expr interface.
func (p *ChallengeAccess[F]) EvalAt(env Environment[F]) F {
	return env.Challenges[p.Index]
}

func (p *ChallengeAccess[F]) String() string {
	return fmt.Sprintf("a%d", p.Index)
}
