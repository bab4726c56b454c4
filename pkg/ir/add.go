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
	"github.com/noel2004/ceno/pkg/util/field"
)

// Add represents the addition of zero or more expressions.
type Add[F field.Element[F]] struct{ Args []Expr[F] }

// Sum zero or more expressions together.  Nested sums are flattened, and
// constant arguments folded into (at most) one trailing constant.
func Sum[F field.Element[F]](terms ...Expr[F]) Expr[F] {
	// Flatten any nested sums
	terms = flatten(terms, flatternAdd[F])
	// Fold constants together
	constant, terms := foldTerms(terms, field.Zero[F](), addBinOp)
	// Retain the folded constant unless zero
	if !constant.IsZero() {
		terms = append(terms, Const(constant))
	}
	// Final simplifications
	switch len(terms) {
	case 0:
		return Const64[F](0)
	case 1:
		return terms[0]
	default:
		return &Add[F]{terms}
	}
}

// Degree implementation for Expr interface.
func (p *Add[F]) Degree() uint {
	return maxDegreeOfTerms(p.Args)
}

// EvalAt implementation for Expr interface.
func (p *Add[F]) EvalAt(env Environment[F]) F {
	// Evaluate first argument
	val := p.Args[0].EvalAt(env)
	// Continue evaluating the rest
	for i := 1; i < len(p.Args); i++ {
		val = val.Add(p.Args[i].EvalAt(env))
	}
	// Done
	return val
}

func (p *Add[F]) String() string {
	return stringOfTerms("+", p.Args)
}

func addBinOp[F field.Element[F]](lhs F, rhs F) F {
	return lhs.Add(rhs)
}

func flatternAdd[F field.Element[F]](term Expr[F]) []Expr[F] {
	if t, ok := term.(*Add[F]); ok {
		return t.Args
	}
	//
	return nil
}
