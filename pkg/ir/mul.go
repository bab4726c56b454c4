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

// Mul represents the multiplication of zero or more expressions.
type Mul[F field.Element[F]] struct{ Args []Expr[F] }

// Product multiplies zero or more expressions together.  Nested products are
// flattened and constant arguments folded, with a zero constant annihilating
// the entire product.
func Product[F field.Element[F]](terms ...Expr[F]) Expr[F] {
	// Flatten any nested products
	terms = flatten(terms, flatternMul[F])
	// Fold constants together
	constant, terms := foldTerms(terms, field.One[F](), mulBinOp)
	// A zero coefficient annihilates everything
	if constant.IsZero() {
		return Const64[F](0)
	}
	// Retain the folded constant unless one
	if !constant.IsOne() {
		terms = append(terms, Const(constant))
	}
	// Final simplifications
	switch len(terms) {
	case 0:
		return Const64[F](1)
	case 1:
		return terms[0]
	default:
		return &Mul[F]{terms}
	}
}

// Degree implementation for Expr interface.
func (p *Mul[F]) Degree() uint {
	var degree uint
	//
	for _, arg := range p.Args {
		degree += arg.Degree()
	}
	//
	return degree
}

// EvalAt implementation for Expr interface.
func (p *Mul[F]) EvalAt(env Environment[F]) F {
	// Evaluate first argument
	val := p.Args[0].EvalAt(env)
	// Continue evaluating the rest
	for i := 1; i < len(p.Args); i++ {
		val = val.Mul(p.Args[i].EvalAt(env))
	}
	// Done
	return val
}

func (p *Mul[F]) String() string {
	return stringOfTerms("*", p.Args)
}

func mulBinOp[F field.Element[F]](lhs F, rhs F) F {
	return lhs.Mul(rhs)
}

func flatternMul[F field.Element[F]](term Expr[F]) []Expr[F] {
	if t, ok := term.(*Mul[F]); ok {
		return t.Args
	}
	//
	return nil
}
