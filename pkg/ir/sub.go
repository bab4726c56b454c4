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

// Sub represents the subtraction of zero or more expressions from the first.
type Sub[F field.Element[F]] struct{ Args []Expr[F] }

// Subtract returns the subtraction of the subsequent expressions from the
// first.  Zero subtrahends are dropped, and an all-constant subtraction
// folds to a single constant.
func Subtract[F field.Element[F]](terms ...Expr[F]) Expr[F] {
	// Remove any zeros (excepting the first argument)
	terms = removeZerosExceptFirst(terms)
	// Fold when every argument is constant
	if constant, ok := foldAllTerms(terms, subBinOp); ok {
		return Const(constant)
	}
	// Final simplifications
	switch len(terms) {
	case 0:
		return Const64[F](0)
	case 1:
		return terms[0]
	default:
		return &Sub[F]{terms}
	}
}

// Degree implementation for Expr interface.
func (p *Sub[F]) Degree() uint {
	return maxDegreeOfTerms(p.Args)
}

// EvalAt implementation for Expr interface.
func (p *Sub[F]) EvalAt(env Environment[F]) F {
	// Evaluate first argument
	val := p.Args[0].EvalAt(env)
	// Continue evaluating the rest
	for i := 1; i < len(p.Args); i++ {
		val = val.Sub(p.Args[i].EvalAt(env))
	}
	// Done
	return val
}

func (p *Sub[F]) String() string {
	return stringOfTerms("-", p.Args)
}

func subBinOp[F field.Element[F]](lhs F, rhs F) F {
	return lhs.Sub(rhs)
}

func removeZerosExceptFirst[F field.Element[F]](terms []Expr[F]) []Expr[F] {
	nterms := make([]Expr[F], 0, len(terms))
	//
	for i, t := range terms {
		if i == 0 || !IsZero(t) {
			nterms = append(nterms, t)
		}
	}
	//
	return nterms
}
