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
	"strings"

	"github.com/noel2004/ceno/pkg/util/field"
)

// flatten replaces any term for which fn extracts children with those
// children.  Terms not matched by fn are retained as is.
func flatten[F field.Element[F]](terms []Expr[F], fn func(Expr[F]) []Expr[F]) []Expr[F] {
	nterms := make([]Expr[F], 0, len(terms))
	//
	for _, t := range terms {
		if children := fn(t); children != nil {
			nterms = append(nterms, children...)
		} else {
			nterms = append(nterms, t)
		}
	}
	//
	return nterms
}

// foldTerms extracts all constants from the given terms and folds them into a
// single value using the given binary operation, returning that value along
// with the remaining (non-constant) terms.
func foldTerms[F field.Element[F]](terms []Expr[F], acc F, fn func(F, F) F) (F, []Expr[F]) {
	nterms := make([]Expr[F], 0, len(terms))
	//
	for _, t := range terms {
		if c, ok := t.(*Constant[F]); ok {
			acc = fn(acc, c.Value)
		} else {
			nterms = append(nterms, t)
		}
	}
	//
	return acc, nterms
}

// foldAllTerms folds the given terms into a single value using the given
// binary operation, provided every term is a constant.
func foldAllTerms[F field.Element[F]](terms []Expr[F], fn func(F, F) F) (F, bool) {
	var acc F
	//
	for i, t := range terms {
		c, ok := t.(*Constant[F])
		//
		if !ok {
			return acc, false
		} else if i == 0 {
			acc = c.Value
		} else {
			acc = fn(acc, c.Value)
		}
	}
	//
	return acc, len(terms) > 0
}

func maxDegreeOfTerms[F field.Element[F]](terms []Expr[F]) uint {
	var degree uint
	//
	for _, t := range terms {
		degree = max(degree, t.Degree())
	}
	//
	return degree
}

func stringOfTerms[F field.Element[F]](op string, terms []Expr[F]) string {
	var builder strings.Builder
	//
	builder.WriteString("(")
	builder.WriteString(op)
	//
	for _, t := range terms {
		builder.WriteString(" ")
		builder.WriteString(t.String())
	}
	//
	builder.WriteString(")")
	//
	return builder.String()
}
