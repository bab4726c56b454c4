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

// Constant represents a fixed value within an expression.
type Constant[F field.Element[F]] struct{ Value F }

// Const construct an expression representing a given constant.
func Const[F field.Element[F]](val F) Expr[F] {
	return &Constant[F]{val}
}

// Const64 construct an expression representing a given constant.
func Const64[F field.Element[F]](val uint64) Expr[F] {
	return &Constant[F]{field.Uint64[F](val)}
}

// Degree implementation for Expr interface.
func (p *Constant[F]) Degree() uint {
	return 0
}

// EvalAt implementation for Expr interface.
func (p *Constant[F]) EvalAt(env Environment[F]) F {
	return p.Value
}

func (p *Constant[F]) String() string {
	return p.Value.String()
}

// IsZero determines whether a given expression is the constant zero.
func IsZero[F field.Element[F]](expr Expr[F]) bool {
	c, ok := expr.(*Constant[F])
	//
	return ok && c.Value.IsZero()
}

// IsOne determines whether a given expression is the constant one.
func IsOne[F field.Element[F]](expr Expr[F]) bool {
	c, ok := expr.(*Constant[F])
	//
	return ok && c.Value.IsOne()
}
