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

// Expr represents a symbolic arithmetic expression over witness cells, fixed
// cells, verifier challenges and constants, closed under addition,
// subtraction and multiplication.  Expressions are stateless DAGs: they can
// be shared freely between constraints and evaluated any number of times.
// Smart constructors (Sum, Subtract, Product) apply constant folding, so
// constructed expressions never contain foldable subterms.
type Expr[F field.Element[F]] interface {
	fmt.Stringer
	// Degree returns the monomial degree of this expression, where accesses
	// to witness or fixed cells count one and constants or challenges count
	// zero.
	Degree() uint
	// EvalAt evaluates this expression by substituting concrete values for
	// every cell and challenge it references.
	EvalAt(env Environment[F]) F
}

// Environment provides the concrete values an expression evaluates against:
// one row of the witness matrix, one row of the fixed matrix and the
// challenge vector.  Any slice may be nil provided no expression evaluated
// against it references the corresponding kind of access.
type Environment[F field.Element[F]] struct {
	// Witness holds one row of the witness matrix.
	Witness []F
	// Fixed holds one row of the fixed matrix.
	Fixed []F
	// Challenges holds the verifier challenge vector.
	Challenges []F
}
