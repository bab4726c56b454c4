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
package schema

import (
	"fmt"
	"strings"

	"github.com/noel2004/ceno/pkg/ir"
	"github.com/noel2004/ceno/pkg/util/field"
)

// CircuitBuilder is the mutable front end through which circuits declare
// their cells, constraints and table queries.  Every mutation grows the
// underlying constraint system monotonically; nothing is ever removed.
type CircuitBuilder[F field.Element[F]] struct {
	cs *ConstraintSystem[F]
	// Stack of enclosing namespaces.
	scope []string
}

// NewCircuitBuilder constructs a builder over a given constraint system.
func NewCircuitBuilder[F field.Element[F]](cs *ConstraintSystem[F]) *CircuitBuilder[F] {
	return &CircuitBuilder[F]{cs, nil}
}

// System returns the constraint system under construction.
func (cb *CircuitBuilder[F]) System() *ConstraintSystem[F] {
	return cb.cs
}

// CreateWitIn allocates a fresh witness cell.
func (cb *CircuitBuilder[F]) CreateWitIn(name string) WitIn {
	var id = cb.cs.NumWitIn
	//
	cb.cs.NumWitIn++
	cb.cs.WitInNames = append(cb.cs.WitInNames, cb.qualify(name))
	//
	return WitIn{id}
}

// CreateWitInFromExpr allocates a fresh witness cell constrained equal to
// the given expression.  This is the materialisation primitive: it turns a
// derived value into one backed by its own cell, e.g. so it can participate
// in a multiplication.
func (cb *CircuitBuilder[F]) CreateWitInFromExpr(name string, expr ir.Expr[F]) (WitIn, error) {
	w := cb.CreateWitIn(name)
	//
	return w, cb.RequireEqual(name, WitExpr[F](w), expr)
}

// CreateFixed allocates a fresh fixed cell.
func (cb *CircuitBuilder[F]) CreateFixed(name string) Fixed {
	var id = cb.cs.NumFixed
	//
	cb.cs.NumFixed++
	cb.cs.FixedNames = append(cb.cs.FixedNames, cb.qualify(name))
	//
	return Fixed{id}
}

// Namespace scopes everything declared inside fn under a given diagnostic
// prefix, passing fn's error through unchanged.  Namespaces affect naming
// only, never satisfiability.
func (cb *CircuitBuilder[F]) Namespace(name string, fn func(*CircuitBuilder[F]) error) error {
	cb.scope = append(cb.scope, name)
	err := fn(cb)
	cb.scope = cb.scope[:len(cb.scope)-1]
	//
	return err
}

// RequireZero registers a named polynomial identity which must vanish on
// every accepted row.
func (cb *CircuitBuilder[F]) RequireZero(name string, expr ir.Expr[F]) error {
	cb.cs.Constraints = append(cb.cs.Constraints, Constraint[F]{cb.qualify(name), expr})
	//
	return nil
}

// RequireEqual registers a named identity requiring both expressions to
// agree on every accepted row.
func (cb *CircuitBuilder[F]) RequireEqual(name string, lhs ir.Expr[F], rhs ir.Expr[F]) error {
	return cb.RequireZero(name, ir.Subtract(lhs, rhs))
}

// AssertBit constrains the given expression to be either zero or one, via
// expr·(expr - 1) = 0.
func (cb *CircuitBuilder[F]) AssertBit(name string, expr ir.Expr[F]) error {
	return cb.RequireZero(name, ir.Product(expr, ir.Subtract(expr, ir.Const64[F](1))))
}

// AssertUx range-checks the given expression into [0, 2^c).  Widths 5 and 16
// check against the matching range table directly; width 8 checks against
// the byte conjunction table, since x & 0xff = x holds exactly when x fits a
// byte.
func (cb *CircuitBuilder[F]) AssertUx(name string, expr ir.Expr[F], c uint) error {
	switch c {
	case 5:
		return cb.LkRecord(U5, expr)
	case 16:
		return cb.LkRecord(U16, expr)
	case 8:
		return cb.LookupAndByte(expr, expr, ir.Const64[F](0xff))
	default:
		return cb.errorf(name, "no range table for %d bit values", c)
	}
}

// LookupAndByte requires res = a & b, where a and b are bytes, via the byte
// conjunction table.
func (cb *CircuitBuilder[F]) LookupAndByte(res ir.Expr[F], a ir.Expr[F], b ir.Expr[F]) error {
	return cb.LkRecord(And, packByteKey(a, b), res)
}

// LookupLtuLimb8 requires res = 1 if a < b and res = 0 otherwise, where a
// and b are bytes, via the byte comparison table.
func (cb *CircuitBuilder[F]) LookupLtuLimb8(res ir.Expr[F], a ir.Expr[F], b ir.Expr[F]) error {
	return cb.LkRecord(Ltu, packByteKey(a, b), res)
}

// LkRecord records a raw query of a given table: on every accepted row, the
// tuple obtained by evaluating args must be an entry of that table.  The
// byte and range helpers all lower to this.
func (cb *CircuitBuilder[F]) LkRecord(rom ROMType, args ...ir.Expr[F]) error {
	if uint(len(args)) != rom.NumArgs() {
		return cb.errorf(rom.String(), "table %s expects %d arguments, got %d", rom, rom.NumArgs(), len(args))
	}
	//
	cb.cs.Lookups = append(cb.cs.Lookups, Lookup[F]{rom, args})
	//
	return nil
}

// LkTableRecord declares that this circuit serves a given table, with its
// contents given by values (expressions over fixed cells) and queries
// counted by the multiplicity column mlt.
func (cb *CircuitBuilder[F]) LkTableRecord(rom ROMType, values []ir.Expr[F], mlt WitIn) error {
	if uint(len(values)) != rom.NumArgs() {
		return cb.errorf(rom.String(), "table %s serves %d columns, got %d", rom, rom.NumArgs(), len(values))
	}
	//
	cb.cs.Tables = append(cb.cs.Tables, TableDecl[F]{rom, values, mlt})
	//
	return nil
}

// IsEqual returns a boolean cell b (1 when lhs = rhs, else 0) along with the
// auxiliary inverse cell certifying it, constrained by
//
//	(lhs - rhs)·inv = 1 - b
//	b·(lhs - rhs) = 0
//
// When lhs = rhs the first identity forces b = 1; otherwise the second
// forces b = 0, whereupon the first forces inv = (lhs - rhs)⁻¹.
func (cb *CircuitBuilder[F]) IsEqual(lhs ir.Expr[F], rhs ir.Expr[F]) (WitIn, WitIn, error) {
	var (
		isEq = cb.CreateWitIn("is_eq")
		inv  = cb.CreateWitIn("is_eq_inverse")
		diff = ir.Subtract(lhs, rhs)
	)
	//
	err := cb.RequireEqual("is_eq_cond",
		ir.Product(diff, WitExpr[F](inv)),
		ir.Subtract(ir.Const64[F](1), WitExpr[F](isEq)))
	//
	if err == nil {
		err = cb.RequireZero("is_eq_zero", ir.Product(WitExpr[F](isEq), diff))
	}
	//
	return isEq, inv, err
}

func (cb *CircuitBuilder[F]) qualify(name string) string {
	if len(cb.scope) == 0 {
		return name
	}
	//
	return strings.Join(cb.scope, "/") + "/" + name
}

func (cb *CircuitBuilder[F]) errorf(name string, format string, args ...any) error {
	return &CircuitError{cb.qualify(name), fmt.Sprintf(format, args...)}
}

func packByteKey[F field.Element[F]](a ir.Expr[F], b ir.Expr[F]) ir.Expr[F] {
	return ir.Sum(ir.Product(a, ir.Const64[F](256)), b)
}
