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
	"github.com/noel2004/ceno/pkg/ir"
	"github.com/noel2004/ceno/pkg/util/field"
)

// WitIn identifies one column of a circuit's witness matrix.  Cells are
// allocated during circuit construction and filled during assignment; they
// are never shared between circuits.
type WitIn struct {
	// Id gives the column index within the enclosing circuit.
	Id uint
}

// Fixed identifies one column of a circuit's fixed (i.e. precomputed)
// matrix.  Only table circuits declare fixed columns.
type Fixed struct {
	// Id gives the column index within the enclosing circuit.
	Id uint
}

// WitExpr converts a witness cell into an expression reading it.
func WitExpr[F field.Element[F]](w WitIn) ir.Expr[F] {
	return ir.NewWitnessAccess[F](w.Id)
}

// FixedExpr converts a fixed cell into an expression reading it.
func FixedExpr[F field.Element[F]](f Fixed) ir.Expr[F] {
	return ir.NewFixedAccess[F](f.Id)
}

// Constraint is a named polynomial identity which must vanish on every row
// of the enclosing circuit's witness matrix.
type Constraint[F field.Element[F]] struct {
	// Handle provides a unique (namespace qualified) name for diagnostics.
	Handle string
	// Expr must evaluate to zero on every accepted row.
	Expr ir.Expr[F]
}

// Lookup records one query of a read-only table: on every row, the tuple
// obtained by evaluating Args must occur in the given table.
type Lookup[F field.Element[F]] struct {
	// Table being queried.
	Table ROMType
	// Args is the queried tuple, of width Table.NumArgs().
	Args []ir.Expr[F]
}

// TableDecl records that the enclosing circuit serves a read-only table: its
// rows enumerate the table contents (as expressions over fixed cells), and
// the multiplicity column counts how often every entry was queried across
// all opcode circuits.
type TableDecl[F field.Element[F]] struct {
	// Table being served.
	Table ROMType
	// Values is the served tuple, of width Table.NumArgs().
	Values []ir.Expr[F]
	// Mlt is the multiplicity column.
	Mlt WitIn
}

// ConstraintSystem owns everything declared whilst constructing a single
// circuit: witness and fixed column counts, named vanishing constraints,
// lookup queries and (for table circuits) served table declarations.  A
// constraint system is identified by a name which must be unique within any
// registry holding it.
type ConstraintSystem[F field.Element[F]] struct {
	// Name uniquely identifies this circuit.
	Name string
	// NumWitIn gives the number of witness columns allocated so far.
	NumWitIn uint
	// NumFixed gives the number of fixed columns allocated so far.
	NumFixed uint
	// WitInNames holds a diagnostic name per witness column.
	WitInNames []string
	// FixedNames holds a diagnostic name per fixed column.
	FixedNames []string
	// Constraints holds all vanishing constraints in declaration order.
	Constraints []Constraint[F]
	// Lookups holds all table queries in declaration order.
	Lookups []Lookup[F]
	// Tables holds all served table declarations in declaration order.
	Tables []TableDecl[F]
}

// NewConstraintSystem constructs an empty constraint system with a given
// (unique) name.
func NewConstraintSystem[F field.Element[F]](name string) *ConstraintSystem[F] {
	return &ConstraintSystem[F]{Name: name}
}

// CheckRow evaluates every vanishing constraint against a concrete row,
// returning a Failure for the first constraint which does not hold.  This is
// the semantic core of verification, and doubles as the oracle used
// throughout the test suite.
func (p *ConstraintSystem[F]) CheckRow(env ir.Environment[F]) error {
	for _, c := range p.Constraints {
		if !c.Expr.EvalAt(env).IsZero() {
			return &Failure{p.Name, c.Handle}
		}
	}
	//
	return nil
}
