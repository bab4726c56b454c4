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
	"testing"

	"github.com/noel2004/ceno/pkg/ir"
	"github.com/noel2004/ceno/pkg/util/assert"
	"github.com/noel2004/ceno/pkg/util/field/goldilocks"
)

type F = goldilocks.Element

func Test_Builder_01(t *testing.T) {
	cs := NewConstraintSystem[F]("test")
	cb := NewCircuitBuilder(cs)
	//
	a := cb.CreateWitIn("a")
	b := cb.CreateWitIn("b")
	f := cb.CreateFixed("f")
	//
	assert.Equal(t, uint(0), a.Id)
	assert.Equal(t, uint(1), b.Id)
	assert.Equal(t, uint(0), f.Id)
	assert.Equal(t, uint(2), cs.NumWitIn)
	assert.Equal(t, uint(1), cs.NumFixed)
	assert.Equal(t, "a", cs.WitInNames[0])
	assert.Equal(t, "b", cs.WitInNames[1])
	assert.Equal(t, "f", cs.FixedNames[0])
}

func Test_Builder_02(t *testing.T) {
	cs := NewConstraintSystem[F]("test")
	cb := NewCircuitBuilder(cs)
	//
	err := cb.Namespace("outer", func(cb *CircuitBuilder[F]) error {
		cb.CreateWitIn("x")
		//
		return cb.Namespace("inner", func(cb *CircuitBuilder[F]) error {
			return cb.RequireZero("vanish", ir.Const64[F](0))
		})
	})
	//
	assert.NoError(t, err)
	assert.Equal(t, "outer/x", cs.WitInNames[0])
	assert.Equal(t, "outer/inner/vanish", cs.Constraints[0].Handle)
	// Scope must be fully popped once the namespace returns.
	cb.CreateWitIn("y")
	assert.Equal(t, "y", cs.WitInNames[1])
}

func Test_Builder_03(t *testing.T) {
	cs := NewConstraintSystem[F]("test")
	cb := NewCircuitBuilder(cs)
	//
	a := cb.CreateWitIn("a")
	b := cb.CreateWitIn("b")
	c, err := cb.CreateWitInFromExpr("c", ir.Sum(WitExpr[F](a), WitExpr[F](b)))
	//
	assert.NoError(t, err)
	assert.Equal(t, uint(2), c.Id)
	// materialised cell must carry the value of its expression
	assert.NoError(t, cs.CheckRow(row(3, 4, 7)))
	assert.Error(t, cs.CheckRow(row(3, 4, 8)))
}

func Test_Builder_04(t *testing.T) {
	cs := NewConstraintSystem[F]("test")
	cb := NewCircuitBuilder(cs)
	//
	a := cb.CreateWitIn("a")
	assert.NoError(t, cb.AssertBit("bit", WitExpr[F](a)))
	//
	assert.NoError(t, cs.CheckRow(row(0)))
	assert.NoError(t, cs.CheckRow(row(1)))
	assert.Error(t, cs.CheckRow(row(2)))
}

func Test_IsEqual_01(t *testing.T) {
	cs := NewConstraintSystem[F]("test")
	cb := NewCircuitBuilder(cs)
	//
	lhs := cb.CreateWitIn("lhs")
	rhs := cb.CreateWitIn("rhs")
	isEq, inv, err := cb.IsEqual(WitExpr[F](lhs), WitExpr[F](rhs))
	//
	assert.NoError(t, err)
	assert.Equal(t, uint(2), isEq.Id)
	assert.Equal(t, uint(3), inv.Id)
	// Equal operands carry flag 1 (the inverse cell is then irrelevant).
	assert.NoError(t, cs.CheckRow(row(5, 5, 1, 0)))
	// Equal operands cannot claim inequality.
	assert.Error(t, cs.CheckRow(row(5, 5, 0, 0)))
	assert.Error(t, cs.CheckRow(row(5, 5, 0, 12345)))
}

func Test_IsEqual_02(t *testing.T) {
	cs := NewConstraintSystem[F]("test")
	cb := NewCircuitBuilder(cs)
	//
	lhs := cb.CreateWitIn("lhs")
	rhs := cb.CreateWitIn("rhs")
	_, _, err := cb.IsEqual(WitExpr[F](lhs), WitExpr[F](rhs))
	assert.NoError(t, err)
	// Unequal operands carry flag 0, certified by the inverse of their
	// difference.
	assert.NoError(t, cs.CheckRow(row(7, 3, 0, inverseOf(4))))
	// An incorrect inverse does not certify anything.
	assert.Error(t, cs.CheckRow(row(7, 3, 0, 1)))
	// Unequal operands cannot claim equality.
	err = cs.CheckRow(row(7, 3, 1, inverseOf(4)))
	assert.Error(t, err)
	//
	f, ok := err.(*Failure)
	assert.True(t, ok)
	assert.Equal(t, "is_eq_cond", f.Constraint)
	assert.Equal(t, "test", f.Circuit)
}

func Test_AssertUx_01(t *testing.T) {
	cs := NewConstraintSystem[F]("test")
	cb := NewCircuitBuilder(cs)
	//
	e := cb.CreateWitIn("e")
	assert.NoError(t, cb.AssertUx("r5", WitExpr[F](e), 5))
	assert.NoError(t, cb.AssertUx("r16", WitExpr[F](e), 16))
	assert.NoError(t, cb.AssertUx("r8", WitExpr[F](e), 8))
	assert.Error(t, cb.AssertUx("r7", WitExpr[F](e), 7))
	//
	assert.Equal(t, 3, len(cs.Lookups))
	assert.True(t, cs.Lookups[0].Table == U5)
	assert.True(t, cs.Lookups[1].Table == U16)
	assert.True(t, cs.Lookups[2].Table == And)
	// The byte check keys the conjunction table at (e, 0xff), expecting e
	// itself back.
	env := row(77)
	assert.Equal(t, uint64(77*256+255), cs.Lookups[2].Args[0].EvalAt(env).Uint64())
	assert.Equal(t, uint64(77), cs.Lookups[2].Args[1].EvalAt(env).Uint64())
}

func Test_Lookup_01(t *testing.T) {
	cs := NewConstraintSystem[F]("test")
	cb := NewCircuitBuilder(cs)
	//
	a := cb.CreateWitIn("a")
	b := cb.CreateWitIn("b")
	res := cb.CreateWitIn("res")
	//
	assert.NoError(t, cb.LookupLtuLimb8(WitExpr[F](res), WitExpr[F](a), WitExpr[F](b)))
	assert.True(t, cs.Lookups[0].Table == Ltu)
	//
	env := row(3, 9, 1)
	assert.Equal(t, uint64(3*256+9), cs.Lookups[0].Args[0].EvalAt(env).Uint64())
	assert.Equal(t, uint64(1), cs.Lookups[0].Args[1].EvalAt(env).Uint64())
	// Raw records are checked for arity.
	assert.Error(t, cb.LkRecord(And, WitExpr[F](a)))
	assert.Error(t, cb.LkRecord(U16))
}

func Test_Table_01(t *testing.T) {
	cs := NewConstraintSystem[F]("u16")
	cb := NewCircuitBuilder(cs)
	//
	val := cb.CreateFixed("value")
	mlt := cb.CreateWitIn("mlt")
	//
	assert.NoError(t, cb.LkTableRecord(U16, []ir.Expr[F]{FixedExpr[F](val)}, mlt))
	assert.Equal(t, 1, len(cs.Tables))
	assert.True(t, cs.Tables[0].Table == U16)
	// Serving a two column table with one column is malformed.
	assert.Error(t, cb.LkTableRecord(And, []ir.Expr[F]{FixedExpr[F](val)}, mlt))
}

func row(witness ...uint64) ir.Environment[F] {
	env := ir.Environment[F]{Witness: make([]F, len(witness))}
	//
	for i, w := range witness {
		env.Witness[i] = env.Witness[i].SetUint64(w)
	}
	//
	return env
}

func inverseOf(val uint64) uint64 {
	var x F
	//
	return x.SetUint64(val).Inverse().Uint64()
}
