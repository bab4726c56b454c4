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
package gadgets

import (
	"github.com/noel2004/ceno/pkg/ir"
	"github.com/noel2004/ceno/pkg/schema"
	"github.com/noel2004/ceno/pkg/util/field"
)

// IsEqualConfig holds the cells allocated by UInt.IsEqual, for assignment.
type IsEqualConfig[F field.Element[F]] struct {
	// IsEqualPerLimb holds one boolean flag per limb pair.
	IsEqualPerLimb []schema.WitIn
	// DiffInvPerLimb holds the inverse certifying each unequal limb pair.
	DiffInvPerLimb []schema.WitIn
	// SumFlag materialises the sum of the per-limb flags.
	SumFlag schema.WitIn
	// IsEqual is 1 when every limb pair agrees, else 0.
	IsEqual schema.WitIn
	// DiffInv certifies SumFlag differs from the limb count when it does.
	DiffInv schema.WitIn
}

// MsbConfig holds the cells allocated by UInt.MsbDecompose.
type MsbConfig[F field.Element[F]] struct {
	// Msb is the isolated top bit of the high limb.
	Msb schema.WitIn
	// HighLimbNoMsb is the masked 7 bit remainder of the high limb.
	HighLimbNoMsb schema.WitIn
}

// LtuConfig holds the cells allocated by UInt.LtuLimb8.
type LtuConfig[F field.Element[F]] struct {
	// Indexes is the one-hot vector marking the highest differing byte, or
	// all zero when the operands agree.
	Indexes []schema.WitIn
	// AccIndexes accumulates Indexes from the high end: AccIndexes[i] is 1
	// exactly when some byte at position i or above differs.
	AccIndexes []schema.WitIn
	// ByteDiffInv is the inverse of the differing byte pair's difference,
	// or 0 when the operands agree.
	ByteDiffInv schema.WitIn
	// LhsNeByte and RhsNeByte are the byte values at the marked position.
	LhsNeByte schema.WitIn
	RhsNeByte schema.WitIn
	// IsLtu is the comparison output, read from the byte comparison table.
	IsLtu schema.WitIn
}

// LtConfig holds the cells allocated by UInt.LtLimb8.
type LtConfig[F field.Element[F]] struct {
	// LhsMsb and RhsMsb decompose each operand's high limb.
	LhsMsb *MsbConfig[F]
	RhsMsb *MsbConfig[F]
	// MsbIsEqual is 1 when the sign bits agree, certified by MsbDiffInv.
	MsbIsEqual schema.WitIn
	MsbDiffInv schema.WitIn
	// IsLtu compares the sign-stripped operands.
	IsLtu *LtuConfig[F]
	// IsLt is the signed comparison output.
	IsLt schema.WitIn
}

// IsEqual returns a boolean flag deciding whole-integer equality: every limb
// pair is compared with its own flag and inverse, and the flag sum is then
// compared against the limb count.
func (p *UInt[F]) IsEqual(cb *schema.CircuitBuilder[F], rhs *UInt[F]) (*IsEqualConfig[F], error) {
	if err := p.sameShape(rhs); err != nil {
		return nil, err
	}
	//
	var (
		flags    = make([]schema.WitIn, p.numCells)
		invs     = make([]schema.WitIn, p.numCells)
		rhsExprs = rhs.Exprs()
		err      error
	)
	//
	for i, lhs := range p.Exprs() {
		if flags[i], invs[i], err = cb.IsEqual(lhs, rhsExprs[i]); err != nil {
			return nil, err
		}
	}
	//
	sum := ir.Const64[F](0)
	//
	for _, flag := range flags {
		sum = ir.Sum(sum, schema.WitExpr[F](flag))
	}
	//
	sumFlag, err := cb.CreateWitInFromExpr("sum_flag", sum)
	if err != nil {
		return nil, err
	}
	//
	isEqual, diffInv, err := cb.IsEqual(schema.WitExpr[F](sumFlag), ir.Const64[F](uint64(p.numCells)))
	if err != nil {
		return nil, err
	}
	//
	return &IsEqualConfig[F]{flags, invs, sumFlag, isEqual, diffInv}, nil
}

// MsbDecompose splits the high limb of a byte-limbed integer into its top
// bit and 7 bit remainder: the remainder is read from the conjunction table
// as high & 0x7f, and the bit is the difference scaled by 128⁻¹.  Only byte
// limbs are supported.
func (p *UInt[F]) MsbDecompose(cb *schema.CircuitBuilder[F]) (*MsbConfig[F], error) {
	if err := p.byteLimbed(); err != nil {
		return nil, err
	}
	//
	var (
		highLimbNoMsb = cb.CreateWitIn("high_limb_mask")
		highLimb      = p.Exprs()[p.numCells-1]
	)
	//
	err := cb.LookupAndByte(schema.WitExpr[F](highLimbNoMsb), highLimb, ir.Const64[F](0x7f))
	if err != nil {
		return nil, err
	}
	// The masked remainder pins the low 7 bits, so the scaled difference is
	// exactly the top bit.
	inv128 := field.TwoPowN[F](7).Inverse()
	msbExpr := ir.Product(ir.Subtract(highLimb, schema.WitExpr[F](highLimbNoMsb)), ir.Const(inv128))
	//
	msb, err := cb.CreateWitInFromExpr("msb", msbExpr)
	if err != nil {
		return nil, err
	}
	//
	return &MsbConfig[F]{msb, highLimbNoMsb}, nil
}

// LtuLimb8 compares two byte-limbed integers as unsigned quantities.  A
// one-hot index vector marks the highest differing byte; every byte above
// the mark is constrained equal across the operands; the marked byte pair
// is picked out by index-weighted sums, certified unequal by an inverse,
// and compared via the byte comparison table.  When the operands agree, no
// byte is marked and the output is 0.
func (p *UInt[F]) LtuLimb8(cb *schema.CircuitBuilder[F], rhs *UInt[F]) (*LtuConfig[F], error) {
	if err := p.byteLimbed(); err != nil {
		return nil, err
	}
	//
	if err := p.sameShape(rhs); err != nil {
		return nil, err
	}
	//
	var (
		n        = int(p.numCells)
		indexes  = make([]schema.WitIn, n)
		lhsExprs = p.Exprs()
		rhsExprs = rhs.Exprs()
	)
	//
	for i := range indexes {
		indexes[i] = cb.CreateWitIn("index")
	}
	// At most one byte is marked as the differing one.
	indexSum := ir.Const64[F](0)
	//
	for _, idx := range indexes {
		if err := cb.AssertBit("bit assert", schema.WitExpr[F](idx)); err != nil {
			return nil, err
		}
		//
		indexSum = ir.Sum(indexSum, schema.WitExpr[F](idx))
	}
	//
	if err := cb.AssertBit("bit assert", indexSum); err != nil {
		return nil, err
	}
	//
	byteDiffInv := cb.CreateWitIn("byte_diff_inverse")
	// Accumulate the one-hot vector from the high end, so position i is
	// flagged exactly when some byte at i or above differs.
	var (
		siExprs = make([]ir.Expr[F], n)
		si      = make([]schema.WitIn, n)
		state   = ir.Const64[F](0)
		err     error
	)
	//
	for i := n - 1; i >= 0; i-- {
		state = ir.Sum(state, schema.WitExpr[F](indexes[i]))
		siExprs[i] = state
	}
	//
	for i := range si {
		if si[i], err = cb.CreateWitInFromExpr("si", siExprs[i]); err != nil {
			return nil, err
		}
	}
	// Bytes above the mark carry flag 0 here, hence must agree.
	for i := 0; i < n; i++ {
		flag := schema.WitExpr[F](si[i])
		err := cb.RequireZero("byte diff zero check",
			ir.Subtract(
				ir.Subtract(lhsExprs[i], rhsExprs[i]),
				ir.Subtract(ir.Product(flag, lhsExprs[i]), ir.Product(flag, rhsExprs[i]))))
		//
		if err != nil {
			return nil, err
		}
	}
	// Index-weighted sums pick out the marked byte pair (or 0 when the
	// operands agree).
	sa := ir.Const64[F](0)
	sb := ir.Const64[F](0)
	//
	for i, idx := range indexes {
		sa = ir.Sum(sa, ir.Product(lhsExprs[i], schema.WitExpr[F](idx)))
		sb = ir.Sum(sb, ir.Product(rhsExprs[i], schema.WitExpr[F](idx)))
	}
	//
	lhsNeByte, err := cb.CreateWitInFromExpr("lhs_ne_byte", sa)
	if err != nil {
		return nil, err
	}
	//
	rhsNeByte, err := cb.CreateWitInFromExpr("rhs_ne_byte", sb)
	if err != nil {
		return nil, err
	}
	// Whenever a difference exists, its inverse certifies the marked pair
	// really is unequal.
	err = cb.RequireZero("byte inverse check",
		ir.Subtract(
			ir.Subtract(
				ir.Product(schema.WitExpr[F](lhsNeByte), schema.WitExpr[F](byteDiffInv)),
				ir.Product(schema.WitExpr[F](rhsNeByte), schema.WitExpr[F](byteDiffInv))),
			schema.WitExpr[F](si[0])))
	//
	if err != nil {
		return nil, err
	}
	// The output bit comes straight from the table; the lookup also keeps
	// it boolean.
	isLtu := cb.CreateWitIn("is_ltu")
	//
	err = cb.LookupLtuLimb8(schema.WitExpr[F](isLtu),
		schema.WitExpr[F](lhsNeByte), schema.WitExpr[F](rhsNeByte))
	//
	if err != nil {
		return nil, err
	}
	//
	return &LtuConfig[F]{
		Indexes:     indexes,
		AccIndexes:  si,
		ByteDiffInv: byteDiffInv,
		LhsNeByte:   lhsNeByte,
		RhsNeByte:   rhsNeByte,
		IsLtu:       isLtu,
	}, nil
}

// LtLimb8 compares two byte-limbed integers as signed quantities, composing
// sign bits with the unsigned comparison of the sign-stripped remainders:
//
//	lt(a,b) = a_msb·(1 - b_msb) + eq(a_msb, b_msb)·ltu(a', b')
//
// where a', b' drop the top bit.  Opposite signs decide by sign bit alone;
// equal signs decide by unsigned magnitude.
func (p *UInt[F]) LtLimb8(cb *schema.CircuitBuilder[F], rhs *UInt[F]) (*LtConfig[F], error) {
	if err := p.byteLimbed(); err != nil {
		return nil, err
	}
	//
	if err := p.sameShape(rhs); err != nil {
		return nil, err
	}
	//
	isLt := cb.CreateWitIn("is_lt")
	//
	if err := cb.AssertBit("assert_bit", schema.WitExpr[F](isLt)); err != nil {
		return nil, err
	}
	//
	lhsMsb, err := p.MsbDecompose(cb)
	if err != nil {
		return nil, err
	}
	//
	rhsMsb, err := rhs.MsbDecompose(cb)
	if err != nil {
		return nil, err
	}
	// Swap the masked remainder in for each operand's high limb.
	lhsNoMsb, err := p.withHighCell(lhsMsb.HighLimbNoMsb)
	if err != nil {
		return nil, err
	}
	//
	rhsNoMsb, err := rhs.withHighCell(rhsMsb.HighLimbNoMsb)
	if err != nil {
		return nil, err
	}
	//
	isLtu, err := lhsNoMsb.LtuLimb8(cb, rhsNoMsb)
	if err != nil {
		return nil, err
	}
	//
	msbIsEqual, msbDiffInv, err := cb.IsEqual(schema.WitExpr[F](lhsMsb.Msb), schema.WitExpr[F](rhsMsb.Msb))
	if err != nil {
		return nil, err
	}
	//
	err = cb.RequireZero("is lt zero check",
		ir.Sum(
			ir.Subtract(schema.WitExpr[F](lhsMsb.Msb),
				ir.Product(schema.WitExpr[F](lhsMsb.Msb), schema.WitExpr[F](rhsMsb.Msb))),
			ir.Subtract(ir.Product(schema.WitExpr[F](msbIsEqual), schema.WitExpr[F](isLtu.IsLtu)),
				schema.WitExpr[F](isLt))))
	//
	if err != nil {
		return nil, err
	}
	//
	return &LtConfig[F]{
		LhsMsb:     lhsMsb,
		RhsMsb:     rhsMsb,
		MsbIsEqual: msbIsEqual,
		MsbDiffInv: msbDiffInv,
		IsLtu:      isLtu,
		IsLt:       isLt,
	}, nil
}

// withHighCell clones this integer with its top limb cell replaced.
func (p *UInt[F]) withHighCell(cell schema.WitIn) (*UInt[F], error) {
	cells := make([]schema.WitIn, p.numCells)
	copy(cells, p.Cells())
	cells[p.numCells-1] = cell
	//
	return NewFromCells[F](p.bits, p.limbBits, cells)
}

func (p *UInt[F]) byteLimbed() error {
	if p.limbBits != 8 {
		return &schema.CircuitError{Handle: "uint", Msg: "comparison requires 8 bit limbs"}
	}
	//
	return nil
}
