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
	"fmt"

	"github.com/noel2004/ceno/pkg/schema"
	"github.com/noel2004/ceno/pkg/trace"
	"github.com/noel2004/ceno/pkg/util/field"
)

// Limbs splits a value into little-endian limbs of the given width.
func Limbs(value uint64, numCells uint, limbBits uint) []uint64 {
	var (
		mask  = limbMask(limbBits)
		limbs = make([]uint64, numCells)
	)
	//
	for i := range limbs {
		limbs[i] = value & mask
		value >>= limbBits
	}
	//
	return limbs
}

// FromLimbs reassembles little-endian limbs of the given width into a
// value.
func FromLimbs(limbs []uint64, limbBits uint) uint64 {
	var value uint64
	//
	for i := len(limbs) - 1; i >= 0; i-- {
		value = value<<limbBits | limbs[i]
	}
	//
	return value
}

// AddWitness computes the limb and carry assignment for the sum of two limb
// vectors: the true carry chain, with limbs reduced into the limb width.
// The carry count matches the cells arithmetic allocates, so the top carry
// is dropped unless overflow was permitted.
func AddWitness(a []uint64, b []uint64, limbBits uint, withOverflow bool) ([]uint64, []uint64) {
	var (
		limbs, carries = carryShape(len(a), withOverflow)
		mask           = limbMask(limbBits)
		carry          uint64
	)
	//
	for i := range a {
		t := a[i] + b[i] + carry
		carry = t >> limbBits
		limbs[i] = t & mask
		//
		if i < len(carries) {
			carries[i] = carry
		}
	}
	//
	return limbs, carries
}

// MulWitness computes the limb and carry assignment for the schoolbook
// product of two limb vectors, dropping convolution terms beyond the limb
// count exactly as the constraints do.
func MulWitness(a []uint64, b []uint64, limbBits uint, withOverflow bool) ([]uint64, []uint64) {
	var (
		n              = len(a)
		conv           = make([]uint64, n)
		limbs, carries = carryShape(n, withOverflow)
		mask           = limbMask(limbBits)
		carry          uint64
	)
	//
	for i := range a {
		for j := range b {
			if i+j < n {
				conv[i+j] += a[i] * b[j]
			}
		}
	}
	//
	for i := range conv {
		t := conv[i] + carry
		carry = t >> limbBits
		limbs[i] = t & mask
		//
		if i < len(carries) {
			carries[i] = carry
		}
	}
	//
	return limbs, carries
}

// Assign writes concrete limb values into the cells backing this integer,
// counting one range query per limb when construction range checked them.
// The multiplicity may be nil when counts are not being collected.
func (p *UInt[F]) Assign(row []F, mlt *trace.Multiplicity, limbs []uint64) {
	cells := p.Cells()
	//
	if len(limbs) != len(cells) {
		panic(fmt.Sprintf("expected %d limbs, got %d", len(cells), len(limbs)))
	}
	//
	for i, cell := range cells {
		setCell(row, cell, limbs[i])
		//
		if p.checked && mlt != nil {
			mlt.AssertUx(limbs[i], p.limbBits)
		}
	}
}

// AssignSum is the witness dual of Add and AddConst: it writes the carry
// cells and counts one range query per result limb, matching the checks the
// addition placed on its limb expressions.  Once materialised the limbs are
// cell backed and counted through Assign instead, so only derived limbs are
// counted here.  The multiplicity may be nil when counts are not being
// collected.
func (p *UInt[F]) AssignSum(row []F, mlt *trace.Multiplicity, limbs []uint64, carries []uint64) {
	p.AssignCarries(row, carries)
	//
	if !p.IsDerived() || mlt == nil {
		return
	}
	//
	if len(limbs) != int(p.numCells) {
		panic(fmt.Sprintf("expected %d limbs, got %d", p.numCells, len(limbs)))
	}
	//
	for _, limb := range limbs {
		mlt.AssertUx(limb, p.limbBits)
	}
}

// AssignCarries writes concrete carry values into the carry cells allocated
// by the arithmetic operation which produced this integer.
func (p *UInt[F]) AssignCarries(row []F, carries []uint64) {
	if len(carries) != len(p.carries) {
		panic(fmt.Sprintf("expected %d carries, got %d", len(p.carries), len(carries)))
	}
	//
	for i, cell := range p.carries {
		setCell(row, cell, carries[i])
	}
}

// Assign fills the equality cells from concrete limb values, returning the
// whole-integer equality flag.
func (p *IsEqualConfig[F]) Assign(row []F, lhs []uint64, rhs []uint64) uint64 {
	var sum uint64
	//
	for i := range lhs {
		var flag uint64
		//
		if lhs[i] == rhs[i] {
			flag = 1
		}
		//
		sum += flag
		setCell(row, p.IsEqualPerLimb[i], flag)
		row[p.DiffInvPerLimb[i].Id] = diffInverse[F](lhs[i], rhs[i])
	}
	//
	var (
		n    = uint64(len(lhs))
		isEq uint64
	)
	//
	if sum == n {
		isEq = 1
	}
	//
	setCell(row, p.SumFlag, sum)
	setCell(row, p.IsEqual, isEq)
	row[p.DiffInv.Id] = diffInverse[F](sum, n)
	//
	return isEq
}

// Assign fills the decomposition cells from the high limb value, returning
// the top bit and the masked remainder.
func (p *MsbConfig[F]) Assign(row []F, mlt *trace.Multiplicity, highLimb uint64) (uint64, uint64) {
	masked := highLimb & 0x7f
	msb := (highLimb - masked) >> 7
	//
	if mlt != nil {
		mlt.LookupAndByte(highLimb, 0x7f)
	}
	//
	setCell(row, p.HighLimbNoMsb, masked)
	setCell(row, p.Msb, msb)
	//
	return msb, masked
}

// Assign fills the comparison cells from concrete byte limbs, returning the
// unsigned comparison bit.
func (p *LtuConfig[F]) Assign(row []F, mlt *trace.Multiplicity, lhs []uint64, rhs []uint64) uint64 {
	// Locate the highest differing byte, if any.
	i0 := -1
	//
	for i := len(lhs) - 1; i >= 0; i-- {
		if lhs[i] != rhs[i] {
			i0 = i
			break
		}
	}
	//
	for i := range lhs {
		var idx, si uint64
		//
		if i == i0 {
			idx = 1
		}
		//
		if i0 >= 0 && i <= i0 {
			si = 1
		}
		//
		setCell(row, p.Indexes[i], idx)
		setCell(row, p.AccIndexes[i], si)
	}
	//
	var lhsNe, rhsNe uint64
	//
	if i0 >= 0 {
		lhsNe, rhsNe = lhs[i0], rhs[i0]
	}
	//
	setCell(row, p.LhsNeByte, lhsNe)
	setCell(row, p.RhsNeByte, rhsNe)
	row[p.ByteDiffInv.Id] = diffInverse[F](lhsNe, rhsNe)
	//
	var isLtu uint64
	//
	if lhsNe < rhsNe {
		isLtu = 1
	}
	//
	if mlt != nil {
		isLtu = mlt.LookupLtuLimb8(lhsNe, rhsNe)
	}
	//
	setCell(row, p.IsLtu, isLtu)
	//
	return isLtu
}

// Assign fills the signed comparison cells from concrete byte limbs,
// returning the signed comparison bit.
func (p *LtConfig[F]) Assign(row []F, mlt *trace.Multiplicity, lhs []uint64, rhs []uint64) uint64 {
	n := len(lhs)
	//
	lhsMsb, lhsMasked := p.LhsMsb.Assign(row, mlt, lhs[n-1])
	rhsMsb, rhsMasked := p.RhsMsb.Assign(row, mlt, rhs[n-1])
	// Strip the sign bits before the unsigned comparison.
	lhsNoMsb := make([]uint64, n)
	rhsNoMsb := make([]uint64, n)
	copy(lhsNoMsb, lhs)
	copy(rhsNoMsb, rhs)
	lhsNoMsb[n-1] = lhsMasked
	rhsNoMsb[n-1] = rhsMasked
	//
	isLtu := p.IsLtu.Assign(row, mlt, lhsNoMsb, rhsNoMsb)
	//
	var msbEq uint64
	//
	if lhsMsb == rhsMsb {
		msbEq = 1
	}
	//
	setCell(row, p.MsbIsEqual, msbEq)
	row[p.MsbDiffInv.Id] = diffInverse[F](lhsMsb, rhsMsb)
	//
	isLt := lhsMsb*(1-rhsMsb) + msbEq*isLtu
	setCell(row, p.IsLt, isLt)
	//
	return isLt
}

func setCell[F field.Element[F]](row []F, cell schema.WitIn, val uint64) {
	row[cell.Id] = row[cell.Id].SetUint64(val)
}

// diffInverse returns (a - b)⁻¹ in the field, or zero when a = b.
func diffInverse[F field.Element[F]](a uint64, b uint64) F {
	var x, y F
	//
	diff := x.SetUint64(a).Sub(y.SetUint64(b))
	//
	if diff.IsZero() {
		return diff
	}
	//
	return diff.Inverse()
}

func carryShape(numCells int, withOverflow bool) ([]uint64, []uint64) {
	count := numCells - 1
	//
	if withOverflow {
		count = numCells
	}
	//
	return make([]uint64, numCells), make([]uint64, count)
}

func limbMask(limbBits uint) uint64 {
	if limbBits >= 64 {
		return ^uint64(0)
	}
	//
	return uint64(1)<<limbBits - 1
}
