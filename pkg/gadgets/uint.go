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

	"github.com/noel2004/ceno/pkg/ir"
	"github.com/noel2004/ceno/pkg/schema"
	"github.com/noel2004/ceno/pkg/util/field"
)

// UInt is a constrained unsigned integer of a given bit width, decomposed
// into little-endian limbs of limbBits bits each.  Limbs are in one of two
// mutually exclusive states: owned (each limb backed by its own witness
// cell) or derived (each limb an expression over other cells).  Derived
// limbs must be explicitly materialised before degree-increasing operations
// such as multiplication.  Every limb value, once assigned, lies in
// [0, 2^limbBits); this is enforced by range checks at construction or on
// the limb expressions produced by arithmetic.
type UInt[F field.Element[F]] struct {
	bits     uint
	limbBits uint
	numCells uint
	limbs    limbState[F]
	// Carry cells allocated by arithmetic: one fewer than the limb count,
	// or exactly the limb count when overflow is permitted.  Carries are
	// not independently range checked; the limb range checks bound them.
	carries []schema.WitIn
	// Whether construction range checked the limbs, hence whether
	// assignment must count one range query per limb.
	checked bool
}

// limbState is the two-state limb representation: either every limb owns a
// witness cell, or every limb is a derived expression.
type limbState[F field.Element[F]] interface {
	// exprs returns one expression per limb, reading the cell in the owned
	// state.
	exprs() []ir.Expr[F]
}

type ownedLimbs[F field.Element[F]] struct {
	cells []schema.WitIn
}

type derivedLimbs[F field.Element[F]] struct {
	limbs []ir.Expr[F]
}

// exprs implementation for the limbState interface.
func (p ownedLimbs[F]) exprs() []ir.Expr[F] {
	exprs := make([]ir.Expr[F], len(p.cells))
	//
	for i, cell := range p.cells {
		exprs[i] = schema.WitExpr[F](cell)
	}
	//
	return exprs
}

// exprs implementation for the limbState interface.
func (p derivedLimbs[F]) exprs() []ir.Expr[F] {
	return p.limbs
}

// New allocates a fresh owned UInt whose limbs are range checked into
// [0, 2^limbBits).  The limb width must have a matching range check (5, 8
// or 16 bits).
func New[F field.Element[F]](name string, cb *schema.CircuitBuilder[F], bits uint, limbBits uint) (*UInt[F], error) {
	p, err := NewUnchecked[F](name, cb, bits, limbBits)
	//
	if err != nil {
		return nil, err
	}
	//
	p.checked = true
	//
	for i, e := range p.Exprs() {
		if err := cb.AssertUx(fmt.Sprintf("%s_limb_%d_in_%d", name, i, limbBits), e, limbBits); err != nil {
			return nil, err
		}
	}
	//
	return p, nil
}

// NewUnchecked allocates a fresh owned UInt without range checking its
// limbs.  Callers take on the obligation that assigned limbs fit the limb
// width.
func NewUnchecked[F field.Element[F]](name string, cb *schema.CircuitBuilder[F], bits uint, limbBits uint) (*UInt[F], error) {
	p, err := shapeOf[F](bits, limbBits)
	//
	if err != nil {
		return nil, err
	}
	//
	cells := make([]schema.WitIn, p.numCells)
	//
	for i := range cells {
		cells[i] = cb.CreateWitIn(fmt.Sprintf("%s_limb_%d", name, i))
	}
	//
	p.limbs = ownedLimbs[F]{cells}
	//
	return p, nil
}

// NewFromCells wraps existing witness cells as an owned UInt, without any
// fresh constraints.  The cell count must match the limb count exactly.
func NewFromCells[F field.Element[F]](bits uint, limbBits uint, cells []schema.WitIn) (*UInt[F], error) {
	p, err := shapeOf[F](bits, limbBits)
	//
	if err != nil {
		return nil, err
	}
	//
	if uint(len(cells)) != p.numCells {
		return nil, &schema.CircuitError{
			Handle: "uint", Msg: fmt.Sprintf("expected %d cells for %d/%d bit limbs, got %d",
				p.numCells, bits, limbBits, len(cells)),
		}
	}
	//
	p.limbs = ownedLimbs[F]{cells}
	//
	return p, nil
}

func shapeOf[F field.Element[F]](bits uint, limbBits uint) (*UInt[F], error) {
	if bits == 0 || limbBits == 0 || limbBits > 64 || bits > 64 {
		return nil, &schema.CircuitError{
			Handle: "uint", Msg: fmt.Sprintf("unsupported shape %d bits in %d bit limbs", bits, limbBits),
		}
	}
	//
	numCells := (bits + limbBits - 1) / limbBits
	//
	return &UInt[F]{bits: bits, limbBits: limbBits, numCells: numCells}, nil
}

// Bits returns the logical width of this integer.
func (p *UInt[F]) Bits() uint {
	return p.bits
}

// LimbBits returns the width of each limb.
func (p *UInt[F]) LimbBits() uint {
	return p.limbBits
}

// NumCells returns the limb count, ceil(bits / limbBits).
func (p *UInt[F]) NumCells() uint {
	return p.numCells
}

// IsDerived reports whether the limbs are still derived expressions rather
// than owned cells.
func (p *UInt[F]) IsDerived() bool {
	_, ok := p.limbs.(derivedLimbs[F])
	//
	return ok
}

// Exprs returns one expression per limb, in little-endian order.
func (p *UInt[F]) Exprs() []ir.Expr[F] {
	return p.limbs.exprs()
}

// Cells returns the witness cells backing each limb.  This panics if the
// limbs are still derived expressions; materialise first.
func (p *UInt[F]) Cells() []schema.WitIn {
	owned, ok := p.limbs.(ownedLimbs[F])
	//
	if !ok {
		panic("uint limbs are not cell backed")
	}
	//
	return owned.cells
}

// Carries returns the carry cells allocated by the arithmetic operation
// which produced this integer, or nil.
func (p *UInt[F]) Carries() []schema.WitIn {
	return p.carries
}

// Materialize converts derived limbs into owned cells, constraining every
// fresh cell equal to the expression it replaces.  The fresh cells carry no
// independent range check, since the replaced expressions were checked when
// constructed.  Owned limbs are left untouched.
func (p *UInt[F]) Materialize(name string, cb *schema.CircuitBuilder[F]) error {
	if !p.IsDerived() {
		return nil
	}
	//
	prior := p.Exprs()
	cells := make([]schema.WitIn, p.numCells)
	//
	for i := range cells {
		cells[i] = cb.CreateWitIn(fmt.Sprintf("%s_limb_%d", name, i))
	}
	//
	p.limbs = ownedLimbs[F]{cells}
	//
	for i, expr := range prior {
		if err := cb.RequireEqual("new_witin_equal_expr", schema.WitExpr[F](cells[i]), expr); err != nil {
			return err
		}
	}
	//
	return nil
}

// createCarries allocates the carry cells for an arithmetic operation:
// numCells-1 of them, or numCells when overflow is permitted (the extra top
// carry then certifies whether the true result exceeded the bit width).
func (p *UInt[F]) createCarries(name string, cb *schema.CircuitBuilder[F], withOverflow bool) {
	count := p.numCells - 1
	//
	if withOverflow {
		count = p.numCells
	}
	//
	p.carries = make([]schema.WitIn, count)
	//
	for i := range p.carries {
		p.carries[i] = cb.CreateWitIn(fmt.Sprintf("%s_%d", name, i))
	}
}

func (p *UInt[F]) sameShape(q *UInt[F]) error {
	if p.bits != q.bits || p.limbBits != q.limbBits {
		return &schema.CircuitError{
			Handle: "uint", Msg: fmt.Sprintf("mismatched shapes %d/%d vs %d/%d",
				p.bits, p.limbBits, q.bits, q.limbBits),
		}
	}
	//
	return nil
}
