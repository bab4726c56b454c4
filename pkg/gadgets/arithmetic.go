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

// Add constructs the little-endian sum of two integers of the same shape,
// returning a derived UInt whose limb expressions satisfy
//
//	c[i] = a[i] + b[i] + carry[i-1] - carry[i]·2^limbBits
//
// with each limb expression range checked into the limb width.  Without
// overflow the top carry is dropped, so a sum exceeding the bit width
// leaves the constraints unsatisfiable; with overflow an extra top carry
// cell absorbs it.
func (p *UInt[F]) Add(name string, cb *schema.CircuitBuilder[F], addend *UInt[F], withOverflow bool) (*UInt[F], error) {
	if err := p.sameShape(addend); err != nil {
		return nil, err
	}
	//
	var result *UInt[F]
	//
	err := cb.Namespace(name, func(cb *schema.CircuitBuilder[F]) error {
		var err error
		result, err = p.internalAdd(cb, p.Exprs(), addend.Exprs(), withOverflow)
		//
		return err
	})
	//
	return result, err
}

// AddConst adds a compile-time constant, split into limbs on the spot.  The
// constant must fit a uint64.
func (p *UInt[F]) AddConst(name string, cb *schema.CircuitBuilder[F], constant F, withOverflow bool) (*UInt[F], error) {
	if !constant.IsUint64() {
		return nil, &schema.CircuitError{Handle: name, Msg: "addend does not fit a uint64"}
	}
	//
	var (
		result *UInt[F]
		limbs  = Limbs(constant.Uint64(), p.numCells, p.limbBits)
		exprs  = make([]ir.Expr[F], p.numCells)
	)
	//
	for i, limb := range limbs {
		exprs[i] = ir.Const64[F](limb)
	}
	//
	err := cb.Namespace(name, func(cb *schema.CircuitBuilder[F]) error {
		var err error
		result, err = p.internalAdd(cb, p.Exprs(), exprs, withOverflow)
		//
		return err
	})
	//
	return result, err
}

// Mul constructs the schoolbook product of two integers of the same shape.
// Both operands are materialised first if derived, since only cell-backed
// limbs may be multiplied.  The result is a fresh owned UInt whose cells are
// range checked and constrained equal to the carry-adjusted convolution.
// Product terms beyond the limb count are dropped; with overflow, the extra
// top carry certifies only the final limb's carry out.
func (p *UInt[F]) Mul(name string, cb *schema.CircuitBuilder[F], multiplier *UInt[F], withOverflow bool) (*UInt[F], error) {
	if err := p.sameShape(multiplier); err != nil {
		return nil, err
	}
	//
	var result *UInt[F]
	//
	err := cb.Namespace(name, func(cb *schema.CircuitBuilder[F]) error {
		var err error
		result, err = p.internalMul(cb, multiplier, withOverflow)
		//
		return err
	})
	//
	return result, err
}

// Eq constrains two integers of the same shape to agree limb by limb.
func (p *UInt[F]) Eq(name string, cb *schema.CircuitBuilder[F], rhs *UInt[F]) error {
	if err := p.sameShape(rhs); err != nil {
		return err
	}
	//
	return cb.Namespace(name, func(cb *schema.CircuitBuilder[F]) error {
		rhsExprs := rhs.Exprs()
		//
		for i, lhs := range p.Exprs() {
			if err := cb.RequireEqual("uint_eq", lhs, rhsExprs[i]); err != nil {
				return err
			}
		}
		//
		return nil
	})
}

func (p *UInt[F]) internalAdd(cb *schema.CircuitBuilder[F], addend1 []ir.Expr[F],
	addend2 []ir.Expr[F], withOverflow bool) (*UInt[F], error) {
	//
	c, err := shapeOf[F](p.bits, p.limbBits)
	if err != nil {
		return nil, err
	}
	//
	c.createCarries("add_carry", cb, withOverflow)
	//
	var (
		pow   = ir.Const[F](field.TwoPowN[F](p.limbBits))
		limbs = make([]ir.Expr[F], p.numCells)
	)
	// c[i] = a[i] + b[i] + carry[i-1] - carry[i] * 2^limbBits
	for i := range limbs {
		expr := ir.Sum(addend1[i], addend2[i])
		//
		if i > 0 {
			expr = ir.Sum(expr, schema.WitExpr[F](c.carries[i-1]))
		}
		//
		if i < len(c.carries) {
			expr = ir.Subtract(expr, ir.Product(schema.WitExpr[F](c.carries[i]), pow))
		}
		//
		if err := cb.AssertUx(fmt.Sprintf("limb_%d_in_%d", i, p.limbBits), expr, p.limbBits); err != nil {
			return nil, err
		}
		//
		limbs[i] = expr
	}
	//
	c.limbs = derivedLimbs[F]{limbs}
	// Every limb expression was range checked above, so a later
	// materialisation counts its queries through Assign.
	c.checked = true
	//
	return c, nil
}

func (p *UInt[F]) internalMul(cb *schema.CircuitBuilder[F], multiplier *UInt[F], withOverflow bool) (*UInt[F], error) {
	c, err := New[F]("c", cb, p.bits, p.limbBits)
	if err != nil {
		return nil, err
	}
	//
	c.createCarries("mul_carry", cb, withOverflow)
	// Only cell-backed limbs may be multiplied, so derived operands are
	// materialised in place first.
	if err := p.Materialize("lhs", cb); err != nil {
		return nil, err
	}
	//
	if err := multiplier.Materialize("rhs", cb); err != nil {
		return nil, err
	}
	//
	var (
		aExpr = p.Exprs()
		bExpr = multiplier.Exprs()
		pow   = ir.Const[F](field.TwoPowN[F](p.limbBits))
		conv  = make([]ir.Expr[F], 0, p.numCells)
	)
	// Schoolbook convolution, dropping terms beyond the limb count, with
	// carries folded in limb by limb.
	for i, a := range aExpr {
		for j, b := range bExpr {
			idx := i + j
			//
			if idx >= int(p.numCells) {
				continue
			}
			//
			if idx == len(conv) {
				conv = append(conv, ir.Product(a, b))
			} else {
				conv[idx] = ir.Sum(conv[idx], ir.Product(a, b))
			}
		}
		//
		if i > 0 {
			conv[i] = ir.Sum(conv[i], schema.WitExpr[F](c.carries[i-1]))
		}
		//
		if i < len(c.carries) {
			conv[i] = ir.Subtract(conv[i], ir.Product(schema.WitExpr[F](c.carries[i]), pow))
		}
	}
	// Tie the result cells to the carry-adjusted convolution.
	for i, target := range c.Exprs() {
		if err := cb.RequireEqual(fmt.Sprintf("c_expr_%d", i), target, conv[i]); err != nil {
			return nil, err
		}
	}
	//
	return c, nil
}
