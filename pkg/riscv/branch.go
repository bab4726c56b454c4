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

// Package riscv implements the branch instruction circuits.  One row of a
// circuit's witness matrix proves one executed branch of its kind, with the
// six branch instructions sharing three circuit shapes: BEQ/BNE decide on
// equality, BLTU/BGEU on unsigned order and BLT/BGE on signed order.
package riscv

import (
	"github.com/noel2004/ceno/pkg/emulator"
	"github.com/noel2004/ceno/pkg/gadgets"
	"github.com/noel2004/ceno/pkg/ir"
	"github.com/noel2004/ceno/pkg/schema"
	"github.com/noel2004/ceno/pkg/trace"
	"github.com/noel2004/ceno/pkg/util/field"
)

// regBits is the register width proved by every branch circuit.
const regBits = 32

// regLimbBits is the limb width of the register cells.  The ordering
// gadgets require byte limbs, so every branch circuit uses them.
const regLimbBits = 8

// BranchConfig holds the cells of the common branch frame: the program
// counter before and after the step, the branch immediate, and the two
// source register operands.
type BranchConfig[F field.Element[F]] struct {
	// Pc is the program counter before the step.
	Pc schema.WitIn
	// NextPc is the program counter after the step.
	NextPc schema.WitIn
	// Imm is the sign-extended branch immediate.
	Imm schema.WitIn
	// Rs1 is the first source register value, as byte limbs.
	Rs1 *gadgets.UInt[F]
	// Rs2 is the second source register value, as byte limbs.
	Rs2 *gadgets.UInt[F]
}

// constructBranchFrame allocates the cells common to every branch circuit.
// The next program counter is constrained separately, once the calling
// circuit has constructed its branch decision.
func constructBranchFrame[F field.Element[F]](cb *schema.CircuitBuilder[F]) (*BranchConfig[F], error) {
	var (
		err    error
		config = &BranchConfig[F]{}
	)
	//
	config.Pc = cb.CreateWitIn("pc")
	config.NextPc = cb.CreateWitIn("next_pc")
	config.Imm = cb.CreateWitIn("imm")
	//
	if config.Rs1, err = gadgets.New("rs1", cb, regBits, regLimbBits); err != nil {
		return nil, err
	}
	//
	if config.Rs2, err = gadgets.New("rs2", cb, regBits, regLimbBits); err != nil {
		return nil, err
	}
	//
	return config, nil
}

// constrainNextPc ties the next program counter to the branch decision:
// next_pc = taken * (pc + imm) + (1 - taken) * (pc + 4).  The taken bit is
// the calling circuit's comparison output, hence already bit constrained.
func (p *BranchConfig[F]) constrainNextPc(cb *schema.CircuitBuilder[F], taken ir.Expr[F]) error {
	var (
		pc       = schema.WitExpr[F](p.Pc)
		target   = ir.Sum(pc, schema.WitExpr[F](p.Imm))
		fallthru = ir.Sum(pc, ir.Const64[F](emulator.PCStep))
		notTaken = ir.Subtract(ir.Const64[F](1), taken)
	)
	//
	return cb.RequireZero("next_pc_check",
		ir.Subtract(schema.WitExpr[F](p.NextPc),
			ir.Product(taken, target),
			ir.Product(notTaken, fallthru)))
}

// assign fills the branch frame from one step, recording the range queries
// the register limbs make, and returns the byte limbs of both source
// registers for the comparison assignment.
func (p *BranchConfig[F]) assign(row []F, mlt *trace.Multiplicity,
	step emulator.StepRecord) ([]uint64, []uint64) {
	//
	row[p.Pc.Id] = field.Uint64[F](step.PC)
	row[p.NextPc.Id] = field.Uint64[F](step.NextPC)
	row[p.Imm.Id] = field.Int64[F](step.Imm)
	//
	var (
		rs1 = gadgets.Limbs(step.Rs1, p.Rs1.NumCells(), regLimbBits)
		rs2 = gadgets.Limbs(step.Rs2, p.Rs2.NumCells(), regLimbBits)
	)
	//
	p.Rs1.Assign(row, mlt, rs1)
	p.Rs2.Assign(row, mlt, rs2)
	//
	return rs1, rs2
}
