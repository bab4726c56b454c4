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
package riscv

import (
	"errors"
	"testing"

	"github.com/noel2004/ceno/pkg/emulator"
	"github.com/noel2004/ceno/pkg/schema"
	"github.com/noel2004/ceno/pkg/trace"
	"github.com/noel2004/ceno/pkg/util/assert"
	"github.com/noel2004/ceno/pkg/util/field"
	"github.com/noel2004/ceno/pkg/util/field/goldilocks"
	"github.com/noel2004/ceno/pkg/zkvm"
)

type F = goldilocks.Element

// branchStep builds a step record for a branch of a given kind, taking the
// branch decision as ground truth rather than recomputing it.
func branchStep(kind emulator.InsnKind, pc uint64, imm int64,
	rs1 uint64, rs2 uint64, taken bool) emulator.StepRecord {
	//
	next := pc + emulator.PCStep
	if taken {
		next = uint64(int64(pc) + imm)
	}
	//
	return emulator.StepRecord{Kind: kind, PC: pc, NextPC: next, Rs1: rs1, Rs2: rs2, Imm: imm}
}

// assignBranch registers a given branch circuit on its own, assigns the
// given steps through the full pipeline, and returns the pieces the tests
// poke at.
func assignBranch[C any](t *testing.T, circuit zkvm.OpcodeCircuit[F, C],
	steps []emulator.StepRecord) (*schema.ConstraintSystem[F], trace.RowMajorMatrix[F], C) {
	//
	systems := zkvm.NewConstraintSystemSet[F]()
	//
	config, err := zkvm.RegisterOpcodeCircuit(systems, circuit)
	assert.NoError(t, err)
	//
	var (
		ws      = zkvm.NewWitnessSet[F]()
		builder = zkvm.NewAssignmentBuilder[F]().Parallel(false)
	)
	//
	assert.NoError(t, zkvm.AssignOpcodeCircuit(builder, ws, systems, circuit, config, steps))
	assert.NoError(t, ws.FinalizeLkMultiplicities())
	//
	cs, ok := systems.ConstraintSystem(circuit.Name())
	assert.True(t, ok)
	//
	witness, err := ws.Witness(circuit.Name())
	assert.NoError(t, err)
	//
	return cs, witness, config
}

func Test_Beq_01(t *testing.T) {
	steps := []emulator.StepRecord{
		branchStep(emulator.BEQ, 0x1000, 0x80, 42, 42, true),
		branchStep(emulator.BEQ, 0x1004, 0x80, 42, 43, false),
		branchStep(emulator.BEQ, 0x2000, -16, 0xDEADBEEF, 0xDEADBEEF, true),
		branchStep(emulator.BEQ, 0x2000, -16, 0, 0xFFFFFFFF, false),
	}
	//
	cs, witness, config := assignBranch(t, NewBeqCircuit[F](emulator.BEQ), steps)
	assert.Equal(t, "riscv_opcode/beq", cs.Name)
	assert.NoError(t, zkvm.MockCheckMatrix(cs, witness, nil))
	// Taken branch lands on pc + imm
	assert.Equal(t, uint64(0x1080), witness.At(0, config.Branch.NextPc.Id).Uint64())
	// Untaken branch falls through to pc + 4
	assert.Equal(t, uint64(0x1008), witness.At(1, config.Branch.NextPc.Id).Uint64())
	// Backwards branch lands before pc
	assert.Equal(t, uint64(0x1FF0), witness.At(2, config.Branch.NextPc.Id).Uint64())
}

func Test_Beq_02(t *testing.T) {
	steps := []emulator.StepRecord{
		branchStep(emulator.BEQ, 0x1000, 0x80, 7, 7, true),
	}
	//
	cs, witness, config := assignBranch(t, NewBeqCircuit[F](emulator.BEQ), steps)
	// A claimed fall-through on a taken branch must fail the pc check
	witness.Set(0, config.Branch.NextPc.Id, field.Uint64[F](0x1004))
	//
	var failure *schema.Failure
	err := zkvm.MockCheckMatrix(cs, witness, nil)
	assert.Error(t, err)
	assert.True(t, errors.As(err, &failure))
	assert.Equal(t, "beq/next_pc_check", failure.Constraint)
}

func Test_Bne_01(t *testing.T) {
	steps := []emulator.StepRecord{
		branchStep(emulator.BNE, 0x1000, 0x40, 5, 9, true),
		branchStep(emulator.BNE, 0x1004, 0x40, 5, 5, false),
	}
	//
	cs, witness, _ := assignBranch(t, NewBeqCircuit[F](emulator.BNE), steps)
	assert.Equal(t, "riscv_opcode/bne", cs.Name)
	assert.NoError(t, zkvm.MockCheckMatrix(cs, witness, nil))
}

func Test_Bltu_01(t *testing.T) {
	steps := []emulator.StepRecord{
		branchStep(emulator.BLTU, 0x1000, 0x100, 1, 2, true),
		branchStep(emulator.BLTU, 0x1004, 0x100, 2, 1, false),
		branchStep(emulator.BLTU, 0x1008, 0x100, 7, 7, false),
		branchStep(emulator.BLTU, 0x100C, -0x20, 0, 0xFFFFFFFF, true),
		branchStep(emulator.BLTU, 0x1010, 0x100, 0xFFFFFFFF, 0, false),
	}
	//
	cs, witness, _ := assignBranch(t, NewBltuCircuit[F](emulator.BLTU), steps)
	assert.NoError(t, zkvm.MockCheckMatrix(cs, witness, nil))
}

func Test_Bgeu_01(t *testing.T) {
	steps := []emulator.StepRecord{
		branchStep(emulator.BGEU, 0x1000, 0x100, 2, 1, true),
		branchStep(emulator.BGEU, 0x1004, 0x100, 7, 7, true),
		branchStep(emulator.BGEU, 0x1008, 0x100, 1, 2, false),
	}
	//
	cs, witness, _ := assignBranch(t, NewBltuCircuit[F](emulator.BGEU), steps)
	assert.Equal(t, "riscv_opcode/bgeu", cs.Name)
	assert.NoError(t, zkvm.MockCheckMatrix(cs, witness, nil))
}

func Test_Blt_01(t *testing.T) {
	steps := []emulator.StepRecord{
		// -2 < 1
		branchStep(emulator.BLT, 0x1000, 0x100, 0xFFFFFFFE, 1, true),
		// 1 < -2 does not hold
		branchStep(emulator.BLT, 0x1004, 0x100, 1, 0xFFFFFFFE, false),
		// -3 < -2
		branchStep(emulator.BLT, 0x1008, -0x40, 0xFFFFFFFD, 0xFFFFFFFE, true),
		// INT_MIN < INT_MAX
		branchStep(emulator.BLT, 0x100C, 0x100, 0x80000000, 0x7FFFFFFF, true),
		// 7 < 7 does not hold
		branchStep(emulator.BLT, 0x1010, 0x100, 7, 7, false),
	}
	//
	cs, witness, _ := assignBranch(t, NewBltCircuit[F](emulator.BLT), steps)
	assert.Equal(t, "riscv_opcode/blt", cs.Name)
	assert.NoError(t, zkvm.MockCheckMatrix(cs, witness, nil))
}

func Test_Bge_01(t *testing.T) {
	steps := []emulator.StepRecord{
		branchStep(emulator.BGE, 0x1000, 0x100, 1, 0xFFFFFFFE, true),
		branchStep(emulator.BGE, 0x1004, 0x100, 7, 7, true),
		branchStep(emulator.BGE, 0x1008, 0x100, 0xFFFFFFFE, 1, false),
		branchStep(emulator.BGE, 0x100C, 0x100, 0x7FFFFFFF, 0x80000000, true),
	}
	//
	cs, witness, _ := assignBranch(t, NewBltCircuit[F](emulator.BGE), steps)
	assert.NoError(t, zkvm.MockCheckMatrix(cs, witness, nil))
}

func Test_Blt_02(t *testing.T) {
	steps := []emulator.StepRecord{
		branchStep(emulator.BLT, 0x1000, 0x100, 0xFFFFFFFE, 1, true),
	}
	//
	cs, witness, config := assignBranch(t, NewBltCircuit[F](emulator.BLT), steps)
	// Flipping the branch decision must fail the comparison, not just the
	// pc check
	witness.Set(0, config.Lt.IsLt.Id, field.Uint64[F](0))
	assert.Error(t, zkvm.MockCheckMatrix(cs, witness, nil))
}

func Test_Branch_01(t *testing.T) {
	systems := zkvm.NewConstraintSystemSet[F]()
	circuit := NewBeqCircuit[F](emulator.BEQ)
	//
	config, err := zkvm.RegisterOpcodeCircuit(systems, circuit)
	assert.NoError(t, err)
	//
	cs, _ := systems.ConstraintSystem("beq")
	row := make([]F, cs.NumWitIn)
	// Steps of another kind are rejected
	err = circuit.AssignInstance(config, row, trace.NewMultiplicity(),
		branchStep(emulator.BNE, 0x1000, 8, 1, 2, true))
	assert.Error(t, err)
}

func Test_Branch_02(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on wrong instruction kind")
		}
	}()
	//
	NewBeqCircuit[F](emulator.BLT)
}

func Test_Branch_03(t *testing.T) {
	var (
		systems = zkvm.NewConstraintSystemSet[F]()
		fixed   = zkvm.NewFixedTraceSet[F]()
		ws      = zkvm.NewWitnessSet[F]()
		builder = zkvm.NewAssignmentBuilder[F]().Parallel(false)
		//
		beq  = NewBeqCircuit[F](emulator.BEQ)
		bne  = NewBeqCircuit[F](emulator.BNE)
		blt  = NewBltCircuit[F](emulator.BLT)
		bge  = NewBltCircuit[F](emulator.BGE)
		bltu = NewBltuCircuit[F](emulator.BLTU)
		bgeu = NewBltuCircuit[F](emulator.BGEU)
	)
	// Register all six branch circuits
	beqCfg, err := zkvm.RegisterOpcodeCircuit(systems, beq)
	assert.NoError(t, err)
	bneCfg, err := zkvm.RegisterOpcodeCircuit(systems, bne)
	assert.NoError(t, err)
	bltCfg, err := zkvm.RegisterOpcodeCircuit(systems, blt)
	assert.NoError(t, err)
	bgeCfg, err := zkvm.RegisterOpcodeCircuit(systems, bge)
	assert.NoError(t, err)
	bltuCfg, err := zkvm.RegisterOpcodeCircuit(systems, bltu)
	assert.NoError(t, err)
	bgeuCfg, err := zkvm.RegisterOpcodeCircuit(systems, bgeu)
	assert.NoError(t, err)
	//
	assert.Equal(t, []string{"beq", "bge", "bgeu", "blt", "bltu", "bne"}, systems.Names())
	//
	zkvm.RegisterOpcodeFixedTrace(fixed, beq)
	zkvm.RegisterOpcodeFixedTrace(fixed, bne)
	zkvm.RegisterOpcodeFixedTrace(fixed, blt)
	zkvm.RegisterOpcodeFixedTrace(fixed, bge)
	zkvm.RegisterOpcodeFixedTrace(fixed, bltu)
	zkvm.RegisterOpcodeFixedTrace(fixed, bgeu)
	// Assign one execution per circuit
	assert.NoError(t, zkvm.AssignOpcodeCircuit(builder, ws, systems, beq, beqCfg,
		[]emulator.StepRecord{branchStep(emulator.BEQ, 0x1000, 8, 3, 3, true)}))
	assert.NoError(t, zkvm.AssignOpcodeCircuit(builder, ws, systems, bne, bneCfg,
		[]emulator.StepRecord{branchStep(emulator.BNE, 0x1000, 8, 3, 4, true)}))
	assert.NoError(t, zkvm.AssignOpcodeCircuit(builder, ws, systems, blt, bltCfg,
		[]emulator.StepRecord{branchStep(emulator.BLT, 0x1000, 8, 0xFFFFFFFF, 0, true)}))
	assert.NoError(t, zkvm.AssignOpcodeCircuit(builder, ws, systems, bge, bgeCfg,
		[]emulator.StepRecord{branchStep(emulator.BGE, 0x1000, 8, 0, 0xFFFFFFFF, true)}))
	assert.NoError(t, zkvm.AssignOpcodeCircuit(builder, ws, systems, bltu, bltuCfg,
		[]emulator.StepRecord{branchStep(emulator.BLTU, 0x1000, 8, 1, 2, true)}))
	assert.NoError(t, zkvm.AssignOpcodeCircuit(builder, ws, systems, bgeu, bgeuCfg,
		[]emulator.StepRecord{branchStep(emulator.BGEU, 0x1000, 8, 2, 1, true)}))
	//
	assert.NoError(t, ws.FinalizeLkMultiplicities())
	// Every witness satisfies its own circuit
	for _, name := range ws.Names() {
		cs, ok := systems.ConstraintSystem(name)
		assert.True(t, ok)
		//
		witness, err := ws.Witness(name)
		assert.NoError(t, err)
		assert.NoError(t, zkvm.MockCheckMatrix(cs, witness, nil))
	}
	// Range checking a zero limb queries the byte table under key 0x00ff,
	// and every step above has at least one zero limb in rs1 or rs2.
	combined, ok := ws.CombinedMultiplicity()
	assert.True(t, ok)
	assert.True(t, combined.CountOf(schema.And, 0xff) > 0)
	// Key generation covers all six circuits
	pk, err := systems.KeyGen(fixed)
	assert.NoError(t, err)
	assert.Equal(t, []string{"beq", "bge", "bgeu", "blt", "bltu", "bne"}, pk.Names())
}
