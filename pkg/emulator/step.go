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

// Package emulator defines the interface between the instruction-set
// emulator and the circuits proving its execution.  The emulator itself is
// an external component: circuits only ever see the step records it emits.
package emulator

// PCStep is the byte width of one (uncompressed) RISC-V instruction, hence
// the program counter increment of any untaken branch.
const PCStep = 4

// InsnKind identifies the instruction class of an execution step.
type InsnKind uint8

const (
	// BEQ branches when rs1 = rs2.
	BEQ InsnKind = iota
	// BNE branches when rs1 ≠ rs2.
	BNE
	// BLT branches when rs1 < rs2, comparing as signed integers.
	BLT
	// BGE branches when rs1 ≥ rs2, comparing as signed integers.
	BGE
	// BLTU branches when rs1 < rs2, comparing as unsigned integers.
	BLTU
	// BGEU branches when rs1 ≥ rs2, comparing as unsigned integers.
	BGEU
)

// String returns the lowercase mnemonic of this instruction kind.
func (k InsnKind) String() string {
	switch k {
	case BEQ:
		return "beq"
	case BNE:
		return "bne"
	case BLT:
		return "blt"
	case BGE:
		return "bge"
	case BLTU:
		return "bltu"
	case BGEU:
		return "bgeu"
	default:
		return "???"
	}
}

// StepRecord describes one retired instruction, as reported by the
// emulator.  One step record becomes one row of the witness matrix of the
// circuit proving its instruction kind.
type StepRecord struct {
	// Cycle gives the position of this step within the execution.
	Cycle uint64
	// Kind of the executed instruction.
	Kind InsnKind
	// PC is the program counter before the step.
	PC uint64
	// NextPC is the program counter after the step.
	NextPC uint64
	// Rs1 is the value read from the first source register.
	Rs1 uint64
	// Rs2 is the value read from the second source register.
	Rs2 uint64
	// Rd is the value written to the destination register (if any).
	Rd uint64
	// Imm is the (sign-extended) immediate of the executed instruction.
	Imm int64
}
