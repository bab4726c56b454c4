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
	"fmt"

	"github.com/noel2004/ceno/pkg/emulator"
	"github.com/noel2004/ceno/pkg/gadgets"
	"github.com/noel2004/ceno/pkg/ir"
	"github.com/noel2004/ceno/pkg/schema"
	"github.com/noel2004/ceno/pkg/trace"
	"github.com/noel2004/ceno/pkg/util/field"
)

// BltuCircuit proves the BLTU and BGEU instructions.  Both kinds share one
// circuit shape, differing only in how the unsigned ordering flag drives
// the branch decision.
type BltuCircuit[F field.Element[F]] struct {
	kind emulator.InsnKind
}

// BltuConfig holds the cells of an unsigned branch-on-ordering circuit.
type BltuConfig[F field.Element[F]] struct {
	// Branch is the common branch frame.
	Branch *BranchConfig[F]
	// Ltu decides rs1 < rs2, comparing as unsigned integers.
	Ltu *gadgets.LtuConfig[F]
}

// NewBltuCircuit constructs the unsigned branch-on-ordering circuit for a
// given kind, which must be BLTU or BGEU.
func NewBltuCircuit[F field.Element[F]](kind emulator.InsnKind) BltuCircuit[F] {
	if kind != emulator.BLTU && kind != emulator.BGEU {
		panic(fmt.Sprintf("%s is not an unsigned ordering branch", kind))
	}
	//
	return BltuCircuit[F]{kind}
}

// Name implementation for the zkvm.OpcodeCircuit interface.
func (p BltuCircuit[F]) Name() string {
	return p.kind.String()
}

// ConstructCircuit implementation for the zkvm.OpcodeCircuit interface.
func (p BltuCircuit[F]) ConstructCircuit(cb *schema.CircuitBuilder[F]) (*BltuConfig[F], error) {
	config := &BltuConfig[F]{}
	//
	err := cb.Namespace(p.Name(), func(cb *schema.CircuitBuilder[F]) error {
		var err error
		//
		if config.Branch, err = constructBranchFrame(cb); err != nil {
			return err
		}
		//
		if config.Ltu, err = config.Branch.Rs1.LtuLimb8(cb, config.Branch.Rs2); err != nil {
			return err
		}
		//
		taken := ir.Expr[F](schema.WitExpr[F](config.Ltu.IsLtu))
		if p.kind == emulator.BGEU {
			taken = ir.Subtract(ir.Const64[F](1), taken)
		}
		//
		return config.Branch.constrainNextPc(cb, taken)
	})
	//
	return config, err
}

// AssignInstance implementation for the zkvm.OpcodeCircuit interface.
func (p BltuCircuit[F]) AssignInstance(config *BltuConfig[F], row []F,
	mlt *trace.Multiplicity, step emulator.StepRecord) error {
	//
	if step.Kind != p.kind {
		return fmt.Errorf("cannot assign a %s step to the %s circuit", step.Kind, p.kind)
	}
	//
	rs1, rs2 := config.Branch.assign(row, mlt, step)
	config.Ltu.Assign(row, mlt, rs1, rs2)
	//
	return nil
}
