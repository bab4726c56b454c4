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

// BeqCircuit proves the BEQ and BNE instructions.  Both kinds share one
// circuit shape, differing only in how the equality flag drives the branch
// decision.
type BeqCircuit[F field.Element[F]] struct {
	kind emulator.InsnKind
}

// BeqConfig holds the cells of a branch-on-equality circuit.
type BeqConfig[F field.Element[F]] struct {
	// Branch is the common branch frame.
	Branch *BranchConfig[F]
	// IsEqual decides rs1 = rs2.
	IsEqual *gadgets.IsEqualConfig[F]
}

// NewBeqCircuit constructs the branch-on-equality circuit for a given kind,
// which must be BEQ or BNE.
func NewBeqCircuit[F field.Element[F]](kind emulator.InsnKind) BeqCircuit[F] {
	if kind != emulator.BEQ && kind != emulator.BNE {
		panic(fmt.Sprintf("%s is not an equality branch", kind))
	}
	//
	return BeqCircuit[F]{kind}
}

// Name implementation for the zkvm.OpcodeCircuit interface.
func (p BeqCircuit[F]) Name() string {
	return p.kind.String()
}

// ConstructCircuit implementation for the zkvm.OpcodeCircuit interface.
func (p BeqCircuit[F]) ConstructCircuit(cb *schema.CircuitBuilder[F]) (*BeqConfig[F], error) {
	config := &BeqConfig[F]{}
	//
	err := cb.Namespace(p.Name(), func(cb *schema.CircuitBuilder[F]) error {
		var err error
		//
		if config.Branch, err = constructBranchFrame(cb); err != nil {
			return err
		}
		//
		if config.IsEqual, err = config.Branch.Rs1.IsEqual(cb, config.Branch.Rs2); err != nil {
			return err
		}
		//
		taken := ir.Expr[F](schema.WitExpr[F](config.IsEqual.IsEqual))
		if p.kind == emulator.BNE {
			taken = ir.Subtract(ir.Const64[F](1), taken)
		}
		//
		return config.Branch.constrainNextPc(cb, taken)
	})
	//
	return config, err
}

// AssignInstance implementation for the zkvm.OpcodeCircuit interface.
func (p BeqCircuit[F]) AssignInstance(config *BeqConfig[F], row []F,
	mlt *trace.Multiplicity, step emulator.StepRecord) error {
	//
	if step.Kind != p.kind {
		return fmt.Errorf("cannot assign a %s step to the %s circuit", step.Kind, p.kind)
	}
	//
	rs1, rs2 := config.Branch.assign(row, mlt, step)
	config.IsEqual.Assign(row, rs1, rs2)
	//
	return nil
}
