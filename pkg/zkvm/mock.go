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
package zkvm

import (
	"fmt"

	"github.com/noel2004/ceno/pkg/ir"
	"github.com/noel2004/ceno/pkg/schema"
	"github.com/noel2004/ceno/pkg/trace"
	"github.com/noel2004/ceno/pkg/util/field"
)

// LookupFailure indicates a table query evaluated to a tuple which is not
// an entry of the queried table.
type LookupFailure struct {
	// Circuit names the constraint system in question.
	Circuit string
	// Index gives the failing query's position within the circuit.
	Index int
	// Table being queried.
	Table schema.ROMType
	// Args is the offending tuple.
	Args []uint64
}

func (p *LookupFailure) Error() string {
	return fmt.Sprintf("lookup %d of circuit \"%s\" queries %v, which is not a %s entry",
		p.Index, p.Circuit, p.Args, p.Table)
}

// MockCheck verifies one witness row directly against a constraint system:
// every vanishing constraint must hold, and every table query must evaluate
// to a genuine entry of the queried table.  Table membership is decided
// semantically rather than through the lookup argument, which makes this the
// oracle of choice for circuit tests.
func MockCheck[F field.Element[F]](cs *schema.ConstraintSystem[F], env ir.Environment[F]) error {
	if err := cs.CheckRow(env); err != nil {
		return err
	}
	//
	for i, lk := range cs.Lookups {
		args := make([]uint64, len(lk.Args))
		huge := false
		//
		for j, e := range lk.Args {
			v := e.EvalAt(env)
			//
			if huge = !v.IsUint64(); huge {
				break
			}
			//
			args[j] = v.Uint64()
		}
		//
		if huge || !romContains(lk.Table, args) {
			return &LookupFailure{cs.Name, i, lk.Table, args}
		}
	}
	//
	return nil
}

// MockCheckMatrix applies MockCheck to every row of a witness matrix, with
// an optional fixed matrix supplying the fixed columns row by row.
func MockCheckMatrix[F field.Element[F]](cs *schema.ConstraintSystem[F],
	witness trace.RowMajorMatrix[F], fixed *trace.RowMajorMatrix[F]) error {
	//
	for i := uint(0); i < witness.NumRows(); i++ {
		env := ir.Environment[F]{Witness: witness.Row(i)}
		//
		if fixed != nil {
			env.Fixed = fixed.Row(i)
		}
		//
		if err := MockCheck(cs, env); err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
	}
	//
	return nil
}

// romContains decides semantic membership of an evaluated tuple in a fixed
// table.
func romContains(rom schema.ROMType, args []uint64) bool {
	switch rom {
	case schema.U5:
		return args[0] < 1<<5
	case schema.U16:
		return args[0] < 1<<16
	case schema.And:
		a, b := args[0]>>8, args[0]&0xff
		//
		return args[0] < 1<<16 && args[1] == a&b
	case schema.Ltu:
		a, b := args[0]>>8, args[0]&0xff
		//
		if args[0] >= 1<<16 {
			return false
		} else if a < b {
			return args[1] == 1
		}
		//
		return args[1] == 0
	default:
		return false
	}
}
