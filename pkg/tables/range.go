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

// Package tables provides the table circuits serving the read-only tables
// which opcode circuits query.  Every table circuit enumerates its table's
// contents in fixed columns and carries one witness column of
// multiplicities, assigned from the combined query counts of all opcode
// circuits.
package tables

import (
	"fmt"
	"strings"

	"github.com/noel2004/ceno/pkg/ir"
	"github.com/noel2004/ceno/pkg/schema"
	"github.com/noel2004/ceno/pkg/trace"
	"github.com/noel2004/ceno/pkg/util/field"
)

// RangeTableCircuit serves one of the range tables, whose rows simply
// enumerate [0, 2ⁿ).
type RangeTableCircuit[F field.Element[F]] struct {
	rom schema.ROMType
}

// RangeTableConfig identifies the cells allocated whilst constructing a
// range table circuit.
type RangeTableConfig struct {
	// Value is the fixed column enumerating the table contents.
	Value schema.Fixed
	// Mlt is the multiplicity column.
	Mlt schema.WitIn
}

// NewRangeTableCircuit constructs the table circuit serving a given range
// table.  This panics if the given table is not a range table.
func NewRangeTableCircuit[F field.Element[F]](rom schema.ROMType) RangeTableCircuit[F] {
	if rom != schema.U5 && rom != schema.U16 {
		panic(fmt.Sprintf("%s is not a range table", rom))
	}
	//
	return RangeTableCircuit[F]{rom}
}

// Name implementation for the zkvm.TableCircuit interface.
func (p RangeTableCircuit[F]) Name() string {
	return strings.ToLower(p.rom.String())
}

// ConstructCircuit implementation for the zkvm.TableCircuit interface.
func (p RangeTableCircuit[F]) ConstructCircuit(cb *schema.CircuitBuilder[F]) (*RangeTableConfig, error) {
	config := &RangeTableConfig{}
	//
	err := cb.Namespace(p.Name(), func(cb *schema.CircuitBuilder[F]) error {
		config.Value = cb.CreateFixed("value")
		config.Mlt = cb.CreateWitIn("mlt")
		//
		return cb.LkTableRecord(p.rom, []ir.Expr[F]{schema.FixedExpr[F](config.Value)}, config.Mlt)
	})
	//
	return config, err
}

// GenerateFixedTraces implementation for the zkvm.TableCircuit interface.
func (p RangeTableCircuit[F]) GenerateFixedTraces(config *RangeTableConfig, numFixed uint) trace.RowMajorMatrix[F] {
	return trace.Generate(p.rom.TableSize(), numFixed, func(row uint, cells []F) {
		cells[config.Value.Id] = field.Uint64[F](uint64(row))
	})
}

// AssignInstances implementation for the zkvm.TableCircuit interface.
func (p RangeTableCircuit[F]) AssignInstances(config *RangeTableConfig, numWitIn uint,
	combined *trace.Multiplicity) (trace.RowMajorMatrix[F], error) {
	//
	matrix := trace.Generate(p.rom.TableSize(), numWitIn, func(row uint, cells []F) {
		cells[config.Mlt.Id] = field.Uint64[F](combined.CountOf(p.rom, uint64(row)))
	})
	//
	return matrix, nil
}
