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
package tables

import (
	"fmt"
	"strings"

	"github.com/noel2004/ceno/pkg/ir"
	"github.com/noel2004/ceno/pkg/schema"
	"github.com/noel2004/ceno/pkg/trace"
	"github.com/noel2004/ceno/pkg/util/field"
)

// BytePairTableCircuit serves one of the byte pair tables, whose rows map
// every pair of bytes (packed as a·2⁸ + b) to the result of a bytewise
// operation: conjunction for the AND table, unsigned comparison for the LTU
// table.  Which operation is determined by the table kind this circuit was
// constructed with.
type BytePairTableCircuit[F field.Element[F]] struct {
	rom schema.ROMType
}

// BytePairTableConfig identifies the cells allocated whilst constructing a
// byte pair table circuit.
type BytePairTableConfig struct {
	// Key is the fixed column holding the packed operand pair.
	Key schema.Fixed
	// Res is the fixed column holding the operation result.
	Res schema.Fixed
	// Mlt is the multiplicity column.
	Mlt schema.WitIn
}

// NewBytePairTableCircuit constructs the table circuit serving a given byte
// pair table.  This panics if the given table is not a byte pair table.
func NewBytePairTableCircuit[F field.Element[F]](rom schema.ROMType) BytePairTableCircuit[F] {
	if rom != schema.And && rom != schema.Ltu {
		panic(fmt.Sprintf("%s is not a byte pair table", rom))
	}
	//
	return BytePairTableCircuit[F]{rom}
}

// Name implementation for the zkvm.TableCircuit interface.
func (p BytePairTableCircuit[F]) Name() string {
	return strings.ToLower(p.rom.String())
}

// ConstructCircuit implementation for the zkvm.TableCircuit interface.
func (p BytePairTableCircuit[F]) ConstructCircuit(cb *schema.CircuitBuilder[F]) (*BytePairTableConfig, error) {
	config := &BytePairTableConfig{}
	//
	err := cb.Namespace(p.Name(), func(cb *schema.CircuitBuilder[F]) error {
		config.Key = cb.CreateFixed("key")
		config.Res = cb.CreateFixed("res")
		config.Mlt = cb.CreateWitIn("mlt")
		//
		values := []ir.Expr[F]{
			schema.FixedExpr[F](config.Key),
			schema.FixedExpr[F](config.Res),
		}
		//
		return cb.LkTableRecord(p.rom, values, config.Mlt)
	})
	//
	return config, err
}

// GenerateFixedTraces implementation for the zkvm.TableCircuit interface.
func (p BytePairTableCircuit[F]) GenerateFixedTraces(config *BytePairTableConfig, numFixed uint) trace.RowMajorMatrix[F] {
	return trace.Generate(p.rom.TableSize(), numFixed, func(row uint, cells []F) {
		a, b := uint64(row)>>8, uint64(row)&0xff
		//
		cells[config.Key.Id] = field.Uint64[F](uint64(row))
		cells[config.Res.Id] = field.Uint64[F](p.eval(a, b))
	})
}

// AssignInstances implementation for the zkvm.TableCircuit interface.
func (p BytePairTableCircuit[F]) AssignInstances(config *BytePairTableConfig, numWitIn uint,
	combined *trace.Multiplicity) (trace.RowMajorMatrix[F], error) {
	//
	matrix := trace.Generate(p.rom.TableSize(), numWitIn, func(row uint, cells []F) {
		cells[config.Mlt.Id] = field.Uint64[F](combined.CountOf(p.rom, uint64(row)))
	})
	//
	return matrix, nil
}

// eval applies this table's operation to a given pair of bytes.
func (p BytePairTableCircuit[F]) eval(a uint64, b uint64) uint64 {
	switch p.rom {
	case schema.And:
		return a & b
	case schema.Ltu:
		if a < b {
			return 1
		}
		//
		return 0
	default:
		panic("unreachable")
	}
}
