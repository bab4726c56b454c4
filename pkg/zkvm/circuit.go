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
	"github.com/noel2004/ceno/pkg/emulator"
	"github.com/noel2004/ceno/pkg/schema"
	"github.com/noel2004/ceno/pkg/trace"
	"github.com/noel2004/ceno/pkg/util/field"
)

// OpcodeCircuit is the capability interface implemented by every
// instruction circuit.  One row of the circuit's witness matrix proves one
// execution of the instruction, with the config (an arbitrary struct of
// cells allocated during construction) carrying cell identities over to
// per-step assignment.
type OpcodeCircuit[F field.Element[F], C any] interface {
	// Name returns the name of this circuit, which must be unique amongst
	// all registered circuits.
	Name() string
	// ConstructCircuit declares every cell, constraint and table query of
	// this circuit against a given builder, returning the config consumed
	// during assignment.
	ConstructCircuit(cb *schema.CircuitBuilder[F]) (C, error)
	// AssignInstance fills one witness row from one execution step,
	// recording every table query the row makes against the given
	// multiplicity.
	AssignInstance(config C, row []F, mlt *trace.Multiplicity, step emulator.StepRecord) error
}

// TableCircuit is the capability interface implemented by every circuit
// serving a read-only table.  Its fixed trace enumerates the table contents
// (one row per entry); its witness matrix holds the multiplicity with which
// every entry was queried across all opcode circuits.
type TableCircuit[F field.Element[F], C any] interface {
	// Name returns the name of this circuit, which must be unique amongst
	// all registered circuits.
	Name() string
	// ConstructCircuit declares the served table against a given builder,
	// returning the config consumed during trace generation and assignment.
	ConstructCircuit(cb *schema.CircuitBuilder[F]) (C, error)
	// GenerateFixedTraces builds the precomputed table contents as a matrix
	// of numFixed columns.
	GenerateFixedTraces(config C, numFixed uint) trace.RowMajorMatrix[F]
	// AssignInstances builds the full witness matrix (of numWitIn columns)
	// from the combined multiplicity table, writing a count of zero for
	// entries which were never queried.
	AssignInstances(config C, numWitIn uint, combined *trace.Multiplicity) (trace.RowMajorMatrix[F], error)
}
