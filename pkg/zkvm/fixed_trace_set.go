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

	"github.com/noel2004/ceno/pkg/trace"
	"github.com/noel2004/ceno/pkg/util"
	"github.com/noel2004/ceno/pkg/util/collection/omap"
	"github.com/noel2004/ceno/pkg/util/field"
)

// FixedTraceSet holds the fixed (i.e. precomputed) trace of every
// registered circuit, keyed by circuit name.  Opcode circuits declare no
// fixed columns, so their entries are nil; table circuits hold the
// generated table contents.  Fixed traces depend only on circuit
// construction, never on an execution, and are therefore generated once and
// shared by all proofs.
type FixedTraceSet[F field.Element[F]] struct {
	traces *omap.Map[*trace.RowMajorMatrix[F]]
}

// NewFixedTraceSet constructs an empty fixed trace set.
func NewFixedTraceSet[F field.Element[F]]() *FixedTraceSet[F] {
	return &FixedTraceSet[F]{omap.NewMap[*trace.RowMajorMatrix[F]]()}
}

// RegisterOpcodeFixedTrace records that a given opcode circuit has no fixed
// trace.  Registering the same circuit twice panics.
func RegisterOpcodeFixedTrace[F field.Element[F], C any](set *FixedTraceSet[F],
	circuit OpcodeCircuit[F, C]) {
	//
	set.insert(circuit.Name(), nil)
}

// RegisterTableFixedTrace generates and records the fixed trace of a given
// table circuit, whose constraint system determines the number of fixed
// columns.  Registering the same circuit twice panics.
func RegisterTableFixedTrace[F field.Element[F], C any](set *FixedTraceSet[F],
	systems *ConstraintSystemSet[F], circuit TableCircuit[F, C], config C) error {
	//
	stats := util.NewPerfStats()
	defer stats.Log(fmt.Sprintf("Generating fixed trace of %s", circuit.Name()))
	//
	cs, ok := systems.ConstraintSystem(circuit.Name())
	if !ok {
		return fmt.Errorf("circuit %q not registered", circuit.Name())
	}
	//
	tr := circuit.GenerateFixedTraces(config, cs.NumFixed)
	set.insert(circuit.Name(), &tr)
	//
	return nil
}

// FixedTrace returns the fixed trace registered under a given circuit name,
// which is nil for opcode circuits.
func (p *FixedTraceSet[F]) FixedTrace(name string) (*trace.RowMajorMatrix[F], error) {
	tr, ok := p.traces.Get(name)
	//
	if !ok {
		return nil, fmt.Errorf("circuit %q: %w", name, ErrFixedTraceNotFound)
	}
	//
	return tr, nil
}

// Names returns the names of all registered circuits in lexicographic
// order.
func (p *FixedTraceSet[F]) Names() []string {
	return p.traces.Keys()
}

func (p *FixedTraceSet[F]) insert(name string, tr *trace.RowMajorMatrix[F]) {
	if !p.traces.Insert(name, tr) {
		panic(fmt.Sprintf("fixed trace of %q registered twice", name))
	}
}
