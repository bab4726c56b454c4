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

	"github.com/noel2004/ceno/pkg/emulator"
	"github.com/noel2004/ceno/pkg/trace"
	"github.com/noel2004/ceno/pkg/util/collection/omap"
	"github.com/noel2004/ceno/pkg/util/field"
)

// WitnessSet collects the witness matrix of every assigned circuit, along
// with the lookup multiplicities those matrices imply.  It is a two phase
// object: opcode circuits are assigned whilst collecting, after which
// FinalizeLkMultiplicities (exactly once) merges the per-circuit
// multiplicities into the combined table, and only then can table circuits
// be assigned against that table.  Operations outside this order fail with
// a PhaseError.
type WitnessSet[F field.Element[F]] struct {
	witnesses *omap.Map[trace.RowMajorMatrix[F]]
	// lkMlts holds the multiplicity collected per opcode circuit.
	lkMlts *omap.Map[*trace.Multiplicity]
	// combined is nil whilst collecting, and the merged table thereafter.
	combined *trace.Multiplicity
}

// NewWitnessSet constructs an empty witness set in the collecting phase.
func NewWitnessSet[F field.Element[F]]() *WitnessSet[F] {
	return &WitnessSet[F]{
		omap.NewMap[trace.RowMajorMatrix[F]](),
		omap.NewMap[*trace.Multiplicity](),
		nil,
	}
}

// Phase returns the phase this witness set is currently in.
func (p *WitnessSet[F]) Phase() Phase {
	if p.combined == nil {
		return Collecting
	}
	//
	return Finalized
}

// AssignOpcodeCircuit builds the witness matrix of a given opcode circuit,
// one row per execution step, recording the lookup multiplicity the rows
// imply.  This is legal only whilst the witness set is collecting.
//
// This is a function rather than a method because the config type varies
// with the circuit being assigned.
func AssignOpcodeCircuit[F field.Element[F], C any](builder AssignmentBuilder[F],
	ws *WitnessSet[F], systems *ConstraintSystemSet[F], circuit OpcodeCircuit[F, C],
	config C, steps []emulator.StepRecord) error {
	//
	if ws.combined != nil {
		return &PhaseError{"cannot assign an opcode circuit", Finalized}
	}
	//
	cs, ok := systems.ConstraintSystem(circuit.Name())
	if !ok {
		return fmt.Errorf("circuit %q not registered", circuit.Name())
	}
	//
	matrix := trace.NewRowMajorMatrix[F](uint(len(steps)), cs.NumWitIn)
	//
	mlt, err := assignSteps(builder, circuit, config, matrix, steps)
	if err != nil {
		return err
	}
	//
	ws.insertWitness(circuit.Name(), matrix)
	//
	if !ws.lkMlts.Insert(circuit.Name(), mlt) {
		panic(fmt.Sprintf("multiplicity of %q collected twice", circuit.Name()))
	}
	//
	return nil
}

// FinalizeLkMultiplicities merges the per-circuit multiplicities into the
// combined table and moves this witness set into the finalized phase.  At
// least one opcode circuit must have been assigned, and finalizing twice is
// illegal.
func (p *WitnessSet[F]) FinalizeLkMultiplicities() error {
	if p.combined != nil {
		return &PhaseError{"cannot finalize the lookup multiplicities again", Finalized}
	}
	//
	if p.lkMlts.Len() == 0 {
		return &PhaseError{"cannot finalize the lookup multiplicities with no opcode circuit assigned", Collecting}
	}
	//
	combined := trace.NewMultiplicity()
	//
	for _, name := range p.lkMlts.Keys() {
		mlt, _ := p.lkMlts.Get(name)
		combined.Merge(mlt)
	}
	//
	p.combined = combined
	//
	return nil
}

// CombinedMultiplicity returns the merged multiplicity table, which exists
// only once this witness set is finalized.
func (p *WitnessSet[F]) CombinedMultiplicity() (*trace.Multiplicity, bool) {
	return p.combined, p.combined != nil
}

// AssignTableCircuit builds the witness matrix of a given table circuit
// from the combined multiplicity table.  This is legal only once the
// witness set is finalized.
//
// This is a function rather than a method because the config type varies
// with the circuit being assigned.
func AssignTableCircuit[F field.Element[F], C any](ws *WitnessSet[F],
	systems *ConstraintSystemSet[F], circuit TableCircuit[F, C], config C) error {
	//
	if ws.combined == nil {
		return &PhaseError{"cannot assign a table circuit", Collecting}
	}
	//
	cs, ok := systems.ConstraintSystem(circuit.Name())
	if !ok {
		return fmt.Errorf("circuit %q not registered", circuit.Name())
	}
	//
	matrix, err := circuit.AssignInstances(config, cs.NumWitIn, ws.combined)
	if err != nil {
		return err
	}
	//
	ws.insertWitness(circuit.Name(), matrix)
	//
	return nil
}

// Witness returns the witness matrix assigned under a given circuit name.
func (p *WitnessSet[F]) Witness(name string) (trace.RowMajorMatrix[F], error) {
	matrix, ok := p.witnesses.Get(name)
	//
	if !ok {
		return matrix, fmt.Errorf("circuit %q: %w", name, ErrWitnessNotFound)
	}
	//
	return matrix, nil
}

// Names returns the names of all assigned circuits in lexicographic order.
func (p *WitnessSet[F]) Names() []string {
	return p.witnesses.Keys()
}

func (p *WitnessSet[F]) insertWitness(name string, matrix trace.RowMajorMatrix[F]) {
	if !p.witnesses.Insert(name, matrix) {
		panic(fmt.Sprintf("circuit %q assigned twice", name))
	}
}
