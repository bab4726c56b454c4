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

	"github.com/noel2004/ceno/pkg/schema"
	"github.com/noel2004/ceno/pkg/util/collection/omap"
	"github.com/noel2004/ceno/pkg/util/field"
)

// opcodePrefix qualifies the constraint system name of every opcode
// circuit, distinguishing it in diagnostics from the table circuits.
const opcodePrefix = "riscv_opcode/"

// tablePrefix qualifies the constraint system name of every table circuit.
const tablePrefix = "riscv_table/"

// ConstraintSystemSet holds the constraint system of every registered
// circuit, keyed by circuit name.  Registration is append only: circuits
// are registered once during setup, and the set is read only thereafter.
type ConstraintSystemSet[F field.Element[F]] struct {
	systems *omap.Map[*schema.ConstraintSystem[F]]
}

// NewConstraintSystemSet constructs an empty constraint system set.
func NewConstraintSystemSet[F field.Element[F]]() *ConstraintSystemSet[F] {
	return &ConstraintSystemSet[F]{omap.NewMap[*schema.ConstraintSystem[F]]()}
}

// RegisterOpcodeCircuit constructs a given opcode circuit, registering the
// resulting constraint system under the circuit's name and returning its
// config.  Registering two circuits under one name panics, since this is
// always a programming error rather than a data-dependent failure.
//
// This is a function rather than a method because the config type varies
// with the circuit being registered.
func RegisterOpcodeCircuit[F field.Element[F], C any](set *ConstraintSystemSet[F],
	circuit OpcodeCircuit[F, C]) (C, error) {
	//
	var (
		empty C
		cs    = schema.NewConstraintSystem[F](opcodePrefix + circuit.Name())
	)
	//
	config, err := circuit.ConstructCircuit(schema.NewCircuitBuilder(cs))
	//
	if err != nil {
		return empty, err
	}
	//
	set.insert(circuit.Name(), cs)
	//
	return config, nil
}

// RegisterTableCircuit constructs a given table circuit, registering the
// resulting constraint system under the circuit's name and returning its
// config.  Registering two circuits under one name panics.
func RegisterTableCircuit[F field.Element[F], C any](set *ConstraintSystemSet[F],
	circuit TableCircuit[F, C]) (C, error) {
	//
	var (
		empty C
		cs    = schema.NewConstraintSystem[F](tablePrefix + circuit.Name())
	)
	//
	config, err := circuit.ConstructCircuit(schema.NewCircuitBuilder(cs))
	//
	if err != nil {
		return empty, err
	}
	//
	set.insert(circuit.Name(), cs)
	//
	return config, nil
}

// ConstraintSystem returns the constraint system registered under a given
// circuit name (if any).
func (p *ConstraintSystemSet[F]) ConstraintSystem(name string) (*schema.ConstraintSystem[F], bool) {
	return p.systems.Get(name)
}

// Names returns the names of all registered circuits in lexicographic
// order.
func (p *ConstraintSystemSet[F]) Names() []string {
	return p.systems.Keys()
}

// Len returns the number of registered circuits.
func (p *ConstraintSystemSet[F]) Len() uint {
	return p.systems.Len()
}

// KeyGen pairs every registered constraint system with its fixed trace,
// producing the complete proving key set.  Every registered circuit must
// have been registered with the fixed trace set as well, opcode circuits
// included (their entries are simply empty).
func (p *ConstraintSystemSet[F]) KeyGen(fixed *FixedTraceSet[F]) (*ZKVMProvingKey[F], error) {
	key := newZKVMProvingKey[F]()
	//
	for _, name := range p.systems.Keys() {
		cs, _ := p.systems.Get(name)
		//
		tr, err := fixed.FixedTrace(name)
		if err != nil {
			return nil, err
		}
		//
		key.insert(name, ProvingKey[F]{VerifyingKey[F]{cs}, tr})
	}
	//
	return key, nil
}

func (p *ConstraintSystemSet[F]) insert(name string, cs *schema.ConstraintSystem[F]) {
	if !p.systems.Insert(name, cs) {
		panic(fmt.Sprintf("circuit %q registered twice", name))
	}
}
