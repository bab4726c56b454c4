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
	"github.com/noel2004/ceno/pkg/trace"
	"github.com/noel2004/ceno/pkg/util/collection/omap"
	"github.com/noel2004/ceno/pkg/util/field"
)

// VerifyingKey holds everything a verifier needs for one circuit, namely
// its constraint system.
type VerifyingKey[F field.Element[F]] struct {
	// Cs is the circuit's constraint system.
	Cs *schema.ConstraintSystem[F]
}

// ProvingKey extends a circuit's verifying key with its fixed trace, which
// is nil for opcode circuits.
type ProvingKey[F field.Element[F]] struct {
	// Vk is the circuit's verifying key.
	Vk VerifyingKey[F]
	// FixedTrace holds the circuit's precomputed table contents (table
	// circuits only).
	FixedTrace *trace.RowMajorMatrix[F]
}

// ZKVMProvingKey holds the proving key of every registered circuit, in
// lexicographic name order.  Proving keys are produced by
// ConstraintSystemSet.KeyGen and persist via MarshalBinary.
type ZKVMProvingKey[F field.Element[F]] struct {
	keys *omap.Map[ProvingKey[F]]
}

func newZKVMProvingKey[F field.Element[F]]() *ZKVMProvingKey[F] {
	return &ZKVMProvingKey[F]{omap.NewMap[ProvingKey[F]]()}
}

// Names returns the names of all keyed circuits in lexicographic order.
func (p *ZKVMProvingKey[F]) Names() []string {
	return p.keys.Keys()
}

// ProvingKey returns the proving key of a given circuit (if any).
func (p *ZKVMProvingKey[F]) ProvingKey(name string) (ProvingKey[F], bool) {
	return p.keys.Get(name)
}

// VerifyingKey derives the verifying key set from this proving key set by
// dropping every fixed trace.
func (p *ZKVMProvingKey[F]) VerifyingKey() *ZKVMVerifyingKey[F] {
	key := &ZKVMVerifyingKey[F]{omap.NewMap[VerifyingKey[F]]()}
	//
	for _, name := range p.keys.Keys() {
		pk, _ := p.keys.Get(name)
		key.keys.Insert(name, pk.Vk)
	}
	//
	return key
}

func (p *ZKVMProvingKey[F]) insert(name string, pk ProvingKey[F]) {
	if !p.keys.Insert(name, pk) {
		panic(fmt.Sprintf("proving key of %q generated twice", name))
	}
}

// ZKVMVerifyingKey holds the verifying key of every registered circuit, in
// lexicographic name order.
type ZKVMVerifyingKey[F field.Element[F]] struct {
	keys *omap.Map[VerifyingKey[F]]
}

// Names returns the names of all keyed circuits in lexicographic order.
func (p *ZKVMVerifyingKey[F]) Names() []string {
	return p.keys.Keys()
}

// VK returns the verifying key of a given circuit.
func (p *ZKVMVerifyingKey[F]) VK(name string) (VerifyingKey[F], error) {
	vk, ok := p.keys.Get(name)
	//
	if !ok {
		return vk, fmt.Errorf("circuit %q: %w", name, ErrVKNotFound)
	}
	//
	return vk, nil
}
