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
	"github.com/noel2004/ceno/pkg/emulator"
	"github.com/noel2004/ceno/pkg/schema"
	"github.com/noel2004/ceno/pkg/tables"
	"github.com/noel2004/ceno/pkg/util/field"
	"github.com/noel2004/ceno/pkg/zkvm"
)

// RegisterAll registers every built-in circuit: the six branch circuits plus
// the four table circuits serving the lookups they make.  Fixed traces are
// generated as part of registration, so the resulting sets are ready for key
// generation.  Configs are dropped, hence this suits diagnostics and key
// generation rather than witness assignment, which needs the config of each
// circuit it assigns.
func RegisterAll[F field.Element[F]](systems *zkvm.ConstraintSystemSet[F], fixed *zkvm.FixedTraceSet[F]) error {
	if err := registerOpcode(systems, fixed, NewBeqCircuit[F](emulator.BEQ)); err != nil {
		return err
	}
	//
	if err := registerOpcode(systems, fixed, NewBeqCircuit[F](emulator.BNE)); err != nil {
		return err
	}
	//
	if err := registerOpcode(systems, fixed, NewBltCircuit[F](emulator.BLT)); err != nil {
		return err
	}
	//
	if err := registerOpcode(systems, fixed, NewBltCircuit[F](emulator.BGE)); err != nil {
		return err
	}
	//
	if err := registerOpcode(systems, fixed, NewBltuCircuit[F](emulator.BLTU)); err != nil {
		return err
	}
	//
	if err := registerOpcode(systems, fixed, NewBltuCircuit[F](emulator.BGEU)); err != nil {
		return err
	}
	//
	if err := registerTable(systems, fixed, tables.NewRangeTableCircuit[F](schema.U5)); err != nil {
		return err
	}
	//
	if err := registerTable(systems, fixed, tables.NewRangeTableCircuit[F](schema.U16)); err != nil {
		return err
	}
	//
	if err := registerTable(systems, fixed, tables.NewBytePairTableCircuit[F](schema.And)); err != nil {
		return err
	}
	//
	return registerTable(systems, fixed, tables.NewBytePairTableCircuit[F](schema.Ltu))
}

func registerOpcode[F field.Element[F], C any](systems *zkvm.ConstraintSystemSet[F],
	fixed *zkvm.FixedTraceSet[F], circuit zkvm.OpcodeCircuit[F, C]) error {
	//
	if _, err := zkvm.RegisterOpcodeCircuit(systems, circuit); err != nil {
		return err
	}
	//
	zkvm.RegisterOpcodeFixedTrace(fixed, circuit)
	//
	return nil
}

func registerTable[F field.Element[F], C any](systems *zkvm.ConstraintSystemSet[F],
	fixed *zkvm.FixedTraceSet[F], circuit zkvm.TableCircuit[F, C]) error {
	//
	config, err := zkvm.RegisterTableCircuit(systems, circuit)
	//
	if err != nil {
		return err
	}
	//
	return zkvm.RegisterTableFixedTrace(fixed, systems, circuit, config)
}
