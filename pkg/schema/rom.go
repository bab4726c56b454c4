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
package schema

import (
	"fmt"
)

// ROMType identifies one of the fixed read-only tables shared by every
// circuit in a constraint system set.  Opcode circuits query these tables
// via lookup arguments, whilst table circuits serve them (i.e. commit to
// their contents along with a multiplicity column).
type ROMType uint8

const (
	// U5 is the range table for values in [0, 2⁵).
	U5 ROMType = iota
	// U16 is the range table for values in [0, 2¹⁶).
	U16
	// And is the bytewise conjunction table, mapping every pair of bytes to
	// its conjunction.
	And
	// Ltu is the byte comparison table, mapping every pair of bytes (a, b)
	// to 1 if a < b and 0 otherwise.
	Ltu
)

// NumROMTypes gives the number of read-only table kinds.
const NumROMTypes = 4

// NumArgs returns the width of tuples queried against (and served by) this
// table: one for the range tables, two (packed key and result) for the byte
// pair tables.
func (p ROMType) NumArgs() uint {
	switch p {
	case U5, U16:
		return 1
	case And, Ltu:
		return 2
	default:
		panic(fmt.Sprintf("unknown table %d", p))
	}
}

// TableSize returns the number of entries in this table.
func (p ROMType) TableSize() uint {
	switch p {
	case U5:
		return 1 << 5
	case U16:
		return 1 << 16
	case And, Ltu:
		// One entry per pair of bytes.
		return 1 << 16
	default:
		panic(fmt.Sprintf("unknown table %d", p))
	}
}

// Pack encodes the raw operands of a query against this table into the
// uint64 key under which multiplicities are accumulated: the value itself
// for the range tables, a·2⁸ + b for the byte pair tables.
func (p ROMType) Pack(args ...uint64) uint64 {
	switch p {
	case U5, U16:
		if len(args) != 1 {
			panic(fmt.Sprintf("table %s expects 1 operand, got %d", p, len(args)))
		}
		//
		return args[0]
	case And, Ltu:
		if len(args) != 2 {
			panic(fmt.Sprintf("table %s expects 2 operands, got %d", p, len(args)))
		}
		//
		return args[0]<<8 | args[1]
	default:
		panic(fmt.Sprintf("unknown table %d", p))
	}
}

func (p ROMType) String() string {
	switch p {
	case U5:
		return "U5"
	case U16:
		return "U16"
	case And:
		return "AND"
	case Ltu:
		return "LTU"
	default:
		return fmt.Sprintf("ROM(%d)", uint8(p))
	}
}
