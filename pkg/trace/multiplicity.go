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
package trace

import (
	"fmt"

	"github.com/noel2004/ceno/pkg/schema"
)

// Multiplicity counts, per read-only table, how many times each packed key
// was queried during witness assignment.  Every opcode circuit collects one
// of these alongside its witness matrix; they are then merged key-wise into
// the combined table consumed by the table circuits.  The lookup methods
// mirror those of the circuit builder, and return the table output so
// witness generation can use them directly.
type Multiplicity struct {
	counts [schema.NumROMTypes]map[uint64]uint64
}

// NewMultiplicity constructs an empty multiplicity table.
func NewMultiplicity() *Multiplicity {
	var p Multiplicity
	//
	for i := range p.counts {
		p.counts[i] = make(map[uint64]uint64)
	}
	//
	return &p
}

// AssertUx records one range check of a value known to fit c bits, mirroring
// the builder lowering: widths 5 and 16 count against the matching range
// table, width 8 against the byte conjunction table keyed at (v, 0xff).
func (p *Multiplicity) AssertUx(v uint64, c uint) {
	switch c {
	case 5:
		p.increment(schema.U5, v)
	case 16:
		p.increment(schema.U16, v)
	case 8:
		p.LookupAndByte(v, 0xff)
	default:
		panic(fmt.Sprintf("no range table for %d bit values", c))
	}
}

// LookupAndByte records one query of the byte conjunction table, returning
// its output a & b.
func (p *Multiplicity) LookupAndByte(a uint64, b uint64) uint64 {
	p.increment(schema.And, schema.And.Pack(a, b))
	//
	return a & b
}

// LookupLtuLimb8 records one query of the byte comparison table, returning
// its output: 1 if a < b and 0 otherwise.
func (p *Multiplicity) LookupLtuLimb8(a uint64, b uint64) uint64 {
	p.increment(schema.Ltu, schema.Ltu.Pack(a, b))
	//
	if a < b {
		return 1
	}
	//
	return 0
}

// CountOf returns how often a given packed key was queried against a given
// table.
func (p *Multiplicity) CountOf(rom schema.ROMType, key uint64) uint64 {
	return p.counts[rom][key]
}

// CountsOf returns the full key-to-count map of a given table.
func (p *Multiplicity) CountsOf(rom schema.ROMType) map[uint64]uint64 {
	return p.counts[rom]
}

// Merge folds another multiplicity table into this one, summing counts
// key-wise.  Merging is commutative, hence the order in which per-circuit
// tables are combined does not matter.
func (p *Multiplicity) Merge(other *Multiplicity) {
	for i, counts := range other.counts {
		for key, count := range counts {
			p.counts[i][key] += count
		}
	}
}

func (p *Multiplicity) increment(rom schema.ROMType, key uint64) {
	p.counts[rom][key]++
}
