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
	"errors"
	"fmt"
)

// ErrWitnessNotFound is returned when a witness matrix is looked up under a
// circuit name which has not been assigned.
var ErrWitnessNotFound = errors.New("witness not found")

// ErrVKNotFound is returned when a verifying key is looked up under a
// circuit name which has not been registered.
var ErrVKNotFound = errors.New("verifying key not found")

// ErrFixedTraceNotFound is returned when a fixed trace is looked up under a
// circuit name which has not been registered.
var ErrFixedTraceNotFound = errors.New("fixed trace not found")

// Phase identifies the state of a witness set.  Opcode circuits are
// assigned whilst collecting; finalizing the lookup multiplicities (exactly
// once) moves the set into the finalized phase, after which only table
// circuits can be assigned.
type Phase uint8

const (
	// Collecting is the initial phase, during which opcode circuits are
	// assigned and their lookup multiplicities accumulated.
	Collecting Phase = iota
	// Finalized is the terminal phase, entered once the per-circuit
	// multiplicities have been merged into the combined table.
	Finalized
)

// String returns a lowercase name for this phase.
func (p Phase) String() string {
	if p == Collecting {
		return "collecting"
	}
	//
	return "finalized"
}

// PhaseError signals a witness set operation attempted in a phase where it
// is not legal, such as assigning a table circuit before the lookup
// multiplicities were finalized.  Phase errors are never data dependent:
// retrying the same pipeline reproduces them.
type PhaseError struct {
	// Op describes the rejected operation.
	Op string
	// Phase the witness set was in when the operation was attempted.
	Phase Phase
}

func (p *PhaseError) Error() string {
	return fmt.Sprintf("%s in the %s phase", p.Op, p.Phase)
}
