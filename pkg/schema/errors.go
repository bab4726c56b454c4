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

// CircuitError indicates a circuit was malformed as it was being
// constructed, for example by range checking against an unsupported
// bitwidth, or querying a table with the wrong number of arguments.  The
// handle identifies the construction site, qualified by any enclosing
// namespaces.
type CircuitError struct {
	// Handle identifies where construction failed.
	Handle string
	// Msg describes the complaint.
	Msg string
}

func (p *CircuitError) Error() string {
	return fmt.Sprintf("circuit error at %s: %s", p.Handle, p.Msg)
}

// Failure indicates a vanishing constraint did not hold on a concrete
// witness row.
type Failure struct {
	// Circuit names the constraint system in question.
	Circuit string
	// Constraint names the violated constraint.
	Constraint string
}

func (p *Failure) Error() string {
	return fmt.Sprintf("constraint \"%s\" of circuit \"%s\" does not hold", p.Constraint, p.Circuit)
}
