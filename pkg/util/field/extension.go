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
package field

// An Extension of a prime-order field.  Extension elements are themselves
// field elements, and are used wherever values must be drawn from a space
// larger than the base field (e.g. verifier challenges over a 64-bit field).
// The parameter F identifies the base field, whilst E identifies the
// extension itself.
type Extension[F Element[F], E any] interface {
	Element[E]
	// SetBase initialises this value from an element of the base field.
	SetBase(F) E
}

// Embed a base field element into a given extension of that field.
func Embed[F Element[F], E Extension[F, E]](val F) E {
	var element E
	//
	return element.SetBase(val)
}

// Lift an array of base field elements into a given extension of that field.
func Lift[F Element[F], E Extension[F, E]](vals []F) []E {
	elements := make([]E, len(vals))
	//
	for i, v := range vals {
		elements[i] = Embed[F, E](v)
	}
	//
	return elements
}
