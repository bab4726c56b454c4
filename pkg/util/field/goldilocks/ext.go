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
package goldilocks

import (
	"fmt"
	"math/big"
)

// nonResidue is the quadratic non-residue 7 defining the extension as
// F[X]/(X² - 7).
var nonResidue = Element{}.SetUint64(7)

// Ext is an element a0 + a1·X of the quadratic extension F[X]/(X² - 7) of
// the Goldilocks field.  A 64-bit base field is too small to sample verifier
// challenges from, so challenges are drawn from this extension instead.  Ext
// conforms to both the field.Element and field.Extension interfaces, meaning
// any component generic over field.Element can be instantiated with it
// directly.
type Ext struct {
	A0, A1 Element
}

// Add x + y
func (x Ext) Add(y Ext) Ext {
	return Ext{x.A0.Add(y.A0), x.A1.Add(y.A1)}
}

// Cmp returns 1 if x > y, 0 if x = y, and -1 if x < y, ordering
// lexicographically by (a1, a0).
func (x Ext) Cmp(y Ext) int {
	if c := x.A1.Cmp(y.A1); c != 0 {
		return c
	}
	//
	return x.A0.Cmp(y.A0)
}

// Inverse x⁻¹, or 0 if x = 0.  Since X² - 7 is irreducible, the inverse is
// the conjugate scaled by (a0² - 7·a1²)⁻¹.
func (x Ext) Inverse() Ext {
	denom := x.A0.Mul(x.A0).Sub(nonResidue.Mul(x.A1.Mul(x.A1)))
	denom = denom.Inverse()
	//
	return Ext{x.A0.Mul(denom), x.A1.Neg().Mul(denom)}
}

// IsOne implementation for the Element interface
func (x Ext) IsOne() bool {
	return x.A0.IsOne() && x.A1.IsZero()
}

// IsZero implementation for the Element interface
func (x Ext) IsZero() bool {
	return x.A0.IsZero() && x.A1.IsZero()
}

// IsUint64 implementation for the Element interface
func (x Ext) IsUint64() bool {
	return x.A1.IsZero() && x.A0.IsUint64()
}

// Modulus returns the characteristic of the extension, i.e. the base field
// modulus.
func (x Ext) Modulus() *big.Int {
	return x.A0.Modulus()
}

// Mul x * y, reducing X² to 7.
func (x Ext) Mul(y Ext) Ext {
	a0 := x.A0.Mul(y.A0).Add(nonResidue.Mul(x.A1.Mul(y.A1)))
	a1 := x.A0.Mul(y.A1).Add(x.A1.Mul(y.A0))
	//
	return Ext{a0, a1}
}

// Sub x - y
func (x Ext) Sub(y Ext) Ext {
	return Ext{x.A0.Sub(y.A0), x.A1.Sub(y.A1)}
}

// SetBase implementation for the Extension interface.
func (x Ext) SetBase(val Element) Ext {
	return Ext{val, Element{}}
}

// SetBytes initialises this value from up to 16 big-endian bytes, where the
// leading bytes (if any) hold a1 and the trailing eight bytes hold a0.
func (x Ext) SetBytes(bytes []byte) Ext {
	var a0, a1 Element
	//
	if n := len(bytes); n > 8 {
		a1 = a1.SetBytes(bytes[:n-8])
		a0 = a0.SetBytes(bytes[n-8:])
	} else {
		a0 = a0.SetBytes(bytes)
	}
	//
	return Ext{a0, a1}
}

// SetUint64 implementation for the Element interface.
func (x Ext) SetUint64(val uint64) Ext {
	return Ext{Element{}.SetUint64(val), Element{}}
}

// Bytes returns the big-endian encoded value of this element as a1 followed
// by a0.
func (x Ext) Bytes() []byte {
	return append(x.A1.Bytes(), x.A0.Bytes()...)
}

// Uint64 returns the numerical value of x, assuming it lies in the base
// field and fits.
func (x Ext) Uint64() uint64 {
	if !x.A1.IsZero() {
		panic(fmt.Errorf("cannot convert to uint64: %s", x.String()))
	}
	//
	return x.A0.Uint64()
}

func (x Ext) String() string {
	if x.A1.IsZero() {
		return x.A0.String()
	}
	//
	return fmt.Sprintf("%s+%s·X", x.A0.String(), x.A1.String())
}

// Text returns the numerical value of x in the given base.
func (x Ext) Text(base int) string {
	if x.A1.IsZero() {
		return x.A0.Text(base)
	}
	//
	return fmt.Sprintf("%s+%s·X", x.A0.Text(base), x.A1.Text(base))
}
