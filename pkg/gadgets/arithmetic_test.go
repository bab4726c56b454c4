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
package gadgets

import (
	"testing"

	"github.com/noel2004/ceno/pkg/schema"
	"github.com/noel2004/ceno/pkg/trace"
	"github.com/noel2004/ceno/pkg/util/assert"
	"github.com/noel2004/ceno/pkg/zkvm"
)

func Test_Add_01(t *testing.T) {
	cs := schema.NewConstraintSystem[F]("add")
	cb := schema.NewCircuitBuilder(cs)
	//
	a, err := New[F]("a", cb, 64, 16)
	assert.NoError(t, err)
	b, err := New[F]("b", cb, 64, 16)
	assert.NoError(t, err)
	//
	c, err := a.Add("add", cb, b, false)
	assert.NoError(t, err)
	assert.True(t, c.IsDerived())
	assert.Equal(t, 3, len(c.Carries()))
	//
	env := freshRow(cs)
	a.Assign(env.Witness, nil, []uint64{1, 1, 0, 0})
	b.Assign(env.Witness, nil, []uint64{2, 1, 0, 0})
	c.AssignCarries(env.Witness, []uint64{0, 0, 0})
	//
	assert.NoError(t, zkvm.MockCheck(cs, env))
	assertLimbs(t, []uint64{3, 2, 0, 0}, c.Exprs(), env)
}

func Test_Add_02(t *testing.T) {
	var (
		aLimbs = []uint64{0xFFFF, 0xFFFE, 0, 0}
		bLimbs = []uint64{2, 1, 0, 0}
	)
	//
	limbs, carries := AddWitness(aLimbs, bLimbs, 16, false)
	assert.Equal(t, uint64(1), limbs[0])
	assert.Equal(t, uint64(0), limbs[1])
	assert.Equal(t, uint64(1), limbs[2])
	assert.Equal(t, uint64(0), limbs[3])
	assert.Equal(t, uint64(1), carries[0])
	assert.Equal(t, uint64(1), carries[1])
	assert.Equal(t, uint64(0), carries[2])
	//
	cs := schema.NewConstraintSystem[F]("add")
	cb := schema.NewCircuitBuilder(cs)
	//
	a, err := New[F]("a", cb, 64, 16)
	assert.NoError(t, err)
	b, err := New[F]("b", cb, 64, 16)
	assert.NoError(t, err)
	c, err := a.Add("add", cb, b, false)
	assert.NoError(t, err)
	//
	env := freshRow(cs)
	a.Assign(env.Witness, nil, aLimbs)
	b.Assign(env.Witness, nil, bLimbs)
	c.AssignCarries(env.Witness, carries)
	//
	assert.NoError(t, zkvm.MockCheck(cs, env))
	assertLimbs(t, limbs, c.Exprs(), env)
	// a wrong carry leaves a limb expression outside its range table
	c.AssignCarries(env.Witness, []uint64{0, 1, 0})
	assert.Error(t, zkvm.MockCheck(cs, env))
}

func Test_Add_03(t *testing.T) {
	var (
		aLimbs = []uint64{0xFFFF, 0xFFFF, 0xFFFF, 0xFFFF}
		bLimbs = []uint64{1, 0, 0, 0}
	)
	// the true sum is 2^64, which only the top carry can express
	_, carries := AddWitness(aLimbs, bLimbs, 16, true)
	assert.Equal(t, 4, len(carries))
	//
	cs := schema.NewConstraintSystem[F]("add")
	cb := schema.NewCircuitBuilder(cs)
	//
	a, err := New[F]("a", cb, 64, 16)
	assert.NoError(t, err)
	b, err := New[F]("b", cb, 64, 16)
	assert.NoError(t, err)
	c, err := a.Add("add", cb, b, true)
	assert.NoError(t, err)
	assert.Equal(t, 4, len(c.Carries()))
	//
	env := freshRow(cs)
	a.Assign(env.Witness, nil, aLimbs)
	b.Assign(env.Witness, nil, bLimbs)
	c.AssignCarries(env.Witness, carries)
	//
	assert.NoError(t, zkvm.MockCheck(cs, env))
	assertLimbs(t, []uint64{0, 0, 0, 0}, c.Exprs(), env)
	assert.Equal(t, uint64(1), env.Witness[c.Carries()[3].Id].Uint64())
}

func Test_Add_04(t *testing.T) {
	var (
		aLimbs = []uint64{1, 1, 0, 0}
		bLimbs = []uint64{2, 1, 0, 0}
	)
	//
	cs := schema.NewConstraintSystem[F]("add")
	cb := schema.NewCircuitBuilder(cs)
	//
	a, err := New[F]("a", cb, 64, 16)
	assert.NoError(t, err)
	b, err := New[F]("b", cb, 64, 16)
	assert.NoError(t, err)
	c, err := a.Add("add", cb, b, false)
	assert.NoError(t, err)
	// three integers of four limbs each declare twelve range queries
	assert.Equal(t, 12, len(cs.Lookups))
	//
	limbs, carries := AddWitness(aLimbs, bLimbs, 16, false)
	//
	var (
		env = freshRow(cs)
		mlt = trace.NewMultiplicity()
	)
	//
	a.Assign(env.Witness, mlt, aLimbs)
	b.Assign(env.Witness, mlt, bLimbs)
	c.AssignSum(env.Witness, mlt, limbs, carries)
	//
	assert.NoError(t, zkvm.MockCheck(cs, env))
	// every declared query is counted, the sum limbs included: the limb
	// values across a = [1,1,0,0], b = [2,1,0,0] and c = [3,2,0,0] count as
	// 6 + 3 + 2 + 1 = 12
	assert.Equal(t, uint64(6), mlt.CountOf(schema.U16, 0))
	assert.Equal(t, uint64(3), mlt.CountOf(schema.U16, 1))
	assert.Equal(t, uint64(2), mlt.CountOf(schema.U16, 2))
	assert.Equal(t, uint64(1), mlt.CountOf(schema.U16, 3))
}

func Test_AddConst_01(t *testing.T) {
	cs := schema.NewConstraintSystem[F]("add")
	cb := schema.NewCircuitBuilder(cs)
	//
	a, err := New[F]("a", cb, 64, 16)
	assert.NoError(t, err)
	// 0x10002 splits into limbs [2, 1, 0, 0]
	c, err := a.AddConst("addc", cb, constOf(0x10002), false)
	assert.NoError(t, err)
	//
	env := freshRow(cs)
	a.Assign(env.Witness, nil, []uint64{1, 1, 0, 0})
	c.AssignCarries(env.Witness, []uint64{0, 0, 0})
	//
	assert.NoError(t, zkvm.MockCheck(cs, env))
	assertLimbs(t, []uint64{3, 2, 0, 0}, c.Exprs(), env)
}

func Test_Mul_01(t *testing.T) {
	var (
		aLimbs = []uint64{1, 1, 0, 0}
		bLimbs = []uint64{2, 1, 0, 0}
	)
	//
	limbs, carries := MulWitness(aLimbs, bLimbs, 16, false)
	assert.Equal(t, uint64(2), limbs[0])
	assert.Equal(t, uint64(3), limbs[1])
	assert.Equal(t, uint64(1), limbs[2])
	assert.Equal(t, uint64(0), limbs[3])
	//
	cs := schema.NewConstraintSystem[F]("mul")
	cb := schema.NewCircuitBuilder(cs)
	//
	a, err := New[F]("a", cb, 64, 16)
	assert.NoError(t, err)
	b, err := New[F]("b", cb, 64, 16)
	assert.NoError(t, err)
	c, err := a.Mul("mul", cb, b, false)
	assert.NoError(t, err)
	// the product is cell backed, unlike a sum
	assert.False(t, c.IsDerived())
	//
	env := freshRow(cs)
	a.Assign(env.Witness, nil, aLimbs)
	b.Assign(env.Witness, nil, bLimbs)
	c.Assign(env.Witness, nil, limbs)
	c.AssignCarries(env.Witness, carries)
	//
	assert.NoError(t, zkvm.MockCheck(cs, env))
	// a wrong product limb trips the result constraint
	c.Assign(env.Witness, nil, []uint64{2, 3, 2, 0})
	err = zkvm.MockCheck(cs, env)
	assert.Error(t, err)
	//
	_, ok := err.(*schema.Failure)
	assert.True(t, ok)
}

func Test_Mul_02(t *testing.T) {
	var (
		aLimbs = Limbs(1<<63, 4, 16)
		bLimbs = []uint64{2, 0, 0, 0}
	)
	// 2^63 · 2 = 2^64: every product limb wraps to zero and only the top
	// carry records the overflow
	limbs, carries := MulWitness(aLimbs, bLimbs, 16, true)
	assert.Equal(t, uint64(0), limbs[0]+limbs[1]+limbs[2]+limbs[3])
	assert.Equal(t, uint64(1), carries[3])
	//
	cs := schema.NewConstraintSystem[F]("mul")
	cb := schema.NewCircuitBuilder(cs)
	//
	a, err := New[F]("a", cb, 64, 16)
	assert.NoError(t, err)
	b, err := New[F]("b", cb, 64, 16)
	assert.NoError(t, err)
	c, err := a.Mul("mul", cb, b, true)
	assert.NoError(t, err)
	//
	env := freshRow(cs)
	a.Assign(env.Witness, nil, aLimbs)
	b.Assign(env.Witness, nil, bLimbs)
	c.Assign(env.Witness, nil, limbs)
	c.AssignCarries(env.Witness, carries)
	//
	assert.NoError(t, zkvm.MockCheck(cs, env))
}

func Test_Mul_03(t *testing.T) {
	cs := schema.NewConstraintSystem[F]("mul")
	cb := schema.NewCircuitBuilder(cs)
	//
	a, err := New[F]("a", cb, 64, 16)
	assert.NoError(t, err)
	b, err := New[F]("b", cb, 64, 16)
	assert.NoError(t, err)
	// multiplying a derived sum forces materialisation in place
	d, err := a.Add("add", cb, b, false)
	assert.NoError(t, err)
	assert.True(t, d.IsDerived())
	//
	e, err := d.Mul("mul", cb, b, false)
	assert.NoError(t, err)
	assert.False(t, d.IsDerived())
	//
	var (
		aLimbs = []uint64{1, 1, 0, 0}
		bLimbs = []uint64{2, 1, 0, 0}
	)
	//
	dLimbs, dCarries := AddWitness(aLimbs, bLimbs, 16, false)
	eLimbs, eCarries := MulWitness(dLimbs, bLimbs, 16, false)
	//
	env := freshRow(cs)
	a.Assign(env.Witness, nil, aLimbs)
	b.Assign(env.Witness, nil, bLimbs)
	d.AssignCarries(env.Witness, dCarries)
	d.Assign(env.Witness, nil, dLimbs)
	e.Assign(env.Witness, nil, eLimbs)
	e.AssignCarries(env.Witness, eCarries)
	//
	assert.NoError(t, zkvm.MockCheck(cs, env))
	assertLimbs(t, []uint64{6, 7, 2, 0}, e.Exprs(), env)
	// a wrong materialised limb breaks the equality with the prior sum
	d.Assign(env.Witness, nil, []uint64{3, 3, 0, 0})
	assert.Error(t, zkvm.MockCheck(cs, env))
}

func Test_Eq_01(t *testing.T) {
	cs := schema.NewConstraintSystem[F]("eq")
	cb := schema.NewCircuitBuilder(cs)
	//
	a, err := New[F]("a", cb, 32, 8)
	assert.NoError(t, err)
	b, err := New[F]("b", cb, 32, 8)
	assert.NoError(t, err)
	assert.NoError(t, a.Eq("eq", cb, b))
	//
	env := freshRow(cs)
	a.Assign(env.Witness, nil, []uint64{1, 2, 3, 4})
	b.Assign(env.Witness, nil, []uint64{1, 2, 3, 4})
	assert.NoError(t, zkvm.MockCheck(cs, env))
	//
	b.Assign(env.Witness, nil, []uint64{1, 2, 3, 5})
	assert.Error(t, zkvm.MockCheck(cs, env))
}
