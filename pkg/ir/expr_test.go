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
package ir

import (
	"testing"

	"github.com/noel2004/ceno/pkg/util/assert"
	"github.com/noel2004/ceno/pkg/util/field"
	"github.com/noel2004/ceno/pkg/util/field/goldilocks"
)

type F = goldilocks.Element

func Test_Fold_01(t *testing.T) {
	// 1 + 2 ==> 3
	assert.Equal(t, Const64[F](3), Sum(Const64[F](1), Const64[F](2)))
}

func Test_Fold_02(t *testing.T) {
	// w0 + 0 ==> w0
	assert.Equal(t, NewWitnessAccess[F](0), Sum(NewWitnessAccess[F](0), Const64[F](0)))
}

func Test_Fold_03(t *testing.T) {
	// 0 * (w0 + w1) ==> 0
	e := Sum(NewWitnessAccess[F](0), NewWitnessAccess[F](1))
	assert.Equal(t, Const64[F](0), Product(Const64[F](0), e))
}

func Test_Fold_04(t *testing.T) {
	// 1 * w0 ==> w0
	assert.Equal(t, NewWitnessAccess[F](0), Product(Const64[F](1), NewWitnessAccess[F](0)))
}

func Test_Fold_05(t *testing.T) {
	// (w0 + w1) + w2 flattens into a single sum.
	e := Sum(Sum(NewWitnessAccess[F](0), NewWitnessAccess[F](1)), NewWitnessAccess[F](2))
	//
	add, ok := e.(*Add[F])
	assert.True(t, ok)
	assert.Equal(t, 3, len(add.Args))
}

func Test_Fold_06(t *testing.T) {
	// 7 - 3 - 1 ==> 3
	assert.Equal(t, Const64[F](3), Subtract(Const64[F](7), Const64[F](3), Const64[F](1)))
}

func Test_Fold_07(t *testing.T) {
	// w0 - 0 ==> w0
	assert.Equal(t, NewWitnessAccess[F](0), Subtract(NewWitnessAccess[F](0), Const64[F](0)))
}

func Test_Fold_08(t *testing.T) {
	// 2 + w0 + 3 folds constants into one trailing constant.
	e := Sum(Const64[F](2), NewWitnessAccess[F](0), Const64[F](3))
	//
	add, ok := e.(*Add[F])
	assert.True(t, ok)
	assert.Equal(t, 2, len(add.Args))
	assert.Equal(t, Const64[F](5), add.Args[1])
}

func Test_Degree_01(t *testing.T) {
	w0 := NewWitnessAccess[F](0)
	w1 := NewWitnessAccess[F](1)
	//
	assert.Equal(t, uint(0), Const64[F](42).Degree())
	assert.Equal(t, uint(0), NewChallengeAccess[F](0).Degree())
	assert.Equal(t, uint(1), w0.Degree())
	assert.Equal(t, uint(1), Sum(w0, w1).Degree())
	assert.Equal(t, uint(2), Product(w0, w1).Degree())
	assert.Equal(t, uint(2), Sum(Product(w0, w1), w0).Degree())
}

func Test_Eval_01(t *testing.T) {
	// w0 + 2·w1 at [3, 5] ==> 13
	e := Sum(NewWitnessAccess[F](0), Product(Const64[F](2), NewWitnessAccess[F](1)))
	env := Environment[F]{Witness: row(3, 5)}
	//
	assert.Equal(t, uint64(13), e.EvalAt(env).Uint64())
}

func Test_Eval_02(t *testing.T) {
	// w0 - w1 - 1 at [10, 4] ==> 5
	e := Subtract(NewWitnessAccess[F](0), NewWitnessAccess[F](1), Const64[F](1))
	env := Environment[F]{Witness: row(10, 4)}
	//
	assert.Equal(t, uint64(5), e.EvalAt(env).Uint64())
}

func Test_Eval_03(t *testing.T) {
	// f0 · a0 at fixed [7], challenges [3] ==> 21
	e := Product(NewFixedAccess[F](0), NewChallengeAccess[F](0))
	env := Environment[F]{Fixed: row(7), Challenges: row(3)}
	//
	assert.Equal(t, uint64(21), e.EvalAt(env).Uint64())
}

func Test_Eval_04(t *testing.T) {
	// Subtraction wraps around the field order.
	e := Subtract(Const64[F](0), Const64[F](1))
	minusOne := field.Zero[F]().Sub(field.One[F]())
	//
	assert.Equal(t, minusOne, e.EvalAt(Environment[F]{}))
}

func row(vals ...uint64) []F {
	elements := make([]F, len(vals))
	//
	for i, v := range vals {
		elements[i] = field.Uint64[F](v)
	}
	//
	return elements
}
