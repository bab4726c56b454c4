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
	"github.com/noel2004/ceno/pkg/util/field"
)

// RowMajorMatrix is a dense matrix of field elements laid out row by row.
// Witness matrices hold one row per execution occurrence (opcode circuits)
// or per table entry (table circuits); fixed matrices hold precomputed table
// contents.  Fields are exported so matrices survive gob encoding as part of
// a proving key.
type RowMajorMatrix[F field.Element[F]] struct {
	// Data holds all cells, row by row.
	Data []F
	// Cols gives the width of every row.
	Cols uint
}

// NewRowMajorMatrix constructs a zeroed matrix of the given dimensions.
func NewRowMajorMatrix[F field.Element[F]](rows uint, cols uint) RowMajorMatrix[F] {
	return RowMajorMatrix[F]{make([]F, rows*cols), cols}
}

// Generate constructs a matrix of the given dimensions, invoking fn once per
// row with a mutable view of that row's cells.
func Generate[F field.Element[F]](rows uint, cols uint, fn func(row uint, cells []F)) RowMajorMatrix[F] {
	p := NewRowMajorMatrix[F](rows, cols)
	//
	for i := uint(0); i < rows; i++ {
		fn(i, p.Row(i))
	}
	//
	return p
}

// NumRows returns the number of rows in this matrix.
func (p RowMajorMatrix[F]) NumRows() uint {
	if p.Cols == 0 {
		return 0
	}
	//
	return uint(len(p.Data)) / p.Cols
}

// NumCols returns the width of every row in this matrix.
func (p RowMajorMatrix[F]) NumCols() uint {
	return p.Cols
}

// Row returns a mutable view of the given row.
func (p RowMajorMatrix[F]) Row(row uint) []F {
	return p.Data[row*p.Cols : (row+1)*p.Cols]
}

// At returns the cell at a given row and column.
func (p RowMajorMatrix[F]) At(row uint, col uint) F {
	return p.Data[row*p.Cols+col]
}

// Set assigns the cell at a given row and column.
func (p RowMajorMatrix[F]) Set(row uint, col uint, val F) {
	p.Data[row*p.Cols+col] = val
}
