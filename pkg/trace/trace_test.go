package trace

import (
	"testing"

	"github.com/noel2004/ceno/pkg/schema"
	"github.com/noel2004/ceno/pkg/util/assert"
	"github.com/noel2004/ceno/pkg/util/field/goldilocks"
)

type F = goldilocks.Element

func Test_Matrix_01(t *testing.T) {
	m := NewRowMajorMatrix[F](3, 2)
	//
	assert.Equal(t, uint(3), m.NumRows())
	assert.Equal(t, uint(2), m.NumCols())
	assert.True(t, m.At(1, 1).IsZero())
	// mutations through a row view must be visible to readers
	row := m.Row(1)
	row[1] = row[1].SetUint64(42)
	m.Set(2, 0, m.At(2, 0).SetUint64(7))
	//
	assert.Equal(t, uint64(42), m.At(1, 1).Uint64())
	assert.Equal(t, uint64(7), m.At(2, 0).Uint64())
	assert.True(t, m.At(0, 0).IsZero())
}

func Test_Matrix_02(t *testing.T) {
	m := Generate[F](4, 2, func(row uint, cells []F) {
		cells[0] = cells[0].SetUint64(uint64(row))
		cells[1] = cells[1].SetUint64(uint64(row * row))
	})
	//
	assert.Equal(t, uint64(3), m.At(3, 0).Uint64())
	assert.Equal(t, uint64(9), m.At(3, 1).Uint64())
	assert.Equal(t, uint64(0), m.At(0, 1).Uint64())
}

func Test_Multiplicity_01(t *testing.T) {
	mlt := NewMultiplicity()
	//
	mlt.AssertUx(13, 5)
	mlt.AssertUx(13, 5)
	mlt.AssertUx(1000, 16)
	mlt.AssertUx(200, 8)
	//
	assert.Equal(t, uint64(2), mlt.CountOf(schema.U5, 13))
	assert.Equal(t, uint64(1), mlt.CountOf(schema.U16, 1000))
	// byte checks count against the conjunction table keyed at (v, 0xff)
	assert.Equal(t, uint64(1), mlt.CountOf(schema.And, 200<<8|0xff))
	assert.Equal(t, uint64(0), mlt.CountOf(schema.U16, 13))
}

func Test_Multiplicity_02(t *testing.T) {
	mlt := NewMultiplicity()
	//
	assert.Equal(t, uint64(0xa0&0x7f), mlt.LookupAndByte(0xa0, 0x7f))
	assert.Equal(t, uint64(1), mlt.LookupLtuLimb8(3, 9))
	assert.Equal(t, uint64(0), mlt.LookupLtuLimb8(9, 3))
	assert.Equal(t, uint64(0), mlt.LookupLtuLimb8(9, 9))
	//
	assert.Equal(t, uint64(1), mlt.CountOf(schema.And, 0xa07f))
	assert.Equal(t, uint64(1), mlt.CountOf(schema.Ltu, 3<<8|9))
	assert.Equal(t, uint64(1), mlt.CountOf(schema.Ltu, 9<<8|3))
	assert.Equal(t, uint64(1), mlt.CountOf(schema.Ltu, 9<<8|9))
}

func Test_Multiplicity_03(t *testing.T) {
	lhs := NewMultiplicity()
	rhs := NewMultiplicity()
	//
	lhs.AssertUx(5, 16)
	lhs.AssertUx(6, 16)
	rhs.AssertUx(5, 16)
	rhs.LookupLtuLimb8(1, 2)
	//
	lhs.Merge(rhs)
	//
	assert.Equal(t, uint64(2), lhs.CountOf(schema.U16, 5))
	assert.Equal(t, uint64(1), lhs.CountOf(schema.U16, 6))
	assert.Equal(t, uint64(1), lhs.CountOf(schema.Ltu, 1<<8|2))
	// merged-from table must be untouched
	assert.Equal(t, uint64(1), rhs.CountOf(schema.U16, 5))
	assert.Equal(t, uint64(0), rhs.CountOf(schema.U16, 6))
}
