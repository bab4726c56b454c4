package schema

import (
	"testing"

	"github.com/noel2004/ceno/pkg/util/assert"
)

func Test_ROM_01(t *testing.T) {
	assert.Equal(t, uint(1), U5.NumArgs())
	assert.Equal(t, uint(1), U16.NumArgs())
	assert.Equal(t, uint(2), And.NumArgs())
	assert.Equal(t, uint(2), Ltu.NumArgs())
	//
	assert.Equal(t, uint(32), U5.TableSize())
	assert.Equal(t, uint(65536), U16.TableSize())
	assert.Equal(t, uint(65536), And.TableSize())
	assert.Equal(t, uint(65536), Ltu.TableSize())
}

func Test_ROM_02(t *testing.T) {
	assert.Equal(t, uint64(7), U16.Pack(7))
	assert.Equal(t, uint64(31), U5.Pack(31))
	assert.Equal(t, uint64(0x0102), And.Pack(1, 2))
	assert.Equal(t, uint64(0xff00), Ltu.Pack(255, 0))
}
