package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRound(t *testing.T) {
	assert.Equal(t, int64(0), Round(0))
	assert.Equal(t, int64(10), Round(10.4))
	assert.Equal(t, int64(11), Round(10.5))
	assert.Equal(t, int64(-10), Round(-10.4))
	assert.Equal(t, int64(-11), Round(-10.5))
}

func TestApplyRate(t *testing.T) {
	assert.Equal(t, int64(50), ApplyRate(1000, 5))
	assert.Equal(t, int64(0), ApplyRate(0, 50))
	assert.Equal(t, int64(1000), ApplyRate(1000, 100))
	// 333 * 10% = 33.3 rounds down
	assert.Equal(t, int64(33), ApplyRate(333, 10))
}

func TestDistribute_SumsExactly(t *testing.T) {
	cases := []struct {
		total int64
		n     int
	}{
		{100, 3},
		{1, 3},
		{999, 7},
		{0, 5},
		{1000, 1},
	}

	for _, tc := range cases {
		shares := Distribute(tc.total, tc.n)
		require.Len(t, shares, tc.n)

		var sum int64
		for _, share := range shares {
			sum += share
		}
		assert.Equal(t, tc.total, sum, "total %d over %d shares", tc.total, tc.n)
	}
}

func TestDistribute_RemainderOnLastShare(t *testing.T) {
	shares := Distribute(100, 3)
	assert.Equal(t, []int64{33, 33, 34}, shares)
}

func TestDistribute_InvalidCount(t *testing.T) {
	assert.Nil(t, Distribute(100, 0))
	assert.Nil(t, Distribute(100, -1))
}
