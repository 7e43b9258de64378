package amount

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("scales whole numbers", func(t *testing.T) {
		v, err := Parse("100", 18)
		require.NoError(t, err)
		assert.Equal(t, "100000000000000000000", v.String())
	})

	t.Run("scales fractional amounts exactly", func(t *testing.T) {
		v, err := Parse("12.5", 18)
		require.NoError(t, err)
		assert.Equal(t, "12500000000000000000", v.String())
	})

	t.Run("accepts bare fraction", func(t *testing.T) {
		v, err := Parse(".5", 2)
		require.NoError(t, err)
		assert.Equal(t, "50", v.String())
	})

	t.Run("accepts zero decimals", func(t *testing.T) {
		v, err := Parse("42", 0)
		require.NoError(t, err)
		assert.Equal(t, "42", v.String())
	})

	t.Run("rejects excess precision instead of rounding", func(t *testing.T) {
		_, err := Parse("1.123", 2)
		require.Error(t, err)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		for _, in := range []string{"", ".", "1.2.3", "1e18", "0x10", "-5", "12,5", "abc"} {
			_, err := Parse(in, 18)
			assert.Error(t, err, "input %q", in)
		}
	})
}

func TestFormat(t *testing.T) {
	t.Run("trims trailing zeros", func(t *testing.T) {
		v, _ := new(big.Int).SetString("12500000000000000000", 10)
		assert.Equal(t, "12.5", Format(v, 18))
	})

	t.Run("renders sub-unit values", func(t *testing.T) {
		assert.Equal(t, "0.000000000000000001", Format(big.NewInt(1), 18))
	})

	t.Run("renders whole values without a dot", func(t *testing.T) {
		v, _ := new(big.Int).SetString("3000000000000000000", 10)
		assert.Equal(t, "3", Format(v, 18))
	})

	t.Run("handles nil defensively", func(t *testing.T) {
		assert.Equal(t, "0", Format(nil, 18))
	})
}

// Round-tripping must preserve the numeric value for anything representable
// at the configured precision.
func TestRoundTrip(t *testing.T) {
	cases := []string{"12.5", "0.000000000000000001", "100", "0", "999999999.999999999", "1.000000000000000001"}
	for _, in := range cases {
		v, err := Parse(in, 18)
		require.NoError(t, err, in)
		back, err := Parse(Format(v, 18), 18)
		require.NoError(t, err, in)
		assert.Zero(t, v.Cmp(back), "round trip changed value for %q", in)
	}
}
