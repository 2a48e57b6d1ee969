package randcode

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSixDigit_Range(t *testing.T) {
	t.Parallel()

	for range 1000 {
		code, err := SixDigit()
		require.NoError(t, err)
		require.Len(t, code, 6)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		require.GreaterOrEqual(t, n, NumericCodeMin)
		require.LessOrEqual(t, n, NumericCodeMax)
	}
}
