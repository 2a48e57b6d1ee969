package randcode

import (
	"crypto/rand"
	"math/big"
	"strconv"
)

const (
	NumericCodeMin = 100000
	NumericCodeMax = 999999
)

// SixDigit draws a uniform random 6-digit numeric code in
// [100000, 999999] and returns it as a string.
func SixDigit() (string, error) {
	span := big.NewInt(NumericCodeMax - NumericCodeMin + 1)
	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		return "", err
	}

	return strconv.FormatInt(n.Int64()+NumericCodeMin, 10), nil
}
