package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
)

// GenerateNumericOTP returns a uniformly random code of exactly digits digits
// with no leading zero, e.g. [100000, 999999] for 6.
func GenerateNumericOTP(digits int) (string, error) {
	if digits < 1 || digits > 18 {
		return "", fmt.Errorf("unsupported OTP length %d", digits)
	}
	low := int64(1)
	for i := 1; i < digits; i++ {
		low *= 10
	}
	span := big.NewInt(low*10 - low)
	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		return "", fmt.Errorf("failed to generate random OTP: %w", err)
	}
	return strconv.FormatInt(low+n.Int64(), 10), nil
}
