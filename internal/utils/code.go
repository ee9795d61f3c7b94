package utils

import (
	"crypto/rand"
	"math/big"
)

// codeAlphabet is the character set for reservation codes. Uppercase letters
// and digits only, so codes survive being read over the phone.
const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// CodeLength is the fixed length of a reservation code.
const CodeLength = 6

// NewReservationCode returns a random 6-character uppercase alphanumeric
// code. Uniqueness is not guaranteed here; callers retry against the
// storage uniqueness constraint on collision.
func NewReservationCode() (string, error) {
	buf := make([]byte, CodeLength)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = codeAlphabet[n.Int64()]
	}
	return string(buf), nil
}
