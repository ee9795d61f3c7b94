package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes an admin password with bcrypt at the given cost. The
// cost comes from BCRYPT_COST in configuration; the seeded admin account and
// every later credential check use the same scheme.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether plain matches the stored bcrypt hash.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
