package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost is the fixed work factor for password hashing.
const bcryptCost = bcrypt.DefaultCost

// HashPassword derives a salted one-way hash from a plaintext password.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether plain matches the stored hash. Any failure,
// including a malformed stored hash, reads as a mismatch; callers treat false
// as "deny" with no error path.
func VerifyPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
