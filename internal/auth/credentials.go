// Package auth provides the credential store, principals, and access-control guards.
package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes a secret with bcrypt. Each call uses a fresh random
// salt, so hashing the same secret twice yields different stored values.
func HashPassword(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether the secret matches the stored hash.
func CheckPassword(secret, stored string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(secret)) == nil
}
