// Package password isolates credential hashing behind an interface so services
// and seeds never touch the algorithm directly.
package password

import "golang.org/x/crypto/bcrypt"

// Hasher hashes and verifies password credentials.
type Hasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// BcryptHasher is the production Hasher. Bcrypt embeds its own salt, so equal
// passwords produce distinct hashes.
type BcryptHasher struct{}

func (BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (BcryptHasher) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
