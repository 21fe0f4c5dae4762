package core

import "golang.org/x/crypto/bcrypt"

// PasswordHasher produces salted one-way digests and verifies plaintexts
// against them. Implementations must compare in constant time.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Compare(plaintext, hashed string) bool
}

// BcryptHasher implements PasswordHasher using bcrypt. Each Hash call draws
// a fresh salt, so the hash is self-describing and no external salt storage
// is needed for Compare.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: bcrypt.DefaultCost}
}

func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (h *BcryptHasher) Compare(plaintext, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext)) == nil
}
