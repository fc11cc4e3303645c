package util

import "golang.org/x/crypto/bcrypt"

// BcryptHasher hashes credentials with bcrypt at the default cost.
type BcryptHasher struct{}

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{}
}

func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	encrypted, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)

	if err != nil {
		return "", err
	}

	return string(encrypted), nil
}

func (h *BcryptHasher) Compare(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
