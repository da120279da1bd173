package security

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/argon2"
)

const (
	saltSize = 16
	keySize  = 32

	argonTime    = 2
	argonMemory  = 19 * 1024
	argonThreads = 1
)

var encoding = base64.RawURLEncoding

// HashPassword derives the stored digest for password. When salt is empty a
// fresh random salt is generated; the returned salt must be stored with the hash.
func HashPassword(password, salt string) (hash string, usedSalt string, err error) {
	var saltBytes []byte
	if salt == "" {
		saltBytes = make([]byte, saltSize)
		if _, err := rand.Read(saltBytes); err != nil {
			return "", "", fmt.Errorf("generate salt: %w", err)
		}
		salt = encoding.EncodeToString(saltBytes)
	} else {
		saltBytes, err = encoding.DecodeString(salt)
		if err != nil {
			return "", "", fmt.Errorf("decode salt: %w", err)
		}
	}

	key := argon2.IDKey([]byte(password), saltBytes, argonTime, argonMemory, argonThreads, keySize)
	return encoding.EncodeToString(key), salt, nil
}

// CheckPassword reports whether password matches hash under salt.
// Malformed salts or hashes simply fail the check.
func CheckPassword(password, hash, salt string) bool {
	computed, _, err := HashPassword(password, salt)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(computed), []byte(hash)) == 1
}
