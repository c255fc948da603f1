package accesskey

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	Prefix = "FSTI-"
	length = 6
	// No 0/O or 1/I so keys survive being read over the phone.
	alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

var ErrMismatch = errors.New("access key mismatch")

// Generate returns a new random access key such as FSTI-7KQ2ZD.
func Generate() (string, error) {
	b := make([]byte, length)
	max := big.NewInt(int64(len(alphabet)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = alphabet[n.Int64()]
	}
	return Prefix + string(b), nil
}

// Normalize upper-cases and trims a key as typed by a member.
func Normalize(key string) string {
	return strings.ToUpper(strings.TrimSpace(key))
}

func Hash(key string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(Normalize(key)), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func Compare(hash, key string) error {
	if hash == "" {
		return ErrMismatch
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(Normalize(key))); err != nil {
		return ErrMismatch
	}
	return nil
}
