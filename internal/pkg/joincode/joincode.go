// Package joincode generates human-enterable class join codes.
package joincode

import (
	"crypto/rand"
	"fmt"
	"regexp"
)

// Alphabet is the set of characters a join code is drawn from.
const Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Length is the number of characters in a join code.
const Length = 6

var codePattern = regexp.MustCompile(fmt.Sprintf(`^[0-9A-Z]{%d}$`, Length))

// New returns a random join code of Length characters from Alphabet.
// Uniqueness is not guaranteed here; callers rely on the database unique
// constraint and retry on collision.
func New() (string, error) {
	buf := make([]byte, Length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	for i, b := range buf {
		buf[i] = Alphabet[int(b)%len(Alphabet)]
	}
	return string(buf), nil
}

// IsValid reports whether s has the shape of a join code.
func IsValid(s string) bool {
	return codePattern.MatchString(s)
}
