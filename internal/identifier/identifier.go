// Package identifier validates and mints the opaque 24-character hex
// identifiers used for inquiries, messages, and external profile references.
// Validation is structural only; existence is the profile service's problem.
package identifier

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"regexp"
)

const Length = 24

var (
	ErrInvalid = errors.New("invalid identifier")

	pattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)
)

// Validate checks that id is a well-formed opaque identifier.
func Validate(id string) error {
	if !pattern.MatchString(id) {
		return ErrInvalid
	}
	return nil
}

// New returns a fresh identifier in the same format.
func New() string {
	var b [Length / 2]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	return hex.EncodeToString(b[:])
}
