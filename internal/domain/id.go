package domain

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// idPattern matches a 24-character hexadecimal document identifier.
var idPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// ID is a document-store identifier: 12 bytes rendered as 24 lowercase
// hex characters. Values only exist in well-formed state; construct them
// through NewID or ParseID.
type ID string

// NewID generates a new identifier from the current Unix time (4 bytes)
// followed by 8 random bytes.
func NewID() ID {
	var raw [12]byte
	binary.BigEndian.PutUint32(raw[:4], uint32(time.Now().Unix()))
	if _, err := rand.Read(raw[4:]); err != nil {
		// crypto/rand never fails on supported platforms
		panic(fmt.Sprintf("failed to read random bytes: %v", err))
	}
	return ID(hex.EncodeToString(raw[:]))
}

// ParseID validates s as a 24-hex-character identifier and returns it
// normalized to lowercase.
func ParseID(s string) (ID, error) {
	if !idPattern.MatchString(s) {
		return "", NewValidationError(fmt.Sprintf("invalid identifier: %q", s))
	}
	return ID(strings.ToLower(s)), nil
}

// String returns the identifier as a string.
func (id ID) String() string { return string(id) }
