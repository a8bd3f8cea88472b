// Package partner verifies partner authorization codes for protected
// lock changes.
package partner

import "golang.org/x/crypto/bcrypt"

// DefaultCode is the placeholder shared secret used until real partner
// pairing exists.
const DefaultCode = "1234"

// StaticVerifier compares codes against a fixed plaintext secret.
type StaticVerifier struct {
	code string
}

// NewStaticVerifier creates a verifier for the given code. An empty
// code falls back to DefaultCode.
func NewStaticVerifier(code string) *StaticVerifier {
	if code == "" {
		code = DefaultCode
	}
	return &StaticVerifier{code: code}
}

func (v *StaticVerifier) Verify(code string) bool {
	return code == v.code
}

// HashedVerifier compares codes against a bcrypt hash so the secret
// never sits in configuration as plaintext.
type HashedVerifier struct {
	hash []byte
}

// NewHashedVerifier creates a verifier for the given bcrypt hash.
func NewHashedVerifier(hash string) *HashedVerifier {
	return &HashedVerifier{hash: []byte(hash)}
}

func (v *HashedVerifier) Verify(code string) bool {
	return bcrypt.CompareHashAndPassword(v.hash, []byte(code)) == nil
}

// HashCode produces a bcrypt hash suitable for NewHashedVerifier.
func HashCode(code string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
