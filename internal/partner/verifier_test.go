package partner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticVerifier(t *testing.T) {
	v := NewStaticVerifier("4321")

	assert.True(t, v.Verify("4321"))
	assert.False(t, v.Verify("1234"))
	assert.False(t, v.Verify(""))
}

func TestStaticVerifierDefaultCode(t *testing.T) {
	v := NewStaticVerifier("")

	assert.True(t, v.Verify(DefaultCode))
	assert.False(t, v.Verify("0000"))
}

func TestHashedVerifier(t *testing.T) {
	hash, err := HashCode("9876")
	require.NoError(t, err)

	v := NewHashedVerifier(hash)
	assert.True(t, v.Verify("9876"))
	assert.False(t, v.Verify("9875"))
	assert.False(t, v.Verify(""))
}

func TestHashedVerifierBadHash(t *testing.T) {
	v := NewHashedVerifier("not-a-bcrypt-hash")
	assert.False(t, v.Verify("1234"))
}
