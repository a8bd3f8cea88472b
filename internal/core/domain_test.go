package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDomain(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"example.com", "example.com"},
		{"  example.com  ", "example.com"},
		{"EXAMPLE.COM", "example.com"},
		{"www.example.com", "example.com"},
		{"https://example.com", "example.com"},
		{"https://www.example.com/path?q=1", "example.com"},
		{"http://news.example.org", "news.example.org"},
		{"sub.domain.example.com", "sub.domain.example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := NormalizeDomain(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeDomainInvalid(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"not a domain",
		"nodots",
		"https://",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := NormalizeDomain(input)
			assert.ErrorIs(t, err, ErrInvalidDomain)
		})
	}
}

func TestPrettifyDomain(t *testing.T) {
	assert.Equal(t, "Example.Com", PrettifyDomain("example.com"))
	assert.Equal(t, "News.Example.Org", PrettifyDomain("news.example.org"))
	assert.Equal(t, "Example.Com", PrettifyDomain("www.example.com"))
}
