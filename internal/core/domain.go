package core

import (
	"net/url"
	"strings"
	"unicode"
)

// NormalizeDomain turns raw user input into a canonical blockable
// domain: whitespace is trimmed, a https:// scheme is assumed when none
// is present, the host is extracted, a leading "www." is stripped, and
// the result is lower-cased. Input that does not yield a plausible
// domain (at least one dot, no whitespace) returns ErrInvalidDomain.
func NormalizeDomain(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", ErrInvalidDomain
	}

	raw := trimmed
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		// Fall back to the raw text when it already looks like a bare
		// domain.
		lowered := strings.ToLower(trimmed)
		if isLikelyDomain(lowered) {
			return lowered, nil
		}
		return "", ErrInvalidDomain
	}

	domain := strings.ToLower(u.Hostname())
	domain = strings.TrimPrefix(domain, "www.")
	if !isLikelyDomain(domain) {
		return "", ErrInvalidDomain
	}
	return domain, nil
}

// isLikelyDomain is a deliberately lightweight check: the candidate must
// contain a dot and no whitespace.
func isLikelyDomain(s string) bool {
	if strings.IndexFunc(s, unicode.IsSpace) >= 0 {
		return false
	}
	return strings.Contains(s, ".")
}

// PrettifyDomain derives a display name from a domain: "news.example.com"
// becomes "News.Example.Com".
func PrettifyDomain(domain string) string {
	core := strings.TrimPrefix(domain, "www.")
	parts := strings.Split(core, ".")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, ".")
}
