package idgen

import (
	"github.com/google/uuid"
)

// ID prefixes for different models
const (
	PrefixSlot    = "slot_"
	PrefixApp     = "app_"
	PrefixWebsite = "site_"
)

// NewSlot generates a new time-slot ID with slot_ prefix
func NewSlot() string {
	return PrefixSlot + uuid.New().String()
}

// NewApp generates a new blocked-app ID with app_ prefix
func NewApp() string {
	return PrefixApp + uuid.New().String()
}

// NewWebsite generates a new blocked-website ID with site_ prefix
func NewWebsite() string {
	return PrefixWebsite + uuid.New().String()
}

// New generates a generic UUID without prefix (for internal use only)
func New() string {
	return uuid.New().String()
}
