package core

import (
	"strings"
	"time"
)

// BlockedApp is one application on a user's blocklist.
type BlockedApp struct {
	ID               string `json:"id"`
	BundleIdentifier string `json:"bundle_identifier"`
	DisplayName      string `json:"display_name"`
}

// BlockedWebsite is one domain on a user's blocklist.
type BlockedWebsite struct {
	ID          string `json:"id"`
	Domain      string `json:"domain"`
	DisplayName string `json:"display_name"`
}

// BlockingSnapshot is the persistence and wire shape of a user's
// blocklist. It round-trips through JSON and is keyed per user ID (a
// fixed anonymous key when no user is signed in).
type BlockingSnapshot struct {
	Apps      []BlockedApp     `json:"apps"`
	Websites  []BlockedWebsite `json:"websites"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// EmptySnapshot returns a snapshot with empty (non-nil) lists.
func EmptySnapshot() *BlockingSnapshot {
	return &BlockingSnapshot{
		Apps:     []BlockedApp{},
		Websites: []BlockedWebsite{},
	}
}

// ContainsApp reports whether an app with the bundle identifier is
// already listed.
func (s *BlockingSnapshot) ContainsApp(bundleIdentifier string) bool {
	for _, a := range s.Apps {
		if a.BundleIdentifier == bundleIdentifier {
			return true
		}
	}
	return false
}

// ContainsWebsite reports whether the domain is already listed. The
// comparison is case-insensitive.
func (s *BlockingSnapshot) ContainsWebsite(domain string) bool {
	for _, w := range s.Websites {
		if strings.EqualFold(w.Domain, domain) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy, so an optimistic mutation never aliases
// the stored snapshot.
func (s *BlockingSnapshot) Clone() *BlockingSnapshot {
	out := &BlockingSnapshot{
		Apps:      make([]BlockedApp, len(s.Apps)),
		Websites:  make([]BlockedWebsite, len(s.Websites)),
		UpdatedAt: s.UpdatedAt,
	}
	copy(out.Apps, s.Apps)
	copy(out.Websites, s.Websites)
	return out
}
