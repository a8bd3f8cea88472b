package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnapshotContains(t *testing.T) {
	s := EmptySnapshot()
	s.Apps = append(s.Apps, BlockedApp{ID: "app_1", BundleIdentifier: "com.example.social"})
	s.Websites = append(s.Websites, BlockedWebsite{ID: "site_1", Domain: "example.com"})

	assert.True(t, s.ContainsApp("com.example.social"))
	assert.False(t, s.ContainsApp("com.example.other"))

	assert.True(t, s.ContainsWebsite("example.com"))
	assert.True(t, s.ContainsWebsite("EXAMPLE.com"))
	assert.False(t, s.ContainsWebsite("other.com"))
}

func TestSnapshotClone(t *testing.T) {
	s := EmptySnapshot()
	s.Apps = append(s.Apps, BlockedApp{ID: "app_1", BundleIdentifier: "com.example.social"})

	clone := s.Clone()
	clone.Apps[0].BundleIdentifier = "com.example.changed"
	clone.Apps = append(clone.Apps, BlockedApp{ID: "app_2"})

	assert.Equal(t, "com.example.social", s.Apps[0].BundleIdentifier)
	assert.Len(t, s.Apps, 1)
}
