package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLimitsForFree(t *testing.T) {
	limits := LimitsFor(TierFree)

	assert.True(t, limits.CanAddSlot(0))
	assert.False(t, limits.CanAddSlot(1))

	assert.True(t, limits.CanAddBlockedApp(2))
	assert.False(t, limits.CanAddBlockedApp(3))

	assert.True(t, limits.CanAddBlockedWebsite(2))
	assert.False(t, limits.CanAddBlockedWebsite(3))
}

func TestLimitsForPremium(t *testing.T) {
	limits := LimitsFor(TierPremium)

	assert.True(t, limits.CanAddSlot(100))
	assert.True(t, limits.CanAddBlockedApp(100))
	assert.True(t, limits.CanAddBlockedWebsite(100))
}

func TestLimitsForUnknownTierFallsBackToFree(t *testing.T) {
	limits := LimitsFor(Tier("gold"))

	assert.Equal(t, LimitsFor(TierFree), limits)
}

func TestTierIsValid(t *testing.T) {
	assert.True(t, TierFree.IsValid())
	assert.True(t, TierPremium.IsValid())
	assert.False(t, Tier("gold").IsValid())
	assert.False(t, Tier("").IsValid())
}
