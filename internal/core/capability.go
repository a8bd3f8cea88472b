package core

// Tier is the capability level a user's subscription resolves to. The
// core never queries purchase state itself; the entitlement system is an
// external collaborator consumed only through this value.
type Tier string

const (
	TierFree    Tier = "free"
	TierPremium Tier = "premium"
)

// IsValid reports whether t is a known tier.
func (t Tier) IsValid() bool {
	return t == TierFree || t == TierPremium
}

// Unlimited marks a limit with no cap.
const Unlimited = -1

// Limits resolves every tier-gated capacity in one place, so call sites
// never re-derive free/premium branches ad hoc.
type Limits struct {
	MaxSlots           int
	MaxBlockedApps     int
	MaxBlockedWebsites int
	MaxPartners        int
}

// LimitsFor returns the capacity table for a tier. Unknown tiers get
// the free limits.
func LimitsFor(tier Tier) Limits {
	if tier == TierPremium {
		return Limits{
			MaxSlots:           Unlimited,
			MaxBlockedApps:     Unlimited,
			MaxBlockedWebsites: Unlimited,
			MaxPartners:        3,
		}
	}
	return Limits{
		MaxSlots:           1,
		MaxBlockedApps:     3,
		MaxBlockedWebsites: 3,
		MaxPartners:        1,
	}
}

// allows reports whether a collection currently holding count items may
// grow by one under the given limit.
func allows(limit, count int) bool {
	return limit == Unlimited || count < limit
}

// CanAddSlot reports whether a schedule with slotCount slots may take
// another.
func (l Limits) CanAddSlot(slotCount int) bool {
	return allows(l.MaxSlots, slotCount)
}

// CanAddBlockedApp reports whether another app may be blocked.
func (l Limits) CanAddBlockedApp(appCount int) bool {
	return allows(l.MaxBlockedApps, appCount)
}

// CanAddBlockedWebsite reports whether another website may be blocked.
func (l Limits) CanAddBlockedWebsite(siteCount int) bool {
	return allows(l.MaxBlockedWebsites, siteCount)
}
