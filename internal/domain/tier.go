package domain

type Tier string

const (
	TierRegular Tier = "regular"
	TierGold    Tier = "gold"
	TierVIP     Tier = "vip"
)

// ParseTier maps a wire value onto a known tier.
func ParseTier(s string) (Tier, error) {
	switch Tier(s) {
	case TierRegular, TierGold, TierVIP:
		return Tier(s), nil
	}
	return "", ErrInvalidTier
}

func (t Tier) Valid() bool {
	switch t {
	case TierRegular, TierGold, TierVIP:
		return true
	}
	return false
}

// Privileged reports whether the tier gets early access and is exempt from
// the reserved-capacity cap.
func (t Tier) Privileged() bool {
	return t == TierVIP
}

// DefaultFees returns the registration fee table a fresh deployment starts
// with. Amounts are in the smallest currency unit.
func DefaultFees() map[Tier]int64 {
	return map[Tier]int64{
		TierRegular: 1,
		TierGold:    2,
		TierVIP:     3,
	}
}
