package enums

// Tier names a customer value segment derived from spend percentiles.
type Tier string

const (
	TierPlatinum Tier = "Platinum"
	TierGold     Tier = "Gold"
	TierSilver   Tier = "Silver"
	TierBronze   Tier = "Bronze"
)

// String implements fmt.Stringer.
func (t Tier) String() string {
	return string(t)
}
