package models

// TierID identifies one of the fixed service packages
type TierID string

const (
	TierBasic    TierID = "basic"
	TierStandard TierID = "standard"
	TierPremium  TierID = "premium"
)

// Tier is a service package offered to the customer.
// Suitability is filled in per request from the tier's rank.
type Tier struct {
	ID          TierID   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	PriceRange  string   `json:"priceRange,omitempty"`
	Suitability int      `json:"suitability"`
}

// Clone returns a copy that does not share the feature slice
func (t Tier) Clone() Tier {
	c := t
	c.Features = append([]string(nil), t.Features...)
	return c
}

// Option is a selectable {id,label} pair rendered by the selection UI
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}
