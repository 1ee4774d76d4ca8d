package domain

// SuitGroup is a run of sorted cards sharing one effective suit.
type SuitGroup struct {
	Suit  EffectiveSuit `json:"suit"`
	Cards []Card        `json:"cards"`
}

// SortAndGroup sorts a copy of cards under trump and merges adjacent cards
// with the same effective suit into groups.
func SortAndGroup(trump Trump, cards []Card) []SuitGroup {
	sorted := append([]Card(nil), cards...)
	trump.Sort(sorted)

	groups := []SuitGroup{}
	for _, c := range sorted {
		suit := trump.EffectiveSuit(c)
		if n := len(groups); n > 0 && groups[n-1].Suit == suit {
			groups[n-1].Cards = append(groups[n-1].Cards, c)
			continue
		}
		groups = append(groups, SuitGroup{Suit: suit, Cards: []Card{c}})
	}
	return groups
}

// Flatten concatenates the cards of every group in order.
func Flatten(groups []SuitGroup) []Card {
	var out []Card
	for _, g := range groups {
		out = append(out, g.Cards...)
	}
	return out
}
