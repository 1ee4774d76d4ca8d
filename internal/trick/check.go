package trick

import (
	"sort"

	"shengji/internal/domain"
)

// CheckPlay returns the distinct ways the available cards can fill shape
// under policy, with tractors judged by reqs. Larger units are placed first;
// singles are taken from the least grouped, lowest cards left over. An empty
// result means the cards cannot satisfy this shape.
func CheckPlay(trump domain.Trump, reqs TractorRequirements, available []domain.Card, shape []UnitLike, policy TrickDrawPolicy) [][]TrickUnit {
	return checkPlay(trump, reqs.normalized(), available, shape, policy, 0)
}

func checkPlay(trump domain.Trump, reqs TractorRequirements, available []domain.Card, shape []UnitLike, policy TrickDrawPolicy, limit int) [][]TrickUnit {
	t := newTable(trump, available)
	remaining := t.counts()

	var units []UnitLike
	numSingles := 0
	for _, u := range canonicalShapes(shape) {
		if u == single {
			numSingles++
			continue
		}
		units = append(units, u)
	}

	var inTractor []bool
	if policy.protectsTractors() {
		inTractor = t.tractorMembers(reqs)
	}
	eligible := func(i int, u UnitLike) bool {
		if remaining[i] < u.Count {
			return false
		}
		if policy.protectsLongerTuples() && t.entries[i].count > u.Count {
			return false
		}
		if inTractor != nil && u.Length == 1 && inTractor[i] {
			return false
		}
		return true
	}

	var (
		out     [][]TrickUnit
		placed  []TrickUnit
		starts  []int
		seen    = make(map[string]bool)
		place   func(n int)
		stopped bool
	)

	place = func(n int) {
		if stopped {
			return
		}
		if n == len(units) {
			fill, ok := t.fillSingles(remaining, numSingles)
			if !ok {
				return
			}
			grouping := append(append([]TrickUnit(nil), placed...), fill...)
			key := groupingKey(grouping)
			if seen[key] {
				return
			}
			seen[key] = true
			out = append(out, grouping)
			stopped = limit > 0 && len(out) >= limit
			return
		}

		u := units[n]
		from := 0
		if n > 0 && units[n-1] == u {
			from = starts[n-1]
		}
		for i := from; i < len(t.entries); i++ {
			ok := func(j int) bool { return eligible(j, u) }
			t.chains(i, u.Length, ok, func(chain []int) {
				if len(chain) != u.Length || stopped {
					return
				}
				for _, idx := range chain {
					remaining[idx] -= u.Count
				}
				if u.Length == 1 {
					placed = append(placed, repeatedUnit(t.entries[i].card, u.Count))
				} else {
					placed = append(placed, tractorUnit(u.Count, t.members(chain)))
				}
				starts = append(starts, i)
				place(n + 1)
				starts = starts[:len(starts)-1]
				placed = placed[:len(placed)-1]
				for _, idx := range chain {
					remaining[idx] += u.Count
				}
			})
		}
	}

	place(0)
	return out
}

// fillSingles picks n single cards from what is left, preferring cards with
// the fewest remaining copies and then the lowest cards.
func (t table) fillSingles(remaining []int, n int) ([]TrickUnit, bool) {
	order := make([]int, 0, len(remaining))
	total := 0
	for i, r := range remaining {
		if r > 0 {
			order = append(order, i)
			total += r
		}
	}
	if total < n {
		return nil, false
	}
	sort.SliceStable(order, func(a, b int) bool { return remaining[order[a]] < remaining[order[b]] })

	out := make([]TrickUnit, 0, n)
	for _, i := range order {
		for k := 0; k < remaining[i] && len(out) < n; k++ {
			out = append(out, repeatedUnit(t.entries[i].card, 1))
		}
	}
	return out, true
}
