package trick

import "shengji/internal/domain"

type entry struct {
	card  domain.Card
	count int
}

// table is the multiplicity table of a card multiset: one entry per
// distinct card, sorted by the trump order.
type table struct {
	trump   domain.Trump
	entries []entry
}

func newTable(trump domain.Trump, cards []domain.Card) table {
	counts := domain.NewHand(cards)
	distinct := make([]domain.Card, 0, len(counts))
	for c := range counts {
		distinct = append(distinct, c)
	}
	trump.Sort(distinct)

	t := table{trump: trump, entries: make([]entry, len(distinct))}
	for i, c := range distinct {
		t.entries[i] = entry{card: c, count: counts[c]}
	}
	return t
}

// tablesBySuit splits cards into one table per effective suit, in suit order.
func tablesBySuit(trump domain.Trump, cards []domain.Card) []table {
	var tables []table
	for _, g := range domain.SortAndGroup(trump, cards) {
		tables = append(tables, newTable(trump, g.Cards))
	}
	return tables
}

func (t table) counts() []int {
	out := make([]int, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.count
	}
	return out
}

// successors returns the entries directly above entry i in tractor order.
func (t table) successors(i int) []int {
	var out []int
	for j := i + 1; j < len(t.entries); j++ {
		if t.trump.Adjacent(t.entries[i].card, t.entries[j].card) {
			out = append(out, j)
		}
	}
	return out
}

func (t table) members(chain []int) []domain.Card {
	out := make([]domain.Card, len(chain))
	for i, idx := range chain {
		out[i] = t.entries[idx].card
	}
	return out
}

// chains calls visit for every run of adjacent entries starting at start
// whose entries all satisfy ok, once per length from minLength upward.
func (t table) chains(start, minLength int, ok func(int) bool, visit func([]int)) {
	if !ok(start) {
		return
	}
	var grow func(chain []int)
	grow = func(chain []int) {
		if len(chain) >= minLength {
			visit(chain)
		}
		for _, s := range t.successors(chain[len(chain)-1]) {
			if ok(s) {
				grow(append(chain[:len(chain):len(chain)], s))
			}
		}
	}
	grow([]int{start})
}

// tractorMembers marks entries that sit inside some tractor of the table.
func (t table) tractorMembers(reqs TractorRequirements) []bool {
	marked := make([]bool, len(t.entries))
	enough := func(i int) bool { return t.entries[i].count >= reqs.MinCount }
	for i := range t.entries {
		t.chains(i, reqs.MinLength, enough, func(chain []int) {
			for _, idx := range chain {
				marked[idx] = true
			}
		})
	}
	return marked
}
