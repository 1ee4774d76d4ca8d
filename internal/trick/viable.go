package trick

import (
	"container/heap"
	"sort"

	"shengji/internal/domain"
)

// MaxViablePlays caps the groupings FindViablePlays returns. Large hands
// have exponentially many readings; only the most grouped are kept.
const MaxViablePlays = 1024

// FindViablePlays enumerates the ways cards can be partitioned into units.
// Cards are split by effective suit; within a suit the lowest remaining card
// either closes as one repeated unit of all its copies or starts a tractor of
// any allowed tuple size and length. Overlapping readings of the same cards
// (a tractor and the pairs inside it) are all returned, fewest units first
// and then fewest split tuples, up to MaxViablePlays groupings.
func FindViablePlays(trump domain.Trump, reqs TractorRequirements, cards []domain.Card) [][]TrickUnit {
	return findViablePlays(trump, reqs, cards, MaxViablePlays)
}

func findViablePlays(trump domain.Trump, reqs TractorRequirements, cards []domain.Card, limit int) [][]TrickUnit {
	if len(cards) == 0 {
		return [][]TrickUnit{}
	}
	reqs = reqs.normalized()

	var suits [][]ranked
	for _, t := range tablesBySuit(trump, cards) {
		suits = append(suits, t.partitions(reqs, limit))
	}
	return bestProduct(suits, limit)
}

// ranked is a grouping with its ordering key: units first, then the number
// of units that split a card's copies.
type ranked struct {
	units []TrickUnit
	rank  rank
}

type rank struct{ units, splits int }

func (a rank) less(b rank) bool {
	if a.units != b.units {
		return a.units < b.units
	}
	return a.splits < b.splits
}

func (a rank) add(b rank) rank { return rank{a.units + b.units, a.splits + b.splits} }

// splits counts units holding fewer copies of a member than the table has.
func (t table) splits(units []TrickUnit) int {
	held := make(map[domain.Card]int, len(t.entries))
	for _, e := range t.entries {
		held[e.card] = e.count
	}
	n := 0
	for _, u := range units {
		for _, m := range u.Members {
			if held[m] > u.Count {
				n++
				break
			}
		}
	}
	return n
}

// partitions walks the suit's readings, largest units first, and returns at
// most limit distinct groupings sorted by rank.
func (t table) partitions(reqs TractorRequirements, limit int) []ranked {
	remaining := t.counts()
	var (
		out     []ranked
		current []TrickUnit
		seen    = make(map[string]bool)
		walk    func()
	)
	full := func() bool { return len(out) >= limit }

	lowest := func() int {
		for i, n := range remaining {
			if n > 0 {
				return i
			}
		}
		return -1
	}

	walk = func() {
		if full() {
			return
		}
		i := lowest()
		if i < 0 {
			g := append([]TrickUnit(nil), current...)
			key := groupingKey(g)
			if seen[key] {
				return
			}
			seen[key] = true
			out = append(out, ranked{units: g, rank: rank{len(g), t.splits(g)}})
			return
		}

		for k := remaining[i]; k >= reqs.MinCount; k-- {
			if !reqs.allowsCount(k) {
				continue
			}
			count := k
			enough := func(j int) bool { return remaining[j] >= count }
			var chains [][]int
			t.chains(i, reqs.MinLength, enough, func(chain []int) {
				chains = append(chains, append([]int(nil), chain...))
			})
			sort.SliceStable(chains, func(a, b int) bool { return len(chains[a]) > len(chains[b]) })
			for _, chain := range chains {
				if full() {
					return
				}
				for _, idx := range chain {
					remaining[idx] -= count
				}
				current = append(current, tractorUnit(count, t.members(chain)))
				walk()
				current = current[:len(current)-1]
				for _, idx := range chain {
					remaining[idx] += count
				}
			}
		}

		n := remaining[i]
		remaining[i] = 0
		current = append(current, repeatedUnit(t.entries[i].card, n))
		walk()
		current = current[:len(current)-1]
		remaining[i] = n
	}

	walk()
	sort.SliceStable(out, func(a, b int) bool { return out[a].rank.less(out[b].rank) })
	return out
}

// bestProduct combines one grouping per suit, best combined rank first,
// stopping after limit groupings. Ranks add across suits, so expanding the
// frontier from the all-best corner yields combinations in rank order.
func bestProduct(suits [][]ranked, limit int) [][]TrickUnit {
	results := [][]TrickUnit{}
	for _, s := range suits {
		if len(s) == 0 {
			return results
		}
	}

	start := make([]int, len(suits))
	frontier := &comboHeap{}
	seen := map[string]bool{comboKey(start): true}
	heap.Push(frontier, combo{idx: start, rank: comboRank(suits, start)})

	for frontier.Len() > 0 && len(results) < limit {
		c := heap.Pop(frontier).(combo)
		var grouping []TrickUnit
		for s, i := range c.idx {
			grouping = append(grouping, suits[s][i].units...)
		}
		results = append(results, grouping)

		for s := range c.idx {
			if c.idx[s]+1 >= len(suits[s]) {
				continue
			}
			next := append([]int(nil), c.idx...)
			next[s]++
			key := comboKey(next)
			if seen[key] {
				continue
			}
			seen[key] = true
			heap.Push(frontier, combo{idx: next, rank: comboRank(suits, next)})
		}
	}
	return results
}

type combo struct {
	idx  []int
	rank rank
	seq  int
}

func comboRank(suits [][]ranked, idx []int) rank {
	var r rank
	for s, i := range idx {
		r = r.add(suits[s][i].rank)
	}
	return r
}

func comboKey(idx []int) string {
	b := make([]byte, 0, len(idx)*2)
	for _, i := range idx {
		b = append(b, byte(i>>8), byte(i))
	}
	return string(b)
}

// comboHeap orders combinations by rank, then by push order.
type comboHeap struct {
	items  []combo
	pushed int
}

func (h comboHeap) Len() int { return len(h.items) }

func (h comboHeap) Less(i, j int) bool {
	a, b := h.items[i], h.items[j]
	if a.rank != b.rank {
		return a.rank.less(b.rank)
	}
	return a.seq < b.seq
}

func (h comboHeap) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }

func (h *comboHeap) Push(x any) {
	c := x.(combo)
	c.seq = h.pushed
	h.pushed++
	h.items = append(h.items, c)
}

func (h *comboHeap) Pop() any {
	old := h.items
	c := old[len(old)-1]
	h.items = old[:len(old)-1]
	return c
}
