package trick

import (
	"fmt"
	"sort"

	"shengji/internal/domain"
)

// TrickFormat is the shape a lead commits the rest of the trick to.
type TrickFormat struct {
	Suit                domain.EffectiveSuit `json:"suit"`
	Trump               domain.Trump         `json:"trump"`
	Units               []UnitLike           `json:"units"`
	TractorRequirements TractorRequirements  `json:"tractor_requirements"`
}

// FormatFromCards builds the format of a lead. The lead is read as its
// viable grouping with the fewest units, which is also returned. Among
// groupings with equally few units, the one splitting the fewest held tuples
// wins, so 333+44 reads as a triple and a pair rather than a tractor.
func FormatFromCards(trump domain.Trump, reqs TractorRequirements, cards []domain.Card) (TrickFormat, []TrickUnit, error) {
	if len(cards) == 0 {
		return TrickFormat{}, nil, ErrNoCards
	}
	suit := trump.EffectiveSuit(cards[0])
	for _, c := range cards[1:] {
		if trump.EffectiveSuit(c) != suit {
			return TrickFormat{}, nil, ErrMixedSuits
		}
	}

	plays := FindViablePlays(trump, reqs, cards)
	if len(plays) == 0 {
		return TrickFormat{}, nil, ErrWrongShape
	}
	units := plays[0]
	return TrickFormat{
		Suit:                suit,
		Trump:               trump,
		Units:               canonicalShapes(Shapes(units)),
		TractorRequirements: reqs,
	}, units, nil
}

// Size is the number of cards each play in the trick must contain.
func (f TrickFormat) Size() int {
	n := 0
	for _, u := range f.Units {
		n += u.Size()
	}
	return n
}

// Decomposition lists every shape a follower may be held to, strictest
// first. The format itself always comes first. Weaker shapes come from
// splitting a tractor into shorter pieces, or from lowering a tuple by one
// card per slot and adding those cards back as singles.
func (f TrickFormat) Decomposition(policy TrickDrawPolicy) [][]UnitLike {
	if policy == NoFormatBasedDraw {
		return [][]UnitLike{singles(f.Size())}
	}
	reqs := f.TractorRequirements.normalized()

	start := canonicalShapes(f.Units)
	seen := map[string]bool{shapesKey(start): true}
	queue := [][]UnitLike{start}
	var out [][]UnitLike

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		out = append(out, cur)

		for i, u := range cur {
			for _, repl := range reductions(u, reqs) {
				next := make([]UnitLike, 0, len(cur)+len(repl))
				next = append(next, cur[:i]...)
				next = append(next, cur[i+1:]...)
				next = canonicalShapes(append(next, repl...))
				if key := shapesKey(next); !seen[key] {
					seen[key] = true
					queue = append(queue, next)
				}
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return stricter(out[i], out[j]) })
	return out
}

// stricter compares canonical shape lists lexicographically, larger units
// first.
func stricter(a, b []UnitLike) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return shapeLess(b[i], a[i])
		}
	}
	return len(a) < len(b)
}

func reductions(u UnitLike, reqs TractorRequirements) [][]UnitLike {
	var out [][]UnitLike
	if u.Length > 1 {
		for a := 1; a <= u.Length/2; a++ {
			out = append(out, append(pieces(u.Count, a, reqs), pieces(u.Count, u.Length-a, reqs)...))
		}
	}
	if u.Count > 1 {
		lowered := pieces(u.Count-1, u.Length, reqs)
		out = append(out, append(lowered, repeat(single, u.Length)...))
	}
	return out
}

// pieces renders count-tuples over length slots as a tractor when the
// requirements allow one, or as separate repeated units otherwise.
func pieces(count, length int, reqs TractorRequirements) []UnitLike {
	if length == 1 {
		return []UnitLike{{Count: count, Length: 1}}
	}
	if length >= reqs.MinLength && reqs.allowsCount(count) {
		return []UnitLike{{Count: count, Length: length}}
	}
	return repeat(UnitLike{Count: count, Length: 1}, length)
}

func repeat(u UnitLike, n int) []UnitLike {
	out := make([]UnitLike, n)
	for i := range out {
		out[i] = u
	}
	return out
}

func singles(n int) []UnitLike { return repeat(single, n) }

// CheckFollow validates a follow of cards from hand against the format.
func (f TrickFormat) CheckFollow(hand domain.Hand, cards []domain.Card, policy TrickDrawPolicy) error {
	if len(cards) != f.Size() {
		return fmt.Errorf("%w: played %d, need %d", ErrWrongCount, len(cards), f.Size())
	}
	inSuit := func(c domain.Card) bool { return f.Trump.EffectiveSuit(c) == f.Suit }
	available := hand.Filter(inSuit)

	played := 0
	for _, c := range cards {
		if inSuit(c) {
			played++
		}
	}

	if len(available) <= f.Size() {
		if played != len(available) {
			return fmt.Errorf("%w: all %d %s cards must be played", ErrWrongSuit, len(available), f.Suit)
		}
		return nil
	}
	if played != len(cards) {
		return fmt.Errorf("%w: must play %s", ErrWrongSuit, f.Suit)
	}

	reqs := f.TractorRequirements.normalized()
	for _, shape := range f.Decomposition(policy) {
		if len(checkPlay(f.Trump, reqs, available, shape, policy, 1)) == 0 {
			continue
		}
		if len(checkPlay(f.Trump, reqs, cards, shape, NoProtections, 1)) > 0 {
			return nil
		}
		return fmt.Errorf("%w: must play %s", ErrWrongShape, MultiDescription(shape))
	}
	return nil
}

// Playable returns the ways available can fill shape, judging tractor
// membership by the format's own requirements.
func (f TrickFormat) Playable(available []domain.Card, shape []UnitLike, policy TrickDrawPolicy) [][]TrickUnit {
	return CheckPlay(f.Trump, f.TractorRequirements, available, shape, policy)
}
