package trick

import (
	"fmt"
	"sort"
	"strings"

	"shengji/internal/domain"
)

// UnitKind tags the two unit variants.
type UnitKind uint8

const (
	Repeated UnitKind = iota + 1
	Tractor
)

func (k UnitKind) String() string {
	switch k {
	case Repeated:
		return "repeated"
	case Tractor:
		return "tractor"
	}
	return "unknown"
}

func (k UnitKind) MarshalText() ([]byte, error) {
	if k != Repeated && k != Tractor {
		return nil, fmt.Errorf("unknown unit kind %d", uint8(k))
	}
	return []byte(k.String()), nil
}

func (k *UnitKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "repeated":
		*k = Repeated
	case "tractor":
		*k = Tractor
	default:
		return fmt.Errorf("unknown unit kind %q", string(text))
	}
	return nil
}

// TrickUnit is a concrete group of cards played as one unit: Count copies of
// a single card, or Count copies of each of several adjacent cards.
type TrickUnit struct {
	Kind    UnitKind      `json:"kind"`
	Count   int           `json:"count"`
	Members []domain.Card `json:"members"`
}

func repeatedUnit(c domain.Card, count int) TrickUnit {
	return TrickUnit{Kind: Repeated, Count: count, Members: []domain.Card{c}}
}

func tractorUnit(count int, members []domain.Card) TrickUnit {
	return TrickUnit{Kind: Tractor, Count: count, Members: members}
}

func (u TrickUnit) Size() int { return u.Count * len(u.Members) }

// Cards expands the unit into its individual cards.
func (u TrickUnit) Cards() []domain.Card {
	out := make([]domain.Card, 0, u.Size())
	for _, m := range u.Members {
		for i := 0; i < u.Count; i++ {
			out = append(out, m)
		}
	}
	return out
}

// Top is the highest member of the unit.
func (u TrickUnit) Top() domain.Card { return u.Members[len(u.Members)-1] }

// Shape abstracts the unit to its UnitLike.
func (u TrickUnit) Shape() UnitLike {
	return UnitLike{Count: u.Count, Length: len(u.Members)}
}

func (u TrickUnit) key() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d:%d", u.Kind, u.Count)
	for _, m := range u.Members {
		fmt.Fprintf(&b, ",%d/%d/%d", m.Suit, m.Number, m.Joker)
	}
	return b.String()
}

// UnitsCards flattens a grouping into its cards.
func UnitsCards(units []TrickUnit) []domain.Card {
	var out []domain.Card
	for _, u := range units {
		out = append(out, u.Cards()...)
	}
	return out
}

// Shapes maps a grouping to its shapes, preserving order.
func Shapes(units []TrickUnit) []UnitLike {
	out := make([]UnitLike, len(units))
	for i, u := range units {
		out[i] = u.Shape()
	}
	return out
}

func groupingKey(units []TrickUnit) string {
	keys := make([]string, len(units))
	for i, u := range units {
		keys[i] = u.key()
	}
	sort.Strings(keys)
	return strings.Join(keys, "|")
}

// UnitLike is the shape of a unit independent of its cards. Length is the
// number of adjacent card slots; 1 means a repeated unit.
type UnitLike struct {
	Count  int `json:"count"`
	Length int `json:"length"`
}

var single = UnitLike{Count: 1, Length: 1}

func (u UnitLike) Kind() UnitKind {
	if u.Length > 1 {
		return Tractor
	}
	return Repeated
}

func (u UnitLike) Size() int { return u.Count * u.Length }

// Like reports whether two units have the same shape.
func Like(a, b TrickUnit) bool { return a.Shape() == b.Shape() }

func (u UnitLike) Description() string {
	switch u.Kind() {
	case Tractor:
		return fmt.Sprintf("tractor of %d %s", u.Length, tupleName(u.Count, true))
	default:
		return tupleName(u.Count, false)
	}
}

func (u UnitLike) pluralDescription() string {
	switch u.Kind() {
	case Tractor:
		return fmt.Sprintf("tractors of %d %s", u.Length, tupleName(u.Count, true))
	default:
		return tupleName(u.Count, true)
	}
}

func tupleName(count int, plural bool) string {
	var name string
	switch count {
	case 1:
		name = "single"
	case 2:
		name = "pair"
	case 3:
		name = "triple"
	case 4:
		name = "quadruple"
	default:
		name = fmt.Sprintf("%d-tuple", count)
	}
	if plural {
		name += "s"
	}
	return name
}

var numberWords = []string{"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine", "ten"}

// MultiDescription labels a sequence of shapes, e.g. "two pairs and a single".
// Shapes are listed in order of first appearance.
func MultiDescription(shapes []UnitLike) string {
	var order []UnitLike
	counts := make(map[UnitLike]int)
	for _, s := range shapes {
		if counts[s] == 0 {
			order = append(order, s)
		}
		counts[s]++
	}

	parts := make([]string, len(order))
	for i, s := range order {
		n := counts[s]
		if n == 1 {
			parts[i] = "a " + s.Description()
			continue
		}
		word := fmt.Sprintf("%d", n)
		if n < len(numberWords) {
			word = numberWords[n]
		}
		parts[i] = word + " " + s.pluralDescription()
	}

	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	}
	return strings.Join(parts[:len(parts)-1], ", ") + " and " + parts[len(parts)-1]
}

// canonicalShapes sorts shapes from largest to smallest.
func canonicalShapes(shapes []UnitLike) []UnitLike {
	out := append([]UnitLike(nil), shapes...)
	sort.SliceStable(out, func(i, j int) bool { return shapeLess(out[j], out[i]) })
	return out
}

func shapeLess(a, b UnitLike) bool {
	if a.Size() != b.Size() {
		return a.Size() < b.Size()
	}
	if a.Count != b.Count {
		return a.Count < b.Count
	}
	return a.Length < b.Length
}

func shapesKey(shapes []UnitLike) string {
	var b strings.Builder
	for _, s := range shapes {
		fmt.Fprintf(&b, "%dx%d;", s.Count, s.Length)
	}
	return b.String()
}
