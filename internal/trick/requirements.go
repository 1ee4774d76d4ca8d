package trick

import "fmt"

// TractorRequirements constrain which runs count as tractors. Zero fields
// take the defaults: pairs or longer, at least two slots, no upper bound on
// tuple size.
type TractorRequirements struct {
	MinCount  int `json:"min_count,omitempty"`
	MinLength int `json:"min_length,omitempty"`
	// MaxCount caps the tuple size that may form a tractor. 2 means only
	// pairs chain into tractors.
	MaxCount int `json:"max_count,omitempty"`
}

func (r TractorRequirements) normalized() TractorRequirements {
	if r.MinCount < 2 {
		r.MinCount = 2
	}
	if r.MinLength < 2 {
		r.MinLength = 2
	}
	if r.MaxCount < 0 || (r.MaxCount > 0 && r.MaxCount < r.MinCount) {
		r.MaxCount = 0
	}
	return r
}

func (r TractorRequirements) allowsCount(count int) bool {
	return count >= r.MinCount && (r.MaxCount == 0 || count <= r.MaxCount)
}

// TrickDrawPolicy controls which holdings a follower can be forced to break
// up to match the led format.
type TrickDrawPolicy uint8

const (
	NoProtections TrickDrawPolicy = iota
	LongerTuplesProtected
	OnlyDrawTractorOnTractor
	LongerTuplesProtectedAndOnlyDrawTractorOnTractor
	NoFormatBasedDraw
)

var drawPolicyNames = map[TrickDrawPolicy]string{
	NoProtections:            "NoProtections",
	LongerTuplesProtected:    "LongerTuplesProtected",
	OnlyDrawTractorOnTractor: "OnlyDrawTractorOnTractor",
	LongerTuplesProtectedAndOnlyDrawTractorOnTractor: "LongerTuplesProtectedAndOnlyDrawTractorOnTractor",
	NoFormatBasedDraw: "NoFormatBasedDraw",
}

func (p TrickDrawPolicy) String() string { return drawPolicyNames[p] }

func (p TrickDrawPolicy) MarshalText() ([]byte, error) {
	name, ok := drawPolicyNames[p]
	if !ok {
		return nil, fmt.Errorf("unknown trick draw policy %d", uint8(p))
	}
	return []byte(name), nil
}

func (p *TrickDrawPolicy) UnmarshalText(text []byte) error {
	for policy, name := range drawPolicyNames {
		if name == string(text) {
			*p = policy
			return nil
		}
	}
	return fmt.Errorf("unknown trick draw policy %q", string(text))
}

func (p TrickDrawPolicy) protectsLongerTuples() bool {
	return p == LongerTuplesProtected || p == LongerTuplesProtectedAndOnlyDrawTractorOnTractor
}

func (p TrickDrawPolicy) protectsTractors() bool {
	return p == OnlyDrawTractorOnTractor || p == LongerTuplesProtectedAndOnlyDrawTractorOnTractor
}
