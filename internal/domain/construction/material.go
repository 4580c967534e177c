package construction

import (
	"fmt"

	"github.com/andrescamacho/architect-tracker/internal/domain/shared"
)

// MaterialRequirement is one commodity line of a construction depot
type MaterialRequirement struct {
	symbol         string // "$steel_name;" as reported by the depot
	displayName    string // localized, e.g. "Steel"
	requiredAmount int
	providedAmount int
}

// NewMaterialRequirement creates a MaterialRequirement value object
func NewMaterialRequirement(symbol, displayName string, required, provided int) (MaterialRequirement, error) {
	if symbol == "" {
		return MaterialRequirement{}, shared.NewValidationError("symbol", "cannot be empty")
	}
	if required < 0 {
		return MaterialRequirement{}, shared.NewValidationError("required_amount", fmt.Sprintf("cannot be negative: %d", required))
	}
	if provided < 0 {
		return MaterialRequirement{}, shared.NewValidationError("provided_amount", fmt.Sprintf("cannot be negative: %d", provided))
	}
	return MaterialRequirement{
		symbol:         symbol,
		displayName:    displayName,
		requiredAmount: required,
		providedAmount: provided,
	}, nil
}

func (m MaterialRequirement) Symbol() string      { return m.symbol }
func (m MaterialRequirement) DisplayName() string { return m.displayName }
func (m MaterialRequirement) RequiredAmount() int { return m.requiredAmount }
func (m MaterialRequirement) ProvidedAmount() int { return m.providedAmount }

// CommodityKey is the normalized join key for market, cargo and carrier lookups
func (m MaterialRequirement) CommodityKey() string {
	return shared.NormalizeCommodity(m.symbol)
}

// Needed is required minus provided. Over-delivery yields a negative value.
func (m MaterialRequirement) Needed() int {
	return m.requiredAmount - m.providedAmount
}

// Outstanding is Needed floored at zero
func (m MaterialRequirement) Outstanding() int {
	if n := m.Needed(); n > 0 {
		return n
	}
	return 0
}

// IsProvided returns true once the delivered amount covers the requirement
func (m MaterialRequirement) IsProvided() bool {
	return m.providedAmount >= m.requiredAmount
}

// MaterialSet is an insertion-ordered mapping from commodity symbol to requirement
type MaterialSet struct {
	order []string
	items map[string]MaterialRequirement
}

// NewMaterialSet creates a material set, keeping the order of the given requirements
func NewMaterialSet(requirements ...MaterialRequirement) *MaterialSet {
	s := &MaterialSet{items: make(map[string]MaterialRequirement, len(requirements))}
	for _, r := range requirements {
		s.Put(r)
	}
	return s
}

// Put adds or replaces a requirement. Replacing keeps the original position.
func (s *MaterialSet) Put(r MaterialRequirement) {
	if _, exists := s.items[r.symbol]; !exists {
		s.order = append(s.order, r.symbol)
	}
	s.items[r.symbol] = r
}

// Get returns the requirement for a symbol
func (s *MaterialSet) Get(symbol string) (MaterialRequirement, bool) {
	if s == nil {
		return MaterialRequirement{}, false
	}
	r, ok := s.items[symbol]
	return r, ok
}

// All returns the requirements in insertion order
func (s *MaterialSet) All() []MaterialRequirement {
	if s == nil {
		return nil
	}
	out := make([]MaterialRequirement, 0, len(s.order))
	for _, symbol := range s.order {
		out = append(out, s.items[symbol])
	}
	return out
}

func (s *MaterialSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// IsComplete returns true when every requirement is provided.
// An empty set is complete.
func (s *MaterialSet) IsComplete() bool {
	for _, r := range s.All() {
		if !r.IsProvided() {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the set
func (s *MaterialSet) Clone() *MaterialSet {
	return NewMaterialSet(s.All()...)
}

// Equal compares two sets including order
func (s *MaterialSet) Equal(other *MaterialSet) bool {
	a, b := s.All(), other.All()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
