package shared

import "fmt"

// CargoItem is one commodity line of a cargo hold, as reported by the game
type CargoItem struct {
	Symbol string
	Units  int
}

// NewCargoItem creates a cargo item with validation
func NewCargoItem(symbol string, units int) (CargoItem, error) {
	if symbol == "" {
		return CargoItem{}, fmt.Errorf("cargo symbol cannot be empty")
	}
	if units < 0 {
		return CargoItem{}, fmt.Errorf("cargo units cannot be negative")
	}
	return CargoItem{Symbol: symbol, Units: units}, nil
}

// Cargo is the player's ship hold manifest
type Cargo struct {
	Inventory []CargoItem
}

// NewCargo creates a cargo manifest from already validated items
func NewCargo(inventory []CargoItem) *Cargo {
	return &Cargo{Inventory: inventory}
}

// GetItemUnits returns the units held for a commodity, matching on the
// normalized commodity key. Duplicate lines are summed.
func (c *Cargo) GetItemUnits(symbol string) int {
	if c == nil {
		return 0
	}
	key := NormalizeCommodity(symbol)
	total := 0
	for _, item := range c.Inventory {
		if NormalizeCommodity(item.Symbol) == key {
			total += item.Units
		}
	}
	return total
}

// TotalUnits returns the sum of all units in the hold
func (c *Cargo) TotalUnits() int {
	if c == nil {
		return 0
	}
	total := 0
	for _, item := range c.Inventory {
		total += item.Units
	}
	return total
}

// IsEmpty checks if cargo hold is empty
func (c *Cargo) IsEmpty() bool {
	return c.TotalUnits() == 0
}

func (c *Cargo) String() string {
	return fmt.Sprintf("Cargo(%d units, %d lines)", c.TotalUnits(), len(c.Inventory))
}
