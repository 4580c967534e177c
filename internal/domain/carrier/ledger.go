package carrier

import (
	"sort"
	"strings"

	"github.com/andrescamacho/architect-tracker/internal/domain/shared"
)

// Direction of a cargo transfer between ship and carrier
type Direction string

const (
	DirectionToCarrier Direction = "tocarrier"
	DirectionToShip    Direction = "toship"
)

var directionReplacer = strings.NewReplacer("-", "", "_", "", " ", "")

// ParseDirection accepts the journal spelling ("tocarrier") as well as the
// hyphenated form ("to-carrier"). Anything else is not a carrier transfer.
func ParseDirection(raw string) (Direction, bool) {
	switch d := Direction(strings.ToLower(directionReplacer.Replace(raw))); d {
	case DirectionToCarrier, DirectionToShip:
		return d, true
	}
	return "", false
}

// CargoItem is one line of a full carrier cargo dump
type CargoItem struct {
	Name     string
	Quantity int
}

// Metadata identifies the carrier in a full snapshot
type Metadata struct {
	VanityNameHex string
	Callsign      string
}

// Transfer is one line of a CargoTransfer journal event
type Transfer struct {
	CommodityName string
	Count         int
	Direction     string
}

// SnapshotResult describes what a full snapshot did
type SnapshotResult struct {
	Commodities  int
	SkippedItems []int // indexes of unusable cargo lines
	NameError    error // vanity name could not be decoded
}

// TransferResult describes what a batch of transfers did
type TransferResult struct {
	Applied []int
	Skipped []int
}

// Ledger is the running inventory of the player's fleet carrier.
// Commodity keys are normalized; quantities never go below zero.
type Ledger struct {
	carrierName string
	callsign    string
	commodities map[string]int
}

// NewLedger creates an empty ledger
func NewLedger() *Ledger {
	return &Ledger{commodities: make(map[string]int)}
}

// ReconstructLedger rebuilds a ledger from persisted state, normalizing keys
// and dropping negative quantities written by older versions.
func ReconstructLedger(carrierName, callsign string, commodities map[string]int) *Ledger {
	l := &Ledger{
		carrierName: carrierName,
		callsign:    callsign,
		commodities: make(map[string]int, len(commodities)),
	}
	for name, qty := range commodities {
		key := shared.NormalizeCommodity(name)
		if key == "" || qty <= 0 {
			continue
		}
		l.commodities[key] += qty
	}
	return l
}

// Getters for Ledger

func (l *Ledger) CarrierName() string { return l.carrierName }
func (l *Ledger) Callsign() string    { return l.callsign }

// Commodities returns a copy of the inventory keyed by normalized name
func (l *Ledger) Commodities() map[string]int {
	out := make(map[string]int, len(l.commodities))
	for k, v := range l.commodities {
		out[k] = v
	}
	return out
}

// CommodityNames returns the inventory keys in sorted order
func (l *Ledger) CommodityNames() []string {
	names := make([]string, 0, len(l.commodities))
	for k := range l.commodities {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Quantity returns the units held for a commodity, 0 if absent
func (l *Ledger) Quantity(commodity string) int {
	if l == nil {
		return 0
	}
	return l.commodities[shared.NormalizeCommodity(commodity)]
}

// TotalUnits sums the whole inventory
func (l *Ledger) TotalUnits() int {
	total := 0
	for _, v := range l.commodities {
		total += v
	}
	return total
}

// ApplyFullSnapshot replaces the inventory with a full cargo dump. Lines
// sharing a normalized name are summed; nameless lines are skipped.
func (l *Ledger) ApplyFullSnapshot(items []CargoItem, meta Metadata) SnapshotResult {
	result := SnapshotResult{}
	l.commodities = make(map[string]int, len(items))

	for i, item := range items {
		key := shared.NormalizeCommodity(item.Name)
		if key == "" {
			result.SkippedItems = append(result.SkippedItems, i)
			continue
		}
		qty := item.Quantity
		if qty < 0 {
			qty = 0
		}
		l.commodities[key] += qty
	}
	for key, qty := range l.commodities {
		if qty == 0 {
			delete(l.commodities, key)
		}
	}

	name, err := DisplayName(meta.VanityNameHex)
	l.carrierName = name
	l.callsign = meta.Callsign
	result.NameError = err
	result.Commodities = len(l.commodities)
	return result
}

// ApplyTransfers adjusts the inventory by a batch of transfer deltas.
// Outbound transfers clamp at zero.
func (l *Ledger) ApplyTransfers(transfers []Transfer) TransferResult {
	result := TransferResult{}
	for i, t := range transfers {
		key := shared.NormalizeCommodity(t.CommodityName)
		direction, ok := ParseDirection(t.Direction)
		if key == "" || t.Count <= 0 || !ok {
			result.Skipped = append(result.Skipped, i)
			continue
		}

		current := l.commodities[key]
		switch direction {
		case DirectionToCarrier:
			current += t.Count
		case DirectionToShip:
			current -= t.Count
			if current < 0 {
				current = 0
			}
		}
		if current == 0 {
			delete(l.commodities, key)
		} else {
			l.commodities[key] = current
		}
		result.Applied = append(result.Applied, i)
	}
	return result
}
