package supply

import (
	"github.com/shopspring/decimal"

	"github.com/andrescamacho/architect-tracker/internal/domain/construction"
	"github.com/andrescamacho/architect-tracker/pkg/utils"
)

var hundred = decimal.NewFromInt(100)

// CompletionPercentage returns delivered-over-required in [0,100]. Excess
// deliveries of one commodity do not count towards another. A set with
// nothing required is 100% done.
func CompletionPercentage(materials *construction.MaterialSet) float64 {
	required := decimal.Zero
	provided := decimal.Zero
	for _, m := range materials.All() {
		required = required.Add(decimal.NewFromInt(int64(m.RequiredAmount())))
		provided = provided.Add(decimal.NewFromInt(int64(utils.Min(m.ProvidedAmount(), m.RequiredAmount()))))
	}
	if required.IsZero() {
		return 100.0
	}
	pct, _ := provided.Div(required).Mul(hundred).Float64()
	return pct
}

// OutstandingUnits sums what is still missing across all materials
func OutstandingUnits(materials *construction.MaterialSet) int {
	total := 0
	for _, m := range materials.All() {
		total += m.Outstanding()
	}
	return total
}

// RequiredTrips estimates how many full cargo runs remain. Any outstanding
// amount costs at least one trip; a non-positive capacity is treated as 1.
func RequiredTrips(materials *construction.MaterialSet, cargoCapacity int) int {
	outstanding := OutstandingUnits(materials)
	if outstanding <= 0 {
		return 0
	}
	return utils.Max(1, utils.CeilDiv(outstanding, utils.Max(1, cargoCapacity)))
}
