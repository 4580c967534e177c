package supply

import (
	"github.com/andrescamacho/architect-tracker/internal/domain/carrier"
	"github.com/andrescamacho/architect-tracker/internal/domain/construction"
	"github.com/andrescamacho/architect-tracker/internal/domain/market"
	"github.com/andrescamacho/architect-tracker/internal/domain/shared"
	"github.com/andrescamacho/architect-tracker/pkg/utils"
)

// Row is one commodity line of the facility view
type Row struct {
	Symbol          string `json:"symbol" yaml:"symbol"`
	DisplayName     string `json:"display_name" yaml:"display_name"`
	Required        int    `json:"required" yaml:"required"`
	Provided        int    `json:"provided" yaml:"provided"`
	Needed          int    `json:"needed" yaml:"needed"` // may be negative when over-delivered
	ForSale         bool   `json:"for_sale" yaml:"for_sale"`
	MarketStock     int    `json:"market_stock" yaml:"market_stock"`
	CarrierQuantity int    `json:"carrier_quantity" yaml:"carrier_quantity"`
	ShipQuantity    int    `json:"ship_quantity" yaml:"ship_quantity"`
	Shortfall       int    `json:"shortfall" yaml:"shortfall"`
}

// ViewOptions are display preferences that shape the view
type ViewOptions struct {
	HideProvided  bool
	CargoCapacity int
}

// Summary is the aggregate line shown under the table
type Summary struct {
	RequiredTrips        int     `json:"required_trips" yaml:"required_trips"`
	CompletionPercentage float64 `json:"completion_percentage" yaml:"completion_percentage"`
	OutstandingUnits     int     `json:"outstanding_units" yaml:"outstanding_units"`
	ShipCargoUnits       int     `json:"ship_cargo_units" yaml:"ship_cargo_units"`
	CargoCapacity        int     `json:"cargo_capacity" yaml:"cargo_capacity"`
}

// ComputeView overlays market, carrier and ship supply on a facility's
// requirements. Rows follow the material order of the depot snapshot.
func ComputeView(
	facility *construction.Facility,
	mkt *market.Market,
	cargo *shared.Cargo,
	carrierStock carrier.QuantitySource,
	opts ViewOptions,
) []Row {
	if facility == nil {
		return nil
	}

	rows := make([]Row, 0, facility.Materials().Len())
	for _, m := range facility.Materials().All() {
		if opts.HideProvided && m.IsProvided() {
			continue
		}

		key := m.CommodityKey()
		stock := mkt.StockOf(key)
		carrierQty := 0
		if carrierStock != nil {
			carrierQty = carrierStock.Quantity(key)
		}
		shipQty := cargo.GetItemUnits(key)
		needed := m.Needed()

		rows = append(rows, Row{
			Symbol:          m.Symbol(),
			DisplayName:     m.DisplayName(),
			Required:        m.RequiredAmount(),
			Provided:        m.ProvidedAmount(),
			Needed:          needed,
			ForSale:         stock > 0,
			MarketStock:     stock,
			CarrierQuantity: carrierQty,
			ShipQuantity:    shipQty,
			Shortfall:       utils.Max(0, needed-(carrierQty+shipQty)),
		})
	}
	return rows
}

// Summarize computes trips, completion and hold usage for a facility
func Summarize(facility *construction.Facility, cargo *shared.Cargo, opts ViewOptions) Summary {
	capacity := utils.Max(1, opts.CargoCapacity)
	summary := Summary{
		CompletionPercentage: 100.0,
		ShipCargoUnits:       cargo.TotalUnits(),
		CargoCapacity:        capacity,
	}
	if facility == nil {
		return summary
	}
	summary.RequiredTrips = RequiredTrips(facility.Materials(), capacity)
	summary.CompletionPercentage = CompletionPercentage(facility.Materials())
	summary.OutstandingUnits = OutstandingUnits(facility.Materials())
	return summary
}
