package queries

import (
	"context"
	"fmt"
	"sort"

	appConstruction "github.com/andrescamacho/architect-tracker/internal/application/construction"
	"github.com/andrescamacho/architect-tracker/internal/application/logging"
	"github.com/andrescamacho/architect-tracker/internal/application/mediator"
	"github.com/andrescamacho/architect-tracker/internal/domain/carrier"
	"github.com/andrescamacho/architect-tracker/internal/domain/construction"
	"github.com/andrescamacho/architect-tracker/internal/domain/market"
	"github.com/andrescamacho/architect-tracker/internal/domain/shared"
	"github.com/andrescamacho/architect-tracker/internal/domain/supply"
)

// GetFacilityViewQuery builds the supply view for one facility, or for every
// tracked facility (optionally limited to one system) when FacilityID is empty.
type GetFacilityViewQuery struct {
	FacilityID    string
	System        string
	HideProvided  bool
	CargoCapacity int
}

// FacilityView is the derived, read-only view of one facility
type FacilityView struct {
	FacilityID    string         `json:"facility_id" yaml:"facility_id"`
	DisplayName   string         `json:"display_name" yaml:"display_name"`
	System        string         `json:"system" yaml:"system"`
	MarketStation string         `json:"market_station,omitempty" yaml:"market_station,omitempty"`
	CarrierName   string         `json:"carrier_name,omitempty" yaml:"carrier_name,omitempty"`
	Rows          []supply.Row   `json:"rows" yaml:"rows"`
	Summary       supply.Summary `json:"summary" yaml:"summary"`
}

// GetFacilityViewResponse holds the views in facility identity order
type GetFacilityViewResponse struct {
	Views []FacilityView `json:"views" yaml:"views"`
}

// GetFacilityViewHandler handles the GetFacilityView query
type GetFacilityViewHandler struct {
	store         *appConstruction.Store
	marketReader  market.SnapshotReader
	cargoReader   market.CargoReader
	carrierStock  carrier.QuantitySource
	carrierLedger func() *carrier.Ledger
}

// NewGetFacilityViewHandler creates a new GetFacilityViewHandler.
// carrierLedger may be nil when the carrier name is not needed.
func NewGetFacilityViewHandler(
	store *appConstruction.Store,
	marketReader market.SnapshotReader,
	cargoReader market.CargoReader,
	carrierStock carrier.QuantitySource,
	carrierLedger func() *carrier.Ledger,
) *GetFacilityViewHandler {
	return &GetFacilityViewHandler{
		store:         store,
		marketReader:  marketReader,
		cargoReader:   cargoReader,
		carrierStock:  carrierStock,
		carrierLedger: carrierLedger,
	}
}

// Handle executes the GetFacilityView query
func (h *GetFacilityViewHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetFacilityViewQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetFacilityViewQuery")
	}

	facilities := h.store.Load(ctx)
	selected := make([]*construction.Facility, 0, len(facilities))
	if query.FacilityID != "" {
		id := construction.CanonicalFacilityID(query.FacilityID)
		f, found := facilities[id]
		if !found {
			return nil, shared.NewFacilityNotFoundError(id.String())
		}
		selected = append(selected, f)
	} else {
		for _, f := range facilities {
			if query.System != "" && f.System() != query.System {
				continue
			}
			selected = append(selected, f)
		}
		sort.Slice(selected, func(i, j int) bool { return selected[i].ID() < selected[j].ID() })
	}

	mkt := h.readMarket(ctx)
	cargo := h.readCargo(ctx)
	carrierName := ""
	if h.carrierLedger != nil {
		if ledger := h.carrierLedger(); ledger != nil {
			carrierName = ledger.CarrierName()
		}
	}

	opts := supply.ViewOptions{HideProvided: query.HideProvided, CargoCapacity: query.CargoCapacity}
	response := &GetFacilityViewResponse{Views: make([]FacilityView, 0, len(selected))}
	for _, f := range selected {
		response.Views = append(response.Views, FacilityView{
			FacilityID:    f.ID().String(),
			DisplayName:   f.DisplayName(),
			System:        f.System(),
			MarketStation: mkt.StationName(),
			CarrierName:   carrierName,
			Rows:          supply.ComputeView(f, mkt, cargo, h.carrierStock, opts),
			Summary:       supply.Summarize(f, cargo, opts),
		})
	}
	return response, nil
}

func (h *GetFacilityViewHandler) readMarket(ctx context.Context) *market.Market {
	if h.marketReader == nil {
		return market.EmptyMarket()
	}
	mkt, err := h.marketReader.ReadMarket(ctx)
	if err != nil {
		logging.LoggerFromContext(ctx).Log(logging.LevelWarn, "Market snapshot unavailable", map[string]interface{}{
			"error": err.Error(),
		})
		return market.EmptyMarket()
	}
	return mkt
}

func (h *GetFacilityViewHandler) readCargo(ctx context.Context) *shared.Cargo {
	if h.cargoReader == nil {
		return shared.NewCargo(nil)
	}
	cargo, err := h.cargoReader.ReadCargo(ctx)
	if err != nil {
		logging.LoggerFromContext(ctx).Log(logging.LevelWarn, "Cargo snapshot unavailable", map[string]interface{}{
			"error": err.Error(),
		})
		return shared.NewCargo(nil)
	}
	return cargo
}
