package queries

import (
	"context"
	"fmt"

	appCarrier "github.com/andrescamacho/architect-tracker/internal/application/carrier"
	"github.com/andrescamacho/architect-tracker/internal/application/mediator"
)

// GetCarrierQuery reads the carrier ledger
type GetCarrierQuery struct{}

// CommodityStock is one ledger line
type CommodityStock struct {
	Commodity string `json:"commodity" yaml:"commodity"`
	Quantity  int    `json:"quantity" yaml:"quantity"`
}

// GetCarrierResponse is the ledger as shown to the user
type GetCarrierResponse struct {
	CarrierName string           `json:"carrier_name" yaml:"carrier_name"`
	Callsign    string           `json:"callsign" yaml:"callsign"`
	TotalUnits  int              `json:"total_units" yaml:"total_units"`
	Commodities []CommodityStock `json:"commodities" yaml:"commodities"`
}

// GetCarrierHandler handles the GetCarrier query
type GetCarrierHandler struct {
	tracker *appCarrier.Tracker
}

// NewGetCarrierHandler creates a new GetCarrierHandler
func NewGetCarrierHandler(tracker *appCarrier.Tracker) *GetCarrierHandler {
	return &GetCarrierHandler{tracker: tracker}
}

// Handle executes the GetCarrier query
func (h *GetCarrierHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*GetCarrierQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetCarrierQuery")
	}

	ledger := h.tracker.Snapshot()
	response := &GetCarrierResponse{
		CarrierName: ledger.CarrierName(),
		Callsign:    ledger.Callsign(),
		TotalUnits:  ledger.TotalUnits(),
		Commodities: make([]CommodityStock, 0),
	}
	for _, name := range ledger.CommodityNames() {
		response.Commodities = append(response.Commodities, CommodityStock{
			Commodity: name,
			Quantity:  ledger.Quantity(name),
		})
	}
	return response, nil
}
