package market

import (
	"fmt"

	"github.com/andrescamacho/architect-tracker/internal/domain/shared"
)

// TradeGood is one commodity line of a market snapshot
type TradeGood struct {
	symbol        string // "$gold_name;"
	localizedName string
	stock         int
}

// NewTradeGood creates a new TradeGood with validation
func NewTradeGood(symbol, localizedName string, stock int) (*TradeGood, error) {
	if symbol == "" {
		return nil, fmt.Errorf("trade good symbol cannot be empty")
	}
	if stock < 0 {
		return nil, fmt.Errorf("stock cannot be negative")
	}
	return &TradeGood{
		symbol:        symbol,
		localizedName: localizedName,
		stock:         stock,
	}, nil
}

func (g *TradeGood) Symbol() string        { return g.symbol }
func (g *TradeGood) LocalizedName() string { return g.localizedName }
func (g *TradeGood) Stock() int            { return g.stock }

// CommodityKey is the normalized join key
func (g *TradeGood) CommodityKey() string {
	return shared.NormalizeCommodity(g.symbol)
}

// IsForSale returns true when the market has stock to buy
func (g *TradeGood) IsForSale() bool {
	return g.stock > 0
}
