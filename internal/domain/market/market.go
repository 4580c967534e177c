package market

import "github.com/andrescamacho/architect-tracker/internal/domain/shared"

// Market is the snapshot of the last market the player opened
type Market struct {
	stationName string
	tradeGoods  []TradeGood
}

// NewMarket creates a Market snapshot. An empty station name is allowed:
// the game omits it for some market types.
func NewMarket(stationName string, tradeGoods []TradeGood) *Market {
	goodsCopy := make([]TradeGood, len(tradeGoods))
	copy(goodsCopy, tradeGoods)

	return &Market{
		stationName: stationName,
		tradeGoods:  goodsCopy,
	}
}

// EmptyMarket is used when no snapshot is available
func EmptyMarket() *Market {
	return &Market{}
}

func (m *Market) StationName() string {
	if m == nil {
		return ""
	}
	return m.stationName
}

func (m *Market) TradeGoods() []TradeGood {
	if m == nil {
		return nil
	}
	goodsCopy := make([]TradeGood, len(m.tradeGoods))
	copy(goodsCopy, m.tradeGoods)
	return goodsCopy
}

// FindGood searches for a trade good by normalized commodity key
func (m *Market) FindGood(symbol string) *TradeGood {
	if m == nil {
		return nil
	}
	key := shared.NormalizeCommodity(symbol)
	for i := range m.tradeGoods {
		if m.tradeGoods[i].CommodityKey() == key {
			good := m.tradeGoods[i]
			return &good
		}
	}
	return nil
}

// StockOf returns the stock for a commodity, 0 if the market does not list it
func (m *Market) StockOf(symbol string) int {
	if good := m.FindGood(symbol); good != nil {
		return good.Stock()
	}
	return 0
}

// GoodsCount returns the number of trade goods in the market
func (m *Market) GoodsCount() int {
	if m == nil {
		return 0
	}
	return len(m.tradeGoods)
}
