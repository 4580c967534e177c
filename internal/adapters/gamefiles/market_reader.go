package gamefiles

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/andrescamacho/architect-tracker/internal/adapters/metrics"
	"github.com/andrescamacho/architect-tracker/internal/domain/market"
)

// marketFile is the subset of Market.json the tracker reads
type marketFile struct {
	StationName string `json:"StationName"`
	StarSystem  string `json:"StarSystem"`
	Items       []struct {
		Name          string `json:"Name"`
		NameLocalised string `json:"Name_Localised"`
		Stock         int    `json:"Stock"`
	} `json:"Items"`
}

// MarketReader reads the market snapshot the game writes on docking
type MarketReader struct {
	path string
}

// NewMarketReader creates a reader for the Market.json at path
func NewMarketReader(path string) *MarketReader {
	return &MarketReader{path: path}
}

// ReadMarket implements market.SnapshotReader. A missing file yields an
// empty market; a malformed one an empty market and the decode error.
func (r *MarketReader) ReadMarket(ctx context.Context) (*market.Market, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return market.EmptyMarket(), nil
	}
	if err != nil {
		return market.EmptyMarket(), fmt.Errorf("failed to read market snapshot: %w", err)
	}

	var file marketFile
	if err := json.Unmarshal(data, &file); err != nil {
		return market.EmptyMarket(), fmt.Errorf("failed to decode market snapshot %s: %w", r.path, err)
	}

	goods := make([]market.TradeGood, 0, len(file.Items))
	skipped := 0
	for _, item := range file.Items {
		good, err := market.NewTradeGood(item.Name, item.NameLocalised, item.Stock)
		if err != nil {
			skipped++
			continue
		}
		goods = append(goods, *good)
	}
	metrics.RecordSkippedEntries("market", skipped)

	return market.NewMarket(file.StationName, goods), nil
}
