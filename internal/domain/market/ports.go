package market

import (
	"context"

	"github.com/andrescamacho/architect-tracker/internal/domain/shared"
)

// SnapshotReader reads the market snapshot written by the game client.
// A missing snapshot is not an error: an empty market is returned.
type SnapshotReader interface {
	ReadMarket(ctx context.Context) (*Market, error)
}

// CargoReader reads the ship cargo snapshot written by the game client.
// A missing snapshot is not an error: an empty manifest is returned.
type CargoReader interface {
	ReadCargo(ctx context.Context) (*shared.Cargo, error)
}
