package carrier

import (
	"context"
	"sync"

	"github.com/andrescamacho/architect-tracker/internal/adapters/metrics"
	"github.com/andrescamacho/architect-tracker/internal/application/logging"
	"github.com/andrescamacho/architect-tracker/internal/domain/carrier"
)

const storeName = "carrier"

// Tracker owns the in-memory carrier ledger for this process and writes it
// through to the repository after every mutation.
//
// A failed write leaves memory authoritative; the next mutation retries.
type Tracker struct {
	mu     sync.Mutex
	repo   carrier.LedgerRepository
	logger logging.Logger
	ledger *carrier.Ledger
	dirty  bool
}

// NewTracker restores the ledger from the repository. A missing document
// gives an empty ledger; an unreadable one is logged and replaced by an
// empty ledger without failing.
func NewTracker(ctx context.Context, repo carrier.LedgerRepository, logger logging.Logger) *Tracker {
	t := &Tracker{
		repo:   repo,
		logger: logging.OrNoOp(logger),
	}

	ledger, err := repo.Load(ctx)
	if err != nil {
		t.logger.Log(logging.LevelError, "Failed to read carrier ledger, starting empty", map[string]interface{}{
			"error": err.Error(),
		})
		ledger = nil
	}
	if ledger == nil {
		ledger = carrier.NewLedger()
	}
	t.ledger = ledger
	metrics.SetCarrierUnits(ledger.TotalUnits())
	return t
}

// ApplySnapshot replaces the ledger with a full carrier cargo dump
func (t *Tracker) ApplySnapshot(ctx context.Context, items []carrier.CargoItem, meta carrier.Metadata) (carrier.SnapshotResult, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	result := t.ledger.ApplyFullSnapshot(items, meta)
	if result.NameError != nil {
		t.logger.Log(logging.LevelWarn, "Carrier vanity name could not be decoded", map[string]interface{}{
			"vanity_name": meta.VanityNameHex,
			"error":       result.NameError.Error(),
		})
	}
	if len(result.SkippedItems) > 0 {
		t.logger.Log(logging.LevelWarn, "Skipped unusable carrier cargo lines", map[string]interface{}{
			"indexes": result.SkippedItems,
		})
		metrics.RecordSkippedEntries("carrier_cargo", len(result.SkippedItems))
	}
	t.logger.Log(logging.LevelInfo, "Carrier cargo snapshot applied", map[string]interface{}{
		"carrier":     t.ledger.CarrierName(),
		"callsign":    t.ledger.Callsign(),
		"commodities": result.Commodities,
	})

	return result, t.persistLocked(ctx)
}

// ApplyTransfers applies a batch of transfer deltas
func (t *Tracker) ApplyTransfers(ctx context.Context, transfers []carrier.Transfer) (carrier.TransferResult, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	result := t.ledger.ApplyTransfers(transfers)
	if len(result.Skipped) > 0 {
		t.logger.Log(logging.LevelWarn, "Skipped unusable cargo transfers", map[string]interface{}{
			"indexes": result.Skipped,
		})
		metrics.RecordSkippedEntries("cargo_transfer", len(result.Skipped))
	}
	if len(result.Applied) == 0 && !t.dirty {
		return result, true
	}

	return result, t.persistLocked(ctx)
}

// Quantity implements carrier.QuantitySource
func (t *Tracker) Quantity(commodity string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ledger.Quantity(commodity)
}

// Snapshot returns a copy of the ledger for read-only display
func (t *Tracker) Snapshot() *carrier.Ledger {
	t.mu.Lock()
	defer t.mu.Unlock()
	return carrier.ReconstructLedger(t.ledger.CarrierName(), t.ledger.Callsign(), t.ledger.Commodities())
}

func (t *Tracker) persistLocked(ctx context.Context) bool {
	metrics.SetCarrierUnits(t.ledger.TotalUnits())

	if err := t.repo.Save(ctx, t.ledger); err != nil {
		t.dirty = true
		metrics.RecordPersistenceError(storeName)
		t.logger.Log(logging.LevelError, "Failed to write carrier ledger, keeping in-memory state", map[string]interface{}{
			"error": err.Error(),
		})
		return false
	}
	t.dirty = false
	return true
}
