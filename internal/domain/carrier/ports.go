package carrier

import "context"

// LedgerRepository persists the carrier ledger.
// Load returns an empty ledger when nothing has been persisted yet.
type LedgerRepository interface {
	Load(ctx context.Context) (*Ledger, error)
	Save(ctx context.Context, ledger *Ledger) error
}

// QuantitySource is the read side of the ledger used by supply calculations
type QuantitySource interface {
	Quantity(commodity string) int
}
