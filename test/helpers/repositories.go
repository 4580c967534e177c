package helpers

import (
	"context"
	"errors"
	"sync"

	"github.com/andrescamacho/architect-tracker/internal/domain/carrier"
	"github.com/andrescamacho/architect-tracker/internal/domain/construction"
)

// ErrDiskFull is returned by repositories told to fail writes
var ErrDiskFull = errors.New("no space left on device")

// CountingFacilityRepository wraps a facility repository, counts writes and
// can be told to fail them
type CountingFacilityRepository struct {
	construction.FacilityRepository

	mu         sync.Mutex
	saves      int
	failWrites bool
}

// NewCountingFacilityRepository wraps inner
func NewCountingFacilityRepository(inner construction.FacilityRepository) *CountingFacilityRepository {
	return &CountingFacilityRepository{FacilityRepository: inner}
}

func (r *CountingFacilityRepository) SaveAll(ctx context.Context, facilities map[construction.FacilityID]*construction.Facility) error {
	r.mu.Lock()
	r.saves++
	fail := r.failWrites
	r.mu.Unlock()

	if fail {
		return ErrDiskFull
	}
	return r.FacilityRepository.SaveAll(ctx, facilities)
}

// Saves returns the number of SaveAll calls, failed ones included
func (r *CountingFacilityRepository) Saves() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves
}

// FailWrites toggles write failures
func (r *CountingFacilityRepository) FailWrites(fail bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failWrites = fail
}

// CountingLedgerRepository wraps a ledger repository the same way
type CountingLedgerRepository struct {
	carrier.LedgerRepository

	mu         sync.Mutex
	saves      int
	failWrites bool
}

// NewCountingLedgerRepository wraps inner
func NewCountingLedgerRepository(inner carrier.LedgerRepository) *CountingLedgerRepository {
	return &CountingLedgerRepository{LedgerRepository: inner}
}

func (r *CountingLedgerRepository) Save(ctx context.Context, ledger *carrier.Ledger) error {
	r.mu.Lock()
	r.saves++
	fail := r.failWrites
	r.mu.Unlock()

	if fail {
		return ErrDiskFull
	}
	return r.LedgerRepository.Save(ctx, ledger)
}

// Saves returns the number of Save calls, failed ones included
func (r *CountingLedgerRepository) Saves() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves
}

// FailWrites toggles write failures
func (r *CountingLedgerRepository) FailWrites(fail bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failWrites = fail
}
