package persistence

import (
	"context"

	"github.com/andrescamacho/architect-tracker/internal/domain/carrier"
)

// CarrierFileName is the default name of the carrier ledger document
const CarrierFileName = "fleet_carrier_cargo.json"

type carrierDocument struct {
	CarrierName string         `json:"carrier_name"`
	Callsign    string         `json:"callsign"`
	Commodities map[string]int `json:"commodities"`
}

// JSONCarrierRepository stores the carrier ledger in one JSON document
type JSONCarrierRepository struct {
	path string
}

// NewJSONCarrierRepository creates a repository backed by the file at path
func NewJSONCarrierRepository(path string) *JSONCarrierRepository {
	return &JSONCarrierRepository{path: path}
}

// Path returns the backing file
func (r *JSONCarrierRepository) Path() string {
	return r.path
}

// Load reads the ledger. A missing file yields an empty ledger.
func (r *JSONCarrierRepository) Load(ctx context.Context) (*carrier.Ledger, error) {
	var doc carrierDocument
	found, err := readJSONFile(r.path, &doc)
	if err != nil {
		return nil, err
	}
	if !found {
		return carrier.NewLedger(), nil
	}
	return carrier.ReconstructLedger(doc.CarrierName, doc.Callsign, doc.Commodities), nil
}

// Save replaces the ledger document atomically
func (r *JSONCarrierRepository) Save(ctx context.Context, ledger *carrier.Ledger) error {
	return writeJSONFileAtomic(r.path, carrierDocument{
		CarrierName: ledger.CarrierName(),
		Callsign:    ledger.Callsign(),
		Commodities: ledger.Commodities(),
	})
}
