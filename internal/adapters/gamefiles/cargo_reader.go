package gamefiles

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/andrescamacho/architect-tracker/internal/adapters/metrics"
	"github.com/andrescamacho/architect-tracker/internal/domain/shared"
)

// cargoFile is the subset of Cargo.json the tracker reads
type cargoFile struct {
	Vessel    string `json:"Vessel"`
	Inventory []struct {
		Name  string `json:"Name"`
		Count int    `json:"Count"`
	} `json:"Inventory"`
}

// CargoReader reads the ship cargo snapshot
type CargoReader struct {
	path string
}

// NewCargoReader creates a reader for the Cargo.json at path
func NewCargoReader(path string) *CargoReader {
	return &CargoReader{path: path}
}

// ReadCargo implements market.CargoReader. Only the ship's own hold counts;
// snapshots of an SRV hold are treated as empty.
func (r *CargoReader) ReadCargo(ctx context.Context) (*shared.Cargo, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return shared.NewCargo(nil), nil
	}
	if err != nil {
		return shared.NewCargo(nil), fmt.Errorf("failed to read cargo snapshot: %w", err)
	}

	var file cargoFile
	if err := json.Unmarshal(data, &file); err != nil {
		return shared.NewCargo(nil), fmt.Errorf("failed to decode cargo snapshot %s: %w", r.path, err)
	}
	if file.Vessel != "" && file.Vessel != "Ship" {
		return shared.NewCargo(nil), nil
	}

	items := make([]shared.CargoItem, 0, len(file.Inventory))
	skipped := 0
	for _, entry := range file.Inventory {
		item, err := shared.NewCargoItem(entry.Name, entry.Count)
		if err != nil {
			skipped++
			continue
		}
		items = append(items, item)
	}
	metrics.RecordSkippedEntries("cargo", skipped)

	return shared.NewCargo(items), nil
}
