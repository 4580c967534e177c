package persistence

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/andrescamacho/architect-tracker/internal/domain/construction"
)

// FacilityFileName is the default name of the facility store document
const FacilityFileName = "construction_requirements.json"

// facilityDocument is one facility entry of the store document
type facilityDocument struct {
	System    string           `json:"system"`
	Materials orderedMaterials `json:"materials"`
}

type materialDocument struct {
	NameLocalised  string `json:"Name_Localised"`
	RequiredAmount int    `json:"RequiredAmount"`
	ProvidedAmount int    `json:"ProvidedAmount"`
}

type materialEntry struct {
	symbol string
	doc    materialDocument
}

// orderedMaterials keeps the depot's material order through a JSON round trip
type orderedMaterials []materialEntry

func (m orderedMaterials) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(entry.symbol)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(entry.doc)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (m *orderedMaterials) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		*m = nil
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("materials must be an object")
	}

	entries := make(orderedMaterials, 0)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		symbol, ok := tok.(string)
		if !ok {
			return fmt.Errorf("material key must be a string")
		}
		var doc materialDocument
		if err := dec.Decode(&doc); err != nil {
			return fmt.Errorf("material %q: %w", symbol, err)
		}
		entries = append(entries, materialEntry{symbol: symbol, doc: doc})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*m = entries
	return nil
}

// JSONFacilityRepository stores every tracked facility in one JSON document
type JSONFacilityRepository struct {
	path string
}

// NewJSONFacilityRepository creates a repository backed by the file at path
func NewJSONFacilityRepository(path string) *JSONFacilityRepository {
	return &JSONFacilityRepository{path: path}
}

// Path returns the backing file
func (r *JSONFacilityRepository) Path() string {
	return r.path
}

// LoadAll reads the store document. A missing file is an empty store.
func (r *JSONFacilityRepository) LoadAll(ctx context.Context) (map[construction.FacilityID]*construction.Facility, error) {
	var docs map[string]facilityDocument
	if _, err := readJSONFile(r.path, &docs); err != nil {
		return nil, err
	}

	facilities := make(map[construction.FacilityID]*construction.Facility, len(docs))
	for key, doc := range docs {
		if key == "" {
			return nil, fmt.Errorf("facility store %s contains an empty identity", r.path)
		}
		materials := construction.NewMaterialSet()
		for _, entry := range doc.Materials {
			requirement, err := construction.NewMaterialRequirement(
				entry.symbol,
				entry.doc.NameLocalised,
				entry.doc.RequiredAmount,
				entry.doc.ProvidedAmount,
			)
			if err != nil {
				return nil, fmt.Errorf("facility %q: %w", key, err)
			}
			materials.Put(requirement)
		}
		id := construction.FacilityID(key)
		facilities[id] = construction.NewFacility(id, doc.System, materials)
	}
	return facilities, nil
}

// SaveAll replaces the store document atomically
func (r *JSONFacilityRepository) SaveAll(ctx context.Context, facilities map[construction.FacilityID]*construction.Facility) error {
	docs := make(map[string]facilityDocument, len(facilities))
	for id, f := range facilities {
		if f == nil {
			continue
		}
		doc := facilityDocument{System: f.System(), Materials: make(orderedMaterials, 0, f.Materials().Len())}
		for _, m := range f.Materials().All() {
			doc.Materials = append(doc.Materials, materialEntry{
				symbol: m.Symbol(),
				doc: materialDocument{
					NameLocalised:  m.DisplayName(),
					RequiredAmount: m.RequiredAmount(),
					ProvidedAmount: m.ProvidedAmount(),
				},
			})
		}
		docs[id.String()] = doc
	}
	return writeJSONFileAtomic(r.path, docs)
}
