package construction

// Facility is one tracked construction site. It only exists in the store
// while at least one material is still outstanding.
type Facility struct {
	id        FacilityID
	system    string
	materials *MaterialSet
}

// NewFacility creates a Facility entity
func NewFacility(id FacilityID, system string, materials *MaterialSet) *Facility {
	if materials == nil {
		materials = NewMaterialSet()
	}
	return &Facility{
		id:        id,
		system:    system,
		materials: materials,
	}
}

// Getters for Facility

func (f *Facility) ID() FacilityID          { return f.id }
func (f *Facility) System() string          { return f.system }
func (f *Facility) Materials() *MaterialSet { return f.materials }
func (f *Facility) DisplayName() string     { return f.id.DisplayName() }

// IsComplete returns true if every material has been delivered
func (f *Facility) IsComplete() bool {
	return f.materials.IsComplete()
}

// WithID returns a copy of the facility under another identity
func (f *Facility) WithID(id FacilityID) *Facility {
	return &Facility{id: id, system: f.system, materials: f.materials.Clone()}
}

// Clone returns a copy that shares no state with f
func (f *Facility) Clone() *Facility {
	return f.WithID(f.id)
}

// Equal compares identity, system and materials
func (f *Facility) Equal(other *Facility) bool {
	if f == nil || other == nil {
		return f == other
	}
	return f.id == other.id && f.system == other.system && f.materials.Equal(other.materials)
}
