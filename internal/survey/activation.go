package survey

// Activation records, per layer and section, whether the section counts
// toward the layer tonnage. Entries of deleted stations or layers are kept;
// lookups only ever use keys of the current sections.
type Activation struct {
	// DefaultActive is the value given to sections created by Reconcile.
	DefaultActive bool
	entries       map[string]map[string]bool
}

// NewActivation returns an empty matrix.
func NewActivation(defaultActive bool) *Activation {
	return &Activation{DefaultActive: defaultActive, entries: map[string]map[string]bool{}}
}

// Reconcile adds an entry for every layer and consecutive station pair that
// has none yet. Existing entries are never changed or removed.
func (a *Activation) Reconcile(stations []Station, layers []Layer) {
	a.init()
	sections := Sections(stations)
	for _, l := range layers {
		m, ok := a.entries[l.ID]
		if !ok {
			m = map[string]bool{}
			a.entries[l.ID] = m
		}
		for _, sec := range sections {
			if _, ok := m[sec.Key()]; !ok {
				m[sec.Key()] = a.DefaultActive
			}
		}
	}
}

// Get reports whether a section is active for a layer. Missing entries are
// inactive.
func (a *Activation) Get(layerID, key string) bool {
	return a.entries[layerID][key]
}

// Has reports whether an entry exists.
func (a *Activation) Has(layerID, key string) bool {
	_, ok := a.entries[layerID][key]
	return ok
}

// Toggle flips an entry and returns the new value. A missing entry becomes
// active.
func (a *Activation) Toggle(layerID, key string) bool {
	v := !a.Get(layerID, key)
	a.Set(layerID, key, v)
	return v
}

// Set writes an entry.
func (a *Activation) Set(layerID, key string, active bool) {
	a.init()
	m, ok := a.entries[layerID]
	if !ok {
		m = map[string]bool{}
		a.entries[layerID] = m
	}
	m[key] = active
}

// Snapshot returns a deep copy of all entries, orphans included.
func (a *Activation) Snapshot() map[string]map[string]bool {
	out := make(map[string]map[string]bool, len(a.entries))
	for layerID, m := range a.entries {
		cp := make(map[string]bool, len(m))
		for k, v := range m {
			cp[k] = v
		}
		out[layerID] = cp
	}
	return out
}

// Restore replaces all entries with a copy of m.
func (a *Activation) Restore(m map[string]map[string]bool) {
	a.entries = map[string]map[string]bool{}
	for layerID, sections := range m {
		cp := make(map[string]bool, len(sections))
		for k, v := range sections {
			cp[k] = v
		}
		a.entries[layerID] = cp
	}
}

func (a *Activation) init() {
	if a.entries == nil {
		a.entries = map[string]map[string]bool{}
	}
}
