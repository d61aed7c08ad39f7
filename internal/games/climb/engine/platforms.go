package engine

// PlatformSet is the canonical ordered collection of live platforms and
// decorations, in generation order.
type PlatformSet struct {
	defs []*PlatformDef
	byID map[PlatformID]*PlatformDef
}

// Add appends a definition. A duplicate id replaces nothing and is ignored.
func (s *PlatformSet) Add(def *PlatformDef) bool {
	if s.byID == nil {
		s.byID = make(map[PlatformID]*PlatformDef)
	}
	if _, ok := s.byID[def.ID]; ok {
		return false
	}
	s.defs = append(s.defs, def)
	s.byID[def.ID] = def
	return true
}

// Get looks up a definition by id.
func (s *PlatformSet) Get(id PlatformID) (*PlatformDef, bool) {
	def, ok := s.byID[id]
	return def, ok
}

// RemoveAll drops every listed id, keeping the order of the rest.
func (s *PlatformSet) RemoveAll(ids []PlatformID) int {
	if len(ids) == 0 {
		return 0
	}
	n := 0
	for _, id := range ids {
		if _, ok := s.byID[id]; ok {
			delete(s.byID, id)
			n++
		}
	}
	kept := s.defs[:0]
	for _, def := range s.defs {
		if _, ok := s.byID[def.ID]; ok {
			kept = append(kept, def)
		}
	}
	clear(s.defs[len(kept):])
	s.defs = kept
	return n
}

// All returns the live definitions. The slice must not be modified.
func (s *PlatformSet) All() []*PlatformDef {
	return s.defs
}

// Len returns the number of live definitions.
func (s *PlatformSet) Len() int {
	return len(s.defs)
}

// Reset empties the set.
func (s *PlatformSet) Reset() {
	clear(s.defs)
	s.defs = s.defs[:0]
	clear(s.byID)
}
