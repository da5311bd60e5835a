package mission

// Store holds reconstructed missions keyed by the mission identifier that
// referenced them.
type Store interface {
	FindOrNil(id int64) *Mission
	Save(id int64, m Mission)
}

var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps missions in memory and iterates them in the order their
// identifiers were first saved.
type MemoryStore struct {
	order []int64
	slots map[int64]Mission
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[int64]Mission)}
}

// FindOrNil returns a copy of the stored mission, or nil when id is unknown.
func (s *MemoryStore) FindOrNil(id int64) *Mission {
	m, ok := s.slots[id]
	if !ok {
		return nil
	}
	return &m
}

func (s *MemoryStore) Save(id int64, m Mission) {
	if _, ok := s.slots[id]; !ok {
		s.order = append(s.order, id)
	}
	s.slots[id] = m
}

// Missions returns every stored mission in first-seen order.
func (s *MemoryStore) Missions() []Mission {
	out := make([]Mission, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.slots[id])
	}
	return out
}

// IDs returns the slot identifiers in first-seen order.
func (s *MemoryStore) IDs() []int64 {
	out := make([]int64, len(s.order))
	copy(out, s.order)
	return out
}

func (s *MemoryStore) Len() int {
	return len(s.order)
}
