package task

import "sort"

// MemStore is an in-memory Store. It backs unit tests and any caller
// that wants the engine without persistence.
type MemStore struct {
	tasks map[int64]*Task
	next  int64
	seq   uint64
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{tasks: make(map[int64]*Task), next: 1}
}

// Create builds a task from f and assigns the next id.
func (s *MemStore) Create(f Fields) (*Task, error) {
	t := &Task{ID: s.next, Priority: PriorityMedium}
	f.apply(t)
	s.next++
	s.seq++
	t.Seq = s.seq
	s.tasks[t.ID] = t
	return s.copyOf(t), nil
}

// Get returns the task with the given id.
func (s *MemStore) Get(id int64) (*Task, error) {
	t, ok := s.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s.copyOf(t), nil
}

// Update applies f to the stored task.
func (s *MemStore) Update(id int64, f Fields) error {
	t, ok := s.tasks[id]
	if !ok {
		return ErrNotFound
	}
	s.seq++
	f.apply(t)
	t.Seq = s.seq
	return nil
}

// Delete removes the task. Missing ids are a no-op.
func (s *MemStore) Delete(id int64) error {
	delete(s.tasks, id)
	return nil
}

// List returns all tasks ordered by id.
func (s *MemStore) List() ([]*Task, error) {
	out := make([]*Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, s.copyOf(t))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// copyOf shields callers from aliasing the store's records.
func (s *MemStore) copyOf(t *Task) *Task {
	c := *t
	return &c
}

var _ Store = (*MemStore)(nil)
