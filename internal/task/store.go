package task

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"sync"

	"github.com/peterbourgon/diskv/v3"
)

// ErrNotFound is returned when a task id has no record.
var ErrNotFound = errors.New("task not found")

// Store is the persistence boundary. All task mutations in the
// application funnel through these four calls.
type Store interface {
	Create(f Fields) (*Task, error)
	Get(id int64) (*Task, error)
	Update(id int64, f Fields) error
	Delete(id int64) error
	List() ([]*Task, error)
}

const keyPrefix = "task-"

// DiskStore persists tasks as JSON records in a diskv key space, one
// record per task. Writes are serialized and stamped with a
// monotonically increasing sequence taken at call time, so a write that
// started earlier can never clobber a later one (last-writer-wins by
// call order, not arrival order).
type DiskStore struct {
	mu   sync.Mutex
	d    *diskv.Diskv
	next int64
	seq  uint64
}

// OpenDiskStore opens (or creates) a task store rooted at basePath.
func OpenDiskStore(basePath string) (*DiskStore, error) {
	s := &DiskStore{
		d: diskv.New(diskv.Options{
			BasePath:     basePath,
			CacheSizeMax: 1024 * 1024, // 1MB
		}),
	}

	// Recover the id and sequence counters from existing records.
	for key := range s.d.Keys(nil) {
		t, err := s.read(key)
		if err != nil {
			return nil, fmt.Errorf("corrupt task record %s: %w", key, err)
		}
		if t.ID >= s.next {
			s.next = t.ID + 1
		}
		if t.Seq > s.seq {
			s.seq = t.Seq
		}
	}
	if s.next == 0 {
		s.next = 1
	}
	return s, nil
}

func taskKey(id int64) string {
	return keyPrefix + strconv.FormatInt(id, 10)
}

func (s *DiskStore) read(key string) (*Task, error) {
	val, err := s.d.Read(key)
	if err != nil {
		return nil, err
	}
	var t Task
	if err := json.Unmarshal(val, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *DiskStore) write(t *Task) error {
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to marshal task %d: %w", t.ID, err)
	}
	if err := s.d.Write(taskKey(t.ID), data); err != nil {
		return fmt.Errorf("failed to write task %d: %w", t.ID, err)
	}
	return nil
}

// Create allocates an id and persists a new task built from f.
func (s *DiskStore) Create(f Fields) (*Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := &Task{ID: s.next, Priority: PriorityMedium}
	f.apply(t)
	s.next++
	s.seq++
	t.Seq = s.seq

	if err := s.write(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Get returns the task with the given id.
func (s *DiskStore) Get(id int64) (*Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, err := s.read(taskKey(id))
	if err != nil {
		return nil, ErrNotFound
	}
	return t, nil
}

// Update applies f to the stored record. The read-modify-write runs
// under the store lock, so the sequence stamped here reflects call
// order; a record already carrying a newer sequence is left alone.
func (s *DiskStore) Update(id int64, f Fields) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.read(taskKey(id))
	if err != nil {
		return ErrNotFound
	}
	if t.Seq > s.seq {
		// A second process sharing the data dir wrote a newer record;
		// catch the counter up and drop the stale write.
		s.seq = t.Seq
		return nil
	}
	s.seq++
	f.apply(t)
	t.Seq = s.seq
	return s.write(t)
}

// Delete removes the record. Deleting a missing task is a no-op.
func (s *DiskStore) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.d.Erase(taskKey(id)); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to delete task %d: %w", id, err)
	}
	return nil
}

// List returns every task, ordered by id for determinism. Callers that
// need bucket order sort by SortOrder themselves.
func (s *DiskStore) List() ([]*Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var tasks []*Task
	for key := range s.d.Keys(nil) {
		t, err := s.read(key)
		if err != nil {
			return nil, fmt.Errorf("corrupt task record %s: %w", key, err)
		}
		tasks = append(tasks, t)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks, nil
}

var _ Store = (*DiskStore)(nil)
