package schedule

import (
	"fmt"
	"sort"
	"strings"

	"dayflow/internal/task"
)

// Board is the ordering store: it derives day buckets from the task
// store on every read and owns the sort-order numbering within them.
// Buckets are never cached; sort-order is only ever written here.
type Board struct {
	store task.Store
}

// NewBoard creates a Board over the given task store.
func NewBoard(store task.Store) *Board {
	return &Board{store: store}
}

// Store exposes the underlying task store for callers that need plain
// task mutations alongside bucket operations.
func (b *Board) Store() task.Store {
	return b.store
}

// BucketFor returns the non-completed tasks bucketed under dayKey,
// ascending by sort-order, ties broken by lower id.
func (b *Board) BucketFor(dayKey DayKey) ([]*task.Task, error) {
	all, err := b.store.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	var bucket []*task.Task
	for _, t := range all {
		if t.Completed {
			continue
		}
		key, ok := DayKeyOf(t)
		if !ok || key != dayKey {
			continue
		}
		bucket = append(bucket, t)
	}

	sort.Slice(bucket, func(i, j int) bool {
		if bucket[i].SortOrder != bucket[j].SortOrder {
			return bucket[i].SortOrder < bucket[j].SortOrder
		}
		return bucket[i].ID < bucket[j].ID
	})
	return bucket, nil
}

// Reorder removes the task at fromIndex and reinserts it at toIndex
// (clamped), then renumbers the bucket densely 0..n-1. An empty bucket
// or an out-of-range fromIndex is ErrUnknownBucketOrIndex with no
// mutation.
func (b *Board) Reorder(dayKey DayKey, fromIndex, toIndex int) ([]*task.Task, error) {
	bucket, err := b.BucketFor(dayKey)
	if err != nil {
		return nil, err
	}
	if len(bucket) == 0 || fromIndex < 0 || fromIndex >= len(bucket) {
		return nil, ErrUnknownBucketOrIndex
	}
	toIndex = clamp(toIndex, 0, len(bucket)-1)

	moved := bucket[fromIndex]
	rest := append(append([]*task.Task{}, bucket[:fromIndex]...), bucket[fromIndex+1:]...)
	next := append(append(append([]*task.Task{}, rest[:toIndex]...), moved), rest[toIndex:]...)

	if err := b.renumber(next, nil); err != nil {
		return nil, err
	}
	return next, nil
}

// MoveAcrossDays rewrites the task's due date to the target day and
// renumbers both buckets densely, inserting at targetIndex (clamped).
// Every precondition is checked before the first write, so a validation
// failure leaves both buckets untouched.
func (b *Board) MoveAcrossDays(taskID int64, sourceKey, targetKey DayKey, targetIndex int) (*task.Task, error) {
	if !targetKey.Valid() {
		return nil, ErrInvalidInput
	}
	if sourceKey == targetKey {
		bucket, err := b.BucketFor(sourceKey)
		if err != nil {
			return nil, err
		}
		from := indexOf(bucket, taskID)
		if from < 0 {
			return nil, ErrUnknownBucketOrIndex
		}
		next, err := b.Reorder(sourceKey, from, targetIndex)
		if err != nil {
			return nil, err
		}
		return next[clamp(targetIndex, 0, len(next)-1)], nil
	}

	source, err := b.BucketFor(sourceKey)
	if err != nil {
		return nil, err
	}
	from := indexOf(source, taskID)
	if from < 0 {
		return nil, ErrUnknownBucketOrIndex
	}
	moved := source[from]

	target, err := b.BucketFor(targetKey)
	if err != nil {
		return nil, err
	}
	targetIndex = clamp(targetIndex, 0, len(target))

	remaining := append(append([]*task.Task{}, source[:from]...), source[from+1:]...)
	next := append(append(append([]*task.Task{}, target[:targetIndex]...), moved), target[targetIndex:]...)

	due := string(targetKey)
	if err := b.store.Update(moved.ID, task.Fields{DueDate: &due}); err != nil {
		return nil, fmt.Errorf("failed to move task %d: %w", moved.ID, err)
	}
	moved.DueDate = due

	if err := b.renumber(remaining, nil); err != nil {
		return nil, err
	}
	// The moved task's sort-order must be written even if it happens to
	// land on its old number, so its bucket membership stays coherent.
	if err := b.renumber(next, moved); err != nil {
		return nil, err
	}
	return moved, nil
}

// InsertNew creates a task at the end of the bucket. Blank or
// whitespace-only text is rejected before the store is touched.
func (b *Board) InsertNew(dayKey DayKey, text string) (*task.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" || !dayKey.Valid() {
		return nil, ErrInvalidInput
	}

	bucket, err := b.BucketFor(dayKey)
	if err != nil {
		return nil, err
	}

	due := string(dayKey)
	order := len(bucket)
	created, err := b.store.Create(task.Fields{
		Text:      &text,
		DueDate:   &due,
		SortOrder: &order,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return created, nil
}

// renumber writes dense 0..n-1 sort-order over the sequence, skipping
// rows that already carry the right number (force is always written).
func (b *Board) renumber(bucket []*task.Task, force *task.Task) error {
	for i, t := range bucket {
		if t.SortOrder == i && t != force {
			continue
		}
		order := i
		if err := b.store.Update(t.ID, task.Fields{SortOrder: &order}); err != nil {
			return fmt.Errorf("failed to renumber task %d: %w", t.ID, err)
		}
		t.SortOrder = i
	}
	return nil
}

func indexOf(bucket []*task.Task, taskID int64) int {
	for i, t := range bucket {
		if t.ID == taskID {
			return i
		}
	}
	return -1
}

func clamp(n, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
