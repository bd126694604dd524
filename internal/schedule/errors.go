package schedule

import "errors"

// Scheduling errors. All of them mean "operation not applied"; none is
// ever fatal to the caller.
var (
	// ErrInvalidInput rejects blank task text, malformed day keys and
	// out-of-range hours before any mutation happens.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSlotOccupied reports a scheduling conflict: the target hour
	// already holds a non-completed task.
	ErrSlotOccupied = errors.New("time slot is already occupied")

	// ErrUnknownBucketOrIndex reports a stale target: the day bucket is
	// empty or the index is outside the bucket's current size.
	ErrUnknownBucketOrIndex = errors.New("unknown day bucket or index")
)
