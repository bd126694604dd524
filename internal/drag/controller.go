// Package drag turns a pointer-drag gesture into at most one committed
// ordering mutation. The controller is a plain state machine fed with
// synthetic start/move/over/drop events, so it works the same whether
// the pointer events come from a terminal mouse or a test.
package drag

import (
	"errors"
	"math"

	"dayflow/internal/schedule"
	"dayflow/internal/task"
)

// ActivationDistance is how far, in cell units, the pointer must travel
// from the press point before tracking becomes a drag. Presses that
// never travel that far resolve as clicks.
const ActivationDistance = 8

// State of the gesture.
type State int

const (
	// StateIdle means no press is being tracked.
	StateIdle State = iota
	// StatePressed means a press is tracked but has not moved far
	// enough to count as a drag.
	StatePressed
	// StateDragging means the activation threshold was crossed.
	StateDragging
)

// TargetKind classifies what the pointer is currently over.
type TargetKind int

const (
	// TargetNone is anything that can't accept a drop.
	TargetNone TargetKind = iota
	// TargetTask is a task row inside a day bucket.
	TargetTask
	// TargetDay is a day bucket's empty region.
	TargetDay
)

// Target is a candidate drop location, tracked while dragging purely
// for feedback. It becomes meaningful only at drop time.
type Target struct {
	Kind   TargetKind
	Day    schedule.DayKey
	TaskID int64
}

// MutationKind says which Board operation a drop committed.
type MutationKind int

const (
	// MutationReorder is a within-day reorder.
	MutationReorder MutationKind = iota
	// MutationMove is a cross-day move.
	MutationMove
)

// Mutation records the single committed effect of a successful drop.
type Mutation struct {
	Kind      MutationKind
	TaskID    int64
	SourceDay schedule.DayKey
	TargetDay schedule.DayKey
	Index     int
}

// Controller bridges pointer gestures to the Board. While a drag is in
// flight nothing is mutated; exactly one Board call happens per
// successful drop.
type Controller struct {
	board *schedule.Board

	state     State
	taskID    int64
	sourceDay schedule.DayKey
	startX    float64
	startY    float64
	target    Target
}

// NewController creates a controller committing through board.
func NewController(board *schedule.Board) *Controller {
	return &Controller{board: board}
}

// State returns the current gesture state.
func (c *Controller) State() State {
	return c.state
}

// Candidate returns the tracked drop target, for highlight rendering.
func (c *Controller) Candidate() Target {
	return c.target
}

// DraggedTask returns the id of the task being dragged, or 0.
func (c *Controller) DraggedTask() int64 {
	if c.state == StateIdle {
		return 0
	}
	return c.taskID
}

// Start begins tracking a press on a task row. A gesture already in
// flight is discarded first.
func (c *Controller) Start(taskID int64, sourceDay schedule.DayKey, x, y float64) {
	c.reset()
	c.state = StatePressed
	c.taskID = taskID
	c.sourceDay = sourceDay
	c.startX = x
	c.startY = y
}

// Move reports pointer motion. Crossing the activation distance turns
// the press into a drag.
func (c *Controller) Move(x, y float64) {
	if c.state != StatePressed {
		return
	}
	if math.Hypot(x-c.startX, y-c.startY) >= ActivationDistance {
		c.state = StateDragging
	}
}

// Over records the candidate target under the pointer. Feedback only;
// no mutation happens here.
func (c *Controller) Over(target Target) {
	if c.state == StateDragging {
		c.target = target
	}
}

// Cancel discards the gesture with no mutation.
func (c *Controller) Cancel() {
	c.reset()
}

// Drop finishes the gesture. It returns the committed mutation, or nil
// when the gesture resolved as a click, the target wasn't actionable,
// or the target went stale mid-drag (bucket or task deleted) — all of
// which are silent no-ops, never failures that reach the user.
func (c *Controller) Drop() (*Mutation, error) {
	defer c.reset()

	if c.state != StateDragging {
		return nil, nil // a click, not a drag
	}

	target := c.target
	if target.Kind == TargetNone {
		return nil, nil
	}

	targetBucket, err := c.board.BucketFor(target.Day)
	if err != nil {
		return nil, err
	}

	// Index = position of the hovered row within the target bucket,
	// excluding the dragged task itself; empty region drops append.
	index := len(excluding(targetBucket, c.taskID))
	if target.Kind == TargetTask {
		if i := indexOf(excluding(targetBucket, c.taskID), target.TaskID); i >= 0 {
			index = i
		}
	}

	if target.Day == c.sourceDay {
		sourceBucket, err := c.board.BucketFor(c.sourceDay)
		if err != nil {
			return nil, err
		}
		from := indexOf(sourceBucket, c.taskID)
		if from < 0 {
			return nil, nil // dragged task vanished mid-drag
		}
		if _, err := c.board.Reorder(c.sourceDay, from, index); err != nil {
			if errors.Is(err, schedule.ErrUnknownBucketOrIndex) {
				return nil, nil
			}
			return nil, err
		}
		return &Mutation{
			Kind:      MutationReorder,
			TaskID:    c.taskID,
			SourceDay: c.sourceDay,
			TargetDay: c.sourceDay,
			Index:     index,
		}, nil
	}

	if _, err := c.board.MoveAcrossDays(c.taskID, c.sourceDay, target.Day, index); err != nil {
		if errors.Is(err, schedule.ErrUnknownBucketOrIndex) || errors.Is(err, schedule.ErrInvalidInput) {
			return nil, nil
		}
		return nil, err
	}
	return &Mutation{
		Kind:      MutationMove,
		TaskID:    c.taskID,
		SourceDay: c.sourceDay,
		TargetDay: target.Day,
		Index:     index,
	}, nil
}

func (c *Controller) reset() {
	c.state = StateIdle
	c.taskID = 0
	c.sourceDay = ""
	c.target = Target{}
}

func excluding(bucket []*task.Task, taskID int64) []*task.Task {
	out := make([]*task.Task, 0, len(bucket))
	for _, t := range bucket {
		if t.ID != taskID {
			out = append(out, t)
		}
	}
	return out
}

func indexOf(bucket []*task.Task, taskID int64) int {
	for i, t := range bucket {
		if t.ID == taskID {
			return i
		}
	}
	return -1
}
