package models

import (
	"fmt"
	"github.com/samber/lo"
)

type Stage string

const (
	StageUploaded  Stage = "uploaded"
	StageAnalyzed  Stage = "analyzed"
	StageSelected  Stage = "selected"
	StageRejected  Stage = "rejected"
	StageNotified  Stage = "notified"
	StageScheduled Stage = "scheduled"
)

// stageGraph lists the direct successors of every stage. Uploaded is only
// re-entered through Applications.Put.
var stageGraph = map[Stage][]Stage{
	StageUploaded:  {StageAnalyzed},
	StageAnalyzed:  {StageSelected, StageRejected},
	StageSelected:  {StageNotified},
	StageRejected:  {StageNotified},
	StageNotified:  {StageScheduled},
	StageScheduled: {},
}

// transient stages may be passed through inside a single update.
var transientStages = map[Stage]bool{
	StageAnalyzed: true,
}

func (s Stage) Valid() bool {
	_, ok := stageGraph[s]
	return ok
}

// CanAdvanceTo reports whether a single store update may move an application
// from s to next. Staying on the same stage is always allowed; otherwise next
// must be a direct successor of s or be reachable through transient stages only.
func (s Stage) CanAdvanceTo(next Stage) bool {
	if s == next {
		return true
	}

	visited := map[Stage]bool{}
	queue := []Stage{s}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if visited[current] {
			continue
		}
		visited[current] = true

		for _, successor := range stageGraph[current] {
			if successor == next {
				return true
			}
			if transientStages[successor] {
				queue = append(queue, successor)
			}
		}
	}
	return false
}

// IsDecided reports whether the application has an accept/reject decision waiting for notification.
func (s Stage) IsDecided() bool {
	return lo.Contains([]Stage{StageSelected, StageRejected}, s)
}

func ValidateTransition(from Stage, to Stage, verdict *Verdict) error {
	if !to.Valid() {
		return fmt.Errorf("%w: unknown stage %q", ErrInvalidTransition, to)
	}

	if !from.CanAdvanceTo(to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}

	if from == to {
		return nil
	}

	switch to {
	case StageSelected, StageRejected:
		if verdict == nil {
			return fmt.Errorf("%w: %s without verdict", ErrInvalidTransition, to)
		}
		if verdict.Selected != (to == StageSelected) {
			return fmt.Errorf("%w: %s contradicts verdict", ErrInvalidTransition, to)
		}
	case StageScheduled:
		if verdict == nil || !verdict.Selected {
			return fmt.Errorf("%w: only selected candidates can be scheduled", ErrInvalidTransition)
		}
	}

	return nil
}
