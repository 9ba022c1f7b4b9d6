package verdict

import (
	"errors"
	"fmt"
)

type TaskStatus string

const (
	StatusDraft     TaskStatus = "draft"
	StatusReviewed  TaskStatus = "reviewed"
	StatusFinalized TaskStatus = "finalized"
)

var (
	ErrUnresolvedReview  = errors.New("cannot finalize while verdict is unresolved Review")
	ErrTaskFinalized     = errors.New("task is already finalized")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrMissingVerdict    = errors.New("task has no verdict to finalize")
)

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusReviewed, StatusFinalized:
		return true
	}
	return false
}

func (s TaskStatus) rank() int {
	switch s {
	case StatusDraft:
		return 0
	case StatusReviewed:
		return 1
	case StatusFinalized:
		return 2
	}
	return -1
}

// CanFinalize is the guard for the reviewed -> finalized transition.
func CanFinalize(v Verdict) bool {
	return Classify(v) != CategoryReviewBlocked
}

// IsEditable reports whether the verdict of a task in status s may still change.
func IsEditable(s TaskStatus) bool {
	return s != StatusFinalized
}

// CanTransition reports whether the status graph has an edge from -> to,
// ignoring the verdict guard on finalization.
func CanTransition(from, to TaskStatus) bool {
	switch from {
	case StatusDraft:
		return to == StatusReviewed
	case StatusReviewed:
		return to == StatusReviewed || to == StatusFinalized
	}
	return false
}

// Transition validates moving a task from one status to another. v is the
// verdict that would be locked in and is only consulted for finalization.
func Transition(from, to TaskStatus, v *Verdict) (TaskStatus, error) {
	if from == StatusFinalized {
		return from, ErrTaskFinalized
	}
	if !CanTransition(from, to) {
		if from.rank() > to.rank() {
			return from, fmt.Errorf("%w: %s -> %s would regress", ErrInvalidTransition, from, to)
		}
		return from, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	if to == StatusFinalized {
		if v == nil {
			return from, ErrMissingVerdict
		}
		if !CanFinalize(*v) {
			return from, ErrUnresolvedReview
		}
	}
	return to, nil
}
