// Package lifecycle holds the booking state machine: the exhaustive
// table of legal transitions and the guards on who may drive them.
// Anything not in the table is rejected; the stored record is never
// mutated from an illegal state.
package lifecycle

import "explorebd/pkg/model"

type Action string

const (
	// ActionReview is the admin moving a fresh booking into review.
	ActionReview Action = "review"
	// ActionAssign is the admin attaching a guide to a reviewed booking.
	ActionAssign Action = "assign"
	// ActionAccept is the assigned guide taking the booking.
	ActionAccept Action = "accept"
	// ActionReject is the assigned guide declining the booking.
	ActionReject Action = "reject"
)

var preconditions = map[Action][]string{
	ActionReview: {model.BookingPending},
	ActionAssign: {model.BookingInReview},
	ActionAccept: {model.BookingInReview, model.BookingGuideAssigned},
	ActionReject: {model.BookingInReview, model.BookingGuideAssigned},
}

var results = map[Action]string{
	ActionReview: model.BookingInReview,
	ActionAssign: model.BookingGuideAssigned,
	ActionAccept: model.BookingAccepted,
	ActionReject: model.BookingRejected,
}

// Preconditions returns the statuses a booking must currently hold for
// the action to be legal.
func Preconditions(action Action) ([]string, bool) {
	from, ok := preconditions[action]
	return from, ok
}

// Result returns the status the action transitions into.
func Result(action Action) (string, bool) {
	to, ok := results[action]
	return to, ok
}

// CanApply reports whether the action is legal from the current status.
func CanApply(action Action, current string) bool {
	for _, status := range preconditions[action] {
		if status == current {
			return true
		}
	}
	return false
}

// RequiresAssignedGuide reports whether the action may only be driven
// by the guide the booking is assigned to.
func RequiresAssignedGuide(action Action) bool {
	return action == ActionAccept || action == ActionReject
}

// ParseGuideDecision maps a guide's requested target status onto the
// accept/reject action, rejecting anything else.
func ParseGuideDecision(status string) (Action, bool) {
	switch status {
	case model.BookingAccepted:
		return ActionAccept, true
	case model.BookingRejected:
		return ActionReject, true
	default:
		return "", false
	}
}
