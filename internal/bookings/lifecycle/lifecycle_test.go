package lifecycle

import (
	"testing"

	"explorebd/pkg/model"
)

func TestCanApply_TransitionTable(t *testing.T) {
	tests := []struct {
		name    string
		action  Action
		current string
		want    bool
	}{
		{"review from pending", ActionReview, model.BookingPending, true},
		{"review from in-review", ActionReview, model.BookingInReview, false},
		{"review from accepted", ActionReview, model.BookingAccepted, false},
		{"review from rejected", ActionReview, model.BookingRejected, false},
		{"review from guide_assigned", ActionReview, model.BookingGuideAssigned, false},

		{"assign from in-review", ActionAssign, model.BookingInReview, true},
		{"assign from pending", ActionAssign, model.BookingPending, false},
		{"assign from accepted", ActionAssign, model.BookingAccepted, false},
		{"assign from guide_assigned", ActionAssign, model.BookingGuideAssigned, false},

		{"accept from in-review", ActionAccept, model.BookingInReview, true},
		{"accept from guide_assigned", ActionAccept, model.BookingGuideAssigned, true},
		{"accept from pending", ActionAccept, model.BookingPending, false},
		{"accept from accepted", ActionAccept, model.BookingAccepted, false},
		{"accept from rejected", ActionAccept, model.BookingRejected, false},

		{"reject from in-review", ActionReject, model.BookingInReview, true},
		{"reject from guide_assigned", ActionReject, model.BookingGuideAssigned, true},
		{"reject from pending", ActionReject, model.BookingPending, false},
		{"reject from rejected", ActionReject, model.BookingRejected, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanApply(tt.action, tt.current); got != tt.want {
				t.Errorf("CanApply(%s, %s) = %v, want %v", tt.action, tt.current, got, tt.want)
			}
		})
	}
}

func TestResult(t *testing.T) {
	tests := []struct {
		action Action
		want   string
	}{
		{ActionReview, model.BookingInReview},
		{ActionAssign, model.BookingGuideAssigned},
		{ActionAccept, model.BookingAccepted},
		{ActionReject, model.BookingRejected},
	}

	for _, tt := range tests {
		got, ok := Result(tt.action)
		if !ok {
			t.Fatalf("Result(%s) not found", tt.action)
		}
		if got != tt.want {
			t.Errorf("Result(%s) = %s, want %s", tt.action, got, tt.want)
		}
	}

	if _, ok := Result(Action("cancel")); ok {
		t.Error("Result should not know unknown actions")
	}
}

func TestParseGuideDecision(t *testing.T) {
	if action, ok := ParseGuideDecision(model.BookingAccepted); !ok || action != ActionAccept {
		t.Errorf("ParseGuideDecision(accepted) = %s, %v", action, ok)
	}
	if action, ok := ParseGuideDecision(model.BookingRejected); !ok || action != ActionReject {
		t.Errorf("ParseGuideDecision(rejected) = %s, %v", action, ok)
	}

	for _, status := range []string{model.BookingPending, model.BookingInReview, model.BookingGuideAssigned, "cancelled", ""} {
		if _, ok := ParseGuideDecision(status); ok {
			t.Errorf("ParseGuideDecision(%q) should fail", status)
		}
	}
}

func TestRequiresAssignedGuide(t *testing.T) {
	if !RequiresAssignedGuide(ActionAccept) || !RequiresAssignedGuide(ActionReject) {
		t.Error("guide decisions must require the assigned guide")
	}
	if RequiresAssignedGuide(ActionReview) || RequiresAssignedGuide(ActionAssign) {
		t.Error("admin actions must not require an assigned guide")
	}
}
