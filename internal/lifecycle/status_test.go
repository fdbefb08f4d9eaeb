package lifecycle_test

import (
	"testing"

	"github.com/diewo77/jobboard/internal/lifecycle"
)

// ── ParseApplicationStatus ─────────────────────────────────────────────────

func TestParseApplicationStatus_ValidValues(t *testing.T) {
	valid := []string{"applied", "reviewed", "interview", "hired", "rejected"}
	for _, s := range valid {
		got, err := lifecycle.ParseApplicationStatus(s)
		if err != nil {
			t.Errorf("ParseApplicationStatus(%q) returned unexpected error: %v", s, err)
		}
		if string(got) != s {
			t.Errorf("ParseApplicationStatus(%q) = %q, want %q", s, got, s)
		}
	}
}

func TestParseApplicationStatus_InvalidValue(t *testing.T) {
	for _, s := range []string{"", "pending", "HIRED", "unknown"} {
		if _, err := lifecycle.ParseApplicationStatus(s); err == nil {
			t.Errorf("ParseApplicationStatus(%q) expected error, got nil", s)
		}
	}
}

// ── Application transitions ────────────────────────────────────────────────

func TestApplicationTransitionAllowed_ValidForward(t *testing.T) {
	cases := []struct {
		from lifecycle.ApplicationStatus
		to   lifecycle.ApplicationStatus
	}{
		{lifecycle.ApplicationApplied, lifecycle.ApplicationReviewed},
		{lifecycle.ApplicationApplied, lifecycle.ApplicationInterview},
		{lifecycle.ApplicationApplied, lifecycle.ApplicationRejected},
		{lifecycle.ApplicationReviewed, lifecycle.ApplicationInterview},
		{lifecycle.ApplicationReviewed, lifecycle.ApplicationRejected},
		{lifecycle.ApplicationInterview, lifecycle.ApplicationHired},
		{lifecycle.ApplicationInterview, lifecycle.ApplicationRejected},
	}
	for _, c := range cases {
		if !lifecycle.ApplicationTransitionAllowed(c.from, c.to) {
			t.Errorf("transition %s → %s should be allowed", c.from, c.to)
		}
	}
}

func TestApplicationTransitionAllowed_TerminalStates(t *testing.T) {
	all := []lifecycle.ApplicationStatus{
		lifecycle.ApplicationApplied,
		lifecycle.ApplicationReviewed,
		lifecycle.ApplicationInterview,
		lifecycle.ApplicationHired,
		lifecycle.ApplicationRejected,
	}
	for _, terminal := range []lifecycle.ApplicationStatus{lifecycle.ApplicationHired, lifecycle.ApplicationRejected} {
		for _, to := range all {
			if lifecycle.ApplicationTransitionAllowed(terminal, to) {
				t.Errorf("terminal state %s must not transition to %s", terminal, to)
			}
		}
	}
}

func TestApplicationTransitionAllowed_NoUnhiring(t *testing.T) {
	if lifecycle.ApplicationTransitionAllowed(lifecycle.ApplicationHired, lifecycle.ApplicationRejected) {
		t.Error("hired → rejected must not be allowed")
	}
}

func TestApplicationTransitionAllowed_NoBackward(t *testing.T) {
	cases := []struct {
		from lifecycle.ApplicationStatus
		to   lifecycle.ApplicationStatus
	}{
		{lifecycle.ApplicationReviewed, lifecycle.ApplicationApplied},
		{lifecycle.ApplicationInterview, lifecycle.ApplicationApplied},
		{lifecycle.ApplicationInterview, lifecycle.ApplicationReviewed},
		{lifecycle.ApplicationApplied, lifecycle.ApplicationHired}, // must go through interview
	}
	for _, c := range cases {
		if lifecycle.ApplicationTransitionAllowed(c.from, c.to) {
			t.Errorf("transition %s → %s should be denied", c.from, c.to)
		}
	}
}

func TestApplicationStatusTerminal(t *testing.T) {
	if !lifecycle.ApplicationHired.Terminal() || !lifecycle.ApplicationRejected.Terminal() {
		t.Error("hired and rejected must be terminal")
	}
	for _, s := range []lifecycle.ApplicationStatus{
		lifecycle.ApplicationApplied, lifecycle.ApplicationReviewed, lifecycle.ApplicationInterview,
	} {
		if s.Terminal() {
			t.Errorf("%s must not be terminal", s)
		}
	}
}

// ── Employer transitions ───────────────────────────────────────────────────

func TestEmployerTransitionAllowed(t *testing.T) {
	allowed := []struct {
		from lifecycle.EmployerStatus
		to   lifecycle.EmployerStatus
	}{
		{lifecycle.EmployerPending, lifecycle.EmployerApproved},
		{lifecycle.EmployerPending, lifecycle.EmployerRejected},
		{lifecycle.EmployerRejected, lifecycle.EmployerApproved},
		{lifecycle.EmployerApproved, lifecycle.EmployerSuspended},
		{lifecycle.EmployerActive, lifecycle.EmployerSuspended},
		{lifecycle.EmployerSuspended, lifecycle.EmployerApproved},
	}
	for _, c := range allowed {
		if !lifecycle.EmployerTransitionAllowed(c.from, c.to) {
			t.Errorf("transition %s → %s should be allowed", c.from, c.to)
		}
	}
	denied := []struct {
		from lifecycle.EmployerStatus
		to   lifecycle.EmployerStatus
	}{
		{lifecycle.EmployerApproved, lifecycle.EmployerRejected},
		{lifecycle.EmployerApproved, lifecycle.EmployerPending},
		{lifecycle.EmployerSuspended, lifecycle.EmployerRejected},
		{lifecycle.EmployerRejected, lifecycle.EmployerSuspended},
	}
	for _, c := range denied {
		if lifecycle.EmployerTransitionAllowed(c.from, c.to) {
			t.Errorf("transition %s → %s should be denied", c.from, c.to)
		}
	}
}

func TestEmployerStatusCanPost(t *testing.T) {
	if !lifecycle.EmployerApproved.CanPost() || !lifecycle.EmployerActive.CanPost() {
		t.Error("approved and active must grant posting rights")
	}
	for _, s := range []lifecycle.EmployerStatus{
		lifecycle.EmployerPending, lifecycle.EmployerRejected, lifecycle.EmployerSuspended,
	} {
		if s.CanPost() {
			t.Errorf("%s must not grant posting rights", s)
		}
	}
}

// ── Job status ─────────────────────────────────────────────────────────────

func TestJobStatusToggle(t *testing.T) {
	if lifecycle.JobActive.Toggle() != lifecycle.JobClosed {
		t.Error("active should toggle to closed")
	}
	if lifecycle.JobClosed.Toggle() != lifecycle.JobActive {
		t.Error("closed should toggle to active")
	}
}

func TestParseJobStatus(t *testing.T) {
	if _, err := lifecycle.ParseJobStatus("active"); err != nil {
		t.Errorf("ParseJobStatus(active): %v", err)
	}
	if _, err := lifecycle.ParseJobStatus("open"); err == nil {
		t.Error("ParseJobStatus(open) expected error, got nil")
	}
}

func TestParseEmployerStatus_InvalidValue(t *testing.T) {
	if _, err := lifecycle.ParseEmployerStatus("banned"); err == nil {
		t.Error("ParseEmployerStatus(banned) expected error, got nil")
	}
}
