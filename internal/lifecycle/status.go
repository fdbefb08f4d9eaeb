// Package lifecycle holds the status-transition rules for employer accounts,
// job postings, and applications, plus the engine that applies them and their
// side effects (notification dispatch, counter maintenance).
//
// Application status graph:
//
//	applied ──► reviewed ──► interview ──► hired
//	   │            │             │
//	   └────────────┴─────────────┴──────► rejected
//
// hired and rejected are terminal states.
package lifecycle

import "fmt"

// EmployerStatus governs an employer account's login and posting rights.
type EmployerStatus string

const (
	EmployerPending   EmployerStatus = "pending"
	EmployerApproved  EmployerStatus = "approved"
	EmployerRejected  EmployerStatus = "rejected"
	EmployerActive    EmployerStatus = "active"
	EmployerSuspended EmployerStatus = "suspended"
)

// employerTransitions lists every allowed (from → to) pair for employer
// accounts. The same table governs approval, rejection, suspension and
// reactivation, so there is a single source of truth for the sub-machine.
var employerTransitions = map[EmployerStatus][]EmployerStatus{
	EmployerPending:   {EmployerApproved, EmployerRejected},
	EmployerRejected:  {EmployerApproved},
	EmployerApproved:  {EmployerSuspended},
	EmployerActive:    {EmployerSuspended},
	EmployerSuspended: {EmployerApproved},
}

// ParseEmployerStatus converts a raw string to an EmployerStatus, returning
// an error for unknown values so nothing invalid ever reaches the store.
func ParseEmployerStatus(s string) (EmployerStatus, error) {
	st := EmployerStatus(s)
	switch st {
	case EmployerPending, EmployerApproved, EmployerRejected, EmployerActive, EmployerSuspended:
		return st, nil
	}
	return "", fmt.Errorf("unknown employer status %q", s)
}

// CanPost reports whether the account may create job postings and reach the
// employer surface. Both "approved" and "active" grant rights.
func (s EmployerStatus) CanPost() bool {
	return s == EmployerApproved || s == EmployerActive
}

// EmployerTransitionAllowed reports whether moving from → to is permitted.
func EmployerTransitionAllowed(from, to EmployerStatus) bool {
	for _, s := range employerTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// JobStatus is the posting's visibility toggle.
type JobStatus string

const (
	JobActive JobStatus = "active"
	JobClosed JobStatus = "closed"
)

// ParseJobStatus converts a raw string to a JobStatus.
func ParseJobStatus(s string) (JobStatus, error) {
	st := JobStatus(s)
	switch st {
	case JobActive, JobClosed:
		return st, nil
	}
	return "", fmt.Errorf("unknown job status %q", s)
}

// Toggle flips active ↔ closed.
func (s JobStatus) Toggle() JobStatus {
	if s == JobActive {
		return JobClosed
	}
	return JobActive
}

// ApplicationStatus tracks a candidate through the hiring pipeline.
type ApplicationStatus string

const (
	ApplicationApplied   ApplicationStatus = "applied"
	ApplicationReviewed  ApplicationStatus = "reviewed"
	ApplicationInterview ApplicationStatus = "interview"
	ApplicationHired     ApplicationStatus = "hired"
	ApplicationRejected  ApplicationStatus = "rejected"
)

// applicationTransitions is the one transition table governing both the
// employer-facing status update and the jobseeker-facing withdraw. hired and
// rejected have no outgoing transitions; in particular un-hiring
// (hired → rejected) is not permitted.
var applicationTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationApplied:   {ApplicationReviewed, ApplicationInterview, ApplicationRejected},
	ApplicationReviewed:  {ApplicationInterview, ApplicationRejected},
	ApplicationInterview: {ApplicationHired, ApplicationRejected},
	// hired and rejected are terminal: no outgoing transitions
}

// ParseApplicationStatus converts a raw string to an ApplicationStatus.
func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	st := ApplicationStatus(s)
	switch st {
	case ApplicationApplied, ApplicationReviewed, ApplicationInterview, ApplicationHired, ApplicationRejected:
		return st, nil
	}
	return "", fmt.Errorf("unknown application status %q", s)
}

// Terminal reports whether no further transition is permitted.
func (s ApplicationStatus) Terminal() bool {
	return s == ApplicationHired || s == ApplicationRejected
}

// ApplicationTransitionAllowed reports whether moving from → to is permitted.
func ApplicationTransitionAllowed(from, to ApplicationStatus) bool {
	for _, s := range applicationTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
