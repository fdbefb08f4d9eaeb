package lifecycle

import "errors"

// Sentinel domain errors. The HTTP boundary maps these onto status codes;
// the engine never touches HTTP concepts directly.
var (
	ErrNotFound    = errors.New("not found")
	ErrJobNotFound = errors.New("job not found")
	ErrForbidden   = errors.New("forbidden")

	ErrJobClosed      = errors.New("job is not accepting applications")
	ErrAlreadyApplied = errors.New("already applied to this job")
	ErrAlreadySaved   = errors.New("job already saved")
	ErrNotSaved       = errors.New("job is not saved")

	ErrInvalidStatus     = errors.New("invalid status value")
	ErrInvalidTransition = errors.New("status transition not allowed")
	ErrWithdrawLocked    = errors.New("application can no longer be withdrawn")

	ErrNotificationFailed = errors.New("notification delivery failed")
)
