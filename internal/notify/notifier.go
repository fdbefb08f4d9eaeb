// Package notify delivers templated messages to users. Two dispatch policies
// exist and must stay distinct: calling a Notifier directly propagates
// failures to the caller (interview scheduling), while the BestEffort wrapper
// logs and swallows them (employer approval/rejection).
package notify

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Notifier renders the named template with data and delivers the result to
// the recipient address. Implementations must be safe for concurrent use.
type Notifier interface {
	Send(ctx context.Context, to, template string, data map[string]any) error
}

// BestEffort wraps a Notifier so that delivery failures are logged and never
// surfaced to the caller. Use it wherever a status change must succeed even
// when the message does not go out.
type BestEffort struct {
	inner Notifier
	log   *logrus.Logger
}

// NewBestEffort returns a fire-and-forget wrapper around n.
func NewBestEffort(n Notifier, log *logrus.Logger) *BestEffort {
	return &BestEffort{inner: n, log: log}
}

// Send never returns a non-nil error.
func (b *BestEffort) Send(ctx context.Context, to, template string, data map[string]any) error {
	if err := b.inner.Send(ctx, to, template, data); err != nil {
		b.log.WithError(err).WithFields(logrus.Fields{
			"to":       to,
			"template": template,
		}).Warn("best-effort notification failed")
	}
	return nil
}
