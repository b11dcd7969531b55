package notify

import "context"

// Noop is the Sender used when no relay is configured. Every delivery is
// reported as a failure without reaching any network.
type Noop struct{}

func (Noop) SendDirectMessage(_ context.Context, _, _ string) error {
	return ErrDisabled
}

func (Noop) PostToChannel(_ context.Context, _, _ string) error {
	return ErrDisabled
}
