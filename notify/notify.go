// Package notify delivers quest messages to users and channels through the
// chat platform relay.
package notify

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
)

// ErrForbidden is returned when the recipient's privacy settings reject a
// direct message.
var ErrForbidden = errors.New("recipient rejected direct message")

// ErrDisabled is returned when no relay is configured.
var ErrDisabled = errors.New("relay is not configured")

// Sender delivers text to a user or channel. The quest core only needs this
// capability, not the chat platform's gateway.
type Sender interface {
	SendDirectMessage(ctx context.Context, username, text string) error
	PostToChannel(ctx context.Context, channel, text string) error
}

// Broadcast sends the same direct message to multiple users and returns how
// many deliveries succeeded and how many were rejected. A rejected recipient
// never aborts the rest of the batch.
func Broadcast(ctx context.Context, s Sender, usernames []string, text string) (delivered, failed int) {
	for _, username := range usernames {
		if err := s.SendDirectMessage(ctx, username, text); err != nil {
			if !errors.Is(err, ErrForbidden) {
				log.Error("failed to deliver direct message", "user", username, "error", err)
			}
			failed++
			continue
		}
		delivered++
	}
	return delivered, failed
}
