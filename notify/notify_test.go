package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeSender struct {
	rejected map[string]error
	sent     []string
}

func (f *fakeSender) SendDirectMessage(_ context.Context, username, _ string) error {
	if err, ok := f.rejected[username]; ok {
		return err
	}
	f.sent = append(f.sent, username)
	return nil
}

func (f *fakeSender) PostToChannel(_ context.Context, _, _ string) error {
	return nil
}

func TestBroadcast(t *testing.T) {
	sender := &fakeSender{rejected: map[string]error{
		"Carol": ErrForbidden,
		"Dave":  errors.New("relay timeout"),
	}}

	delivered, failed := Broadcast(context.Background(), sender, []string{"Alice", "Bob", "Carol", "Dave"}, "squad up")

	assert.Equal(t, 2, delivered)
	assert.Equal(t, 2, failed)
	assert.Equal(t, []string{"Alice", "Bob"}, sender.sent)
}

func TestBroadcast_Empty(t *testing.T) {
	delivered, failed := Broadcast(context.Background(), &fakeSender{}, nil, "hello")
	assert.Zero(t, delivered)
	assert.Zero(t, failed)
}

func TestNoop(t *testing.T) {
	var s Sender = Noop{}
	assert.ErrorIs(t, s.SendDirectMessage(context.Background(), "Alice", "hi"), ErrDisabled)
	assert.ErrorIs(t, s.PostToChannel(context.Background(), "general", "hi"), ErrDisabled)
}
