package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishRunsAllHandlersInOrder(t *testing.T) {
	d := NewInMemoryDispatcher()
	var calls []string
	d.Subscribe(EventSearchChanged, func(context.Context, Event) error {
		calls = append(calls, "first")
		return nil
	})
	d.Subscribe(EventSearchChanged, func(context.Context, Event) error {
		calls = append(calls, "second")
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), New(EventSearchChanged, nil)))
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestPublishJoinsHandlerErrors(t *testing.T) {
	d := NewInMemoryDispatcher()
	boom := errors.New("boom")
	ran := false
	d.Subscribe(EventSortRequested, func(context.Context, Event) error { return boom })
	d.Subscribe(EventSortRequested, func(context.Context, Event) error {
		ran = true
		return nil
	})

	err := d.Publish(context.Background(), New(EventSortRequested, SortRequestedPayload{Column: "name"}))
	assert.ErrorIs(t, err, boom)
	assert.True(t, ran, "later handlers still run after an error")
}

func TestPublishWithoutSubscriber(t *testing.T) {
	d := NewInMemoryDispatcher()
	err := d.Publish(context.Background(), New(EventExportRequested, nil))
	assert.ErrorIs(t, err, ErrNoHandler)
}
