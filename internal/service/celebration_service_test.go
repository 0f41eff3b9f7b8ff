package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/gpa-go-api/internal/dto"
)

func TestCelebrationServiceFanOut(t *testing.T) {
	svc := NewCelebrationService(nil, "", testLogger())

	events, cleanup := svc.Subscribe()
	defer cleanup()

	svc.Emit(context.Background(), dto.CelebrationEvent{SessionID: "s1", GPA: 3.5, Grade: "B"})

	select {
	case event := <-events:
		require.Equal(t, "s1", event.SessionID)
		require.InDelta(t, 3.5, event.GPA, 1e-9)
	case <-time.After(time.Second):
		t.Fatal("expected celebration event")
	}
}

func TestCelebrationServiceUnsubscribeClosesChannel(t *testing.T) {
	svc := NewCelebrationService(nil, "", testLogger())

	events, cleanup := svc.Subscribe()
	cleanup()

	_, open := <-events
	require.False(t, open)

	// A second cleanup must not panic on the already-closed channel.
	cleanup()
}

func TestCelebrationServiceSlowSubscriberDoesNotBlock(t *testing.T) {
	svc := NewCelebrationService(nil, "", testLogger())

	_, cleanup := svc.Subscribe()
	defer cleanup()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < celebrationBufferSize*3; i++ {
			svc.Emit(context.Background(), dto.CelebrationEvent{SessionID: "s"})
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("emit blocked on a slow subscriber")
	}
}
