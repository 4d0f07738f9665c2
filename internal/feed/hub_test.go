package feed

import (
	"testing"
	"time"

	"complaintwall/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEvent(number string) Event {
	return Event{
		Type:            EventSubmitted,
		ComplaintNumber: number,
		Category:        "Hostel",
		Priority:        models.PriorityHigh,
		Status:          models.StatusOpen,
		At:              time.Now(),
	}
}

func waitForEvent(t *testing.T, ch chan Event) Event {
	t.Helper()
	select {
	case event := <-ch:
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for feed event")
		return Event{}
	}
}

func TestHubBroadcastsToRegisteredClients(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	a := &Client{Hub: hub, Send: make(chan Event, 8)}
	b := &Client{Hub: hub, Send: make(chan Event, 8)}
	hub.RegisterCh <- a
	hub.RegisterCh <- b

	hub.Publish(testEvent("DCW-1"))

	got := waitForEvent(t, a.Send)
	assert.Equal(t, "DCW-1", got.ComplaintNumber)
	assert.Equal(t, EventSubmitted, got.Type)

	got = waitForEvent(t, b.Send)
	assert.Equal(t, "DCW-1", got.ComplaintNumber)
}

func TestHubUnregisterStopsDelivery(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	c := &Client{Hub: hub, Send: make(chan Event, 8)}
	hub.RegisterCh <- c
	hub.UnregisterCh <- c

	// Unregister closes Send; the closed channel is the signal that the
	// hub has dropped the client.
	select {
	case _, ok := <-c.Send:
		require.False(t, ok, "expected Send to be closed")
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for Send to close")
	}

	hub.Publish(testEvent("DCW-2"))
}

func TestHubDropsSlowConsumer(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	slow := &Client{Hub: hub, Send: make(chan Event, 1)}
	healthy := &Client{Hub: hub, Send: make(chan Event, 8)}
	hub.RegisterCh <- slow
	hub.RegisterCh <- healthy

	// The first event fills slow's buffer; the second overflows it and the
	// hub must evict slow instead of blocking.
	hub.Publish(testEvent("DCW-1"))
	hub.Publish(testEvent("DCW-2"))

	assert.Equal(t, "DCW-1", waitForEvent(t, healthy.Send).ComplaintNumber)
	assert.Equal(t, "DCW-2", waitForEvent(t, healthy.Send).ComplaintNumber)

	deadline := time.After(2 * time.Second)
	got := 0
	for {
		select {
		case _, ok := <-slow.Send:
			if !ok {
				assert.LessOrEqual(t, got, 1, "slow client saw at most its buffered event")
				return
			}
			got++
		case <-deadline:
			t.Fatal("slow client was never evicted")
		}
	}
}

func TestPublishNeverBlocksWhenBufferFull(t *testing.T) {
	hub := NewHub() // Run is intentionally not started
	done := make(chan struct{})
	go func() {
		for i := 0; i < cap(hub.BroadcastCh)+10; i++ {
			hub.Publish(testEvent("DCW-OVERFLOW"))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a full buffer")
	}
}
