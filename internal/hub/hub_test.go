package hub

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

func receive(t *testing.T, client Client) Event {
	t.Helper()
	select {
	case data, ok := <-client:
		if !ok {
			t.Fatal("client channel closed unexpectedly")
		}
		var event Event
		if err := json.Unmarshal(data, &event); err != nil {
			t.Fatalf("unmarshalling event: %v", err)
		}
		return event
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
	return Event{}
}

func TestHub_BroadcastReachesAllSubscribers(t *testing.T) {
	h := New()
	roomID := uuid.New()

	first := h.Subscribe(roomID)
	second := h.Subscribe(roomID)

	h.Broadcast(roomID, Event{Type: "message", Payload: "hello"})

	for _, client := range []Client{first, second} {
		event := receive(t, client)
		if event.Type != "message" {
			t.Errorf("expected event type message, got %q", event.Type)
		}
		if event.Payload != "hello" {
			t.Errorf("expected payload hello, got %v", event.Payload)
		}
	}
}

func TestHub_BroadcastIsScopedToRoom(t *testing.T) {
	h := New()
	roomA := uuid.New()
	roomB := uuid.New()

	inA := h.Subscribe(roomA)
	inB := h.Subscribe(roomB)

	h.Broadcast(roomA, Event{Type: "message", Payload: "only for a"})

	receive(t, inA)

	select {
	case data := <-inB:
		t.Errorf("subscriber in another room received %s", data)
	default:
	}
}

func TestHub_BroadcastToEmptyRoomIsNoop(t *testing.T) {
	h := New()

	// Nothing to assert beyond not panicking.
	h.Broadcast(uuid.New(), Event{Type: "message", Payload: "nobody home"})
}

func TestHub_UnsubscribeClosesChannel(t *testing.T) {
	h := New()
	roomID := uuid.New()

	client := h.Subscribe(roomID)
	h.Unsubscribe(roomID, client)

	select {
	case _, ok := <-client:
		if ok {
			t.Error("expected channel to be closed, got a value")
		}
	case <-time.After(time.Second):
		t.Fatal("channel not closed after unsubscribe")
	}

	if got := h.Subscribers(roomID); got != 0 {
		t.Errorf("expected 0 subscribers, got %d", got)
	}
}

func TestHub_UnsubscribeTwiceIsSafe(t *testing.T) {
	h := New()
	roomID := uuid.New()

	client := h.Subscribe(roomID)
	h.Unsubscribe(roomID, client)
	h.Unsubscribe(roomID, client)
	h.Unsubscribe(uuid.New(), client)
}

func TestHub_SubscribersCount(t *testing.T) {
	h := New()
	roomID := uuid.New()

	if got := h.Subscribers(roomID); got != 0 {
		t.Fatalf("expected 0 subscribers in fresh room, got %d", got)
	}

	first := h.Subscribe(roomID)
	second := h.Subscribe(roomID)
	if got := h.Subscribers(roomID); got != 2 {
		t.Errorf("expected 2 subscribers, got %d", got)
	}

	h.Unsubscribe(roomID, first)
	if got := h.Subscribers(roomID); got != 1 {
		t.Errorf("expected 1 subscriber, got %d", got)
	}

	h.Unsubscribe(roomID, second)
	if got := h.Subscribers(roomID); got != 0 {
		t.Errorf("expected 0 subscribers, got %d", got)
	}
}

func TestHub_SlowSubscriberDoesNotBlockBroadcast(t *testing.T) {
	h := New()
	roomID := uuid.New()

	slow := h.Subscribe(roomID)
	live := h.Subscribe(roomID)

	// Fill the slow client's buffer so further sends would block.
	for i := 0; i < cap(slow)+5; i++ {
		h.Broadcast(roomID, Event{Type: "message", Payload: i})
	}

	// Drain the live client fully, then confirm it still gets fresh events.
	for len(live) > 0 {
		<-live
	}

	h.Broadcast(roomID, Event{Type: "message", Payload: "after the flood"})

	event := receive(t, live)
	if event.Payload != "after the flood" {
		t.Errorf("expected latest payload, got %v", event.Payload)
	}

	if got := len(slow); got != cap(slow) {
		t.Errorf("expected slow client buffer to stay full at %d, got %d", cap(slow), got)
	}
}

func TestHub_ConcurrentSubscribeAndBroadcast(t *testing.T) {
	h := New()
	roomID := uuid.New()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			client := h.Subscribe(roomID)
			h.Unsubscribe(roomID, client)
		}()
		go func() {
			defer wg.Done()
			h.Broadcast(roomID, Event{Type: "message", Payload: "racing"})
		}()
	}
	wg.Wait()

	if got := h.Subscribers(roomID); got != 0 {
		t.Errorf("expected all subscribers gone, got %d", got)
	}
}
