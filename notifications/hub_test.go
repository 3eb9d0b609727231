package notifications

import (
	"testing"
	"time"
)

func recvTimeout(t *testing.T, ch <-chan []byte) []byte {
	t.Helper()
	select {
	case payload := <-ch:
		return payload
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

func TestHubDeliversToMatchingSubscribersOnly(t *testing.T) {
	hub := NewHub()

	chA, releaseA, err := hub.Subscribe("sub-a")
	if err != nil {
		t.Fatalf("Subscribe returned error: %v", err)
	}
	defer releaseA()

	chB, releaseB, err := hub.Subscribe("sub-b")
	if err != nil {
		t.Fatalf("Subscribe returned error: %v", err)
	}
	defer releaseB()

	hub.Publish("sub-a", []byte(`{"id":"sub-a"}`))

	if got := string(recvTimeout(t, chA)); got != `{"id":"sub-a"}` {
		t.Errorf("subscriber A received %q", got)
	}

	select {
	case payload := <-chB:
		t.Errorf("subscriber B received event for another record: %s", payload)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubReleaseClosesChannel(t *testing.T) {
	hub := NewHub()

	ch, release, err := hub.Subscribe("sub-a")
	if err != nil {
		t.Fatalf("Subscribe returned error: %v", err)
	}

	if n := hub.SubscriberCount("sub-a"); n != 1 {
		t.Fatalf("SubscriberCount = %d, want 1", n)
	}

	release()
	// Releasing twice is safe
	release()

	if n := hub.SubscriberCount("sub-a"); n != 0 {
		t.Errorf("SubscriberCount after release = %d, want 0", n)
	}

	if _, ok := <-ch; ok {
		t.Error("channel still open after release")
	}

	// Publishing after release must not panic or deliver
	hub.Publish("sub-a", []byte("late"))
}

func TestHubDropsEventsForSlowSubscribers(t *testing.T) {
	hub := NewHub()

	ch, release, err := hub.Subscribe("sub-a")
	if err != nil {
		t.Fatalf("Subscribe returned error: %v", err)
	}
	defer release()

	// Fill the buffer and then some; Publish must never block
	for i := 0; i < subscriberBuffer*3; i++ {
		hub.Publish("sub-a", []byte("event"))
	}

	delivered := 0
drain:
	for {
		select {
		case <-ch:
			delivered++
		default:
			break drain
		}
	}
	if delivered != subscriberBuffer {
		t.Errorf("delivered = %d, want %d buffered events", delivered, subscriberBuffer)
	}
}

func TestHubPerRecordLimit(t *testing.T) {
	hub := NewHub()

	releases := make([]func(), 0, maxSubsPerRecord)
	for i := 0; i < maxSubsPerRecord; i++ {
		_, release, err := hub.Subscribe("sub-a")
		if err != nil {
			t.Fatalf("Subscribe %d returned error: %v", i, err)
		}
		releases = append(releases, release)
	}
	defer func() {
		for _, release := range releases {
			release()
		}
	}()

	if _, _, err := hub.Subscribe("sub-a"); err == nil {
		t.Error("expected the per-record subscription limit to refuse")
	}

	// A different record is unaffected
	_, release, err := hub.Subscribe("sub-b")
	if err != nil {
		t.Fatalf("Subscribe on another record returned error: %v", err)
	}
	release()
}
