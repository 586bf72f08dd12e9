package audit

import (
	"sync"
	"testing"
	"time"
)

func TestEventEmission(t *testing.T) {
	var mu sync.Mutex
	var events []Event

	logger := New(10, WithHandler(func(e Event) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, e)
	}))
	defer logger.Close()

	logger.Log(Event{
		Action:   ActionLogin,
		Result:   ResultSuccess,
		UserID:   7,
		Username: "alice",
	})

	// Give async processor time to handle event
	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()

	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Username != "alice" {
		t.Errorf("expected alice, got %s", events[0].Username)
	}
	if events[0].Timestamp.IsZero() {
		t.Error("timestamp should be set")
	}
}

func TestCloseDrainsQueue(t *testing.T) {
	var mu sync.Mutex
	var count int

	logger := New(100, WithHandler(func(Event) {
		mu.Lock()
		defer mu.Unlock()
		count++
	}))

	for i := 0; i < 50; i++ {
		logger.Log(Event{Action: ActionNavigation, Result: ResultSuccess})
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if count != 50 {
		t.Errorf("handled %d events, want 50", count)
	}
}

func TestNilLoggerDiscards(t *testing.T) {
	var logger *Logger
	logger.Log(Event{Action: ActionLogout})
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() on nil logger error: %v", err)
	}
}
