package logging_test

import (
	"context"
	"testing"
	"time"

	"pick-and-place/server/logging"
	"pick-and-place/server/logging/sinks"
)

func newMemoryRouter(t *testing.T, cfg logging.Config) (*logging.Router, *sinks.MemorySink) {
	t.Helper()
	memory := sinks.NewMemorySink()
	router, err := logging.NewRouter(nil, cfg, []logging.NamedSink{{Name: "memory", Sink: memory}})
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}
	return router, memory
}

func closeRouter(t *testing.T, router *logging.Router) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := router.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestRouterDeliversEventsToSink(t *testing.T) {
	router, memory := newMemoryRouter(t, logging.DefaultConfig())

	router.Publish(context.Background(), logging.Event{
		Type:     "menu.item_placed",
		Tick:     7,
		Actor:    logging.EntityRef{ID: "p1", Kind: logging.EntityKindPlayer},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryMenu,
	})
	closeRouter(t, router)

	events := memory.Events()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Type != "menu.item_placed" || events[0].Tick != 7 {
		t.Fatalf("event = %+v", events[0])
	}
	if events[0].Time.IsZero() {
		t.Fatal("router should stamp event time")
	}
	if got := router.Stats().EventsTotal; got != 1 {
		t.Fatalf("events total = %d", got)
	}
}

func TestRouterFiltersBelowMinimumSeverity(t *testing.T) {
	cfg := logging.DefaultConfig()
	cfg.MinimumSeverity = logging.SeverityInfo
	router, memory := newMemoryRouter(t, cfg)

	router.Publish(context.Background(), logging.Event{Type: "menu.cursor_desync", Severity: logging.SeverityDebug})
	router.Publish(context.Background(), logging.Event{Type: "menu.recovery_run", Severity: logging.SeverityWarn})
	closeRouter(t, router)

	events := memory.Events()
	if len(events) != 1 {
		t.Fatalf("expected only the warn event, got %d", len(events))
	}
	if events[0].Type != "menu.recovery_run" {
		t.Fatalf("surviving event = %s", events[0].Type)
	}
}

func TestRouterAppliesConfiguredFields(t *testing.T) {
	cfg := logging.DefaultConfig()
	cfg.Fields = map[string]any{"node": "test-1"}
	router, memory := newMemoryRouter(t, cfg)

	router.Publish(context.Background(), logging.Event{Type: "lifecycle.player_joined", Severity: logging.SeverityInfo})
	closeRouter(t, router)

	events := memory.Events()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Extra["node"] != "test-1" {
		t.Fatalf("extra = %+v", events[0].Extra)
	}
}

func TestRouterIgnoresUntypedEvents(t *testing.T) {
	router, memory := newMemoryRouter(t, logging.DefaultConfig())

	router.Publish(context.Background(), logging.Event{Severity: logging.SeverityInfo})
	closeRouter(t, router)

	if events := memory.Events(); len(events) != 0 {
		t.Fatalf("untyped event delivered: %+v", events)
	}
}

func TestRouterPublishAfterCloseIsSafe(t *testing.T) {
	router, memory := newMemoryRouter(t, logging.DefaultConfig())
	closeRouter(t, router)

	router.Publish(context.Background(), logging.Event{Type: "menu.item_placed", Severity: logging.SeverityInfo})
	if events := memory.Events(); len(events) != 0 {
		t.Fatalf("event delivered after close: %+v", events)
	}
}

func TestWithFieldsWrapsPublisher(t *testing.T) {
	var got logging.Event
	base := logging.PublisherFunc(func(_ context.Context, event logging.Event) { got = event })

	wrapped := logging.WithFields(base, map[string]any{"session": "abc"})
	wrapped.Publish(context.Background(), logging.Event{Type: "menu.item_placed"})

	if got.Extra["session"] != "abc" {
		t.Fatalf("extra = %+v", got.Extra)
	}
}

func TestMemorySinkReset(t *testing.T) {
	memory := sinks.NewMemorySink()
	memory.Write(logging.Event{Type: "a"})
	memory.Reset()
	if len(memory.Events()) != 0 {
		t.Fatal("reset did not clear events")
	}
}
