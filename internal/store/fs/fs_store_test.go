package fs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dropDatabas3/eventeye/internal/domain"
	"github.com/dropDatabas3/eventeye/internal/store"
)

func TestFSStore_EmptyOnMissingFile(t *testing.T) {
	s := New(t.TempDir())
	events, err := s.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("expected empty collection, got %d events", len(events))
	}
}

func TestFSStore_EmptyOnCorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "events.json"), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	s := New(dir)
	events, err := s.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("corrupt file must degrade to empty, got error: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("expected empty collection, got %d events", len(events))
	}
}

func TestFSStore_UpsertAndDelete(t *testing.T) {
	ctx := context.Background()
	s := New(t.TempDir())

	ev := domain.Event{ID: "event-1", EventName: "Go Meetup", EventDate: "2026-01-10", OrganizerName: "Ana"}
	if err := s.SaveEvent(ctx, ev); err != nil {
		t.Fatalf("SaveEvent failed: %v", err)
	}

	// upsert: mismo id reemplaza
	ev.EventName = "Go Meetup (edición 2)"
	if err := s.SaveEvent(ctx, ev); err != nil {
		t.Fatalf("SaveEvent (replace) failed: %v", err)
	}

	events, err := s.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event after upsert, got %d", len(events))
	}
	if events[0].EventName != "Go Meetup (edición 2)" {
		t.Fatalf("expected replaced event, got %s", events[0].EventName)
	}

	// id nuevo agrega al final
	if err := s.SaveEvent(ctx, domain.Event{ID: "event-2", EventName: "Otro"}); err != nil {
		t.Fatalf("SaveEvent failed: %v", err)
	}
	events, _ = s.LoadAll(ctx)
	if len(events) != 2 || events[1].ID != "event-2" {
		t.Fatalf("expected append for new id, got %+v", events)
	}

	if err := s.DeleteEvent(ctx, "event-1"); err != nil {
		t.Fatalf("DeleteEvent failed: %v", err)
	}
	events, _ = s.LoadAll(ctx)
	if len(events) != 1 || events[0].ID != "event-2" {
		t.Fatalf("expected only event-2 after delete, got %+v", events)
	}
}

func TestFSStore_PersistsParticipantsAsUnit(t *testing.T) {
	ctx := context.Background()
	s := New(t.TempDir())

	ev := domain.Event{
		ID:        "event-1",
		EventName: "Go Meetup",
		Participants: []domain.Participant{
			{ID: "p1", Name: "jane doe", Email: "jane@x.com", Status: domain.StatusPending},
			{ID: "p2", Name: "john roe", Email: "john@x.com", Status: domain.StatusDelivered},
		},
	}
	ev.Recount()

	if err := s.SaveEvent(ctx, ev); err != nil {
		t.Fatalf("SaveEvent failed: %v", err)
	}

	got, err := store.FindEvent(ctx, s, "event-1")
	if err != nil {
		t.Fatalf("FindEvent failed: %v", err)
	}
	if len(got.Participants) != 2 {
		t.Fatalf("expected 2 participants, got %d", len(got.Participants))
	}
	if got.DeliveredCount != 1 || got.PendingCount != 1 || got.BouncedCount != 0 {
		t.Fatalf("unexpected counters: %+v", got)
	}
	if got.Participants[0].Name != "jane doe" {
		t.Fatalf("participant round-trip broken: %+v", got.Participants[0])
	}
}

func TestFindEvent_NotFound(t *testing.T) {
	s := New(t.TempDir())
	if _, err := store.FindEvent(context.Background(), s, "nope"); err != store.ErrEventNotFound {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}
