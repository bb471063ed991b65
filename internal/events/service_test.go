package events

import (
	"context"
	"errors"
	"testing"

	"github.com/dropDatabas3/eventeye/internal/domain"
	"github.com/dropDatabas3/eventeye/internal/format"
	"github.com/dropDatabas3/eventeye/internal/ingest"
	"github.com/dropDatabas3/eventeye/internal/store"
	"github.com/dropDatabas3/eventeye/internal/store/memory"
)

func newService() (*Service, store.Store) {
	st := memory.New()
	return NewService(st, format.NewService(nil)), st
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	svc, st := newService()

	ev, err := svc.Create(ctx, CreateInput{
		EventName:     "Go Conference 2026",
		EventDate:     "2026-03-14",
		OrganizerName: "Ana Suárez",
		Rows: []ingest.Row{
			{Name: "jane doe", Email: "jane@x.com"},
			{Name: " john   O'brien ", Email: "john@x.com"},
		},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if len(ev.Participants) != 2 {
		t.Fatalf("expected 2 participants, got %d", len(ev.Participants))
	}
	for _, p := range ev.Participants {
		if p.Status != domain.StatusPending {
			t.Fatalf("participant %s should start pending, got %s", p.ID, p.Status)
		}
	}

	// nombre original intacto, formateado derivado
	p := ev.Participants[1]
	if p.Name != " john   O'brien " {
		t.Fatalf("original name was rewritten: %q", p.Name)
	}
	if p.FormattedName != "John O'Brien" {
		t.Fatalf("expected formatted name John O'Brien, got %q", p.FormattedName)
	}

	if ev.PendingCount != 2 || ev.DeliveredCount != 0 || ev.TotalParticipants != 2 {
		t.Fatalf("unexpected counters: %+v", ev)
	}

	// persistido como unidad
	if _, err := store.FindEvent(ctx, st, ev.ID); err != nil {
		t.Fatalf("event not persisted: %v", err)
	}
}

func TestCreate_Validation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	_, err := svc.Create(ctx, CreateInput{EventDate: "2026-01-01", OrganizerName: "Ana",
		Rows: []ingest.Row{{Name: "a", Email: "a@x.com"}}})
	if !errors.Is(err, ErrMissingDetails) {
		t.Fatalf("expected ErrMissingDetails, got %v", err)
	}

	_, err = svc.Create(ctx, CreateInput{EventName: "X", EventDate: "2026-01-01", OrganizerName: "Ana"})
	if !errors.Is(err, ErrNoParticipants) {
		t.Fatalf("expected ErrNoParticipants, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	ev, err := svc.Create(ctx, CreateInput{
		EventName: "X", EventDate: "2026-01-01", OrganizerName: "Ana",
		Rows: []ingest.Row{{Name: "a", Email: "a@x.com"}},
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.Delete(ctx, ev.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := svc.Get(ctx, ev.ID); err != store.ErrEventNotFound {
		t.Fatalf("expected ErrEventNotFound after delete, got %v", err)
	}
}
