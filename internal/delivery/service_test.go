package delivery

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/eventeye/internal/domain"
	"github.com/dropDatabas3/eventeye/internal/email"
	"github.com/dropDatabas3/eventeye/internal/store"
	"github.com/dropDatabas3/eventeye/internal/store/memory"
)

// scriptedSender falla en los números de llamada indicados (1-based).
type scriptedSender struct {
	calls  int
	failOn map[int]error
	sent   []email.Message
}

func (s *scriptedSender) Send(ctx context.Context, msg email.Message) (email.Receipt, error) {
	s.calls++
	s.sent = append(s.sent, msg)
	if err, ok := s.failOn[s.calls]; ok {
		return email.Receipt{}, err
	}
	return email.Receipt{ID: fmt.Sprintf("msg-%d", s.calls)}, nil
}

func newTestService(t *testing.T, sender email.Sender) (*Service, store.Store) {
	t.Helper()
	st := memory.New()
	svc, err := NewService(Config{
		Store:     st,
		Sender:    sender,
		From:      "certs@eventeye.dev",
		SendDelay: time.Millisecond, // acelerar tests, el throttle real es 500ms
	})
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	return svc, st
}

func newTestEvent(n int) *domain.Event {
	ev := &domain.Event{
		ID:            "event-1",
		EventName:     "Go Conference 2026",
		EventDate:     "2026-03-14",
		OrganizerName: "Ana Suárez",
		CreatedAt:     time.Now().UTC(),
	}
	for i := 1; i <= n; i++ {
		ev.Participants = append(ev.Participants, domain.Participant{
			ID:     fmt.Sprintf("p%d", i),
			Name:   fmt.Sprintf("person %d", i),
			Email:  fmt.Sprintf("person%d@x.com", i),
			Status: domain.StatusPending,
		})
	}
	ev.Recount()
	return ev
}

func TestGenerateCertificates(t *testing.T) {
	ctx := context.Background()
	svc, st := newTestService(t, &scriptedSender{})
	ev := newTestEvent(3)

	if err := svc.GenerateCertificates(ctx, ev); err != nil {
		t.Fatalf("GenerateCertificates failed: %v", err)
	}

	ids := map[string]string{}
	for _, p := range ev.Participants {
		if p.CertificateID == "" {
			t.Fatalf("participant %s has no certificate id", p.ID)
		}
		if p.Verification == "" {
			t.Fatalf("participant %s has no verification payload", p.ID)
		}
		if p.ArtifactURI == "" {
			t.Fatalf("participant %s has no artifact", p.ID)
		}
		if !p.Eligible() {
			t.Fatalf("participant %s should be eligible after generation", p.ID)
		}
		ids[p.ID] = p.CertificateID
	}

	// re-generar no reasigna identificadores ya emitidos
	if err := svc.GenerateCertificates(ctx, ev); err != nil {
		t.Fatalf("second GenerateCertificates failed: %v", err)
	}
	for _, p := range ev.Participants {
		if ids[p.ID] != p.CertificateID {
			t.Fatalf("certificate id of %s was reassigned", p.ID)
		}
	}

	// el evento quedó persistido como unidad
	saved, err := store.FindEvent(ctx, st, "event-1")
	if err != nil {
		t.Fatalf("event was not persisted: %v", err)
	}
	if len(saved.Participants) != 3 {
		t.Fatalf("expected 3 persisted participants, got %d", len(saved.Participants))
	}
}

func TestGenerateCertificates_MissingEventFields(t *testing.T) {
	svc, _ := newTestService(t, &scriptedSender{})
	ev := newTestEvent(1)
	ev.OrganizerName = ""
	if err := svc.GenerateCertificates(context.Background(), ev); err == nil {
		t.Fatal("expected a typed render error for malformed event")
	}
}

func TestSendIndividual_FailureIsolation(t *testing.T) {
	ctx := context.Background()
	sender := &scriptedSender{failOn: map[int]error{2: errors.New("provider rejected recipient")}}
	svc, st := newTestService(t, sender)

	ev := newTestEvent(3)
	require.NoError(t, svc.GenerateCertificates(ctx, ev))

	var progress [][2]int
	results, err := svc.SendIndividual(ctx, ev, func(completed, total int) {
		progress = append(progress, [2]int{completed, total})
	})
	require.NoError(t, err)
	require.Len(t, results, 3)

	// #1 y #3 entregados con timestamps, #2 failed con mensaje
	p1, p2, p3 := ev.Participants[0], ev.Participants[1], ev.Participants[2]
	require.Equal(t, domain.StatusDelivered, p1.Status)
	require.NotNil(t, p1.DeliveredAt)
	require.NotNil(t, p1.EmailSentAt)
	require.Equal(t, domain.StatusFailed, p2.Status)
	require.NotEmpty(t, p2.Error)
	require.Nil(t, p2.EmailSentAt)
	require.Equal(t, domain.StatusDelivered, p3.Status)
	require.NotNil(t, p3.DeliveredAt)

	// progreso: exactamente 3 callbacks con completed 1,2,3
	require.Equal(t, [][2]int{{1, 3}, {2, 3}, {3, 3}}, progress)

	// contadores recomputados y persistidos
	saved, err := store.FindEvent(ctx, st, "event-1")
	require.NoError(t, err)
	require.Equal(t, 2, saved.DeliveredCount)
	require.Equal(t, 0, saved.BouncedCount)
	require.Equal(t, 1, saved.PendingCount) // failed cuenta como pendiente
}

func TestSendIndividual_FailedIsRetryEligible(t *testing.T) {
	ctx := context.Background()
	sender := &scriptedSender{failOn: map[int]error{2: errors.New("boom")}}
	svc, _ := newTestService(t, sender)

	ev := newTestEvent(3)
	require.NoError(t, svc.GenerateCertificates(ctx, ev))
	_, err := svc.SendIndividual(ctx, ev, nil)
	require.NoError(t, err)

	// el retry solo toma al participante fallido
	results, err := svc.SendIndividual(ctx, ev, nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "p2", results[0].ParticipantID)
	require.True(t, results[0].Success)
	require.Equal(t, domain.StatusDelivered, ev.Participants[1].Status)
	require.Empty(t, ev.Participants[1].Error)
}

func TestSendIndividual_NoEligible(t *testing.T) {
	svc, _ := newTestService(t, &scriptedSender{})
	ev := newTestEvent(2) // sin artefactos: nadie es elegible
	_, err := svc.SendIndividual(context.Background(), ev, nil)
	if !errors.Is(err, ErrNoEligibleParticipants) {
		t.Fatalf("expected ErrNoEligibleParticipants, got %v", err)
	}
}

func TestSendIndividual_MessageContent(t *testing.T) {
	ctx := context.Background()
	sender := &scriptedSender{}
	svc, _ := newTestService(t, sender)

	ev := newTestEvent(1)
	ev.Participants[0].FormattedName = "Person One"
	require.NoError(t, svc.GenerateCertificates(ctx, ev))
	_, err := svc.SendIndividual(ctx, ev, nil)
	require.NoError(t, err)

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	require.Equal(t, []string{"person1@x.com"}, msg.To)
	require.Equal(t, "Your Certificate for Go Conference 2026", msg.Subject)
	require.Contains(t, msg.HTML, "Person One")
	require.Contains(t, msg.HTML, ev.Participants[0].CertificateID)
	require.Len(t, msg.Attachments, 1)
	require.Equal(t,
		fmt.Sprintf("certificate-%s.svg", ev.Participants[0].CertificateID),
		msg.Attachments[0].Filename)
	// el adjunto es el payload base64 de la data URI del artefacto
	require.True(t, strings.HasSuffix(ev.Participants[0].ArtifactURI, msg.Attachments[0].Content))
}

func TestSendToOwner_Atomicity(t *testing.T) {
	ctx := context.Background()
	sender := &scriptedSender{failOn: map[int]error{1: errors.New("smtp unreachable")}}
	svc, st := newTestService(t, sender)

	ev := newTestEvent(3)
	require.NoError(t, svc.GenerateCertificates(ctx, ev))

	before := make([]domain.Status, len(ev.Participants))
	for i, p := range ev.Participants {
		before[i] = p.Status
	}

	_, err := svc.SendToOwner(ctx, ev, "owner@x.com")
	require.ErrorIs(t, err, ErrBatchSendFailed)

	// todo-o-nada: cero cambios de estado
	for i, p := range ev.Participants {
		require.Equal(t, before[i], p.Status, "participant %s changed status on failed batch", p.ID)
		require.Empty(t, p.EmailID)
		require.Nil(t, p.EmailSentAt)
	}

	// y nada nuevo persistido con statuses mutados
	saved, err := store.FindEvent(ctx, st, "event-1")
	require.NoError(t, err)
	require.Equal(t, 0, saved.DeliveredCount)
}

func TestSendToOwner_Success(t *testing.T) {
	ctx := context.Background()
	sender := &scriptedSender{}
	svc, st := newTestService(t, sender)

	ev := newTestEvent(3)
	require.NoError(t, svc.GenerateCertificates(ctx, ev))

	receipt, err := svc.SendToOwner(ctx, ev, "owner@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, receipt.ID)

	// un solo mensaje con un adjunto por participante y manifiesto
	require.Equal(t, 1, sender.calls)
	msg := sender.sent[0]
	require.Equal(t, []string{"owner@x.com"}, msg.To)
	require.Len(t, msg.Attachments, 3)
	for _, p := range ev.Participants {
		require.Contains(t, msg.HTML, p.Name)
		require.Contains(t, msg.HTML, p.Email)
	}

	// todos delivered con el mismo timestamp y message id
	var ts *time.Time
	for _, p := range ev.Participants {
		require.Equal(t, domain.StatusDelivered, p.Status)
		require.Equal(t, receipt.ID, p.EmailID)
		require.NotNil(t, p.DeliveredAt)
		if ts == nil {
			ts = p.DeliveredAt
		} else {
			require.Equal(t, *ts, *p.DeliveredAt)
		}
	}

	saved, err := store.FindEvent(ctx, st, "event-1")
	require.NoError(t, err)
	require.Equal(t, 3, saved.DeliveredCount)
	require.Equal(t, 0, saved.PendingCount)
}

func TestSendToOwner_RequiresOwnerEmail(t *testing.T) {
	svc, _ := newTestService(t, &scriptedSender{})
	ev := newTestEvent(1)
	_, err := svc.SendToOwner(context.Background(), ev, "  ")
	if !errors.Is(err, ErrInvalidOwnerEmail) {
		t.Fatalf("expected ErrInvalidOwnerEmail, got %v", err)
	}
}
