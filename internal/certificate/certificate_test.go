package certificate

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/dropDatabas3/eventeye/internal/domain"
)

func testEvent() *domain.Event {
	return &domain.Event{
		ID:            "event-1",
		EventName:     "Go Conference 2026",
		EventDate:     "2026-03-14",
		OrganizerName: "Ana Suárez",
	}
}

func testParticipant() *domain.Participant {
	return &domain.Participant{
		ID:            "participant-1",
		Name:          "jane doe",
		FormattedName: "Jane Doe",
		Email:         "jane@example.com",
		Status:        domain.StatusPending,
		CertificateID: "CERT-ABC123-XYZ789",
	}
}

func TestNewCertificateID_Unique(t *testing.T) {
	// 10k llamadas en loop apretado deben producir 10k valores distintos
	seen := make(map[string]struct{}, 10000)
	for i := 0; i < 10000; i++ {
		id := NewCertificateID()
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate certificate id after %d calls: %s", i, id)
		}
		seen[id] = struct{}{}
	}
}

func TestNewCertificateID_Format(t *testing.T) {
	id := NewCertificateID()
	if !strings.HasPrefix(id, "CERT-") {
		t.Fatalf("expected CERT- prefix, got %s", id)
	}
	if id != strings.ToUpper(id) {
		t.Fatalf("expected uppercase id, got %s", id)
	}
}

func TestNewVerification_Payload(t *testing.T) {
	raw := NewVerification("CERT-X", "x@example.com")

	var v Verification
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		t.Fatalf("verification payload is not valid JSON: %v", err)
	}
	if v.CertificateID != "CERT-X" {
		t.Fatalf("expected certificateId CERT-X, got %s", v.CertificateID)
	}
	if v.Email != "x@example.com" {
		t.Fatalf("expected email x@example.com, got %s", v.Email)
	}
	if v.Issuer != Issuer {
		t.Fatalf("expected issuer %s, got %s", Issuer, v.Issuer)
	}
	if v.Timestamp == "" {
		t.Fatal("expected non-empty timestamp")
	}
}

func TestRender_Deterministic(t *testing.T) {
	p := testParticipant()
	e := testEvent()

	a1, err := Render(p, e)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	a2, err := Render(p, e)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !bytes.Equal(a1.SVG, a2.SVG) {
		t.Fatal("expected byte-identical artifacts for identical inputs")
	}
}

func TestRender_Content(t *testing.T) {
	p := testParticipant()
	e := testEvent()
	e.OrganizerTitle = "Program Chair"
	e.OrganizerOrganization = "GopherCon LATAM"

	a, err := Render(p, e)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	svg := string(a.SVG)

	// prefiere formattedName
	if !strings.Contains(svg, "Jane Doe") {
		t.Fatal("expected formatted name in certificate")
	}
	if !strings.Contains(svg, "Go Conference 2026") {
		t.Fatal("expected event name in certificate")
	}
	if !strings.Contains(svg, "March 14, 2026") {
		t.Fatalf("expected human-readable date, got:\n%s", svg)
	}
	if !strings.Contains(svg, "Program Chair") {
		t.Fatal("expected organizer title in certificate")
	}
	if !strings.Contains(svg, "GopherCon LATAM") {
		t.Fatal("expected organizer organization in certificate")
	}
	if !strings.Contains(svg, "Certificate ID: CERT-ABC123-XYZ789") {
		t.Fatal("expected literal certificate id in certificate")
	}
}

func TestRender_NameFallback(t *testing.T) {
	p := testParticipant()
	p.FormattedName = ""
	a, err := Render(p, testEvent())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(string(a.SVG), "jane doe") {
		t.Fatal("expected fallback to original name when formattedName is absent")
	}
}

func TestRender_Defaults(t *testing.T) {
	e := testEvent()
	// sin título ni organización
	a, err := Render(testParticipant(), e)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	svg := string(a.SVG)
	if !strings.Contains(svg, "Event Organizer") {
		t.Fatal("expected default organizer title")
	}
	if strings.Contains(svg, `y="515"`) {
		t.Fatal("expected organization line to be omitted entirely when absent")
	}
}

func TestRender_MissingFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*domain.Event)
		want   error
	}{
		{"event name", func(e *domain.Event) { e.EventName = "" }, ErrMissingEventName},
		{"event date", func(e *domain.Event) { e.EventDate = "" }, ErrMissingEventDate},
		{"organizer name", func(e *domain.Event) { e.OrganizerName = "" }, ErrMissingOrganizerName},
	}
	for _, tc := range cases {
		e := testEvent()
		tc.mutate(e)
		if _, err := Render(testParticipant(), e); err != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}

	p := testParticipant()
	p.CertificateID = ""
	if _, err := Render(p, testEvent()); err != ErrMissingCertificateID {
		t.Fatalf("expected ErrMissingCertificateID, got %v", err)
	}
}

func TestRender_DoesNotMutateInputs(t *testing.T) {
	p := testParticipant()
	e := testEvent()
	before := *p
	if _, err := Render(p, e); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if *p != before {
		t.Fatal("Render mutated the participant")
	}
}

func TestDataURI_RoundTrip(t *testing.T) {
	a, err := Render(testParticipant(), testEvent())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	uri := a.DataURI()
	if !strings.HasPrefix(uri, "data:image/svg+xml;base64,") {
		t.Fatalf("unexpected uri scheme: %.40s", uri)
	}

	got, err := DecodeDataURI(uri)
	if err != nil {
		t.Fatalf("DecodeDataURI failed: %v", err)
	}
	if !bytes.Equal(got, a.SVG) {
		t.Fatal("round-trip did not recover the original artifact")
	}
}

func TestPayloadFromDataURI_Invalid(t *testing.T) {
	if _, err := PayloadFromDataURI("https://example.com/cert.svg"); err != ErrNotDataURI {
		t.Fatalf("expected ErrNotDataURI, got %v", err)
	}
}
