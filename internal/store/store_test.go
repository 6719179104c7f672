package store

import (
	"context"
	"errors"
	"testing"

	"github.com/dharmasatrya/tripform/internal/models"
)

func sampleSnapshot(name string) models.Snapshot {
	return models.Snapshot{
		Fields: map[string]any{"fullName": name, "numberOfPeople": 1},
		Passengers: []models.PassengerRecord{
			{FullName: "Pau Ferrer", Age: 40, RelationToHolder: "friend"},
		},
		TotalPrice: models.Price{Amount: 100, Currency: "EUR", Formatted: "100 €"},
	}
}

func TestMemoryStore_SaveGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	sub, err := s.Save(ctx, sampleSnapshot("Ana García"))
	if err != nil {
		t.Fatal(err)
	}
	if sub.ID == "" || sub.SubmittedAt.IsZero() {
		t.Errorf("submission: %+v", sub)
	}

	got, err := s.Get(ctx, sub.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Snapshot.Fields["fullName"] != "Ana García" {
		t.Errorf("fields: %+v", got.Snapshot.Fields)
	}

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, models.ErrSubmissionNotFound) {
		t.Errorf("missing: got %v", err)
	}
	if err := s.Close(); err != nil {
		t.Error(err)
	}
}

func TestSubmissionID(t *testing.T) {
	a, err := SubmissionID(sampleSnapshot("Ana García"))
	if err != nil {
		t.Fatal(err)
	}
	b, _ := SubmissionID(sampleSnapshot("Ana García"))
	c, _ := SubmissionID(sampleSnapshot("Luis García"))

	if a != b {
		t.Error("same content must hash to the same ID")
	}
	if a == c {
		t.Error("different content must hash to different IDs")
	}
	if len(a) != 32 {
		t.Errorf("id length: got %d want 32", len(a))
	}
}

func TestKey(t *testing.T) {
	if got := key("abc"); got != "reservation:abc" {
		t.Errorf("got %q", got)
	}
}
