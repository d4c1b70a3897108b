package wizard

import (
	"context"
	"testing"
	"time"

	"github.com/voyageyou/voyage-backend/pkg/enums"
	pkgerrors "github.com/voyageyou/voyage-backend/pkg/errors"
	"github.com/voyageyou/voyage-backend/pkg/logger"
	"github.com/voyageyou/voyage-backend/pkg/types"
)

type stubProvider struct {
	itinerary *types.Itinerary
	err       error
}

func (p *stubProvider) Get(context.Context, string) (*types.Itinerary, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.itinerary, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "wizard-test"})
}

func newTestService(it *types.Itinerary) (Service, Repository) {
	repo := NewRepository(newStubSessionStore(), 30*time.Minute)
	svc := NewService(repo, &stubProvider{itinerary: it}, nil, testLogger())
	return svc, repo
}

func TestServiceStart(t *testing.T) {
	t.Parallel()

	it := landOnlyItinerary()
	svc, repo := newTestService(it)
	ctx := context.Background()

	snap, err := svc.Start(ctx, it.ID.String(), nil)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if snap.State.ItineraryID != it.ID {
		t.Fatalf("itinerary id mismatch: %s", snap.State.ItineraryID)
	}
	if len(snap.Steps) != StepCount() {
		t.Fatalf("expected %d step summaries, got %d", StepCount(), len(snap.Steps))
	}
	if snap.Steps[2].Enabled || snap.Steps[3].Enabled {
		t.Fatal("expected flights and hotel disabled for land-only trip")
	}
	if !snap.Steps[0].Active {
		t.Fatal("expected first step active")
	}

	if _, err := repo.Find(ctx, snap.State.SessionID.String()); err != nil {
		t.Fatalf("session not persisted: %v", err)
	}
}

func TestServiceStartPropagatesProviderError(t *testing.T) {
	t.Parallel()

	repo := NewRepository(newStubSessionStore(), time.Minute)
	wantErr := pkgerrors.New(pkgerrors.CodeNotFound, "itinerary not found")
	svc := NewService(repo, &stubProvider{err: wantErr}, nil, testLogger())

	_, err := svc.Start(context.Background(), "missing", nil)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestServiceAdvancePersistsAndBlocks(t *testing.T) {
	t.Parallel()

	it := landOnlyItinerary()
	svc, repo := newTestService(it)
	ctx := context.Background()

	snap, err := svc.Start(ctx, it.ID.String(), nil)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	id := snap.State.SessionID.String()

	// Blocked: nothing filled in. Blocked advances do not persist.
	snap, err = svc.Advance(ctx, id)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if snap.State.ActiveStep != 1 {
		t.Fatalf("blocked advance moved to %d", snap.State.ActiveStep)
	}
	if !snap.Steps[0].Active || snap.Steps[0].Validation.Valid {
		t.Fatalf("expected active invalid first step, got %+v", snap.Steps[0])
	}

	if _, err := svc.SetField(ctx, id, "contact", 0, "email", "ana@example.com"); err != nil {
		t.Fatalf("set email: %v", err)
	}
	if _, err := svc.SetField(ctx, id, "contact", 0, "phone", "+351912345678"); err != nil {
		t.Fatalf("set phone: %v", err)
	}

	snap, err = svc.Advance(ctx, id)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if got := snap.State.ActiveStepID(); got != enums.StepTravelers {
		t.Fatalf("expected travelers, got %s", got)
	}

	persisted, err := repo.Find(ctx, id)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if persisted.ActiveStep != snap.State.ActiveStep {
		t.Fatal("advance not persisted")
	}
}

func TestServiceRetreat(t *testing.T) {
	t.Parallel()

	it := landOnlyItinerary()
	svc, _ := newTestService(it)
	ctx := context.Background()

	snap, _ := svc.Start(ctx, it.ID.String(), nil)
	id := snap.State.SessionID.String()

	snap, err := svc.Retreat(ctx, id)
	if err != nil {
		t.Fatalf("retreat: %v", err)
	}
	if snap.State.ActiveStep != 1 {
		t.Fatalf("retreat at boundary moved to %d", snap.State.ActiveStep)
	}
}

func TestServiceTravelerOperations(t *testing.T) {
	t.Parallel()

	it := landOnlyItinerary()
	svc, _ := newTestService(it)
	ctx := context.Background()

	snap, _ := svc.Start(ctx, it.ID.String(), nil)
	id := snap.State.SessionID.String()

	if _, err := svc.RemoveTraveler(ctx, id, 0); pkgerrors.As(err) == nil {
		t.Fatal("expected error removing the only traveler")
	}

	snap, err := svc.AddTraveler(ctx, id)
	if err != nil {
		t.Fatalf("add traveler: %v", err)
	}
	if len(snap.State.Travelers) != 2 {
		t.Fatalf("expected 2 travelers, got %d", len(snap.State.Travelers))
	}

	if _, err := svc.RemoveTraveler(ctx, id, 7); err == nil {
		t.Fatal("expected error for out-of-range index")
	}

	snap, err = svc.RemoveTraveler(ctx, id, 1)
	if err != nil {
		t.Fatalf("remove traveler: %v", err)
	}
	if len(snap.State.Travelers) != 1 {
		t.Fatalf("expected 1 traveler, got %d", len(snap.State.Travelers))
	}
}

func TestServiceSetFieldUnknownSession(t *testing.T) {
	t.Parallel()

	it := landOnlyItinerary()
	svc, _ := newTestService(it)

	_, err := svc.SetField(context.Background(), "nope", "contact", 0, "email", "a@b.c")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestServiceDiscard(t *testing.T) {
	t.Parallel()

	it := landOnlyItinerary()
	svc, repo := newTestService(it)
	ctx := context.Background()

	snap, _ := svc.Start(ctx, it.ID.String(), nil)
	id := snap.State.SessionID.String()

	if err := svc.Discard(ctx, id); err != nil {
		t.Fatalf("discard: %v", err)
	}
	if _, err := repo.Find(ctx, id); pkgerrors.As(err) == nil {
		t.Fatal("expected discarded session to be gone")
	}
}
