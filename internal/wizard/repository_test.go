package wizard

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"

	pkgerrors "github.com/voyageyou/voyage-backend/pkg/errors"
)

type stubSessionStore struct {
	data    map[string]string
	lastTTL time.Duration
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{data: map[string]string{}}
}

func (s *stubSessionStore) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	switch v := value.(type) {
	case []byte:
		s.data[key] = string(v)
	case string:
		s.data[key] = v
	}
	s.lastTTL = ttl
	return nil
}

func (s *stubSessionStore) Get(_ context.Context, key string) (string, error) {
	if v, ok := s.data[key]; ok {
		return v, nil
	}
	return "", goredis.Nil
}

func (s *stubSessionStore) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(s.data, key)
	}
	return nil
}

func (s *stubSessionStore) SessionKey(sessionID string) string {
	return "vy:checkout_session:" + sessionID
}

func TestRepositoryRoundTrip(t *testing.T) {
	t.Parallel()

	store := newStubSessionStore()
	repo := NewRepository(store, 30*time.Minute)
	ctx := context.Background()

	state := NewState(fullItinerary(), nil)
	fillContact(state)
	if err := repo.Save(ctx, state); err != nil {
		t.Fatalf("save: %v", err)
	}
	if store.lastTTL != 30*time.Minute {
		t.Fatalf("expected session TTL applied, got %s", store.lastTTL)
	}

	loaded, err := repo.Find(ctx, state.SessionID.String())
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if loaded.SessionID != state.SessionID {
		t.Fatalf("session id mismatch: %s vs %s", loaded.SessionID, state.SessionID)
	}
	if loaded.Contact.Email != "ana@example.com" {
		t.Fatalf("contact not persisted: %+v", loaded.Contact)
	}
	if len(loaded.EnabledSteps) != StepCount() {
		t.Fatalf("enabled steps lost in round trip: %v", loaded.EnabledSteps)
	}
}

func TestRepositoryFindMissing(t *testing.T) {
	t.Parallel()

	repo := NewRepository(newStubSessionStore(), time.Minute)
	_, err := repo.Find(context.Background(), "does-not-exist")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestRepositoryDelete(t *testing.T) {
	t.Parallel()

	store := newStubSessionStore()
	repo := NewRepository(store, time.Minute)
	ctx := context.Background()

	state := NewState(landOnlyItinerary(), nil)
	if err := repo.Save(ctx, state); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Delete(ctx, state.SessionID.String()); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Find(ctx, state.SessionID.String()); pkgerrors.As(err) == nil {
		t.Fatal("expected deleted session to be gone")
	}
}
