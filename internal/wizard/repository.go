package wizard

import (
	"context"
	"encoding/json"
	"time"

	pkgerrors "github.com/voyageyou/voyage-backend/pkg/errors"
	"github.com/voyageyou/voyage-backend/pkg/redis"
)

// sessionStore is the subset of the redis client the repository relies on.
type sessionStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	SessionKey(sessionID string) string
}

// Repository persists wizard sessions as JSON blobs with a rolling TTL.
// An expired session is indistinguishable from a deleted one.
type Repository interface {
	Save(ctx context.Context, state *State) error
	Find(ctx context.Context, sessionID string) (*State, error)
	Delete(ctx context.Context, sessionID string) error
}

type repository struct {
	store sessionStore
	ttl   time.Duration
}

func NewRepository(store sessionStore, ttl time.Duration) Repository {
	return &repository{store: store, ttl: ttl}
}

func (r *repository) Save(ctx context.Context, state *State) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding checkout session")
	}
	key := r.store.SessionKey(state.SessionID.String())
	if err := r.store.Set(ctx, key, payload, r.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "storing checkout session")
	}
	return nil
}

func (r *repository) Find(ctx context.Context, sessionID string) (*State, error) {
	raw, err := r.store.Get(ctx, r.store.SessionKey(sessionID))
	if err != nil {
		if redis.IsNil(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "checkout session not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading checkout session")
	}
	var state State
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decoding checkout session")
	}
	return &state, nil
}

func (r *repository) Delete(ctx context.Context, sessionID string) error {
	if err := r.store.Del(ctx, r.store.SessionKey(sessionID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "removing checkout session")
	}
	return nil
}
