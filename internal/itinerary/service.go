package itinerary

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/voyageyou/voyage-backend/pkg/errors"
	"github.com/voyageyou/voyage-backend/pkg/redis"
	"github.com/voyageyou/voyage-backend/pkg/types"
)

// itineraryStore is the subset of the redis client this service relies on.
type itineraryStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	ItineraryKey(itineraryID string) string
}

// Service stages itineraries handed off by the planning flow so checkout
// can look them up by id. Staged itineraries expire on their own; checkout
// sessions hold a snapshot of what they need, so expiry mid-session is safe.
type Service interface {
	Put(ctx context.Context, it *types.Itinerary) (*types.Itinerary, error)
	Get(ctx context.Context, itineraryID string) (*types.Itinerary, error)
	Clear(ctx context.Context, itineraryID string) error
}

type service struct {
	store itineraryStore
	ttl   time.Duration
}

func NewService(store itineraryStore, ttl time.Duration) Service {
	return &service{store: store, ttl: ttl}
}

// Put validates and stages an itinerary. A zero id gets assigned here so the
// caller always receives the handle to check out with.
func (s *service) Put(ctx context.Context, it *types.Itinerary) (*types.Itinerary, error) {
	if it == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "itinerary is required")
	}
	if strings.TrimSpace(it.Destination) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "itinerary destination is required")
	}
	if it.ID == uuid.Nil {
		it.ID = uuid.New()
	}
	payload, err := json.Marshal(it)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding itinerary")
	}
	if err := s.store.Set(ctx, s.store.ItineraryKey(it.ID.String()), payload, s.ttl); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "staging itinerary")
	}
	return it, nil
}

func (s *service) Get(ctx context.Context, itineraryID string) (*types.Itinerary, error) {
	raw, err := s.store.Get(ctx, s.store.ItineraryKey(itineraryID))
	if err != nil {
		if redis.IsNil(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "itinerary not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading itinerary")
	}
	var it types.Itinerary
	if err := json.Unmarshal([]byte(raw), &it); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decoding itinerary")
	}
	return &it, nil
}

func (s *service) Clear(ctx context.Context, itineraryID string) error {
	if err := s.store.Del(ctx, s.store.ItineraryKey(itineraryID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "removing itinerary")
	}
	return nil
}
