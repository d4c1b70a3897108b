package wizard

import (
	"context"

	"github.com/google/uuid"

	"github.com/voyageyou/voyage-backend/pkg/enums"
	pkgerrors "github.com/voyageyou/voyage-backend/pkg/errors"
	"github.com/voyageyou/voyage-backend/pkg/logger"
	"github.com/voyageyou/voyage-backend/pkg/metrics"
	"github.com/voyageyou/voyage-backend/pkg/types"
)

// ItineraryProvider supplies the itinerary a session is checking out.
type ItineraryProvider interface {
	Get(ctx context.Context, itineraryID string) (*types.Itinerary, error)
}

// StepSummary is the per-step view returned alongside session state.
type StepSummary struct {
	Ordinal    int            `json:"ordinal"`
	ID         enums.StepID   `json:"id"`
	Label      string         `json:"label"`
	Enabled    bool           `json:"enabled"`
	Active     bool           `json:"active"`
	Validation StepValidation `json:"validation"`
}

// Snapshot bundles session state with the full step breakdown.
type Snapshot struct {
	State *State        `json:"state"`
	Steps []StepSummary `json:"steps"`
}

// Service drives the checkout wizard lifecycle. Every mutation persists the
// session back to the store before returning.
type Service interface {
	Start(ctx context.Context, itineraryID string, scheduleID *uuid.UUID) (*Snapshot, error)
	Get(ctx context.Context, sessionID string) (*Snapshot, error)
	Advance(ctx context.Context, sessionID string) (*Snapshot, error)
	Retreat(ctx context.Context, sessionID string) (*Snapshot, error)
	SetField(ctx context.Context, sessionID, section string, index int, field, value string) (*Snapshot, error)
	AddTraveler(ctx context.Context, sessionID string) (*Snapshot, error)
	RemoveTraveler(ctx context.Context, sessionID string, index int) (*Snapshot, error)
	Discard(ctx context.Context, sessionID string) error
}

type service struct {
	sessions    Repository
	itineraries ItineraryProvider
	metrics     *metrics.CheckoutMetrics
	logg        *logger.Logger
}

func NewService(sessions Repository, itineraries ItineraryProvider, m *metrics.CheckoutMetrics, logg *logger.Logger) Service {
	return &service{
		sessions:    sessions,
		itineraries: itineraries,
		metrics:     m,
		logg:        logg,
	}
}

func (s *service) Start(ctx context.Context, itineraryID string, scheduleID *uuid.UUID) (*Snapshot, error) {
	it, err := s.itineraries.Get(ctx, itineraryID)
	if err != nil {
		return nil, err
	}
	state := NewState(it, scheduleID)
	if err := s.sessions.Save(ctx, state); err != nil {
		return nil, err
	}
	ctx = s.logg.WithSessionID(ctx, state.SessionID.String())
	ctx = s.logg.WithItineraryID(ctx, itineraryID)
	s.logg.Info(ctx, "checkout session started")
	s.metrics.IncSessionStarted()
	return snapshot(state), nil
}

func (s *service) Get(ctx context.Context, sessionID string) (*Snapshot, error) {
	state, err := s.sessions.Find(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return snapshot(state), nil
}

func (s *service) Advance(ctx context.Context, sessionID string) (*Snapshot, error) {
	state, err := s.sessions.Find(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	from := state.ActiveStepID()
	moved, res := state.Next()
	if !res.Valid {
		s.metrics.IncStepBlocked(from.String())
		ctx = s.logg.WithStep(s.logg.WithSessionID(ctx, sessionID), from.String())
		s.logg.Info(ctx, "step advance blocked by validation")
		return snapshot(state), nil
	}
	if moved {
		if err := s.sessions.Save(ctx, state); err != nil {
			return nil, err
		}
		s.metrics.IncStepAdvance(from.String())
	}
	return snapshot(state), nil
}

func (s *service) Retreat(ctx context.Context, sessionID string) (*Snapshot, error) {
	state, err := s.sessions.Find(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if state.Previous() {
		if err := s.sessions.Save(ctx, state); err != nil {
			return nil, err
		}
	}
	return snapshot(state), nil
}

func (s *service) SetField(ctx context.Context, sessionID, section string, index int, field, value string) (*Snapshot, error) {
	state, err := s.sessions.Find(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := state.SetField(section, index, field, value); err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, state); err != nil {
		return nil, err
	}
	return snapshot(state), nil
}

func (s *service) AddTraveler(ctx context.Context, sessionID string) (*Snapshot, error) {
	state, err := s.sessions.Find(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	state.AddTraveler()
	if err := s.sessions.Save(ctx, state); err != nil {
		return nil, err
	}
	return snapshot(state), nil
}

func (s *service) RemoveTraveler(ctx context.Context, sessionID string, index int) (*Snapshot, error) {
	state, err := s.sessions.Find(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !state.RemoveTraveler(index) {
		if len(state.Travelers) <= 1 {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "at least one traveler is required")
		}
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "traveler index out of range")
	}
	if err := s.sessions.Save(ctx, state); err != nil {
		return nil, err
	}
	return snapshot(state), nil
}

func (s *service) Discard(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}

func snapshot(state *State) *Snapshot {
	steps := make([]StepSummary, 0, StepCount())
	for i := 1; i <= StepCount(); i++ {
		def, _ := StepAt(i)
		steps = append(steps, StepSummary{
			Ordinal:    i,
			ID:         def.ID,
			Label:      def.Label,
			Enabled:    state.StepEnabled(i),
			Active:     state.ActiveStep == i,
			Validation: state.ValidateStep(i),
		})
	}
	return &Snapshot{State: state, Steps: steps}
}
