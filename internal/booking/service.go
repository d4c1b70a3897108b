package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/voyageyou/voyage-backend/internal/wizard"
	"github.com/voyageyou/voyage-backend/pkg/bookingapi"
	pkgerrors "github.com/voyageyou/voyage-backend/pkg/errors"
	"github.com/voyageyou/voyage-backend/pkg/logger"
	"github.com/voyageyou/voyage-backend/pkg/metrics"
)

// Receipt is what checkout hands back after a completed submission.
type Receipt struct {
	Reference       string     `json:"reference"`
	ConfirmedAt     time.Time  `json:"confirmed_at"`
	Destination     string     `json:"destination"`
	Duration        string     `json:"duration"`
	ScheduleMatched bool       `json:"schedule_matched"`
	ScheduleID      *uuid.UUID `json:"schedule_id,omitempty"`
}

// submitter is the outbound booking surface.
type submitter interface {
	Submit(ctx context.Context, payload bookingapi.BookingRequest) (*bookingapi.Confirmation, error)
}

// scheduleMarker flips the matching saved schedule to booked.
type scheduleMarker interface {
	MarkBooked(ctx context.Context, id *uuid.UUID, destination, duration string, when time.Time) (bool, error)
}

// itineraryClearer removes the staged itinerary once the trip is booked.
type itineraryClearer interface {
	Clear(ctx context.Context, itineraryID string) error
}

// Service runs the final submission: re-validate the whole wizard, post to
// the booking provider, then record the outcome against saved schedules.
type Service interface {
	Submit(ctx context.Context, sessionID string) (*Receipt, error)
}

type service struct {
	sessions    wizard.Repository
	provider    submitter
	schedules   scheduleMarker
	itineraries itineraryClearer
	metrics     *metrics.CheckoutMetrics
	logg        *logger.Logger
}

func NewService(sessions wizard.Repository, provider submitter, schedules scheduleMarker, itineraries itineraryClearer, m *metrics.CheckoutMetrics, logg *logger.Logger) Service {
	return &service{
		sessions:    sessions,
		provider:    provider,
		schedules:   schedules,
		itineraries: itineraries,
		metrics:     m,
		logg:        logg,
	}
}

func (s *service) Submit(ctx context.Context, sessionID string) (*Receipt, error) {
	started := time.Now()
	ctx = s.logg.WithSessionID(ctx, sessionID)

	state, err := s.sessions.Find(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if blocked := incompleteSteps(state); len(blocked) > 0 {
		s.metrics.IncSubmission("rejected")
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "checkout is not complete").
			WithDetails(map[string]any{"incomplete_steps": blocked})
	}

	confirmation, err := s.provider.Submit(ctx, buildRequest(state))
	if err != nil {
		s.metrics.IncSubmission("provider_error")
		s.logg.Error(ctx, "booking submission failed", err)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "submitting booking")
	}

	// The saved schedule update is part of the submission outcome: a miss is
	// tolerable, a storage failure is not.
	matched, err := s.schedules.MarkBooked(ctx, state.ScheduleID, state.Destination, state.Duration, confirmation.ConfirmedAt)
	if err != nil {
		s.metrics.IncSubmission("storage_error")
		s.logg.Error(ctx, "recording booking against saved schedule failed", err)
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "recording booking")
	}
	if !matched {
		s.logg.Warn(ctx, "no saved schedule matched the booked trip")
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		// The session will expire on its own; the booking already went through.
		s.logg.Warn(ctx, "could not remove completed checkout session")
	}
	if err := s.itineraries.Clear(ctx, state.ItineraryID.String()); err != nil {
		s.logg.Warn(ctx, "could not remove staged itinerary")
	}

	s.metrics.IncSubmission("success")
	s.metrics.ObserveSubmitDuration(time.Since(started))
	s.logg.Info(ctx, "booking submitted")

	return &Receipt{
		Reference:       confirmation.Reference,
		ConfirmedAt:     confirmation.ConfirmedAt,
		Destination:     state.Destination,
		Duration:        state.Duration,
		ScheduleMatched: matched,
		ScheduleID:      state.ScheduleID,
	}, nil
}

func incompleteSteps(state *wizard.State) []string {
	var blocked []string
	for i := 1; i <= wizard.StepCount(); i++ {
		if res := state.ValidateStep(i); !res.Valid {
			blocked = append(blocked, res.Step.String())
		}
	}
	return blocked
}

func buildRequest(state *wizard.State) bookingapi.BookingRequest {
	req := bookingapi.BookingRequest{
		SessionID:   state.SessionID,
		ItineraryID: state.ItineraryID,
		Destination: state.Destination,
		Duration:    state.Duration,
		Payment: bookingapi.Payment{
			CardNumber:     state.Payment.CardNumber,
			CardholderName: state.Payment.CardholderName,
			ExpiryDate:     state.Payment.ExpiryDate,
			CVV:            state.Payment.CVV,
			BillingAddress: state.Payment.BillingAddress,
		},
		Contact: bookingapi.Contact{
			Email: state.Contact.Email,
			Phone: state.Contact.Phone,
		},
	}
	if ec := state.Contact.EmergencyContact; ec != nil {
		req.Contact.EmergencyContact = &bookingapi.EmergencyContact{
			Name:         ec.Name,
			Phone:        ec.Phone,
			Relationship: ec.Relationship,
		}
	}
	for _, t := range state.Travelers {
		req.Travelers = append(req.Travelers, bookingapi.Traveler{
			FirstName:      t.FirstName,
			LastName:       t.LastName,
			DateOfBirth:    t.DateOfBirth,
			PassportNumber: t.PassportNumber,
			PassportExpiry: t.PassportExpiry,
			Nationality:    t.Nationality,
		})
	}
	if f := state.Flights; f != nil {
		req.Flights = &bookingapi.FlightPreferences{
			SeatClass:         f.SeatClass,
			SeatNumber:        f.SeatNumber,
			MealPreference:    f.MealPreference,
			SpecialAssistance: f.SpecialAssistance,
		}
	}
	if h := state.Hotel; h != nil {
		req.Hotel = &bookingapi.HotelPreferences{
			RoomType:          h.RoomType,
			RoomNumber:        h.RoomNumber,
			BreakfastIncluded: h.BreakfastIncluded,
			LateCheckout:      h.LateCheckout,
			SpecialRequests:   h.SpecialRequests,
		}
	}
	return req
}
