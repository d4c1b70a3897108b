package schedules

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/voyageyou/voyage-backend/pkg/db/models"
	"github.com/voyageyou/voyage-backend/pkg/enums"
	pkgerrors "github.com/voyageyou/voyage-backend/pkg/errors"
	"github.com/voyageyou/voyage-backend/pkg/logger"
	"github.com/voyageyou/voyage-backend/pkg/types"
)

// Service manages the long-lived saved trips.
type Service interface {
	Save(ctx context.Context, it *types.Itinerary) (*models.SavedSchedule, error)
	Get(ctx context.Context, id uuid.UUID) (*models.SavedSchedule, error)
	List(ctx context.Context, status *enums.ScheduleStatus) ([]models.SavedSchedule, error)
	Delete(ctx context.Context, id uuid.UUID) error
	MarkBooked(ctx context.Context, id *uuid.UUID, destination, duration string, when time.Time) (bool, error)
}

type service struct {
	repo Repository
	logg *logger.Logger
}

func NewService(repo Repository, logg *logger.Logger) Service {
	return &service{repo: repo, logg: logg}
}

// Save snapshots an itinerary as a planned schedule.
func (s *service) Save(ctx context.Context, it *types.Itinerary) (*models.SavedSchedule, error) {
	if it == nil || strings.TrimSpace(it.Destination) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "itinerary with destination is required")
	}
	schedule := &models.SavedSchedule{
		Destination:   it.Destination,
		Duration:      it.Duration,
		Status:        enums.ScheduleStatusPlanned,
		Itinerary:     it,
		ActivityTags:  pq.StringArray(it.ActivityNames()),
		TotalCost:     it.TotalCost,
		BookableCost:  it.BookableCost,
		EstimatedCost: it.EstimatedCost,
	}
	if err := s.repo.Create(ctx, schedule); err != nil {
		return nil, err
	}
	s.logg.Info(s.logg.WithField(ctx, "schedule_id", schedule.ID.String()), "schedule saved")
	return schedule, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.SavedSchedule, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) List(ctx context.Context, status *enums.ScheduleStatus) ([]models.SavedSchedule, error) {
	return s.repo.List(ctx, status)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// MarkBooked records a completed checkout against the saved trip. It reports
// whether any record matched; the caller decides what a miss means.
func (s *service) MarkBooked(ctx context.Context, id *uuid.UUID, destination, duration string, when time.Time) (bool, error) {
	updated, err := s.repo.MarkBooked(ctx, id, destination, duration, when)
	if err != nil {
		return false, err
	}
	return updated > 0, nil
}
