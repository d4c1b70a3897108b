package schedules

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/voyageyou/voyage-backend/internal/repo"
	"github.com/voyageyou/voyage-backend/pkg/db/models"
	"github.com/voyageyou/voyage-backend/pkg/enums"
	pkgerrors "github.com/voyageyou/voyage-backend/pkg/errors"
)

// Repository is the persistence surface for saved schedules.
type Repository interface {
	Create(ctx context.Context, schedule *models.SavedSchedule) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.SavedSchedule, error)
	List(ctx context.Context, status *enums.ScheduleStatus) ([]models.SavedSchedule, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// MarkBooked flips matching records to booked and stamps the checkout
	// date. When id is non-nil only that record is targeted; otherwise the
	// first destination/duration match wins. Returns the number of rows
	// updated.
	MarkBooked(ctx context.Context, id *uuid.UUID, destination, duration string, when time.Time) (int64, error)
}

type repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) Create(ctx context.Context, schedule *models.SavedSchedule) error {
	if err := r.DB(ctx).Create(schedule).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "creating saved schedule")
	}
	return nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.SavedSchedule, error) {
	var schedule models.SavedSchedule
	err := r.DB(ctx).Where("id = ?", id).First(&schedule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "saved schedule not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "loading saved schedule")
	}
	return &schedule, nil
}

func (r *repository) List(ctx context.Context, status *enums.ScheduleStatus) ([]models.SavedSchedule, error) {
	query := r.DB(ctx).Order("created_at DESC")
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	var out []models.SavedSchedule
	if err := query.Find(&out).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "listing saved schedules")
	}
	return out, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.DB(ctx).Where("id = ?", id).Delete(&models.SavedSchedule{})
	if res.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, res.Error, "deleting saved schedule")
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "saved schedule not found")
	}
	return nil
}

func (r *repository) MarkBooked(ctx context.Context, id *uuid.UUID, destination, duration string, when time.Time) (int64, error) {
	updates := map[string]any{
		"status":        enums.ScheduleStatusBooked,
		"checkout_date": when,
	}
	query := r.DB(ctx).Model(&models.SavedSchedule{})
	if id != nil {
		query = query.Where("id = ?", *id)
	} else {
		query = query.Where("destination = ? AND duration = ?", destination, duration)
	}
	res := query.Updates(updates)
	if res.Error != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeStorage, res.Error, "marking schedule booked")
	}
	return res.RowsAffected, nil
}
