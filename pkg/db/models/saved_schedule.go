package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/voyageyou/voyage-backend/pkg/enums"
	"github.com/voyageyou/voyage-backend/pkg/types"
)

// SavedSchedule is a trip the user has planned, kept in the long-lived store.
// It outlives the transient in-progress itinerary: checkout marks the matching
// record booked instead of creating a new one.
type SavedSchedule struct {
	ID            uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Destination   string               `gorm:"column:destination;not null"`
	Duration      string               `gorm:"column:duration;not null"`
	Status        enums.ScheduleStatus `gorm:"column:status;not null;default:'planned'"`
	Itinerary     *types.Itinerary     `gorm:"column:itinerary;type:jsonb;serializer:json"`
	ActivityTags  pq.StringArray       `gorm:"column:activity_tags;type:text[]"`
	TotalCost     decimal.Decimal      `gorm:"column:total_cost;type:numeric(12,2);not null;default:0"`
	BookableCost  decimal.Decimal      `gorm:"column:bookable_cost;type:numeric(12,2);not null;default:0"`
	EstimatedCost decimal.Decimal      `gorm:"column:estimated_cost;type:numeric(12,2);not null;default:0"`
	CheckoutDate  *time.Time           `gorm:"column:checkout_date"`
	CreatedAt     time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName keeps the table name explicit.
func (SavedSchedule) TableName() string {
	return "saved_schedules"
}
