package types

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Itinerary is the read-only trip description produced by the planning
// service. The checkout flow only inspects it to decide which steps apply
// and to snapshot destination/cost data; it never mutates one.
type Itinerary struct {
	ID            uuid.UUID       `json:"id"`
	Destination   string          `json:"destination"`
	Duration      string          `json:"duration"`
	Flights       []Flight        `json:"flights"`
	Hotel         *Hotel          `json:"hotel,omitempty"`
	Schedule      []DayPlan       `json:"schedule"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	BookableCost  decimal.Decimal `json:"bookable_cost"`
	EstimatedCost decimal.Decimal `json:"estimated_cost"`
}

type Flight struct {
	Airline       string          `json:"airline"`
	FlightNumber  string          `json:"flight_number"`
	Departure     string          `json:"departure"`
	Arrival       string          `json:"arrival"`
	DepartureTime string          `json:"departure_time"`
	ArrivalTime   string          `json:"arrival_time"`
	Price         decimal.Decimal `json:"price"`
}

type Hotel struct {
	Name          string          `json:"name"`
	Address       string          `json:"address"`
	CheckIn       string          `json:"check_in"`
	CheckOut      string          `json:"check_out"`
	RoomType      string          `json:"room_type"`
	PricePerNight decimal.Decimal `json:"price_per_night"`
}

type DayPlan struct {
	Day        int        `json:"day"`
	Date       string     `json:"date"`
	Activities []Activity `json:"activities"`
}

type Activity struct {
	Time        string          `json:"time"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
}

// HasFlights reports whether the trip includes flight segments.
func (i *Itinerary) HasFlights() bool {
	return i != nil && len(i.Flights) > 0
}

// HasHotel reports whether the trip includes a hotel booking.
func (i *Itinerary) HasHotel() bool {
	return i != nil && i.Hotel != nil && strings.TrimSpace(i.Hotel.Name) != ""
}

// HasActivities reports whether any scheduled day carries activities.
func (i *Itinerary) HasActivities() bool {
	if i == nil {
		return false
	}
	for _, day := range i.Schedule {
		if len(day.Activities) > 0 {
			return true
		}
	}
	return false
}

// ActivityNames flattens the schedule into the activity labels used for
// saved-schedule tagging.
func (i *Itinerary) ActivityNames() []string {
	if i == nil {
		return nil
	}
	var names []string
	for _, day := range i.Schedule {
		for _, act := range day.Activities {
			if name := strings.TrimSpace(act.Name); name != "" {
				names = append(names, name)
			}
		}
	}
	return names
}
