// Package bookingapi is the thin HTTP client for the external booking
// confirmation service. Submission is single-shot: no retries and no
// backoff, callers surface failures to the user who may resubmit.
package bookingapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/voyageyou/voyage-backend/pkg/config"
)

const submitPath = "/api/v1/bookings"

// Traveler mirrors one traveler record in the submission payload.
type Traveler struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	DateOfBirth    string `json:"date_of_birth"`
	PassportNumber string `json:"passport_number"`
	PassportExpiry string `json:"passport_expiry"`
	Nationality    string `json:"nationality"`
}

// FlightPreferences carries the flight step selections when present.
type FlightPreferences struct {
	SeatClass         string `json:"seat_class"`
	SeatNumber        string `json:"seat_number,omitempty"`
	MealPreference    string `json:"meal_preference"`
	SpecialAssistance string `json:"special_assistance,omitempty"`
}

// HotelPreferences carries the hotel step selections when present.
type HotelPreferences struct {
	RoomType          string `json:"room_type"`
	RoomNumber        string `json:"room_number,omitempty"`
	BreakfastIncluded bool   `json:"breakfast_included"`
	LateCheckout      bool   `json:"late_checkout"`
	SpecialRequests   string `json:"special_requests,omitempty"`
}

// Payment carries the card details collected on the payment step.
type Payment struct {
	CardNumber     string `json:"card_number"`
	CardholderName string `json:"cardholder_name"`
	ExpiryDate     string `json:"expiry_date"`
	CVV            string `json:"cvv"`
	BillingAddress string `json:"billing_address"`
}

// Contact carries the reachability details for the booking.
type Contact struct {
	Email            string            `json:"email"`
	Phone            string            `json:"phone"`
	EmergencyContact *EmergencyContact `json:"emergency_contact,omitempty"`
}

type EmergencyContact struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
}

// BookingRequest is the full submission payload.
type BookingRequest struct {
	SessionID   uuid.UUID          `json:"session_id"`
	ItineraryID uuid.UUID          `json:"itinerary_id"`
	Destination string             `json:"destination"`
	Duration    string             `json:"duration"`
	Travelers   []Traveler         `json:"travelers"`
	Flights     *FlightPreferences `json:"flight_preferences,omitempty"`
	Hotel       *HotelPreferences  `json:"hotel_preferences,omitempty"`
	Payment     Payment            `json:"payment"`
	Contact     Contact            `json:"contact"`
}

// Confirmation is the booking service's acknowledgement.
type Confirmation struct {
	Reference   string    `json:"reference"`
	ConfirmedAt time.Time `json:"confirmed_at"`
}

// Client posts booking submissions to the external service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New builds a booking client from configuration.
func New(cfg config.BookingConfig) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("booking base url is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    base,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// Submit posts the booking payload. Any non-2xx response is an error.
func (c *Client) Submit(ctx context.Context, payload BookingRequest) (*Confirmation, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding booking payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+submitPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building booking request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("posting booking: %w", err)
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("booking service responded %d", resp.StatusCode)
	}

	var confirmation Confirmation
	if err := json.NewDecoder(resp.Body).Decode(&confirmation); err != nil {
		return nil, fmt.Errorf("decoding booking confirmation: %w", err)
	}
	if confirmation.ConfirmedAt.IsZero() {
		confirmation.ConfirmedAt = time.Now().UTC()
	}
	return &confirmation, nil
}
