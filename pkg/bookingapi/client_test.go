package bookingapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/voyageyou/voyage-backend/pkg/config"
)

func TestSubmitSuccess(t *testing.T) {
	t.Parallel()

	var received BookingRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/bookings" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(Confirmation{Reference: "BK-1234", ConfirmedAt: time.Now().UTC()})
	}))
	defer srv.Close()

	client, err := New(config.BookingConfig{BaseURL: srv.URL, Timeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	payload := BookingRequest{
		SessionID:   uuid.New(),
		Destination: "Lisbon",
		Duration:    "5 days",
		Travelers:   []Traveler{{FirstName: "Ana", LastName: "Silva"}},
		Contact:     Contact{Email: "a@b.com", Phone: "555-1111"},
	}

	confirmation, err := client.Submit(context.Background(), payload)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if confirmation.Reference != "BK-1234" {
		t.Fatalf("unexpected reference %q", confirmation.Reference)
	}
	if received.Destination != "Lisbon" || len(received.Travelers) != 1 {
		t.Fatalf("payload not forwarded: %+v", received)
	}
}

func TestSubmitNon2xxIsError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	client, err := New(config.BookingConfig{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	if _, err := client.Submit(context.Background(), BookingRequest{}); err == nil {
		t.Fatal("expected error for 502 response")
	}
}

func TestNewRequiresBaseURL(t *testing.T) {
	t.Parallel()

	if _, err := New(config.BookingConfig{}); err == nil {
		t.Fatal("expected error for empty base url")
	}
}
