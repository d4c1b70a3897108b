package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	bookingsvc "github.com/voyageyou/voyage-backend/internal/booking"
	"github.com/voyageyou/voyage-backend/internal/wizard"
	pkgerrors "github.com/voyageyou/voyage-backend/pkg/errors"
	"github.com/voyageyou/voyage-backend/pkg/logger"
	"github.com/voyageyou/voyage-backend/pkg/types"
)

type fakeWizardService struct {
	snapshot   *wizard.Snapshot
	err        error
	lastMethod string
	lastField  string
}

func (f *fakeWizardService) Start(context.Context, string, *uuid.UUID) (*wizard.Snapshot, error) {
	f.lastMethod = "start"
	return f.snapshot, f.err
}

func (f *fakeWizardService) Get(context.Context, string) (*wizard.Snapshot, error) {
	f.lastMethod = "get"
	return f.snapshot, f.err
}

func (f *fakeWizardService) Advance(context.Context, string) (*wizard.Snapshot, error) {
	f.lastMethod = "advance"
	return f.snapshot, f.err
}

func (f *fakeWizardService) Retreat(context.Context, string) (*wizard.Snapshot, error) {
	f.lastMethod = "retreat"
	return f.snapshot, f.err
}

func (f *fakeWizardService) SetField(_ context.Context, _ string, _ string, _ int, field, _ string) (*wizard.Snapshot, error) {
	f.lastMethod = "set_field"
	f.lastField = field
	return f.snapshot, f.err
}

func (f *fakeWizardService) AddTraveler(context.Context, string) (*wizard.Snapshot, error) {
	f.lastMethod = "add_traveler"
	return f.snapshot, f.err
}

func (f *fakeWizardService) RemoveTraveler(context.Context, string, int) (*wizard.Snapshot, error) {
	f.lastMethod = "remove_traveler"
	return f.snapshot, f.err
}

func (f *fakeWizardService) Discard(context.Context, string) error {
	f.lastMethod = "discard"
	return f.err
}

type fakeBookingService struct {
	receipt *bookingsvc.Receipt
	err     error
}

func (f *fakeBookingService) Submit(context.Context, string) (*bookingsvc.Receipt, error) {
	return f.receipt, f.err
}

func controllerLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "controllers-test"})
}

func sessionSnapshot() *wizard.Snapshot {
	state := wizard.NewState(&types.Itinerary{ID: uuid.New(), Destination: "Lisbon", Duration: "5 days"}, nil)
	return &wizard.Snapshot{State: state}
}

func withSessionParam(req *http.Request, sessionID string) *http.Request {
	rc := chi.NewRouteContext()
	rc.URLParams.Add("sessionID", sessionID)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rc))
}

func TestStartCheckoutSession(t *testing.T) {
	svc := &fakeWizardService{snapshot: sessionSnapshot()}
	handler := StartCheckoutSession(svc, controllerLogger())

	body := strings.NewReader(`{"itinerary_id":"` + uuid.NewString() + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout/sessions", body)
	resp := httptest.NewRecorder()
	handler(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.lastMethod != "start" {
		t.Fatalf("start not invoked, got %q", svc.lastMethod)
	}
}

func TestStartCheckoutSessionRejectsBadBody(t *testing.T) {
	svc := &fakeWizardService{snapshot: sessionSnapshot()}
	handler := StartCheckoutSession(svc, controllerLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout/sessions", strings.NewReader(`{"unknown":1}`))
	resp := httptest.NewRecorder()
	handler(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if svc.lastMethod != "" {
		t.Fatalf("service should not run on invalid body")
	}
}

func TestSetCheckoutFieldValidatesSection(t *testing.T) {
	svc := &fakeWizardService{snapshot: sessionSnapshot()}
	handler := SetCheckoutField(svc, controllerLogger())

	body := strings.NewReader(`{"section":"crew","field":"x","value":"y"}`)
	req := withSessionParam(httptest.NewRequest(http.MethodPatch, "/fields", body), "abc")
	resp := httptest.NewRecorder()
	handler(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestSetCheckoutFieldForwardsPayload(t *testing.T) {
	svc := &fakeWizardService{snapshot: sessionSnapshot()}
	handler := SetCheckoutField(svc, controllerLogger())

	body := strings.NewReader(`{"section":"payment","field":"card_number","value":"4111111111111111"}`)
	req := withSessionParam(httptest.NewRequest(http.MethodPatch, "/fields", body), "abc")
	resp := httptest.NewRecorder()
	handler(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.lastField != "card_number" {
		t.Fatalf("field not forwarded: %q", svc.lastField)
	}
}

func TestRemoveCheckoutTravelerValidatesIndex(t *testing.T) {
	svc := &fakeWizardService{snapshot: sessionSnapshot()}
	handler := RemoveCheckoutTraveler(svc, controllerLogger())

	rc := chi.NewRouteContext()
	rc.URLParams.Add("sessionID", "abc")
	rc.URLParams.Add("index", "not-a-number")
	req := httptest.NewRequest(http.MethodDelete, "/travelers/not-a-number", nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rc))
	resp := httptest.NewRecorder()
	handler(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if svc.lastMethod != "" {
		t.Fatalf("service should not run on invalid index")
	}
}

func TestSubmitCheckoutReturnsReceipt(t *testing.T) {
	svc := &fakeBookingService{receipt: &bookingsvc.Receipt{Reference: "VY-2026-0042", ScheduleMatched: true}}
	handler := SubmitCheckout(svc, controllerLogger())

	req := withSessionParam(httptest.NewRequest(http.MethodPost, "/submit", nil), "abc")
	resp := httptest.NewRecorder()
	handler(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	var payload struct {
		Data bookingsvc.Receipt `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Data.Reference != "VY-2026-0042" {
		t.Fatalf("unexpected receipt: %+v", payload.Data)
	}
}

func TestSubmitCheckoutMapsStateConflict(t *testing.T) {
	svc := &fakeBookingService{err: pkgerrors.New(pkgerrors.CodeStateConflict, "checkout is not complete")}
	handler := SubmitCheckout(svc, controllerLogger())

	req := withSessionParam(httptest.NewRequest(http.MethodPost, "/submit", nil), "abc")
	resp := httptest.NewRecorder()
	handler(resp, req)

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", resp.Code)
	}
}
