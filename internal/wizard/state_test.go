package wizard

import (
	"testing"

	"github.com/google/uuid"

	"github.com/voyageyou/voyage-backend/pkg/enums"
	"github.com/voyageyou/voyage-backend/pkg/types"
)

func fullItinerary() *types.Itinerary {
	return &types.Itinerary{
		ID:          uuid.New(),
		Destination: "Lisbon",
		Duration:    "5 days",
		Flights: []types.Flight{
			{Airline: "TAP", FlightNumber: "TP123", Departure: "LHR", Arrival: "LIS"},
		},
		Hotel: &types.Hotel{Name: "Hotel Avenida", RoomType: "double"},
	}
}

func landOnlyItinerary() *types.Itinerary {
	return &types.Itinerary{
		ID:          uuid.New(),
		Destination: "Kyoto",
		Duration:    "3 days",
	}
}

func fillContact(s *State) {
	s.Contact.Email = "ana@example.com"
	s.Contact.Phone = "+351 912 345 678"
}

func fillTraveler(s *State, index int) {
	t := &s.Travelers[index]
	t.FirstName = "Ana"
	t.LastName = "Silva"
	t.DateOfBirth = "1990-04-12"
	t.PassportNumber = "AB123456"
	t.PassportExpiry = "2030-01-01"
	t.Nationality = "PT"
}

func fillPayment(s *State) {
	s.Payment.CardNumber = "4111 1111 1111 1111"
	s.Payment.CardholderName = "Ana Silva"
	s.Payment.ExpiryDate = "12/30"
	s.Payment.CVV = "123"
	s.Payment.BillingAddress = "Rua Augusta 1, Lisboa"
}

func TestNewStateEnablesStepsFromItinerary(t *testing.T) {
	t.Parallel()

	full := NewState(fullItinerary(), nil)
	if len(full.EnabledSteps) != StepCount() {
		t.Fatalf("expected %d step flags, got %d", StepCount(), len(full.EnabledSteps))
	}
	for i := 1; i <= StepCount(); i++ {
		if !full.StepEnabled(i) {
			t.Fatalf("expected step %d enabled for full itinerary", i)
		}
	}
	if full.Flights == nil || full.Hotel == nil {
		t.Fatal("expected preference substates for enabled steps")
	}

	land := NewState(landOnlyItinerary(), nil)
	if land.StepEnabled(3) || land.StepEnabled(4) {
		t.Fatal("expected flights and hotel steps disabled without segments")
	}
	if land.Flights != nil || land.Hotel != nil {
		t.Fatal("expected no preference substates for disabled steps")
	}
	if len(land.Travelers) != 1 {
		t.Fatalf("expected one seeded traveler, got %d", len(land.Travelers))
	}
	if land.ActiveStep != 1 {
		t.Fatalf("expected session to start at step 1, got %d", land.ActiveStep)
	}
}

func TestNextBlocksUntilStepComplete(t *testing.T) {
	t.Parallel()

	s := NewState(fullItinerary(), nil)
	moved, res := s.Next()
	if moved || res.Valid {
		t.Fatal("expected advance blocked on empty contact step")
	}
	if len(res.Missing) != 2 {
		t.Fatalf("expected email and phone missing, got %v", res.Missing)
	}
	if s.ActiveStep != 1 {
		t.Fatalf("active step moved while blocked: %d", s.ActiveStep)
	}

	// The gate checks presence only; a malformed value still passes.
	s.Contact.Email = "not-an-email"
	s.Contact.Phone = "x"
	moved, res = s.Next()
	if !moved || !res.Valid {
		t.Fatalf("expected advance once fields are present, got moved=%v res=%+v", moved, res)
	}
	if fields := s.ValidateStep(1).Fields; fields["email"].Valid {
		t.Fatal("expected live email validator to still flag the value")
	}
}

func TestNextSkipsDisabledSteps(t *testing.T) {
	t.Parallel()

	s := NewState(landOnlyItinerary(), nil)
	fillContact(s)
	if moved, _ := s.Next(); !moved {
		t.Fatal("expected advance past contact")
	}
	fillTraveler(s, 0)
	if moved, _ := s.Next(); !moved {
		t.Fatal("expected advance past travelers")
	}
	if got := s.ActiveStepID(); got != enums.StepPayment {
		t.Fatalf("expected to land on payment, got %s", got)
	}

	if !s.Previous() {
		t.Fatal("expected retreat from payment")
	}
	if got := s.ActiveStepID(); got != enums.StepTravelers {
		t.Fatalf("expected retreat to skip back to travelers, got %s", got)
	}
}

func TestBoundaryNavigationIsIdempotent(t *testing.T) {
	t.Parallel()

	s := NewState(landOnlyItinerary(), nil)
	if s.Previous() {
		t.Fatal("expected no-op retreat at first step")
	}
	if s.ActiveStep != 1 {
		t.Fatalf("retreat at boundary moved to %d", s.ActiveStep)
	}

	fillContact(s)
	fillTraveler(s, 0)
	fillPayment(s)
	for s.ActiveStep != s.TerminalStep() {
		if moved, res := s.Next(); !moved {
			t.Fatalf("advance stalled at step %d: %+v", s.ActiveStep, res)
		}
	}
	if got := s.ActiveStepID(); got != enums.StepSummary {
		t.Fatalf("expected terminal step summary, got %s", got)
	}
	for i := 0; i < 3; i++ {
		moved, res := s.Next()
		if moved || !res.Valid {
			t.Fatalf("expected valid no-op at terminal step, got moved=%v res=%+v", moved, res)
		}
	}
	if s.ActiveStep != s.TerminalStep() {
		t.Fatalf("terminal advance moved to %d", s.ActiveStep)
	}
}

func TestTravelerInvariant(t *testing.T) {
	t.Parallel()

	s := NewState(landOnlyItinerary(), nil)
	if s.RemoveTraveler(0) {
		t.Fatal("expected last traveler removal to be refused")
	}
	s.AddTraveler()
	s.AddTraveler()
	if len(s.Travelers) != 3 {
		t.Fatalf("expected 3 travelers, got %d", len(s.Travelers))
	}
	fillTraveler(s, 1)
	if !s.RemoveTraveler(0) {
		t.Fatal("expected removal with multiple travelers")
	}
	if s.Travelers[0].FirstName != "Ana" {
		t.Fatal("expected remaining travelers to shift down")
	}
	if s.RemoveTraveler(5) {
		t.Fatal("expected out-of-range removal to be refused")
	}
}

func TestTravelersStepRequiresEveryRecordComplete(t *testing.T) {
	t.Parallel()

	s := NewState(landOnlyItinerary(), nil)
	fillContact(s)
	s.Next()
	fillTraveler(s, 0)
	s.AddTraveler()
	moved, res := s.Next()
	if moved || res.Valid {
		t.Fatal("expected blank second traveler to block the step")
	}
	if len(res.Missing) != 6 {
		t.Fatalf("expected six missing fields for the blank record, got %v", res.Missing)
	}
	fillTraveler(s, 1)
	if moved, _ := s.Next(); !moved {
		t.Fatal("expected advance once every traveler is complete")
	}
}

func TestSetFieldFormatsPaymentInput(t *testing.T) {
	t.Parallel()

	s := NewState(landOnlyItinerary(), nil)
	if err := s.SetField("payment", 0, "card_number", "4111111111111111"); err != nil {
		t.Fatalf("set card number: %v", err)
	}
	if got := s.Payment.CardNumber; got != "4111 1111 1111 1111" {
		t.Fatalf("card number = %q", got)
	}
	if err := s.SetField("payment", 0, "expiry_date", "1225"); err != nil {
		t.Fatalf("set expiry: %v", err)
	}
	if got := s.Payment.ExpiryDate; got != "12/25" {
		t.Fatalf("expiry = %q", got)
	}
}

func TestSetFieldRejectsDisabledSections(t *testing.T) {
	t.Parallel()

	s := NewState(landOnlyItinerary(), nil)
	if err := s.SetField("flights", 0, "seat_class", "business"); err == nil {
		t.Fatal("expected error writing to disabled flights section")
	}
	if err := s.SetField("hotel", 0, "room_type", "suite"); err == nil {
		t.Fatal("expected error writing to disabled hotel section")
	}
	if err := s.SetField("contact", 0, "nope", "x"); err == nil {
		t.Fatal("expected error for unknown field")
	}
	if err := s.SetField("crew", 0, "x", "y"); err == nil {
		t.Fatal("expected error for unknown section")
	}
}

func TestHappyPathFullItinerary(t *testing.T) {
	t.Parallel()

	s := NewState(fullItinerary(), nil)
	fillContact(s)
	if moved, _ := s.Next(); !moved {
		t.Fatal("contact advance failed")
	}
	fillTraveler(s, 0)
	if moved, _ := s.Next(); !moved {
		t.Fatal("travelers advance failed")
	}

	moved, res := s.Next()
	if moved {
		t.Fatalf("expected flights step to block, got %+v", res)
	}
	s.Flights.SeatClass = enums.SeatClassEconomy.String()
	s.Flights.MealPreference = "vegetarian"
	if moved, _ := s.Next(); !moved {
		t.Fatal("flights advance failed")
	}

	s.Hotel.RoomType = "double"
	if moved, _ := s.Next(); !moved {
		t.Fatal("hotel advance failed")
	}

	fillPayment(s)
	if moved, _ := s.Next(); !moved {
		t.Fatal("payment advance failed")
	}
	if got := s.ActiveStepID(); got != enums.StepSummary {
		t.Fatalf("expected summary, got %s", got)
	}
	if res := s.ValidateStep(s.ActiveStep); !res.Valid {
		t.Fatalf("summary should always validate: %+v", res)
	}
}
