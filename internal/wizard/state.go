package wizard

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/voyageyou/voyage-backend/pkg/enums"
	pkgerrors "github.com/voyageyou/voyage-backend/pkg/errors"
	"github.com/voyageyou/voyage-backend/pkg/types"
	"github.com/voyageyou/voyage-backend/pkg/validation"
)

// TravelerRecord is the identity/passport data collected per person.
type TravelerRecord struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	DateOfBirth    string `json:"date_of_birth"`
	PassportNumber string `json:"passport_number"`
	PassportExpiry string `json:"passport_expiry"`
	Nationality    string `json:"nationality"`
}

// FlightPreferences exists only when the flights step is enabled.
type FlightPreferences struct {
	SeatClass         string `json:"seat_class"`
	SeatNumber        string `json:"seat_number"`
	MealPreference    string `json:"meal_preference"`
	SpecialAssistance string `json:"special_assistance"`
}

// HotelPreferences exists only when the hotel step is enabled.
type HotelPreferences struct {
	RoomType          string `json:"room_type"`
	RoomNumber        string `json:"room_number"`
	BreakfastIncluded bool   `json:"breakfast_included"`
	LateCheckout      bool   `json:"late_checkout"`
	SpecialRequests   string `json:"special_requests"`
}

type Payment struct {
	CardNumber     string `json:"card_number"`
	CardholderName string `json:"cardholder_name"`
	ExpiryDate     string `json:"expiry_date"`
	CVV            string `json:"cvv"`
	BillingAddress string `json:"billing_address"`
}

type EmergencyContact struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
}

type Contact struct {
	Email            string            `json:"email"`
	Phone            string            `json:"phone"`
	EmergencyContact *EmergencyContact `json:"emergency_contact,omitempty"`
}

// State is the mutable per-session checkout data. EnabledSteps is computed
// once from the itinerary when the session starts and never changes for the
// session's lifetime; ActiveStep always points at an enabled ordinal.
type State struct {
	SessionID   uuid.UUID  `json:"session_id"`
	ItineraryID uuid.UUID  `json:"itinerary_id"`
	ScheduleID  *uuid.UUID `json:"schedule_id,omitempty"`
	Destination string     `json:"destination"`
	Duration    string     `json:"duration"`

	ActiveStep   int    `json:"active_step"`
	EnabledSteps []bool `json:"enabled_steps"`

	Travelers []TravelerRecord   `json:"travelers"`
	Flights   *FlightPreferences `json:"flight_preferences,omitempty"`
	Hotel     *HotelPreferences  `json:"hotel_preferences,omitempty"`
	Payment   Payment            `json:"payment"`
	Contact   Contact            `json:"contact"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewState seeds a session from the itinerary. The traveler list starts with
// one blank record and never drops below one; preference substates exist only
// for enabled steps.
func NewState(it *types.Itinerary, scheduleID *uuid.UUID) *State {
	now := time.Now().UTC()
	s := &State{
		SessionID:    uuid.New(),
		ItineraryID:  it.ID,
		ScheduleID:   scheduleID,
		Destination:  it.Destination,
		Duration:     it.Duration,
		EnabledSteps: make([]bool, len(stepTable)),
		Travelers:    []TravelerRecord{{}},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for i, def := range stepTable {
		s.EnabledSteps[i] = def.enabledFor(it)
	}
	if s.StepEnabled(flightsOrdinal()) {
		s.Flights = &FlightPreferences{}
	}
	if s.StepEnabled(hotelOrdinal()) {
		s.Hotel = &HotelPreferences{}
	}
	s.ActiveStep = s.firstEnabled()
	return s
}

// StepEnabled reports whether the 1-based ordinal is part of this session.
func (s *State) StepEnabled(ordinal int) bool {
	if ordinal < 1 || ordinal > len(s.EnabledSteps) {
		return false
	}
	return s.EnabledSteps[ordinal-1]
}

// TerminalStep is the last enabled ordinal.
func (s *State) TerminalStep() int {
	for i := len(s.EnabledSteps); i >= 1; i-- {
		if s.StepEnabled(i) {
			return i
		}
	}
	return 1
}

func (s *State) firstEnabled() int {
	for i := 1; i <= len(s.EnabledSteps); i++ {
		if s.StepEnabled(i) {
			return i
		}
	}
	return 1
}

// ActiveStepID resolves the current ordinal to its step identity.
func (s *State) ActiveStepID() enums.StepID {
	if def, ok := StepAt(s.ActiveStep); ok {
		return def.ID
	}
	return enums.StepContact
}

// ValidateStep runs the unified validation for a 1-based ordinal. Disabled
// and out-of-range steps validate trivially.
func (s *State) ValidateStep(ordinal int) StepValidation {
	def, ok := StepAt(ordinal)
	if !ok || !s.StepEnabled(ordinal) {
		return StepValidation{Step: def.ID, Valid: true}
	}
	res := StepValidation{Step: def.ID, Valid: true}
	if def.missing != nil {
		res.Missing = def.missing(s)
		res.Valid = len(res.Missing) == 0
	}
	if def.fields != nil {
		res.Fields = def.fields(s)
	}
	return res
}

// Next validates the active step and, on success, advances to the nearest
// enabled ordinal after it. At the terminal step a passing validation is a
// no-op. Repeated calls are idempotent in both the blocked and terminal
// cases.
func (s *State) Next() (bool, StepValidation) {
	res := s.ValidateStep(s.ActiveStep)
	if !res.Valid {
		return false, res
	}
	for i := s.ActiveStep + 1; i <= len(s.EnabledSteps); i++ {
		if s.StepEnabled(i) {
			s.ActiveStep = i
			s.touch()
			return true, res
		}
	}
	return false, res
}

// Previous moves to the nearest enabled ordinal before the active step.
// Moving backward never validates; at the first enabled step it is a no-op.
func (s *State) Previous() bool {
	for i := s.ActiveStep - 1; i >= 1; i-- {
		if s.StepEnabled(i) {
			s.ActiveStep = i
			s.touch()
			return true
		}
	}
	return false
}

// AddTraveler appends a blank record; always permitted.
func (s *State) AddTraveler() {
	s.Travelers = append(s.Travelers, TravelerRecord{})
	s.touch()
}

// RemoveTraveler drops the record at index unless it is the last one left.
func (s *State) RemoveTraveler(index int) bool {
	if len(s.Travelers) <= 1 {
		return false
	}
	if index < 0 || index >= len(s.Travelers) {
		return false
	}
	s.Travelers = append(s.Travelers[:index], s.Travelers[index+1:]...)
	s.touch()
	return true
}

// SetField updates one leaf field. index is only meaningful for the
// travelers section. Card number and expiry date receive live formatting.
func (s *State) SetField(section string, index int, field, value string) error {
	switch section {
	case "contact":
		return s.setContactField(field, value)
	case "travelers":
		return s.setTravelerField(index, field, value)
	case "flights":
		if s.Flights == nil {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "flights step is not part of this checkout")
		}
		return setFlightField(s.Flights, field, value, s)
	case "hotel":
		if s.Hotel == nil {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "hotel step is not part of this checkout")
		}
		return setHotelField(s.Hotel, field, value, s)
	case "payment":
		return s.setPaymentField(field, value)
	}
	return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown section %q", section))
}

func (s *State) setContactField(field, value string) error {
	switch field {
	case "email":
		s.Contact.Email = value
	case "phone":
		s.Contact.Phone = value
	case "emergency_name", "emergency_phone", "emergency_relationship":
		if s.Contact.EmergencyContact == nil {
			s.Contact.EmergencyContact = &EmergencyContact{}
		}
		switch field {
		case "emergency_name":
			s.Contact.EmergencyContact.Name = value
		case "emergency_phone":
			s.Contact.EmergencyContact.Phone = value
		case "emergency_relationship":
			s.Contact.EmergencyContact.Relationship = value
		}
	default:
		return unknownField("contact", field)
	}
	s.touch()
	return nil
}

func (s *State) setTravelerField(index int, field, value string) error {
	if index < 0 || index >= len(s.Travelers) {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("traveler index %d out of range", index))
	}
	t := &s.Travelers[index]
	switch field {
	case "first_name":
		t.FirstName = value
	case "last_name":
		t.LastName = value
	case "date_of_birth":
		t.DateOfBirth = value
	case "passport_number":
		t.PassportNumber = value
	case "passport_expiry":
		t.PassportExpiry = value
	case "nationality":
		t.Nationality = value
	default:
		return unknownField("travelers", field)
	}
	s.touch()
	return nil
}

func setFlightField(prefs *FlightPreferences, field, value string, s *State) error {
	switch field {
	case "seat_class":
		prefs.SeatClass = value
	case "seat_number":
		prefs.SeatNumber = value
	case "meal_preference":
		prefs.MealPreference = value
	case "special_assistance":
		prefs.SpecialAssistance = value
	default:
		return unknownField("flights", field)
	}
	s.touch()
	return nil
}

func setHotelField(prefs *HotelPreferences, field, value string, s *State) error {
	switch field {
	case "room_type":
		prefs.RoomType = value
	case "room_number":
		prefs.RoomNumber = value
	case "breakfast_included":
		prefs.BreakfastIncluded = parseBool(value)
	case "late_checkout":
		prefs.LateCheckout = parseBool(value)
	case "special_requests":
		prefs.SpecialRequests = value
	default:
		return unknownField("hotel", field)
	}
	s.touch()
	return nil
}

func (s *State) setPaymentField(field, value string) error {
	switch field {
	case "card_number":
		s.Payment.CardNumber = FormatCardNumber(value)
	case "cardholder_name":
		s.Payment.CardholderName = value
	case "expiry_date":
		s.Payment.ExpiryDate = FormatExpiryDate(value)
	case "cvv":
		s.Payment.CVV = value
	case "billing_address":
		s.Payment.BillingAddress = value
	default:
		return unknownField("payment", field)
	}
	s.touch()
	return nil
}

func unknownField(section, field string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown field %q in section %q", field, section))
}

func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "yes":
		return true
	}
	return false
}

func (s *State) touch() {
	s.UpdatedAt = time.Now().UTC()
}

func flightsOrdinal() int {
	for i, def := range stepTable {
		if def.ID == enums.StepFlights {
			return i + 1
		}
	}
	return 0
}

func hotelOrdinal() int {
	for i, def := range stepTable {
		if def.ID == enums.StepHotel {
			return i + 1
		}
	}
	return 0
}

func blank(value string) bool {
	return strings.TrimSpace(value) == ""
}

func missingContactFields(s *State) []string {
	var missing []string
	if blank(s.Contact.Email) {
		missing = append(missing, "email")
	}
	if blank(s.Contact.Phone) {
		missing = append(missing, "phone")
	}
	return missing
}

func contactFieldResults(s *State) map[string]validation.Result {
	return map[string]validation.Result{
		"email": validation.ValidateEmail(s.Contact.Email),
		"phone": validation.ValidatePhone(s.Contact.Phone),
	}
}

// A single incomplete traveler fails the whole step.
func missingTravelerFields(s *State) []string {
	var missing []string
	for i, t := range s.Travelers {
		fields := []struct {
			name  string
			value string
		}{
			{"first_name", t.FirstName},
			{"last_name", t.LastName},
			{"date_of_birth", t.DateOfBirth},
			{"passport_number", t.PassportNumber},
			{"passport_expiry", t.PassportExpiry},
			{"nationality", t.Nationality},
		}
		for _, f := range fields {
			if blank(f.value) {
				missing = append(missing, fmt.Sprintf("travelers[%d].%s", i, f.name))
			}
		}
	}
	return missing
}

func travelerFieldResults(s *State) map[string]validation.Result {
	results := map[string]validation.Result{}
	for i, t := range s.Travelers {
		prefix := fmt.Sprintf("travelers[%d].", i)
		results[prefix+"first_name"] = validation.ValidateName(t.FirstName)
		results[prefix+"last_name"] = validation.ValidateName(t.LastName)
		results[prefix+"date_of_birth"] = validation.ValidateDate(t.DateOfBirth)
		results[prefix+"passport_number"] = validation.ValidatePassportNumber(t.PassportNumber)
		results[prefix+"passport_expiry"] = validation.ValidateDate(t.PassportExpiry)
	}
	return results
}

func missingFlightFields(s *State) []string {
	var missing []string
	if s.Flights == nil || blank(s.Flights.SeatClass) {
		missing = append(missing, "seat_class")
	}
	if s.Flights == nil || blank(s.Flights.MealPreference) {
		missing = append(missing, "meal_preference")
	}
	return missing
}

func missingHotelFields(s *State) []string {
	if s.Hotel == nil || blank(s.Hotel.RoomType) {
		return []string{"room_type"}
	}
	return nil
}

func missingPaymentFields(s *State) []string {
	var missing []string
	fields := []struct {
		name  string
		value string
	}{
		{"card_number", s.Payment.CardNumber},
		{"cardholder_name", s.Payment.CardholderName},
		{"expiry_date", s.Payment.ExpiryDate},
		{"cvv", s.Payment.CVV},
		{"billing_address", s.Payment.BillingAddress},
	}
	for _, f := range fields {
		if blank(f.value) {
			missing = append(missing, f.name)
		}
	}
	return missing
}

func paymentFieldResults(s *State) map[string]validation.Result {
	return map[string]validation.Result{
		"card_number": validation.ValidateCreditCard(s.Payment.CardNumber),
		"expiry_date": validation.ValidateExpiryDate(s.Payment.ExpiryDate),
		"cvv":         validation.ValidateCVV(s.Payment.CVV),
	}
}
