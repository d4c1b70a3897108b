package enums

import "fmt"

// StepID names one stage of the checkout wizard.
type StepID string

const (
	StepContact   StepID = "contact"
	StepTravelers StepID = "travelers"
	StepFlights   StepID = "flights"
	StepHotel     StepID = "hotel"
	StepPayment   StepID = "payment"
	StepSummary   StepID = "summary"
)

var validStepIDs = []StepID{
	StepContact,
	StepTravelers,
	StepFlights,
	StepHotel,
	StepPayment,
	StepSummary,
}

// String implements fmt.Stringer.
func (s StepID) String() string {
	return string(s)
}

// IsValid reports whether the value is a known StepID.
func (s StepID) IsValid() bool {
	for _, candidate := range validStepIDs {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseStepID converts raw input into a StepID.
func ParseStepID(value string) (StepID, error) {
	for _, candidate := range validStepIDs {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid step id %q", value)
}
