package enums

import "fmt"

// SeatClass is the cabin class a traveler selects on the flights step.
type SeatClass string

const (
	SeatClassEconomy        SeatClass = "economy"
	SeatClassPremiumEconomy SeatClass = "premium_economy"
	SeatClassBusiness       SeatClass = "business"
	SeatClassFirst          SeatClass = "first"
)

var validSeatClasses = []SeatClass{
	SeatClassEconomy,
	SeatClassPremiumEconomy,
	SeatClassBusiness,
	SeatClassFirst,
}

// String implements fmt.Stringer.
func (s SeatClass) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SeatClass.
func (s SeatClass) IsValid() bool {
	for _, candidate := range validSeatClasses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSeatClass converts raw input into a SeatClass.
func ParseSeatClass(value string) (SeatClass, error) {
	for _, candidate := range validSeatClasses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid seat class %q", value)
}
