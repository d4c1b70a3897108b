package wizard

import (
	"github.com/voyageyou/voyage-backend/pkg/enums"
	"github.com/voyageyou/voyage-backend/pkg/types"
	"github.com/voyageyou/voyage-backend/pkg/validation"
)

// StepDef describes one stage of the checkout flow. The wizard is a single
// configurable table: conditional steps carry an enablement predicate over
// the itinerary instead of living in a separate flow variant.
type StepDef struct {
	ID      enums.StepID
	Label   string
	enabled func(it *types.Itinerary) bool
	missing func(s *State) []string
	fields  func(s *State) map[string]validation.Result
}

// Ordinals are 1-based positions into this table.
var stepTable = []StepDef{
	{
		ID:      enums.StepContact,
		Label:   "Contact",
		missing: missingContactFields,
		fields:  contactFieldResults,
	},
	{
		ID:      enums.StepTravelers,
		Label:   "Travelers",
		missing: missingTravelerFields,
		fields:  travelerFieldResults,
	},
	{
		ID:      enums.StepFlights,
		Label:   "Flights",
		enabled: func(it *types.Itinerary) bool { return it.HasFlights() },
		missing: missingFlightFields,
	},
	{
		ID:      enums.StepHotel,
		Label:   "Hotel",
		enabled: func(it *types.Itinerary) bool { return it.HasHotel() },
		missing: missingHotelFields,
	},
	{
		ID:      enums.StepPayment,
		Label:   "Payment",
		missing: missingPaymentFields,
		fields:  paymentFieldResults,
	},
	{
		ID:    enums.StepSummary,
		Label: "Summary",
	},
}

// StepCount is the fixed number of wizard stages.
func StepCount() int {
	return len(stepTable)
}

// StepAt returns the definition for a 1-based ordinal.
func StepAt(ordinal int) (StepDef, bool) {
	if ordinal < 1 || ordinal > len(stepTable) {
		return StepDef{}, false
	}
	return stepTable[ordinal-1], true
}

func (d StepDef) enabledFor(it *types.Itinerary) bool {
	if d.enabled == nil {
		return true
	}
	return d.enabled(it)
}

// StepValidation is the unified validation result for one step: the coarse
// missing-field list drives the navigation gate, while Fields carries the
// advisory live-validator output for the same data. Valid derives from
// Missing alone, so a malformed but non-empty field never blocks Next.
type StepValidation struct {
	Step    enums.StepID                 `json:"step"`
	Valid   bool                         `json:"valid"`
	Missing []string                     `json:"missing_fields,omitempty"`
	Fields  map[string]validation.Result `json:"fields,omitempty"`
}
