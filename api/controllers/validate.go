package controllers

import (
	"net/http"

	"github.com/voyageyou/voyage-backend/api/responses"
	"github.com/voyageyou/voyage-backend/api/validators"
	pkgerrors "github.com/voyageyou/voyage-backend/pkg/errors"
	"github.com/voyageyou/voyage-backend/pkg/logger"
	"github.com/voyageyou/voyage-backend/pkg/validation"
)

func PublicPing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"message": "pong"})
	}
}

type validateFieldBody struct {
	Field string `json:"field" validate:"required"`
	Value string `json:"value"`
}

var fieldValidators = map[string]func(string) validation.Result{
	"email":           validation.ValidateEmail,
	"phone":           validation.ValidatePhone,
	"name":            validation.ValidateName,
	"credit_card":     validation.ValidateCreditCard,
	"expiry_date":     validation.ValidateExpiryDate,
	"cvv":             validation.ValidateCVV,
	"passport_number": validation.ValidatePassportNumber,
	"date":            validation.ValidateDate,
}

// ValidateField runs one live validator as the user types. The result is
// advisory only: step advancement checks presence, not format.
func ValidateField(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body validateFieldBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		fn, ok := fieldValidators[body.Field]
		if !ok {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "unknown field validator").
					WithDetails(map[string]any{"field": body.Field}))
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"field":  body.Field,
			"result": fn(body.Value),
		})
	}
}
