package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/sbilibin2017/gw-password-history/internal/logger"
)

var (
	errInvalidBody   = errors.New("invalid request body")
	errMissingFields = errors.New("required fields missing or malformed")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// decodeValidate decodes a JSON body into dst and checks its validate tags.
func decodeValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logger.Log.Infow("failed to decode request body", "uri", r.RequestURI, "err", err)
		return errInvalidBody
	}
	if err := validate.Struct(dst); err != nil {
		logger.Log.Infow("request validation failed", "uri", r.RequestURI, "err", err)
		return errMissingFields
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
