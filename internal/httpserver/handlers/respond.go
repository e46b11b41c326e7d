package handlers

import (
	"errors"
	"net/http"

	"aesgcm/aes"
	"aesgcm/gcm"
	"aesgcm/internal/services/vector"
	"aesgcm/internal/util"

	"github.com/goccy/go-json"
)

func respondJSON(w http.ResponseWriter, v interface{}) {
	respondStatus(w, http.StatusOK, v)
}

func respondStatus(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func decodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// statusFor maps library errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, gcm.ErrAuthenticationFailure):
		return http.StatusUnprocessableEntity
	case errors.Is(err, aes.ErrInvalidKeyLength),
		errors.Is(err, aes.ErrInvalidBlockLength),
		errors.Is(err, gcm.ErrUnsupportedIVLength),
		errors.Is(err, gcm.ErrInvalidTagLength),
		errors.Is(err, vector.ErrInvalidParams),
		errors.Is(err, vector.ErrUnsupportedAlgorithm),
		errors.Is(err, util.ErrInvalidHex):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondError(w http.ResponseWriter, err error) {
	code := statusFor(err)
	msg := err.Error()
	switch code {
	case http.StatusUnprocessableEntity:
		msg = gcm.ErrAuthenticationFailure.Error()
	case http.StatusInternalServerError:
		msg = http.StatusText(code)
	}
	http.Error(w, msg, code)
}
