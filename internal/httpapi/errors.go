package httpapi

import (
	"errors"
	"net/http"

	"github.com/aarlazuardi/erp-ledger/internal/errs"
)

// errorResponse is the standard error payload for the API.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeErr(w http.ResponseWriter, status int, msg, code string) {
	toJSON(w, status, errorResponse{Error: msg, Code: code})
}

func badRequest(w http.ResponseWriter, msg string) { writeErr(w, http.StatusBadRequest, msg, "") }
func notFound(w http.ResponseWriter)               { writeErr(w, http.StatusNotFound, "not_found", "not_found") }

// respondErr maps domain errors onto the API's status contract:
// invalid input 422, missing record 404, static-data bug 500.
func respondErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		notFound(w)
	case errors.Is(err, errs.ErrInvalid):
		writeErr(w, http.StatusUnprocessableEntity, err.Error(), validationCode(err))
	case errors.Is(err, errs.ErrConfig):
		writeErr(w, http.StatusInternalServerError, err.Error(), "configuration_error")
	default:
		writeErr(w, http.StatusInternalServerError, "internal_error", "internal_error")
	}
}

// validationCode normalizes validation errors into a stable machine code.
func validationCode(err error) string {
	switch {
	case errors.Is(err, errs.ErrNoLines):
		return "no_lines"
	case errors.Is(err, errs.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, errs.ErrOneSidePerLine):
		return "one_side_per_line"
	case errors.Is(err, errs.ErrUnbalanced):
		return "unbalanced_entry"
	case errors.Is(err, errs.ErrUnknownAccount):
		return "unknown_account"
	case errors.Is(err, errs.ErrBadDate):
		return "bad_date"
	default:
		return "validation_error"
	}
}
