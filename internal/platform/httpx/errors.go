package httpx

import (
	"errors"
	"net/http"

	"github.com/khata-app/khata-server/internal/shared"
)

// RespondError maps domain errors onto the response envelope. Cross-owner
// access surfaces as 404, indistinguishable from a missing record.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		Fail(w, http.StatusNotFound, "Not found")
	case errors.Is(err, shared.ErrValidation):
		Fail(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, shared.ErrConflict):
		Fail(w, http.StatusConflict, err.Error())
	case errors.Is(err, shared.ErrUnauthorized):
		Fail(w, http.StatusUnauthorized, "Unauthorized")
	default:
		Fail(w, http.StatusInternalServerError, "Internal error")
	}
}
