package httpx

import (
	"errors"
	"net/http"

	"github.com/surgiflow/surgiflow/internal/shared"
)

// RespondError maps engine errors to HTTP responses using RFC7807.
// Store failures are reported as 502 because the durable store is an
// external collaborator; the engine never retries on the caller's behalf.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, shared.ErrValidation):
		Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case errors.Is(err, shared.ErrStore):
		Problem(w, http.StatusBadGateway, "Store Failure", err.Error())
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
