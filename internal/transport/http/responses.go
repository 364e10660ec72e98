package httptransport

import (
	"errors"
	"net/http"

	"github.com/elsaedy55/Revo-backend/internal/record"
	"github.com/elsaedy55/Revo-backend/pkg/platform/httputil"
)

// successResponse is the envelope every happy path uses, matching the shape
// clients of the original service already parse.
type successResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// validationResponse is the aggregated 400 body for failed submissions.
type validationResponse struct {
	Success bool                `json:"success"`
	Errors  []record.FieldError `json:"errors"`
}

func writeSuccess(w http.ResponseWriter, status int, message string, data any) {
	httputil.WriteJSON(w, status, successResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// writeServiceError renders validation failures as the aggregated envelope
// and everything else through the canonical code-to-status mapping. devMode
// keeps internal error descriptions visible during development.
func writeServiceError(w http.ResponseWriter, err error, devMode bool) {
	var ve record.ValidationError
	if errors.As(err, &ve) {
		httputil.WriteJSON(w, http.StatusBadRequest, validationResponse{
			Success: false,
			Errors:  ve.Result.Errors,
		})
		return
	}

	if devMode {
		httputil.WriteErrorVerbose(w, err)
		return
	}
	httputil.WriteError(w, err)
}
