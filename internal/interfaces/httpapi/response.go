package httpapi

import (
	"errors"
	"net/http"

	"github.com/bytedance/sonic"

	"github.com/aymenbt/fantasy-ligue/internal/usecase"
)

const errorDomain = "fantasy-ligue"

// googleResponseEnvelope follows the Google JSON style guide envelope:
// exactly one of Data or Error is set.
type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status,omitempty"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain  string `json:"domain,omitempty"`
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, statusCode int, body googleResponseEnvelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(body)
}

func writeSuccess(w http.ResponseWriter, statusCode int, data any) {
	writeJSON(w, statusCode, googleResponseEnvelope{
		APIVersion: "2.0",
		Data:       data,
	})
}

func writeError(w http.ResponseWriter, statusCode int, status, reason, message string) {
	writeJSON(w, statusCode, googleResponseEnvelope{
		APIVersion: "2.0",
		Error: &googleErrorBody{
			Code:    statusCode,
			Message: message,
			Status:  status,
			Errors: []googleErrorItem{
				{
					Domain:  errorDomain,
					Reason:  reason,
					Message: message,
				},
			},
		},
	})
}

func writeMappedError(w http.ResponseWriter, err error) {
	statusCode, status, reason := mapError(err)
	writeError(w, statusCode, status, reason, err.Error())
}

// mapError translates usecase sentinel errors into HTTP status codes plus
// Google-style status/reason strings. Unknown errors map to 500.
func mapError(err error) (statusCode int, status, reason string) {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return http.StatusBadRequest, "INVALID_ARGUMENT", "invalidInput"
	case errors.Is(err, usecase.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "notFound"
	case errors.Is(err, usecase.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHENTICATED", "unauthorized"
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		return http.StatusServiceUnavailable, "UNAVAILABLE", "dependencyUnavailable"
	default:
		return http.StatusInternalServerError, "INTERNAL", "internalError"
	}
}
