package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/genestial/miniqms/internal/domain"
)

// Envelope is the uniform response body for every API endpoint
type Envelope struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

func writeJSON(w http.ResponseWriter, statusCode int, status bool, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(Envelope{
		Status:  status,
		Message: message,
		Data:    data,
	})
}

func writeSuccess(w http.ResponseWriter, statusCode int, message string, data interface{}) {
	writeJSON(w, statusCode, true, message, data)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, false, message, nil)
}

// writeUseCaseError maps a use case error to an HTTP status. Domain
// sentinels carry their own status; anything unrecognized is treated as
// an internal error so repository failures never leak as 4xx.
func writeUseCaseError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrUserAlreadyExists):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrEvidenceNotDraft), errors.Is(err, domain.ErrProblemClosed):
		writeError(w, http.StatusConflict, err.Error())
	case isNotFound(err):
		writeError(w, http.StatusNotFound, err.Error())
	case isValidationError(err):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func isNotFound(err error) bool {
	for _, sentinel := range []error{
		domain.ErrTenantNotFound,
		domain.ErrUserNotFound,
		domain.ErrEvidenceNotFound,
		domain.ErrRiskNotFound,
		domain.ErrProblemNotFound,
		domain.ErrAuditNotFound,
		domain.ErrReviewNotFound,
		domain.ErrProcessNotFound,
		domain.ErrObjectiveNotFound,
		domain.ErrRoleNotFound,
		domain.ErrCompanyProfileNotFound,
		domain.ErrClauseNotFound,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// isValidationError reports whether the error is a plain request
// validation failure. Use cases return bare fmt.Errorf values for input
// validation and wrap everything that came from a repository or
// service, so an error with no cause is a validation message.
func isValidationError(err error) bool {
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return true
	}
	return errors.Unwrap(err) == nil
}
