package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"fpadmin/internal/core"
	"fpadmin/pkg/domain"
)

// maxBodyBytes bounds request payloads.
const maxBodyBytes = 1 << 20

type violationDTO struct {
	Rule     string `json:"rule"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Entity   string `json:"entity,omitempty"`
	EntityID string `json:"entityId,omitempty"`
}

func violations(res core.Result) []violationDTO {
	out := make([]violationDTO, 0, len(res.Violations))
	for _, v := range res.Violations {
		out = append(out, violationDTO{
			Rule:     v.Rule,
			Severity: string(v.Severity),
			Message:  v.Message,
			Entity:   string(v.Entity),
			EntityID: v.EntityID,
		})
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}

// writeResult writes a mutation outcome with any non-blocking violations.
func writeResult(w http.ResponseWriter, status int, data any, res core.Result) {
	body := map[string]any{"violations": violations(res)}
	if data != nil {
		body["data"] = data
	}
	writeJSON(w, status, body)
}

// writeServiceError maps service and domain errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	var (
		ruleErr     domain.RuleViolationError
		validation  core.ValidationError
		provider    domain.InvalidProviderError
		notEnabled  domain.NotEnabledError
		protected   domain.ProtectedRoleError
		duplicate   domain.DuplicateIDError
		badPriority domain.InvalidPriorityError
	)
	switch {
	case domain.IsNotFound(err):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &validation):
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "validation failed", "fields": validation.Fields})
	case errors.As(err, &badPriority):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &ruleErr):
		writeJSON(w, http.StatusConflict, map[string]any{"error": err.Error(), "violations": violations(ruleErr.Result)})
	case errors.As(err, &notEnabled), errors.As(err, &protected), errors.As(err, &duplicate):
		writeError(w, http.StatusConflict, err.Error())
	case errors.As(err, &provider):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// decodeJSON reads a single JSON document into dst, rejecting unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %v", err))
		return false
	}
	return true
}
