package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/wellbase/wellbase/config"
	"github.com/wellbase/wellbase/pkg/apperrors"
)

// statusForKind maps structured error kinds to HTTP statuses, so handlers
// never string-match error text to pick a code.
func statusForKind(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindValidation:
		return http.StatusBadRequest
	case apperrors.KindConfiguration, apperrors.KindProjection, apperrors.KindConsistency:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

type errorBody struct {
	Error   string                 `json:"error"`
	Kind    string                 `json:"kind"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, err error) {
	body := errorBody{Error: err.Error(), Kind: string(apperrors.KindInternal)}

	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		body.Error = appErr.Message
		body.Kind = string(appErr.Kind)
		body.Details = appErr.Details
	}

	status := statusForKind(apperrors.KindOf(err))
	if status >= http.StatusInternalServerError && config.Log != nil {
		config.Log.Error("request failed", zap.Error(err))
	}
	respondJSON(w, status, body)
}
