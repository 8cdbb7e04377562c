package controller

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/openroad/driveschool-api/internal/apperror"
)

type dataEnvelope struct {
	Data interface{} `json:"data"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeData(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, dataEnvelope{Data: data})
}

// writeError maps the error taxonomy onto HTTP. Storage failures are
// logged with their cause but surfaced as an opaque 500.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		logger.Error("Unclassified error", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorEnvelope{
			Error: errorBody{Code: "internal", Message: "something went wrong"},
		})
		return
	}

	if appErr.Kind == apperror.KindStorage {
		logger.Error("Storage failure", zap.Error(appErr))
		writeJSON(w, http.StatusInternalServerError, errorEnvelope{
			Error: errorBody{Code: "storage", Message: "temporary storage failure, please retry"},
		})
		return
	}

	writeJSON(w, statusForKind(appErr.Kind), errorEnvelope{
		Error: errorBody{Code: codeForKind(appErr.Kind), Message: appErr.Message},
	})
}

func statusForKind(kind apperror.Kind) int {
	switch kind {
	case apperror.KindValidation:
		return http.StatusBadRequest
	case apperror.KindAuthentication:
		return http.StatusUnauthorized
	case apperror.KindPermission:
		return http.StatusForbidden
	case apperror.KindNotFound:
		return http.StatusNotFound
	case apperror.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func codeForKind(kind apperror.Kind) string {
	switch kind {
	case apperror.KindValidation:
		return "validation"
	case apperror.KindAuthentication:
		return "authentication"
	case apperror.KindPermission:
		return "permission"
	case apperror.KindNotFound:
		return "not_found"
	case apperror.KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}
