package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/horseradish/horseradish-server/internal/auth"
	"github.com/horseradish/horseradish-server/internal/logger"
	"github.com/horseradish/horseradish-server/internal/model"
	"github.com/horseradish/horseradish-server/internal/service"
)

const maxBodyBytes = 1 << 20

type messageResponse struct {
	Message string `json:"message"`
}

type listResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteMessage writes {"message": msg} with status.
func WriteMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return model.NewValidationError("", "request body is empty")
		}
		return model.NewValidationError("", fmt.Sprintf("malformed request body: %v", err))
	}
	return nil
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, model.NewValidationError("id", "must be a positive integer")
	}
	return id, nil
}

func pageFromQuery(r *http.Request) (model.Page, error) {
	page := model.DefaultPage
	q := r.URL.Query()
	if v := q.Get("count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 200 {
			return model.Page{}, model.NewValidationError("count", "must be between 1 and 200")
		}
		page.Count = n
	}
	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return model.Page{}, model.NewValidationError("page", "must be a positive integer")
		}
		page.Page = n
	}
	return page, nil
}

// handleError maps service errors to HTTP responses. Unknown errors are
// logged and reported as 500 without detail.
func handleError(w http.ResponseWriter, r *http.Request, log *logger.Logger, err error) {
	var (
		rejection     *auth.Rejection
		validationErr *model.ValidationError
	)
	switch {
	case errors.As(err, &rejection):
		WriteMessage(w, rejection.HTTPStatus(), rejection.Message())
	case errors.As(err, &validationErr):
		WriteMessage(w, http.StatusBadRequest, validationErr.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		WriteMessage(w, http.StatusUnauthorized, service.ErrInvalidCredentials.Error())
	case errors.Is(err, service.ErrUserInactive):
		WriteMessage(w, http.StatusForbidden, "User is not currently active")
	case errors.Is(err, model.ErrForbidden):
		WriteMessage(w, http.StatusForbidden, "You are not authorized to perform this action")
	case errors.Is(err, model.ErrNotFound):
		WriteMessage(w, http.StatusNotFound, "The requested resource was not found")
	case errors.Is(err, model.ErrAlreadyExists):
		WriteMessage(w, http.StatusConflict, "The resource already exists")
	case errors.Is(err, service.ErrExportsDisabled):
		WriteMessage(w, http.StatusNotImplemented, "Exports are not configured")
	case errors.Is(err, model.ErrStoreUnavailable):
		WriteMessage(w, http.StatusServiceUnavailable, "Service temporarily unavailable, try again later")
	default:
		log.Error("HTTP handler: request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err.Error())
		WriteMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}
