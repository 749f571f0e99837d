package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/hangang-korean/admin-service/internal/core/domain"
)

type errorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

// listResponse is the envelope for every paginated collection.
type listResponse struct {
	Data    any `json:"data"`
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Total   int `json:"total"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}

// writeError maps the domain error taxonomy onto HTTP statuses:
// validation -> 400, not found -> 404, capacity/state/uniqueness
// conflicts -> 409. Anything unrecognized is a 500 with no details
// leaked to the client.
func writeError(w http.ResponseWriter, err error) {
	var (
		validationErr *domain.ValidationError
		notFoundErr   *domain.NotFoundError
		capacityErr   *domain.CapacityExceededError
		stateErr      *domain.InvalidStateError
		conflictErr   *domain.ConflictError
	)

	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{errorBody{Kind: "validation", Message: validationErr.Error()}})
	case errors.As(err, &notFoundErr):
		writeJSON(w, http.StatusNotFound, errorResponse{errorBody{Kind: "not_found", Message: notFoundErr.Error()}})
	case errors.As(err, &capacityErr):
		writeJSON(w, http.StatusConflict, errorResponse{errorBody{Kind: "capacity_exceeded", Message: capacityErr.Error()}})
	case errors.As(err, &stateErr):
		writeJSON(w, http.StatusConflict, errorResponse{errorBody{Kind: "invalid_state", Message: stateErr.Error()}})
	case errors.As(err, &conflictErr):
		writeJSON(w, http.StatusConflict, errorResponse{errorBody{Kind: "conflict", Message: conflictErr.Error()}})
	default:
		log.Printf("internal error: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{errorBody{Kind: "internal", Message: "internal server error"}})
	}
}

// pathID extracts the {id} path value. A non-numeric id is reported as
// a validation error and the second return is false.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, &domain.ValidationError{Field: "id", Reason: "must be a positive integer"})
		return 0, false
	}
	return id, true
}

func queryInt(r *http.Request, name string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0
	}
	return v
}

func queryInt64(r *http.Request, name string) *int64 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}
