package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/alex-user-go/tourguide/internal/query"
	"github.com/alex-user-go/tourguide/internal/remote"
)

// QueryResponse is the body of every cached read. Data stays set while a
// refetch runs and after a failed one.
type QueryResponse[T any] struct {
	Status    string     `json:"status"`
	Stale     bool       `json:"stale"`
	FetchedAt *time.Time `json:"fetched_at,omitempty"`
	Data      *T         `json:"data"`
	Error     string     `json:"error,omitempty"`
}

// MutationResponse is the body of an accepted booking or reservation.
type MutationResponse[T any] struct {
	Data        T   `json:"data"`
	Invalidated int `json:"invalidated"`
}

// ValidationResponse lists every rule a request violated.
type ValidationResponse struct {
	Errors []string `json:"errors"`
}

// queryBody renders res and picks its status code. A failure is only
// an error response when there is no earlier data to fall back to.
func queryBody[T any](res query.Result[T]) (int, QueryResponse[T]) {
	body := QueryResponse[T]{
		Status: res.Status.String(),
		Stale:  res.Stale,
	}
	if !res.FetchedAt.IsZero() {
		fetchedAt := res.FetchedAt
		body.FetchedAt = &fetchedAt
	}
	if res.HasData {
		data := res.Data
		body.Data = &data
	}
	if res.Err != nil {
		body.Error = remote.Message(res.Err)
		if !res.HasData {
			return statusFor(res.Err), body
		}
	}
	return http.StatusOK, body
}

// statusFor maps a remote failure to a status code.
func statusFor(err error) int {
	switch {
	case remote.IsDomain(err):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(body)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	_ = writeJSON(w, status, map[string]string{"error": message})
}

func writeValidation(w http.ResponseWriter, errs []string) {
	_ = writeJSON(w, http.StatusBadRequest, ValidationResponse{Errors: errs})
}
