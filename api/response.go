package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/weedbox/holdem"
)

var (
	ErrInvalidBody = errors.New("api: invalid request body")
)

type errorResponse struct {
	Error string `json:"error"`
}

// actionResponse mirrors holdem.Response with the error flattened to text.
type actionResponse struct {
	Success bool             `json:"success"`
	Error   string           `json:"error,omitempty"`
	Events  []*holdem.Event  `json:"events"`
	View    *holdem.GameView `json:"view,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusOf(err), errorResponse{Error: err.Error()})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, holdem.ErrManagerGameNotFound), errors.Is(err, holdem.ErrTableClosed):
		return http.StatusNotFound
	case errors.Is(err, holdem.ErrManagerGameExists):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidBody),
		errors.Is(err, holdem.ErrInvalidSettings),
		errors.Is(err, holdem.ErrInvalidAmount):
		return http.StatusBadRequest
	default:
		return http.StatusUnprocessableEntity
	}
}

// writeResponse reports engine rejections with 422 and the rejection text.
func writeResponse(w http.ResponseWriter, resp *holdem.Response, err error) {
	if err != nil {
		writeError(w, err)
		return
	}

	out := actionResponse{
		Success: resp.Result.Success,
		Events:  resp.Result.Events,
		View:    resp.View,
	}

	status := http.StatusOK
	if resp.Result.Error != nil {
		out.Error = resp.Result.Error.Error()
		status = statusOf(resp.Result.Error)
	}

	writeJSON(w, status, out)
}

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Join(ErrInvalidBody, err)
	}
	return nil
}

// parseAmount accepts integral chip counts only.
func parseAmount(n json.Number) (int64, error) {
	if n == "" {
		return 0, nil
	}

	amount, err := strconv.ParseInt(string(n), 10, 64)
	if err != nil {
		return 0, holdem.ErrInvalidAmount
	}

	return amount, nil
}
