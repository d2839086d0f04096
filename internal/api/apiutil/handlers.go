package apiutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/golazoapp/golazo/internal/api/authz"
	"github.com/golazoapp/golazo/internal/league"
	"github.com/golazoapp/golazo/internal/scorer"
)

func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return fmt.Errorf("missing request body")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return err
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("invalid JSON body")
	}
	return nil
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	if err := encoder.Encode(payload); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err := w.Write(buf.Bytes())
	return err
}

type errorPayload struct {
	Error string `json:"error"`
}

// WriteError maps a service error to its HTTP status and writes the JSON
// error body. League rejections pass the server's status and message through
// so the console shows what the league actually said.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	logger := log.Ctx(r.Context())

	var validationErr scorer.ValidationError
	var remoteErr *league.RemoteError
	switch {
	case errors.Is(err, authz.ErrUnauthenticated):
		logger.Warn().Msg("Request rejected: unauthenticated")
		_ = WriteJSON(w, http.StatusUnauthorized, errorPayload{Error: "Unauthorized"})
	case errors.Is(err, scorer.ErrNotMounted):
		_ = WriteJSON(w, http.StatusNotFound, errorPayload{Error: err.Error()})
	case errors.Is(err, scorer.ErrStateViolation):
		_ = WriteJSON(w, http.StatusConflict, errorPayload{Error: err.Error()})
	case errors.As(err, &validationErr):
		_ = WriteJSON(w, http.StatusUnprocessableEntity, errorPayload{Error: validationErr.Error()})
	case errors.As(err, &remoteErr):
		logger.Warn().
			Int("league_status", remoteErr.StatusCode).
			Str("league_message", remoteErr.Message).
			Msg("League rejected request")
		_ = WriteJSON(w, remoteErr.StatusCode, errorPayload{Error: remoteErr.Error()})
	default:
		logger.Error().Err(err).Msg("Request failed")
		_ = WriteJSON(w, http.StatusInternalServerError, errorPayload{Error: "Internal Server Error"})
	}
}

// RequireScorer writes the 401 response when no scorer identity was
// presented, reporting whether the handler may proceed.
func RequireScorer(w http.ResponseWriter, r *http.Request) bool {
	if err := authz.RequireScorer(r.Context()); err != nil {
		WriteError(w, r, err)
		return false
	}
	return true
}
