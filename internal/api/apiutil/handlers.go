package apiutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/codr1/Gatehouse/internal/api/authz"
	"github.com/codr1/Gatehouse/internal/booking"
	"github.com/codr1/Gatehouse/internal/community"
)

type FieldError struct {
	Field  string
	Reason string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

type HandlerError struct {
	Status  int
	Message string
	Err     error
}

func (e HandlerError) Error() string {
	return e.Message
}

func (e HandlerError) Unwrap() error {
	return e.Err
}

type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

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

// StatusForError maps domain and authorization errors onto an HTTP status and
// a client-facing message. Unknown errors are 500 with a generic message.
func StatusForError(err error) (int, ErrorResponse) {
	var (
		handlerErr    HandlerError
		fieldErr      FieldError
		validationErr booking.ValidationError
		conflictErr   booking.ConflictError
		notFoundErr   booking.NotFoundError
		notAuthErr    booking.NotAuthorizedError

		communityValidation community.ValidationError
		communityNotFound   community.NotFoundError
		communityNotAuth    community.NotAuthorizedError
		transitionErr       community.TransitionError
	)

	switch {
	case errors.As(err, &handlerErr):
		return handlerErr.Status, ErrorResponse{Error: handlerErr.Message}
	case errors.As(err, &fieldErr):
		return http.StatusBadRequest, ErrorResponse{Error: fieldErr.Error(), Field: fieldErr.Field}
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, ErrorResponse{Error: validationErr.Reason, Field: validationErr.Field}
	case errors.As(err, &conflictErr):
		return http.StatusConflict, ErrorResponse{Error: booking.ConflictMessage}
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound, ErrorResponse{Error: notFoundErr.Error()}
	case errors.As(err, &notAuthErr):
		return http.StatusForbidden, ErrorResponse{Error: notAuthErr.Error()}
	case errors.As(err, &communityValidation):
		return http.StatusBadRequest, ErrorResponse{Error: communityValidation.Reason, Field: communityValidation.Field}
	case errors.As(err, &transitionErr):
		return http.StatusConflict, ErrorResponse{Error: transitionErr.Error()}
	case errors.As(err, &communityNotFound):
		return http.StatusNotFound, ErrorResponse{Error: communityNotFound.Error()}
	case errors.As(err, &communityNotAuth):
		return http.StatusForbidden, ErrorResponse{Error: communityNotAuth.Error()}
	case errors.Is(err, authz.ErrUnauthenticated):
		return http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"}
	case errors.Is(err, authz.ErrForbidden):
		return http.StatusForbidden, ErrorResponse{Error: "Forbidden"}
	case errors.Is(err, authz.ErrNoSociety):
		return http.StatusBadRequest, ErrorResponse{Error: "No society selected"}
	default:
		return http.StatusInternalServerError, ErrorResponse{Error: "Internal Server Error"}
	}
}

// WriteError writes err as a JSON error body. Server errors are logged with
// the request logger.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := StatusForError(err)
	logger := log.Ctx(r.Context())
	switch {
	case status >= http.StatusInternalServerError:
		logger.Error().Err(err).Int("status", status).Msg("Request failed")
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		logger.Warn().Err(err).Int("status", status).Msg("Request denied")
	default:
		logger.Debug().Err(err).Int("status", status).Msg("Request rejected")
	}
	if writeErr := WriteJSON(w, status, body); writeErr != nil {
		logger.Error().Err(writeErr).Msg("Failed to write error response")
	}
}
