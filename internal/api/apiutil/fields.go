package apiutil

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/codr1/Gatehouse/internal/api/authz"
	"github.com/codr1/Gatehouse/internal/booking"
	"github.com/codr1/Gatehouse/internal/community"
)

// DateFromQuery reads a required YYYY-MM-DD query parameter.
func DateFromQuery(r *http.Request, key string) (string, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return "", FieldError{Field: key, Reason: "is required"}
	}
	if _, err := booking.ParseDate(raw); err != nil {
		return "", FieldError{Field: key, Reason: "must be YYYY-MM-DD"}
	}
	return raw, nil
}

// PathID reads a required path value such as {id}.
func PathID(r *http.Request, name string) (string, error) {
	id := strings.TrimSpace(r.PathValue(name))
	if id == "" {
		return "", FieldError{Field: name, Reason: "is required"}
	}
	return id, nil
}

// BoolFromQuery reads an optional boolean query parameter. Absent means false.
func BoolFromQuery(r *http.Request, key string) (bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return false, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, FieldError{Field: key, Reason: "must be true or false"}
	}
	return value, nil
}

// ActorFor converts the request's society context into the community actor.
func ActorFor(society *authz.SocietyContext) community.Actor {
	return community.Actor{
		UserID:    society.UserID,
		SocietyID: society.SocietyID,
		Role:      string(society.Role),
	}
}
