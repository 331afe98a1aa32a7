// Package community holds the day-to-day society features around the gate
// and the noticeboard: visitor requests, the gate log, notices, complaints,
// emergency contacts and watchman availability.
package community

import (
	"fmt"
	"strings"
	"time"
)

// Member roles as stored on society_members.role.
const (
	RoleResident  = "resident"
	RoleWatchman  = "watchman"
	RoleSecretary = "secretary"
	RoleAdmin     = "admin"
)

// Actor is the caller acting inside one society.
type Actor struct {
	UserID    string
	SocietyID string
	Role      string
}

// CanManage is true for secretaries and admins.
func (a Actor) CanManage() bool {
	return a.Role == RoleSecretary || a.Role == RoleAdmin
}

func (a Actor) IsWatchman() bool {
	return a.Role == RoleWatchman
}

// CanStaffGate is true for watchmen and managers.
func (a Actor) CanStaffGate() bool {
	return a.IsWatchman() || a.CanManage()
}

func (a Actor) validate() error {
	if strings.TrimSpace(a.SocietyID) == "" {
		return ValidationError{Field: "society_id", Reason: "society is required"}
	}
	if strings.TrimSpace(a.UserID) == "" {
		return ValidationError{Field: "user_id", Reason: "user is required"}
	}
	return nil
}

// Clock interface for testing time-dependent behavior.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// requireText trims value and checks it is present and at most max bytes.
func requireText(field, value string, max int) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", ValidationError{Field: field, Reason: field + " is required"}
	}
	return value, limitText(field, value, max)
}

func limitText(field, value string, max int) error {
	if len(value) > max {
		return ValidationError{Field: field, Reason: fmt.Sprintf("%s must be at most %d characters", field, max)}
	}
	return nil
}
