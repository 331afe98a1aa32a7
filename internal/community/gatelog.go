package community

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/codr1/Gatehouse/internal/db"
	dbgen "github.com/codr1/Gatehouse/internal/db/generated"
	"github.com/codr1/Gatehouse/internal/metrics"
)

// VehicleTypes lists the accepted vehicle_type values.
var VehicleTypes = []string{"car", "bike", "auto", "other"}

const (
	maxVehicleNumberLength = 20
	maxSecurityNotesLength = 500
)

type GateEntry struct {
	ID            string     `json:"id"`
	SocietyID     string     `json:"society_id"`
	VisitorName   string     `json:"visitor_name"`
	FlatNumber    string     `json:"flat_number"`
	Purpose       string     `json:"purpose"`
	VehicleNumber string     `json:"vehicle_number,omitempty"`
	VehicleType   string     `json:"vehicle_type,omitempty"`
	SecurityNotes string     `json:"security_notes,omitempty"`
	LoggedBy      string     `json:"logged_by"`
	EntryTime     time.Time  `json:"entry_time"`
	ExitTime      *time.Time `json:"exit_time,omitempty"`
	VisitorID     string     `json:"visitor_id,omitempty"`
}

// Inside reports whether the visitor has not been marked out yet.
func (e GateEntry) Inside() bool {
	return e.ExitTime == nil
}

type EntryParams struct {
	VisitorName   string
	FlatNumber    string
	Purpose       string
	VehicleNumber string
	VehicleType   string
	SecurityNotes string
	VisitorID     string
}

// GateLog records who walked in through the gate and when they left.
type GateLog struct {
	db    *db.DB
	clock Clock
}

type GateLogOption func(*GateLog)

func WithGateClock(clock Clock) GateLogOption {
	return func(g *GateLog) {
		if clock != nil {
			g.clock = clock
		}
	}
}

func NewGateLog(database *db.DB, opts ...GateLogOption) *GateLog {
	g := &GateLog{db: database, clock: realClock{}}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// RecordEntry logs an arrival at the current time. When VisitorID is set the
// request must be approved, and blank name, flat and purpose are taken from
// it.
func (g *GateLog) RecordEntry(ctx context.Context, actor Actor, params EntryParams) (GateEntry, error) {
	if err := actor.validate(); err != nil {
		return GateEntry{}, err
	}
	if !actor.CanStaffGate() {
		return GateEntry{}, NotAuthorizedError{Action: "log gate entries"}
	}

	visitorID := strings.TrimSpace(params.VisitorID)
	vehicleType := strings.ToLower(strings.TrimSpace(params.VehicleType))
	if vehicleType != "" && !slices.Contains(VehicleTypes, vehicleType) {
		return GateEntry{}, ValidationError{Field: "vehicle_type", Reason: "vehicle_type must be car, bike, auto or other"}
	}
	vehicleNumber := strings.ToUpper(strings.TrimSpace(params.VehicleNumber))
	if err := limitText("vehicle_number", vehicleNumber, maxVehicleNumberLength); err != nil {
		return GateEntry{}, err
	}
	notes := strings.TrimSpace(params.SecurityNotes)
	if err := limitText("security_notes", notes, maxSecurityNotesLength); err != nil {
		return GateEntry{}, err
	}

	var created GateEntry
	err := g.db.RunInTx(ctx, func(txdb *db.DB) error {
		if visitorID != "" {
			visitor, err := txdb.Queries.GetVisitor(ctx, dbgen.GetVisitorParams{ID: visitorID, SocietyID: actor.SocietyID})
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return ValidationError{Field: "visitor_id", Reason: "visitor_id does not match a visitor request"}
				}
				return fmt.Errorf("load visitor: %w", err)
			}
			if visitor.Status != VisitorApproved {
				return ValidationError{Field: "visitor_id", Reason: "visitor request must be approved before entry"}
			}
			params.VisitorName = firstNonBlank(params.VisitorName, visitor.VisitorName)
			params.FlatNumber = firstNonBlank(params.FlatNumber, visitor.FlatNumber)
			params.Purpose = firstNonBlank(params.Purpose, visitor.Purpose)
		}

		name, err := requireText("visitor_name", params.VisitorName, maxVisitorNameLength)
		if err != nil {
			return err
		}
		flat, err := requireText("flat_number", params.FlatNumber, maxFlatNumberLength)
		if err != nil {
			return err
		}
		purpose, err := requireText("purpose", params.Purpose, maxPurposeLength)
		if err != nil {
			return err
		}

		id := uuid.NewString()
		if err := txdb.Queries.CreateGateLog(ctx, dbgen.CreateGateLogParams{
			ID:            id,
			SocietyID:     actor.SocietyID,
			VisitorName:   name,
			FlatNumber:    flat,
			Purpose:       purpose,
			VehicleNumber: nullString(vehicleNumber),
			VehicleType:   nullString(vehicleType),
			SecurityNotes: nullString(notes),
			LoggedBy:      actor.UserID,
			EntryTime:     g.now(),
			VisitorID:     nullString(visitorID),
		}); err != nil {
			return fmt.Errorf("create gate log: %w", err)
		}

		row, err := txdb.Queries.GetGateLog(ctx, dbgen.GetGateLogParams{ID: id, SocietyID: actor.SocietyID})
		if err != nil {
			return fmt.Errorf("load gate log: %w", err)
		}
		created = gateEntryFromRow(row)
		return nil
	})
	if err != nil {
		return GateEntry{}, err
	}

	log.Ctx(ctx).Info().
		Str("society_id", created.SocietyID).
		Str("gate_log_id", created.ID).
		Str("flat_number", created.FlatNumber).
		Str("logged_by", created.LoggedBy).
		Msg("Gate entry logged")
	metrics.RecordGateEvent(metrics.GateEventEntry)
	return created, nil
}

// RecordExit stamps the exit time once. A second exit is a TransitionError.
func (g *GateLog) RecordExit(ctx context.Context, actor Actor, entryID string) (GateEntry, error) {
	if err := actor.validate(); err != nil {
		return GateEntry{}, err
	}
	if !actor.CanStaffGate() {
		return GateEntry{}, NotAuthorizedError{Action: "log gate exits"}
	}

	var exited GateEntry
	err := g.db.RunInTx(ctx, func(txdb *db.DB) error {
		key := dbgen.GetGateLogParams{ID: entryID, SocietyID: actor.SocietyID}
		row, err := txdb.Queries.GetGateLog(ctx, key)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return NotFoundError{Resource: "gate entry", ID: entryID}
			}
			return fmt.Errorf("get gate log: %w", err)
		}
		if row.ExitTime.Valid {
			return TransitionError{Resource: "gate entry", From: "exited", To: "exited"}
		}

		exitTime := g.now()
		if exitTime.Before(row.EntryTime) {
			exitTime = row.EntryTime
		}
		affected, err := txdb.Queries.MarkGateLogExit(ctx, dbgen.MarkGateLogExitParams{
			ExitTime:  sql.NullTime{Time: exitTime, Valid: true},
			ID:        entryID,
			SocietyID: actor.SocietyID,
		})
		if err != nil {
			return fmt.Errorf("mark gate exit: %w", err)
		}
		if affected == 0 {
			return TransitionError{Resource: "gate entry", From: "exited", To: "exited"}
		}

		row, err = txdb.Queries.GetGateLog(ctx, key)
		if err != nil {
			return fmt.Errorf("load gate log: %w", err)
		}
		exited = gateEntryFromRow(row)
		return nil
	})
	if err != nil {
		return GateEntry{}, err
	}

	log.Ctx(ctx).Info().
		Str("society_id", exited.SocietyID).
		Str("gate_log_id", exited.ID).
		Str("logged_by", actor.UserID).
		Msg("Gate exit logged")
	metrics.RecordGateEvent(metrics.GateEventExit)
	return exited, nil
}

// List returns the society's gate log, latest entry first. With insideOnly
// set, only entries without an exit are returned.
func (g *GateLog) List(ctx context.Context, societyID string, insideOnly bool) ([]GateEntry, error) {
	var (
		rows []dbgen.GateLog
		err  error
	)
	if insideOnly {
		rows, err = g.db.Queries.ListOpenGateLogs(ctx, societyID)
	} else {
		rows, err = g.db.Queries.ListGateLogs(ctx, societyID)
	}
	if err != nil {
		return nil, fmt.Errorf("list gate logs: %w", err)
	}
	out := make([]GateEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, gateEntryFromRow(row))
	}
	return out, nil
}

// now is truncated to whole seconds in UTC so stored times sort as text.
func (g *GateLog) now() time.Time {
	return g.clock.Now().UTC().Truncate(time.Second)
}

func gateEntryFromRow(row dbgen.GateLog) GateEntry {
	entry := GateEntry{
		ID:            row.ID,
		SocietyID:     row.SocietyID,
		VisitorName:   row.VisitorName,
		FlatNumber:    row.FlatNumber,
		Purpose:       row.Purpose,
		VehicleNumber: row.VehicleNumber.String,
		VehicleType:   row.VehicleType.String,
		SecurityNotes: row.SecurityNotes.String,
		LoggedBy:      row.LoggedBy,
		EntryTime:     row.EntryTime,
		VisitorID:     row.VisitorID.String,
	}
	if row.ExitTime.Valid {
		exit := row.ExitTime.Time
		entry.ExitTime = &exit
	}
	return entry
}

func nullString(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}

func firstNonBlank(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
