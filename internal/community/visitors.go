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

const (
	VisitorPending  = "pending"
	VisitorApproved = "approved"
	VisitorRejected = "rejected"
)

// VisitorStatuses lists every visitor request state.
var VisitorStatuses = []string{VisitorPending, VisitorApproved, VisitorRejected}

const (
	maxVisitorNameLength = 120
	maxFlatNumberLength  = 20
	maxPurposeLength     = 200
)

type Visitor struct {
	ID          string    `json:"id"`
	SocietyID   string    `json:"society_id"`
	VisitorName string    `json:"visitor_name"`
	Purpose     string    `json:"purpose"`
	FlatNumber  string    `json:"flat_number"`
	CreatedBy   string    `json:"created_by"`
	ResidentID  string    `json:"resident_id,omitempty"`
	Status      string    `json:"status"`
	DecidedBy   string    `json:"decided_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type VisitorParams struct {
	VisitorName string
	Purpose     string
	FlatNumber  string
	ResidentID  string
}

// VisitorDesk runs visitor requests. The gate registers a visitor as pending
// and a resident or manager approves or rejects it exactly once.
type VisitorDesk struct {
	db *db.DB
}

func NewVisitorDesk(database *db.DB) *VisitorDesk {
	return &VisitorDesk{db: database}
}

// Register records a pending visitor. Only watchmen and managers staff the
// gate. A named resident must be an active resident of the society.
func (d *VisitorDesk) Register(ctx context.Context, actor Actor, params VisitorParams) (Visitor, error) {
	if err := actor.validate(); err != nil {
		return Visitor{}, err
	}
	if !actor.CanStaffGate() {
		return Visitor{}, NotAuthorizedError{Action: "register visitors"}
	}

	name, err := requireText("visitor_name", params.VisitorName, maxVisitorNameLength)
	if err != nil {
		return Visitor{}, err
	}
	flat, err := requireText("flat_number", params.FlatNumber, maxFlatNumberLength)
	if err != nil {
		return Visitor{}, err
	}
	purpose, err := requireText("purpose", params.Purpose, maxPurposeLength)
	if err != nil {
		return Visitor{}, err
	}
	residentID := strings.TrimSpace(params.ResidentID)

	var created Visitor
	err = d.db.RunInTx(ctx, func(txdb *db.DB) error {
		if residentID != "" {
			member, err := txdb.Queries.GetActiveMembership(ctx, dbgen.GetActiveMembershipParams{
				SocietyID: actor.SocietyID,
				UserID:    residentID,
			})
			if err != nil && !errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("load resident: %w", err)
			}
			if err != nil || member.Role != RoleResident {
				return ValidationError{Field: "resident_id", Reason: "resident_id must be an active resident of the society"}
			}
		}

		id := uuid.NewString()
		if err := txdb.Queries.CreateVisitor(ctx, dbgen.CreateVisitorParams{
			ID:          id,
			SocietyID:   actor.SocietyID,
			VisitorName: name,
			Purpose:     purpose,
			FlatNumber:  flat,
			CreatedBy:   actor.UserID,
			ResidentID:  sql.NullString{String: residentID, Valid: residentID != ""},
		}); err != nil {
			return fmt.Errorf("create visitor: %w", err)
		}

		row, err := txdb.Queries.GetVisitor(ctx, dbgen.GetVisitorParams{ID: id, SocietyID: actor.SocietyID})
		if err != nil {
			return fmt.Errorf("load visitor: %w", err)
		}
		created = visitorFromRow(row)
		return nil
	})
	if err != nil {
		return Visitor{}, err
	}

	log.Ctx(ctx).Info().
		Str("society_id", created.SocietyID).
		Str("visitor_id", created.ID).
		Str("flat_number", created.FlatNumber).
		Str("created_by", created.CreatedBy).
		Msg("Visitor registered")
	metrics.RecordVisitorEvent(VisitorPending)
	return created, nil
}

// Decide moves a pending request to approved or rejected. Managers may decide
// any request. Residents may decide requests addressed to them, or any
// request that names no resident. Watchmen never decide.
func (d *VisitorDesk) Decide(ctx context.Context, actor Actor, visitorID, decision string) (Visitor, error) {
	if err := actor.validate(); err != nil {
		return Visitor{}, err
	}
	if decision != VisitorApproved && decision != VisitorRejected {
		return Visitor{}, ValidationError{Field: "status", Reason: "status must be approved or rejected"}
	}

	var decided Visitor
	err := d.db.RunInTx(ctx, func(txdb *db.DB) error {
		row, err := txdb.Queries.GetVisitor(ctx, dbgen.GetVisitorParams{ID: visitorID, SocietyID: actor.SocietyID})
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return NotFoundError{Resource: "visitor", ID: visitorID}
			}
			return fmt.Errorf("get visitor: %w", err)
		}
		if !canDecide(row, actor) {
			return NotAuthorizedError{Action: "decide this visitor request"}
		}
		if row.Status != VisitorPending {
			return TransitionError{Resource: "visitor request", From: row.Status, To: decision}
		}

		affected, err := txdb.Queries.DecideVisitor(ctx, dbgen.DecideVisitorParams{
			Status:    decision,
			DecidedBy: sql.NullString{String: actor.UserID, Valid: true},
			ID:        visitorID,
			SocietyID: actor.SocietyID,
		})
		if err != nil {
			return fmt.Errorf("decide visitor: %w", err)
		}
		if affected == 0 {
			return TransitionError{Resource: "visitor request", From: "decided", To: decision}
		}

		row, err = txdb.Queries.GetVisitor(ctx, dbgen.GetVisitorParams{ID: visitorID, SocietyID: actor.SocietyID})
		if err != nil {
			return fmt.Errorf("load visitor: %w", err)
		}
		decided = visitorFromRow(row)
		return nil
	})
	if err != nil {
		return Visitor{}, err
	}

	log.Ctx(ctx).Info().
		Str("society_id", decided.SocietyID).
		Str("visitor_id", decided.ID).
		Str("status", decided.Status).
		Str("decided_by", decided.DecidedBy).
		Msg("Visitor request decided")
	metrics.RecordVisitorEvent(decided.Status)
	return decided, nil
}

func canDecide(row dbgen.Visitor, actor Actor) bool {
	switch {
	case actor.CanManage():
		return true
	case actor.Role != RoleResident:
		return false
	case !row.ResidentID.Valid:
		return true
	default:
		return row.ResidentID.String == actor.UserID
	}
}

// List returns the society's visitor requests, newest first. An empty status
// returns every request.
func (d *VisitorDesk) List(ctx context.Context, societyID, status string) ([]Visitor, error) {
	var (
		rows []dbgen.Visitor
		err  error
	)
	switch {
	case status == "":
		rows, err = d.db.Queries.ListVisitors(ctx, societyID)
	case slices.Contains(VisitorStatuses, status):
		rows, err = d.db.Queries.ListVisitorsByStatus(ctx, dbgen.ListVisitorsByStatusParams{SocietyID: societyID, Status: status})
	default:
		return nil, ValidationError{Field: "status", Reason: "status must be pending, approved or rejected"}
	}
	if err != nil {
		return nil, fmt.Errorf("list visitors: %w", err)
	}
	out := make([]Visitor, 0, len(rows))
	for _, row := range rows {
		out = append(out, visitorFromRow(row))
	}
	return out, nil
}

// Get returns one visitor request of the society.
func (d *VisitorDesk) Get(ctx context.Context, societyID, visitorID string) (Visitor, error) {
	row, err := d.db.Queries.GetVisitor(ctx, dbgen.GetVisitorParams{ID: visitorID, SocietyID: societyID})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Visitor{}, NotFoundError{Resource: "visitor", ID: visitorID}
		}
		return Visitor{}, fmt.Errorf("get visitor: %w", err)
	}
	return visitorFromRow(row), nil
}

func visitorFromRow(row dbgen.Visitor) Visitor {
	return Visitor{
		ID:          row.ID,
		SocietyID:   row.SocietyID,
		VisitorName: row.VisitorName,
		Purpose:     row.Purpose,
		FlatNumber:  row.FlatNumber,
		CreatedBy:   row.CreatedBy,
		ResidentID:  row.ResidentID.String,
		Status:      row.Status,
		DecidedBy:   row.DecidedBy.String,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
