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
	ComplaintPending    = "pending"
	ComplaintInProgress = "in_progress"
	ComplaintResolved   = "resolved"
)

var (
	ComplaintCategories = []string{
		"maintenance", "security", "cleanliness", "noise", "parking",
		"water_supply", "electricity", "common_areas", "other",
	}
	ComplaintStatuses = []string{ComplaintPending, ComplaintInProgress, ComplaintResolved}
)

const maxComplaintLength = 2000

type Complaint struct {
	ID          string    `json:"id"`
	SocietyID   string    `json:"society_id"`
	UserID      string    `json:"user_id"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ComplaintBox takes complaints from members. Managers see every complaint
// and move it through pending, in_progress and resolved; others see their own.
type ComplaintBox struct {
	db *db.DB
}

func NewComplaintBox(database *db.DB) *ComplaintBox {
	return &ComplaintBox{db: database}
}

func (b *ComplaintBox) File(ctx context.Context, actor Actor, category, description string) (Complaint, error) {
	if err := actor.validate(); err != nil {
		return Complaint{}, err
	}
	category = strings.ToLower(strings.TrimSpace(category))
	if !slices.Contains(ComplaintCategories, category) {
		return Complaint{}, ValidationError{Field: "category", Reason: "category must be one of: " + strings.Join(ComplaintCategories, ", ")}
	}
	description, err := requireText("description", description, maxComplaintLength)
	if err != nil {
		return Complaint{}, err
	}

	var created Complaint
	err = b.db.RunInTx(ctx, func(txdb *db.DB) error {
		id := uuid.NewString()
		if err := txdb.Queries.CreateComplaint(ctx, dbgen.CreateComplaintParams{
			ID:          id,
			SocietyID:   actor.SocietyID,
			UserID:      actor.UserID,
			Category:    category,
			Description: description,
		}); err != nil {
			return fmt.Errorf("create complaint: %w", err)
		}
		row, err := txdb.Queries.GetComplaint(ctx, dbgen.GetComplaintParams{ID: id, SocietyID: actor.SocietyID})
		if err != nil {
			return fmt.Errorf("load complaint: %w", err)
		}
		created = complaintFromRow(row)
		return nil
	})
	if err != nil {
		return Complaint{}, err
	}

	log.Ctx(ctx).Info().
		Str("society_id", created.SocietyID).
		Str("complaint_id", created.ID).
		Str("category", created.Category).
		Msg("Complaint filed")
	metrics.RecordComplaintEvent(created.Status)
	return created, nil
}

// SetStatus changes a complaint's status. Only managers may do this.
func (b *ComplaintBox) SetStatus(ctx context.Context, actor Actor, complaintID, status string) (Complaint, error) {
	if err := actor.validate(); err != nil {
		return Complaint{}, err
	}
	if !actor.CanManage() {
		return Complaint{}, NotAuthorizedError{Action: "update complaints"}
	}
	if !slices.Contains(ComplaintStatuses, status) {
		return Complaint{}, ValidationError{Field: "status", Reason: "status must be pending, in_progress or resolved"}
	}

	var updated Complaint
	err := b.db.RunInTx(ctx, func(txdb *db.DB) error {
		affected, err := txdb.Queries.UpdateComplaintStatus(ctx, dbgen.UpdateComplaintStatusParams{
			Status:    status,
			ID:        complaintID,
			SocietyID: actor.SocietyID,
		})
		if err != nil {
			return fmt.Errorf("update complaint: %w", err)
		}
		if affected == 0 {
			return NotFoundError{Resource: "complaint", ID: complaintID}
		}
		row, err := txdb.Queries.GetComplaint(ctx, dbgen.GetComplaintParams{ID: complaintID, SocietyID: actor.SocietyID})
		if err != nil {
			return fmt.Errorf("load complaint: %w", err)
		}
		updated = complaintFromRow(row)
		return nil
	})
	if err != nil {
		return Complaint{}, err
	}

	log.Ctx(ctx).Info().
		Str("society_id", updated.SocietyID).
		Str("complaint_id", updated.ID).
		Str("status", updated.Status).
		Str("updated_by", actor.UserID).
		Msg("Complaint status changed")
	metrics.RecordComplaintEvent(updated.Status)
	return updated, nil
}

// List returns complaints visible to the actor, newest first.
func (b *ComplaintBox) List(ctx context.Context, actor Actor) ([]Complaint, error) {
	if err := actor.validate(); err != nil {
		return nil, err
	}
	var (
		rows []dbgen.Complaint
		err  error
	)
	if actor.CanManage() {
		rows, err = b.db.Queries.ListComplaints(ctx, actor.SocietyID)
	} else {
		rows, err = b.db.Queries.ListComplaintsByUser(ctx, dbgen.ListComplaintsByUserParams{SocietyID: actor.SocietyID, UserID: actor.UserID})
	}
	if err != nil {
		return nil, fmt.Errorf("list complaints: %w", err)
	}
	out := make([]Complaint, 0, len(rows))
	for _, row := range rows {
		out = append(out, complaintFromRow(row))
	}
	return out, nil
}

// Get returns a complaint the actor filed or, for managers, any complaint of
// the society.
func (b *ComplaintBox) Get(ctx context.Context, actor Actor, complaintID string) (Complaint, error) {
	row, err := b.db.Queries.GetComplaint(ctx, dbgen.GetComplaintParams{ID: complaintID, SocietyID: actor.SocietyID})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Complaint{}, NotFoundError{Resource: "complaint", ID: complaintID}
		}
		return Complaint{}, fmt.Errorf("get complaint: %w", err)
	}
	if !actor.CanManage() && row.UserID != actor.UserID {
		return Complaint{}, NotFoundError{Resource: "complaint", ID: complaintID}
	}
	return complaintFromRow(row), nil
}

func complaintFromRow(row dbgen.Complaint) Complaint {
	return Complaint{
		ID:          row.ID,
		SocietyID:   row.SocietyID,
		UserID:      row.UserID,
		Category:    row.Category,
		Description: row.Description,
		Status:      row.Status,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
