package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/codr1/Gatehouse/internal/db"
	dbgen "github.com/codr1/Gatehouse/internal/db/generated"
	"github.com/codr1/Gatehouse/internal/metrics"
)

const maxFacilityNameLength = 120

// Registry owns facility definitions per society.
type Registry struct {
	db *db.DB
}

func NewRegistry(database *db.DB) *Registry {
	return &Registry{db: database}
}

// ListFacilities returns the society's facilities ordered by name. An unknown
// society yields an empty list.
func (r *Registry) ListFacilities(ctx context.Context, societyID string) ([]Facility, error) {
	rows, err := r.db.Queries.ListFacilities(ctx, societyID)
	if err != nil {
		return nil, fmt.Errorf("list facilities: %w", err)
	}
	out := make([]Facility, 0, len(rows))
	for _, row := range rows {
		out = append(out, facilityFromRow(row))
	}
	return out, nil
}

// GetFacility returns a facility that belongs to societyID.
func (r *Registry) GetFacility(ctx context.Context, societyID, facilityID string) (Facility, error) {
	return getFacility(ctx, r.db.Queries, societyID, facilityID)
}

// CreateFacility validates and stores a new facility. Name and description are
// trimmed and an empty description is stored as NULL.
func (r *Registry) CreateFacility(ctx context.Context, societyID, createdBy, name, description string) (Facility, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if name == "" {
		return Facility{}, ValidationError{Field: "name", Reason: "name is required"}
	}
	if len(name) > maxFacilityNameLength {
		return Facility{}, ValidationError{Field: "name", Reason: fmt.Sprintf("name must be at most %d characters", maxFacilityNameLength)}
	}
	if strings.TrimSpace(societyID) == "" {
		return Facility{}, ValidationError{Field: "society_id", Reason: "society is required"}
	}
	if strings.TrimSpace(createdBy) == "" {
		return Facility{}, ValidationError{Field: "created_by", Reason: "creator is required"}
	}

	var created Facility
	err := r.db.RunInTx(ctx, func(txdb *db.DB) error {
		if _, err := txdb.Queries.GetSocietyByID(ctx, societyID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return NotFoundError{Resource: "society", ID: societyID}
			}
			return fmt.Errorf("get society: %w", err)
		}

		id := uuid.NewString()
		if err := txdb.Queries.CreateFacility(ctx, dbgen.CreateFacilityParams{
			ID:          id,
			SocietyID:   societyID,
			Name:        name,
			Description: sql.NullString{String: description, Valid: description != ""},
			CreatedBy:   createdBy,
		}); err != nil {
			return fmt.Errorf("create facility: %w", err)
		}

		row, err := txdb.Queries.GetFacilityByID(ctx, id)
		if err != nil {
			return fmt.Errorf("load facility: %w", err)
		}
		created = facilityFromRow(row)
		return nil
	})
	if err != nil {
		return Facility{}, err
	}

	log.Ctx(ctx).Info().
		Str("society_id", societyID).
		Str("facility_id", created.ID).
		Str("user_id", createdBy).
		Msg("Facility created")
	metrics.RecordFacilityCreated()
	return created, nil
}

func getFacility(ctx context.Context, q *dbgen.Queries, societyID, facilityID string) (Facility, error) {
	row, err := q.GetFacilityByID(ctx, facilityID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Facility{}, NotFoundError{Resource: "facility", ID: facilityID}
		}
		return Facility{}, fmt.Errorf("get facility: %w", err)
	}
	if row.SocietyID != societyID {
		return Facility{}, NotFoundError{Resource: "facility", ID: facilityID}
	}
	return facilityFromRow(row), nil
}
