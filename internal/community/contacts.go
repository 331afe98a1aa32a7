package community

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nyaruka/phonenumbers"
	"github.com/rs/zerolog/log"

	"github.com/codr1/Gatehouse/internal/db"
	dbgen "github.com/codr1/Gatehouse/internal/db/generated"
)

// ContactCategories lists the accepted emergency contact categories.
var ContactCategories = []string{"police", "fire", "hospital", "other"}

const (
	maxContactNameLength        = 120
	maxContactDescriptionLength = 300
)

// shortCodePattern matches service numbers such as 100, 101 or 112 that are
// dialled as-is and are not valid subscriber numbers.
var shortCodePattern = regexp.MustCompile(`^[0-9]{3,6}$`)

type EmergencyContact struct {
	ID          string    `json:"id"`
	SocietyID   string    `json:"society_id"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ContactParams struct {
	Name        string
	Phone       string
	Category    string
	Description string
}

// Directory is the society's emergency contact list.
type Directory struct {
	db     *db.DB
	region string
}

// NewDirectory returns a Directory that reads numbers without a +country
// prefix as belonging to region, an ISO 3166 code such as "IN".
func NewDirectory(database *db.DB, region string) *Directory {
	return &Directory{db: database, region: strings.ToUpper(strings.TrimSpace(region))}
}

// NormalizePhone returns short service codes unchanged and every other number
// in E.164 form.
func NormalizePhone(raw, region string) (string, error) {
	compact := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(strings.TrimSpace(raw))
	if compact == "" {
		return "", ValidationError{Field: "phone", Reason: "phone is required"}
	}
	if shortCodePattern.MatchString(compact) {
		return compact, nil
	}
	number, err := phonenumbers.Parse(compact, region)
	if err != nil || !phonenumbers.IsValidNumber(number) {
		return "", ValidationError{Field: "phone", Reason: "phone must be a valid phone number"}
	}
	return phonenumbers.Format(number, phonenumbers.E164), nil
}

func (d *Directory) Add(ctx context.Context, actor Actor, params ContactParams) (EmergencyContact, error) {
	if err := actor.validate(); err != nil {
		return EmergencyContact{}, err
	}
	if !actor.CanManage() {
		return EmergencyContact{}, NotAuthorizedError{Action: "add emergency contacts"}
	}

	name, err := requireText("name", params.Name, maxContactNameLength)
	if err != nil {
		return EmergencyContact{}, err
	}
	phone, err := NormalizePhone(params.Phone, d.region)
	if err != nil {
		return EmergencyContact{}, err
	}
	category := strings.ToLower(strings.TrimSpace(params.Category))
	if category == "" {
		category = "other"
	}
	if !slices.Contains(ContactCategories, category) {
		return EmergencyContact{}, ValidationError{Field: "category", Reason: "category must be police, fire, hospital or other"}
	}
	description := strings.TrimSpace(params.Description)
	if err := limitText("description", description, maxContactDescriptionLength); err != nil {
		return EmergencyContact{}, err
	}

	var created EmergencyContact
	err = d.db.RunInTx(ctx, func(txdb *db.DB) error {
		id := uuid.NewString()
		if err := txdb.Queries.CreateEmergencyContact(ctx, dbgen.CreateEmergencyContactParams{
			ID:          id,
			SocietyID:   actor.SocietyID,
			Name:        name,
			Phone:       phone,
			Category:    category,
			Description: nullString(description),
		}); err != nil {
			return fmt.Errorf("create emergency contact: %w", err)
		}
		row, err := txdb.Queries.GetEmergencyContact(ctx, dbgen.GetEmergencyContactParams{ID: id, SocietyID: actor.SocietyID})
		if err != nil {
			return fmt.Errorf("load emergency contact: %w", err)
		}
		created = contactFromRow(row)
		return nil
	})
	if err != nil {
		return EmergencyContact{}, err
	}

	log.Ctx(ctx).Info().
		Str("society_id", created.SocietyID).
		Str("contact_id", created.ID).
		Str("category", created.Category).
		Msg("Emergency contact added")
	return created, nil
}

func (d *Directory) Remove(ctx context.Context, actor Actor, contactID string) error {
	if err := actor.validate(); err != nil {
		return err
	}
	if !actor.CanManage() {
		return NotAuthorizedError{Action: "delete emergency contacts"}
	}
	affected, err := d.db.Queries.DeleteEmergencyContact(ctx, dbgen.DeleteEmergencyContactParams{ID: contactID, SocietyID: actor.SocietyID})
	if err != nil {
		return fmt.Errorf("delete emergency contact: %w", err)
	}
	if affected == 0 {
		return NotFoundError{Resource: "emergency contact", ID: contactID}
	}

	log.Ctx(ctx).Info().
		Str("society_id", actor.SocietyID).
		Str("contact_id", contactID).
		Msg("Emergency contact deleted")
	return nil
}

// List returns the society's contacts grouped by category, then by name.
func (d *Directory) List(ctx context.Context, societyID string) ([]EmergencyContact, error) {
	rows, err := d.db.Queries.ListEmergencyContacts(ctx, societyID)
	if err != nil {
		return nil, fmt.Errorf("list emergency contacts: %w", err)
	}
	out := make([]EmergencyContact, 0, len(rows))
	for _, row := range rows {
		out = append(out, contactFromRow(row))
	}
	return out, nil
}

func contactFromRow(row dbgen.EmergencyContact) EmergencyContact {
	return EmergencyContact{
		ID:          row.ID,
		SocietyID:   row.SocietyID,
		Name:        row.Name,
		Phone:       row.Phone,
		Category:    row.Category,
		Description: row.Description.String,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
