package community

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/codr1/Gatehouse/internal/db"
	dbgen "github.com/codr1/Gatehouse/internal/db/generated"
)

const (
	maxNoticeTitleLength       = 200
	maxNoticeDescriptionLength = 5000
	maxNoticeLinkLength        = 500
)

type Notice struct {
	ID          string    `json:"id"`
	SocietyID   string    `json:"society_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Link        string    `json:"link,omitempty"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type NoticeParams struct {
	Title       string
	Description string
	Link        string
}

// Noticeboard holds society announcements. Managers write, every member reads.
type Noticeboard struct {
	db *db.DB
}

func NewNoticeboard(database *db.DB) *Noticeboard {
	return &Noticeboard{db: database}
}

func (n *Noticeboard) Post(ctx context.Context, actor Actor, params NoticeParams) (Notice, error) {
	if err := actor.validate(); err != nil {
		return Notice{}, err
	}
	if !actor.CanManage() {
		return Notice{}, NotAuthorizedError{Action: "post notices"}
	}
	params, err := cleanNotice(params)
	if err != nil {
		return Notice{}, err
	}

	var created Notice
	err = n.db.RunInTx(ctx, func(txdb *db.DB) error {
		id := uuid.NewString()
		if err := txdb.Queries.CreateNotice(ctx, dbgen.CreateNoticeParams{
			ID:          id,
			SocietyID:   actor.SocietyID,
			Title:       params.Title,
			Description: params.Description,
			Link:        nullString(params.Link),
			CreatedBy:   actor.UserID,
		}); err != nil {
			return fmt.Errorf("create notice: %w", err)
		}
		row, err := txdb.Queries.GetNotice(ctx, dbgen.GetNoticeParams{ID: id, SocietyID: actor.SocietyID})
		if err != nil {
			return fmt.Errorf("load notice: %w", err)
		}
		created = noticeFromRow(row)
		return nil
	})
	if err != nil {
		return Notice{}, err
	}

	log.Ctx(ctx).Info().
		Str("society_id", created.SocietyID).
		Str("notice_id", created.ID).
		Str("created_by", created.CreatedBy).
		Msg("Notice posted")
	return created, nil
}

// Update replaces title, description and link of a notice in the actor's
// society.
func (n *Noticeboard) Update(ctx context.Context, actor Actor, noticeID string, params NoticeParams) (Notice, error) {
	if err := actor.validate(); err != nil {
		return Notice{}, err
	}
	if !actor.CanManage() {
		return Notice{}, NotAuthorizedError{Action: "edit notices"}
	}
	params, err := cleanNotice(params)
	if err != nil {
		return Notice{}, err
	}

	var updated Notice
	err = n.db.RunInTx(ctx, func(txdb *db.DB) error {
		affected, err := txdb.Queries.UpdateNotice(ctx, dbgen.UpdateNoticeParams{
			Title:       params.Title,
			Description: params.Description,
			Link:        nullString(params.Link),
			ID:          noticeID,
			SocietyID:   actor.SocietyID,
		})
		if err != nil {
			return fmt.Errorf("update notice: %w", err)
		}
		if affected == 0 {
			return NotFoundError{Resource: "notice", ID: noticeID}
		}
		row, err := txdb.Queries.GetNotice(ctx, dbgen.GetNoticeParams{ID: noticeID, SocietyID: actor.SocietyID})
		if err != nil {
			return fmt.Errorf("load notice: %w", err)
		}
		updated = noticeFromRow(row)
		return nil
	})
	if err != nil {
		return Notice{}, err
	}

	log.Ctx(ctx).Info().
		Str("society_id", updated.SocietyID).
		Str("notice_id", updated.ID).
		Str("updated_by", actor.UserID).
		Msg("Notice updated")
	return updated, nil
}

func (n *Noticeboard) Remove(ctx context.Context, actor Actor, noticeID string) error {
	if err := actor.validate(); err != nil {
		return err
	}
	if !actor.CanManage() {
		return NotAuthorizedError{Action: "delete notices"}
	}
	affected, err := n.db.Queries.DeleteNotice(ctx, dbgen.DeleteNoticeParams{ID: noticeID, SocietyID: actor.SocietyID})
	if err != nil {
		return fmt.Errorf("delete notice: %w", err)
	}
	if affected == 0 {
		return NotFoundError{Resource: "notice", ID: noticeID}
	}

	log.Ctx(ctx).Info().
		Str("society_id", actor.SocietyID).
		Str("notice_id", noticeID).
		Str("deleted_by", actor.UserID).
		Msg("Notice deleted")
	return nil
}

// List returns the society's notices, newest first.
func (n *Noticeboard) List(ctx context.Context, societyID string) ([]Notice, error) {
	rows, err := n.db.Queries.ListNotices(ctx, societyID)
	if err != nil {
		return nil, fmt.Errorf("list notices: %w", err)
	}
	out := make([]Notice, 0, len(rows))
	for _, row := range rows {
		out = append(out, noticeFromRow(row))
	}
	return out, nil
}

func (n *Noticeboard) Get(ctx context.Context, societyID, noticeID string) (Notice, error) {
	row, err := n.db.Queries.GetNotice(ctx, dbgen.GetNoticeParams{ID: noticeID, SocietyID: societyID})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Notice{}, NotFoundError{Resource: "notice", ID: noticeID}
		}
		return Notice{}, fmt.Errorf("get notice: %w", err)
	}
	return noticeFromRow(row), nil
}

func cleanNotice(params NoticeParams) (NoticeParams, error) {
	var err error
	if params.Title, err = requireText("title", params.Title, maxNoticeTitleLength); err != nil {
		return params, err
	}
	if params.Description, err = requireText("description", params.Description, maxNoticeDescriptionLength); err != nil {
		return params, err
	}
	params.Link = strings.TrimSpace(params.Link)
	if params.Link == "" {
		return params, nil
	}
	if err := limitText("link", params.Link, maxNoticeLinkLength); err != nil {
		return params, err
	}
	parsed, parseErr := url.Parse(params.Link)
	if parseErr != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return params, ValidationError{Field: "link", Reason: "link must be an http or https URL"}
	}
	return params, nil
}

func noticeFromRow(row dbgen.Notice) Notice {
	return Notice{
		ID:          row.ID,
		SocietyID:   row.SocietyID,
		Title:       row.Title,
		Description: row.Description,
		Link:        row.Link.String,
		CreatedBy:   row.CreatedBy,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
