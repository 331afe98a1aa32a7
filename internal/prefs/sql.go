package prefs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/codr1/Gatehouse/internal/db"
	dbgen "github.com/codr1/Gatehouse/internal/db/generated"
)

// SQLStore keeps preferences in the preferences table.
type SQLStore struct {
	queries *dbgen.Queries
}

func NewSQLStore(database *db.DB) *SQLStore {
	return &SQLStore{queries: database.Queries}
}

func (s *SQLStore) Get(ctx context.Context, userID, key string) (string, bool, error) {
	value, err := s.queries.GetPreference(ctx, dbgen.GetPreferenceParams{UserID: userID, Key: key})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get preference %s: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLStore) Set(ctx context.Context, userID, key, value string) error {
	if err := s.queries.UpsertPreference(ctx, dbgen.UpsertPreferenceParams{UserID: userID, Key: key, Value: value}); err != nil {
		return fmt.Errorf("set preference %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, userID, key string) error {
	if err := s.queries.DeletePreference(ctx, dbgen.DeletePreferenceParams{UserID: userID, Key: key}); err != nil {
		return fmt.Errorf("delete preference %s: %w", key, err)
	}
	return nil
}
