package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/readtrack/internal/client/models"
	"github.com/dmitrijs2005/readtrack/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/readtrack/internal/common"
	"github.com/dmitrijs2005/readtrack/internal/dbx"
)

// savedAtKey records when the current record was persisted.
const savedAtKey = common.SessionKey + ".savedAt"

// Store persists at most one session record. Load returns (nil, nil) when
// nothing is stored.
type Store interface {
	Load(ctx context.Context) (*models.Session, error)
	Save(ctx context.Context, s models.Session) error
	Remove(ctx context.Context) error
}

// SQLiteStore keeps the record as JSON under common.SessionKey in the
// metadata table.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db, now: time.Now}
}

func (s *SQLiteStore) Load(ctx context.Context) (*models.Session, error) {
	raw, err := metadata.NewSQLiteRepository(s.db).Get(ctx, common.SessionKey)
	if errors.Is(err, metadata.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var rec models.Session
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode session record: %w", err)
	}
	return &rec, nil
}

func (s *SQLiteStore) Save(ctx context.Context, rec models.Session) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode session record: %w", err)
	}
	savedAt := s.now().UTC().Format(time.RFC3339)

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, common.SessionKey, raw); err != nil {
			return err
		}
		return repo.Set(ctx, savedAtKey, []byte(savedAt))
	})
}

func (s *SQLiteStore) Remove(ctx context.Context) error {
	return metadata.NewSQLiteRepository(s.db).Delete(ctx, common.SessionKey, savedAtKey)
}

// SavedAt reports when the current record was written; ok is false when
// no record is stored.
func (s *SQLiteStore) SavedAt(ctx context.Context) (t time.Time, ok bool, err error) {
	raw, err := metadata.NewSQLiteRepository(s.db).Get(ctx, savedAtKey)
	if errors.Is(err, metadata.ErrNotFound) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	t, err = time.Parse(time.RFC3339, string(raw))
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse saved-at: %w", err)
	}
	return t, true, nil
}
