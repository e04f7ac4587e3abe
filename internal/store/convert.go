package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"fieldpro.app/relay/internal/model"
)

func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%w: %s", ErrDuplicate, pgErr.ConstraintName)
	}
	return err
}

// rowsAffected turns a zero-row delete into ErrNotFound.
func rowsAffected(n int64, err error) error {
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func timeToPgTimestamptz(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{Valid: false}
	}
	return pgtype.Timestamptz{Time: *t, Valid: true}
}

func pgTimestamptzToTime(ts pgtype.Timestamptz) *time.Time {
	if !ts.Valid {
		return nil
	}
	t := ts.Time
	return &t
}

func encodeLineItems(items []model.LineItem) ([]byte, error) {
	if items == nil {
		items = []model.LineItem{}
	}
	return json.Marshal(items)
}

func decodeLineItems(raw []byte) []model.LineItem {
	items := []model.LineItem{}
	if len(raw) == 0 {
		return items
	}
	// Rows are written by encodeLineItems; a decode failure means a hand-edited
	// row and is surfaced as an empty list.
	_ = json.Unmarshal(raw, &items)
	return items
}
