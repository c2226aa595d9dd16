// Package checklist keeps a local snapshot of changed checklist records so
// toggles survive a restart when local persistence is enabled.
package checklist

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/babycare/internal/client/tracking"
	"github.com/dmitrijs2005/babycare/internal/dbx"
)

type Repository interface {
	Upsert(ctx context.Context, kind tracking.Kind, rec tracking.Record) error
	ListByKind(ctx context.Context, kind tracking.Kind) ([]tracking.Record, error)
	DeleteAll(ctx context.Context) error
}

type SQLiteRepository struct {
	db  dbx.DBTX
	now func() time.Time
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: time.Now}
}

func (r *SQLiteRepository) Upsert(ctx context.Context, kind tracking.Kind, rec tracking.Record) error {
	var occurred sql.NullTime
	if rec.OccurredAt != nil {
		occurred = sql.NullTime{Time: rec.OccurredAt.UTC(), Valid: true}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO checklist_records
			(kind, group_id, record_id, status, occurred_at, administered_by, administered_at, notes, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(kind, group_id, record_id) DO UPDATE SET
			status          = excluded.status,
			occurred_at     = excluded.occurred_at,
			administered_by = excluded.administered_by,
			administered_at = excluded.administered_at,
			notes           = excluded.notes,
			updated_at      = excluded.updated_at
	`, string(kind), rec.GroupID, rec.ID, string(rec.Status), occurred,
		rec.Metadata.AdministeredBy, rec.Metadata.AdministeredAt, rec.Metadata.Notes, r.now().UTC())
	if err != nil {
		return fmt.Errorf("upsert %s record %s/%s: %w", kind, rec.GroupID, rec.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) ListByKind(ctx context.Context, kind tracking.Kind) ([]tracking.Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT group_id, record_id, status, occurred_at, administered_by, administered_at, notes
		FROM checklist_records
		WHERE kind = ?
		ORDER BY group_id, record_id
	`, string(kind))
	if err != nil {
		return nil, fmt.Errorf("list %s records: %w", kind, err)
	}
	defer rows.Close()

	var out []tracking.Record
	for rows.Next() {
		var (
			rec      tracking.Record
			status   string
			occurred sql.NullTime
		)
		if err := rows.Scan(&rec.GroupID, &rec.ID, &status, &occurred,
			&rec.Metadata.AdministeredBy, &rec.Metadata.AdministeredAt, &rec.Metadata.Notes); err != nil {
			return nil, fmt.Errorf("scan %s record: %w", kind, err)
		}
		rec.Status = tracking.Status(status)
		if occurred.Valid {
			t := occurred.Time
			rec.OccurredAt = &t
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s records: %w", kind, err)
	}
	return out, nil
}

func (r *SQLiteRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM checklist_records`); err != nil {
		return fmt.Errorf("delete checklist records: %w", err)
	}
	return nil
}
