package checklist

import (
	"context"

	"github.com/dmitrijs2005/babycare/internal/client/tracking"
)

// SQLitePersister stores every checklist change in the local database.
type SQLitePersister struct {
	repo Repository
}

func NewSQLitePersister(repo Repository) *SQLitePersister {
	return &SQLitePersister{repo: repo}
}

func (p *SQLitePersister) PersistToggle(ctx context.Context, kind tracking.Kind, rec tracking.Record) error {
	return p.repo.Upsert(ctx, kind, rec)
}

// Load restores the saved records of c's kind into c.
func (p *SQLitePersister) Load(ctx context.Context, c *tracking.Checklist) (int, error) {
	recs, err := p.repo.ListByKind(ctx, c.Kind())
	if err != nil {
		return 0, err
	}
	return c.Restore(recs), nil
}
