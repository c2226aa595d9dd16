package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/babycare/internal/client/client"
	"github.com/dmitrijs2005/babycare/internal/client/config"
	"github.com/dmitrijs2005/babycare/internal/client/models"
	"github.com/dmitrijs2005/babycare/internal/client/repositories/checklist"
	"github.com/dmitrijs2005/babycare/internal/client/session"
	"github.com/dmitrijs2005/babycare/internal/client/tracking"
	"github.com/dmitrijs2005/babycare/internal/common"
	"github.com/dmitrijs2005/babycare/internal/logging"
)

// TrackingService holds the tracked-record state for one running client.
type TrackingService struct {
	Immunizations *tracking.Checklist
	Milestones    *tracking.Checklist
	Growth        *tracking.GrowthLog
}

// NewTrackingService builds both checklists from the default catalogues and
// wires the persister selected by mode (config.PersistenceNone, Local or
// Remote). With local persistence saved toggles are restored from db.
func NewTrackingService(ctx context.Context, c client.Client, s *session.Session, db *sql.DB, mode string, logger logging.Logger) (*TrackingService, error) {
	var (
		persister tracking.Persister = tracking.LocalOnly{}
		local     *checklist.SQLitePersister
	)

	switch mode {
	case config.PersistenceNone, "":
	case config.PersistenceLocal:
		if db == nil {
			return nil, fmt.Errorf("toggle persistence %q needs a local database", mode)
		}
		local = checklist.NewSQLitePersister(checklist.NewSQLiteRepository(db))
		persister = local
	case config.PersistenceRemote:
		persister = NewRemotePersister(c, s)
	default:
		return nil, fmt.Errorf("unknown toggle persistence %q", mode)
	}

	opts := []tracking.ChecklistOption{tracking.WithPersister(persister), tracking.WithLogger(logger)}
	svc := &TrackingService{
		Immunizations: tracking.NewChecklist(tracking.KindImmunization, tracking.DefaultImmunizationSchedule(), opts...),
		Milestones:    tracking.NewChecklist(tracking.KindMilestone, tracking.DefaultMilestones(), opts...),
		Growth:        tracking.NewGrowthLog(c, s, logger),
	}

	if local != nil {
		for _, cl := range []*tracking.Checklist{svc.Immunizations, svc.Milestones} {
			n, err := local.Load(ctx, cl)
			if err != nil {
				return nil, fmt.Errorf("restore %s checklist: %w", cl.Kind(), err)
			}
			logger.Debug(ctx, "checklist restored", "kind", cl.Kind(), "records", n)
		}
	}

	return svc, nil
}

// Checklist returns the checklist of kind.
func (s *TrackingService) Checklist(kind tracking.Kind) *tracking.Checklist {
	if kind == tracking.KindMilestone {
		return s.Milestones
	}
	return s.Immunizations
}

// RemotePersister sends every checklist change to the backend.
type RemotePersister struct {
	client  client.Client
	session *session.Session
}

func NewRemotePersister(c client.Client, s *session.Session) *RemotePersister {
	return &RemotePersister{client: c, session: s}
}

func (p *RemotePersister) PersistToggle(ctx context.Context, kind tracking.Kind, rec tracking.Record) error {
	token, ok, err := p.session.Token(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("persist %s: %w", kind, common.ErrNoSession)
	}
	babyID, err := p.session.BabyID(ctx)
	if err != nil {
		return err
	}
	if babyID == "" {
		return tracking.ErrNoBabyProfile
	}

	upd := models.RecordUpdate{
		GroupID:        rec.GroupID,
		Status:         string(rec.Status),
		OccurredAt:     rec.OccurredAt,
		AdministeredBy: rec.Metadata.AdministeredBy,
		AdministeredAt: rec.Metadata.AdministeredAt,
		Notes:          rec.Metadata.Notes,
	}
	if kind == tracking.KindMilestone {
		return p.client.UpdateMilestone(ctx, token, babyID, rec.ID, upd)
	}
	return p.client.UpdateImmunization(ctx, token, babyID, rec.ID, upd)
}
