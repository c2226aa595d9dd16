package tracking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/babycare/internal/client/client"
	"github.com/dmitrijs2005/babycare/internal/client/forms"
	"github.com/dmitrijs2005/babycare/internal/client/models"
	"github.com/dmitrijs2005/babycare/internal/common"
	"github.com/dmitrijs2005/babycare/internal/logging"
	"github.com/google/uuid"
)

const (
	msgSaveFailed    = "could not save growth record, please try again"
	msgRefreshFailed = "growth record saved, but the list could not be refreshed"
	msgLoginAgain    = "your session has ended, please log in again"
	msgNoBabyProfile = "no baby profile selected"
)

// GrowthBackend is the part of the gateway the growth log uses.
type GrowthBackend interface {
	ListGrowthRecords(ctx context.Context, token, babyID string) ([]models.GrowthRecord, error)
	CreateGrowthRecord(ctx context.Context, token, babyID string, rec models.NewGrowthRecord) (*models.GrowthRecord, error)
}

// SessionReader supplies the credential and baby profile for backend calls.
type SessionReader interface {
	Token(ctx context.Context) (string, bool, error)
	BabyID(ctx context.Context) (string, error)
}

type DraftState string

const (
	DraftOpen      DraftState = "draft"
	DraftSubmitted DraftState = "submitted"
)

// PersistResult describes the outcome of GrowthLog.Add. State is
// DraftSubmitted once the backend accepted the record.
type PersistResult struct {
	State   DraftState
	Created *models.GrowthRecord
	Count   int
}

// UserError carries a message fit to show the user next to the cause.
type UserError struct {
	Message string
	Err     error
}

func (e *UserError) Error() string { return e.Message }

func (e *UserError) Unwrap() error { return e.Err }

// GrowthLog is the client view of the append-only growth measurements. The
// list is only ever replaced by a full fetch from the backend.
type GrowthLog struct {
	mu      sync.RWMutex
	records []models.GrowthRecord

	backend GrowthBackend
	session SessionReader
	logger  logging.Logger
	clock   Clock
	newID   func() string
}

func NewGrowthLog(backend GrowthBackend, session SessionReader, logger logging.Logger) *GrowthLog {
	return &GrowthLog{
		backend: backend,
		session: session,
		logger:  logger,
		clock:   time.Now,
		newID:   uuid.NewString,
	}
}

// Records returns a copy of the last fetched list.
func (l *GrowthLog) Records() []models.GrowthRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]models.GrowthRecord, len(l.records))
	copy(out, l.records)
	return out
}

// Refresh refetches the whole list. On error the current list is kept.
func (l *GrowthLog) Refresh(ctx context.Context) error {
	token, babyID, err := l.credentials(ctx)
	if err != nil {
		return err
	}
	return l.refresh(ctx, token, babyID)
}

// Add validates draft, creates one record and refetches the list. The draft
// is never modified; on any failure the list stays as it was and the error
// is forms.FieldErrors or *UserError.
func (l *GrowthLog) Add(ctx context.Context, draft forms.GrowthDraft) (PersistResult, error) {
	res := PersistResult{State: DraftOpen}

	m, err := draft.Parse(l.clock())
	if err != nil {
		return res, err
	}

	token, babyID, err := l.credentials(ctx)
	if err != nil {
		return res, err
	}

	created, err := l.backend.CreateGrowthRecord(ctx, token, babyID, models.NewGrowthRecord{
		ClientID:   l.newID(),
		Height:     m.Height,
		Weight:     m.Weight,
		HeadSize:   m.HeadSize,
		MeasuredAt: m.MeasuredAt,
		Notes:      m.Notes,
	})
	if err != nil {
		l.logger.Warn(ctx, "create growth record failed", "baby_id", babyID, "error", err)
		return res, userError(err, msgSaveFailed)
	}

	res.State = DraftSubmitted
	res.Created = created

	if err := l.refresh(ctx, token, babyID); err != nil {
		l.logger.Warn(ctx, "refresh after growth create failed", "baby_id", babyID, "error", err)
		return res, &UserError{Message: msgRefreshFailed, Err: err}
	}

	res.Count = len(l.Records())
	return res, nil
}

func (l *GrowthLog) refresh(ctx context.Context, token, babyID string) error {
	recs, err := l.backend.ListGrowthRecords(ctx, token, babyID)
	if err != nil {
		return fmt.Errorf("list growth records: %w", err)
	}

	l.mu.Lock()
	l.records = recs
	l.mu.Unlock()
	return nil
}

func (l *GrowthLog) credentials(ctx context.Context) (string, string, error) {
	token, ok, err := l.session.Token(ctx)
	if err != nil || !ok {
		if err == nil {
			err = common.ErrNoSession
		}
		return "", "", &UserError{Message: msgLoginAgain, Err: err}
	}

	babyID, err := l.session.BabyID(ctx)
	if err != nil {
		return "", "", &UserError{Message: msgSaveFailed, Err: err}
	}
	if babyID == "" {
		return "", "", &UserError{Message: msgNoBabyProfile, Err: ErrNoBabyProfile}
	}
	return token, babyID, nil
}

// userError prefers the backend's own message, then fallback.
func userError(err error, fallback string) *UserError {
	if errors.Is(err, client.ErrUnauthorized) {
		return &UserError{Message: msgLoginAgain, Err: err}
	}
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return &UserError{Message: apiErr.Message, Err: err}
	}
	return &UserError{Message: fallback, Err: err}
}
