// Package tracking holds the tracked-record state of the client: the
// immunization and milestone checklists and the growth log.
package tracking

import (
	"context"
	"errors"
	"time"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrNoBabyProfile  = errors.New("no baby profile selected")
)

// Kind names a checklist.
type Kind string

const (
	KindImmunization Kind = "immunization"
	KindMilestone    Kind = "milestone"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusScheduled Status = "scheduled"
)

// Metadata is optional free text attached to a record.
type Metadata struct {
	AdministeredBy string
	AdministeredAt string
	Notes          string
}

// Record is one checklist item. OccurredAt is set exactly when the record is
// completed.
type Record struct {
	ID         string
	GroupID    string
	GroupLabel string
	Title      string
	Status     Status
	OccurredAt *time.Time
	Metadata   Metadata
}

func (r Record) Completed() bool {
	return r.Status == StatusCompleted
}

// clone returns r with its own copy of OccurredAt.
func (r Record) clone() Record {
	if r.OccurredAt != nil {
		t := *r.OccurredAt
		r.OccurredAt = &t
	}
	return r
}

// Group is an age bucket of records, e.g. "2 months".
type Group struct {
	ID      string
	Label   string
	Records []Record
}

func (g Group) clone() Group {
	recs := make([]Record, len(g.Records))
	for i, r := range g.Records {
		recs[i] = r.clone()
	}
	g.Records = recs
	return g
}

// Clock returns the current time.
type Clock func() time.Time

// Persister receives every local checklist change. Implementations decide
// where, if anywhere, the change is stored.
type Persister interface {
	PersistToggle(ctx context.Context, kind Kind, rec Record) error
}

// LocalOnly keeps changes in memory only; they are lost on restart.
type LocalOnly struct{}

func (LocalOnly) PersistToggle(context.Context, Kind, Record) error { return nil }
