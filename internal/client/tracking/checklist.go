package tracking

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/babycare/internal/logging"
)

// Checklist is the in-memory state of one immunization or milestone list.
//
// Every change replaces the affected group with a fresh copy and bumps
// Version, so slices previously returned by Groups or Toggle never change
// under the caller.
type Checklist struct {
	mu      sync.RWMutex
	kind    Kind
	groups  []Group
	version uint64

	clock     Clock
	persister Persister
	logger    logging.Logger
}

type ChecklistOption func(*Checklist)

func WithClock(clock Clock) ChecklistOption {
	return func(c *Checklist) { c.clock = clock }
}

func WithPersister(p Persister) ChecklistOption {
	return func(c *Checklist) { c.persister = p }
}

func WithLogger(l logging.Logger) ChecklistOption {
	return func(c *Checklist) { c.logger = l }
}

// NewChecklist takes ownership of a copy of groups.
func NewChecklist(kind Kind, groups []Group, opts ...ChecklistOption) *Checklist {
	c := &Checklist{
		kind:      kind,
		groups:    cloneGroups(groups),
		clock:     time.Now,
		persister: LocalOnly{},
		logger:    logging.Discard(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Checklist) Kind() Kind {
	return c.kind
}

// Version increases by one on every applied change.
func (c *Checklist) Version() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}

// Groups returns a deep copy of the current state.
func (c *Checklist) Groups() []Group {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneGroups(c.groups)
}

func (c *Checklist) Find(groupID, recordID string) (Record, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	gi, ri, err := c.locate(groupID, recordID)
	if err != nil {
		return Record{}, err
	}
	return c.groups[gi].Records[ri].clone(), nil
}

// Toggle flips the completion of one record. A record that becomes completed
// gets OccurredAt set to now; one that becomes pending loses it. Scheduled
// records become completed.
//
// The local change is kept even when the persister fails; that error is
// returned together with the new state.
func (c *Checklist) Toggle(ctx context.Context, groupID, recordID string) ([]Group, error) {
	c.mu.Lock()
	gi, ri, err := c.locate(groupID, recordID)
	if err != nil {
		c.mu.Unlock()
		return nil, err
	}

	g := c.groups[gi].clone()
	rec := &g.Records[ri]
	if rec.Completed() {
		rec.Status = StatusPending
		rec.OccurredAt = nil
	} else {
		now := c.clock()
		rec.Status = StatusCompleted
		rec.OccurredAt = &now
	}
	changed := rec.clone()
	c.replace(gi, g)
	out := cloneGroups(c.groups)
	c.mu.Unlock()

	c.logger.Debug(ctx, "checklist toggled", "kind", c.kind, "group", groupID, "record", recordID, "status", changed.Status)
	return out, c.persist(ctx, changed)
}

// SetMetadata replaces the free-text metadata of one record.
func (c *Checklist) SetMetadata(ctx context.Context, groupID, recordID string, md Metadata) (Record, error) {
	c.mu.Lock()
	gi, ri, err := c.locate(groupID, recordID)
	if err != nil {
		c.mu.Unlock()
		return Record{}, err
	}

	g := c.groups[gi].clone()
	g.Records[ri].Metadata = md
	changed := g.Records[ri].clone()
	c.replace(gi, g)
	c.mu.Unlock()

	return changed, c.persist(ctx, changed)
}

// Restore overlays previously saved records onto the current state without
// notifying the persister. Records that no longer exist in the catalogue are
// skipped. It returns how many records were applied.
func (c *Checklist) Restore(saved []Record) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	applied := 0
	for _, s := range saved {
		gi, ri, err := c.locate(s.GroupID, s.ID)
		if err != nil {
			continue
		}
		g := c.groups[gi].clone()
		r := &g.Records[ri]
		r.Status = s.Status
		r.OccurredAt = s.clone().OccurredAt
		r.Metadata = s.Metadata
		c.replace(gi, g)
		applied++
	}
	return applied
}

// Progress reports completed and total record counts.
func (c *Checklist) Progress() (done, total int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, g := range c.groups {
		for _, r := range g.Records {
			total++
			if r.Completed() {
				done++
			}
		}
	}
	return done, total
}

func (c *Checklist) persist(ctx context.Context, rec Record) error {
	if err := c.persister.PersistToggle(ctx, c.kind, rec); err != nil {
		c.logger.Warn(ctx, "persist checklist change failed", "kind", c.kind, "record", rec.ID, "error", err)
		return fmt.Errorf("persist %s %s: %w", c.kind, rec.ID, err)
	}
	return nil
}

// replace swaps in a new group slice. Caller holds the write lock.
func (c *Checklist) replace(gi int, g Group) {
	next := make([]Group, len(c.groups))
	copy(next, c.groups)
	next[gi] = g
	c.groups = next
	c.version++
}

func (c *Checklist) locate(groupID, recordID string) (int, int, error) {
	for gi, g := range c.groups {
		if g.ID != groupID {
			continue
		}
		for ri, r := range g.Records {
			if r.ID == recordID {
				return gi, ri, nil
			}
		}
		return 0, 0, fmt.Errorf("%w: %s/%s", ErrRecordNotFound, groupID, recordID)
	}
	return 0, 0, fmt.Errorf("%w: group %s", ErrRecordNotFound, groupID)
}

func cloneGroups(groups []Group) []Group {
	out := make([]Group, len(groups))
	for i, g := range groups {
		out[i] = g.clone()
	}
	return out
}
