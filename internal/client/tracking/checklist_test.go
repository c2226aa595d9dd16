package tracking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock struct{ t time.Time }

func (c *fixedClock) now() time.Time { return c.t }

type recordingPersister struct {
	mu    sync.Mutex
	calls []Record
	kinds []Kind
	err   error
}

func (p *recordingPersister) PersistToggle(_ context.Context, kind Kind, rec Record) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, rec)
	p.kinds = append(p.kinds, kind)
	return p.err
}

func findIn(groups []Group, groupID, recordID string) Record {
	for _, g := range groups {
		if g.ID != groupID {
			continue
		}
		for _, r := range g.Records {
			if r.ID == recordID {
				return r
			}
		}
	}
	return Record{}
}

func TestDefaultCatalogues_UniqueIDsPerGroup(t *testing.T) {
	for _, groups := range [][]Group{DefaultImmunizationSchedule(), DefaultMilestones()} {
		require.NotEmpty(t, groups)
		for _, g := range groups {
			seen := map[string]bool{}
			for _, r := range g.Records {
				assert.False(t, seen[r.ID], "duplicate %s in %s", r.ID, g.ID)
				seen[r.ID] = true
				assert.Equal(t, g.ID, r.GroupID)
				assert.Equal(t, g.Label, r.GroupLabel)
				assert.Equal(t, StatusPending, r.Status)
				assert.Nil(t, r.OccurredAt)
			}
		}
	}
}

func TestDefaultCatalogues_AreFreshCopies(t *testing.T) {
	a := DefaultImmunizationSchedule()
	a[0].Records[0].Status = StatusCompleted

	b := DefaultImmunizationSchedule()
	require.Equal(t, StatusPending, b[0].Records[0].Status)
	require.Equal(t, "birth", b[0].ID)
	require.Equal(t, "bcg", b[0].Records[0].ID)

	require.Equal(t, "24m", DefaultMilestones()[len(DefaultMilestones())-1].ID)
	require.Equal(t, "2m", DefaultGroups(KindMilestone)[0].ID)
	require.Equal(t, "birth", DefaultGroups(KindImmunization)[0].ID)
}

func TestToggle_BCGScenario(t *testing.T) {
	clk := &fixedClock{t: time.Date(2026, 1, 15, 8, 0, 0, 0, time.UTC)}
	c := NewChecklist(KindImmunization, DefaultImmunizationSchedule(), WithClock(clk.now))
	ctx := context.Background()

	groups, err := c.Toggle(ctx, "birth", "bcg")
	require.NoError(t, err)
	bcg := findIn(groups, "birth", "bcg")
	require.True(t, bcg.Completed())
	require.NotNil(t, bcg.OccurredAt)
	require.Equal(t, clk.t, *bcg.OccurredAt)

	groups, err = c.Toggle(ctx, "birth", "bcg")
	require.NoError(t, err)
	bcg = findIn(groups, "birth", "bcg")
	require.False(t, bcg.Completed())
	require.Equal(t, StatusPending, bcg.Status)
	require.Nil(t, bcg.OccurredAt)
}

func TestToggle_TwiceRestoresOriginal(t *testing.T) {
	c := NewChecklist(KindMilestone, DefaultMilestones())
	before := c.Groups()

	_, err := c.Toggle(context.Background(), "6m", "rolls-over")
	require.NoError(t, err)
	after, err := c.Toggle(context.Background(), "6m", "rolls-over")
	require.NoError(t, err)

	require.Equal(t, before, after)
}

func TestToggle_ScheduledBecomesCompleted(t *testing.T) {
	groups := []Group{{ID: "2m", Label: "2 months", Records: []Record{
		{ID: "rv-1", GroupID: "2m", Title: "Rotavirus", Status: StatusScheduled},
	}}}
	c := NewChecklist(KindImmunization, groups)

	out, err := c.Toggle(context.Background(), "2m", "rv-1")
	require.NoError(t, err)
	require.Equal(t, StatusCompleted, out[0].Records[0].Status)
	require.NotNil(t, out[0].Records[0].OccurredAt)
}

func TestToggle_UnknownIDs(t *testing.T) {
	c := NewChecklist(KindImmunization, DefaultImmunizationSchedule())

	_, err := c.Toggle(context.Background(), "birth", "nope")
	require.ErrorIs(t, err, ErrRecordNotFound)

	_, err = c.Toggle(context.Background(), "99m", "bcg")
	require.ErrorIs(t, err, ErrRecordNotFound)

	require.Zero(t, c.Version())
}

func TestToggle_CopyOnWriteAndVersion(t *testing.T) {
	c := NewChecklist(KindImmunization, DefaultImmunizationSchedule())
	snapshot := c.Groups()

	_, err := c.Toggle(context.Background(), "birth", "bcg")
	require.NoError(t, err)

	require.Equal(t, uint64(1), c.Version())
	require.False(t, findIn(snapshot, "birth", "bcg").Completed(), "earlier snapshot must not change")

	returned, err := c.Toggle(context.Background(), "2m", "dtap-1")
	require.NoError(t, err)
	returned[0].Records[0].Status = StatusScheduled

	rec, err := c.Find("birth", "bcg")
	require.NoError(t, err)
	require.True(t, rec.Completed())
	require.Equal(t, uint64(2), c.Version())
}

func TestToggle_PersisterReceivesChangeAndFailureKeepsLocalState(t *testing.T) {
	p := &recordingPersister{err: errors.New("offline")}
	c := NewChecklist(KindMilestone, DefaultMilestones(), WithPersister(p))

	groups, err := c.Toggle(context.Background(), "2m", "social-smile")
	require.Error(t, err)
	require.ErrorContains(t, err, "offline")
	require.True(t, findIn(groups, "2m", "social-smile").Completed())

	rec, err := c.Find("2m", "social-smile")
	require.NoError(t, err)
	require.True(t, rec.Completed())

	require.Len(t, p.calls, 1)
	require.Equal(t, KindMilestone, p.kinds[0])
	require.Equal(t, "social-smile", p.calls[0].ID)
}

func TestSetMetadata(t *testing.T) {
	p := &recordingPersister{}
	c := NewChecklist(KindImmunization, DefaultImmunizationSchedule(), WithPersister(p))

	md := Metadata{AdministeredBy: "Dr. Ozols", AdministeredAt: "City clinic", Notes: "left arm"}
	rec, err := c.SetMetadata(context.Background(), "birth", "hepb-1", md)
	require.NoError(t, err)
	require.Equal(t, md, rec.Metadata)
	require.Equal(t, uint64(1), c.Version())
	require.Len(t, p.calls, 1)

	_, err = c.SetMetadata(context.Background(), "birth", "missing", md)
	require.ErrorIs(t, err, ErrRecordNotFound)
}

func TestRestore(t *testing.T) {
	p := &recordingPersister{}
	c := NewChecklist(KindImmunization, DefaultImmunizationSchedule(), WithPersister(p))
	at := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	n := c.Restore([]Record{
		{ID: "bcg", GroupID: "birth", Status: StatusCompleted, OccurredAt: &at, Metadata: Metadata{Notes: "ok"}},
		{ID: "retired", GroupID: "birth", Status: StatusCompleted},
	})
	require.Equal(t, 1, n)
	require.Empty(t, p.calls)

	rec, err := c.Find("birth", "bcg")
	require.NoError(t, err)
	require.True(t, rec.Completed())
	require.Equal(t, at, *rec.OccurredAt)
	require.Equal(t, "ok", rec.Metadata.Notes)

	done, total := c.Progress()
	require.Equal(t, 1, done)
	require.Greater(t, total, 20)
}
