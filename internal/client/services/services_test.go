package services

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/dmitrijs2005/babycare/internal/client/client"
	"github.com/dmitrijs2005/babycare/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/babycare/internal/client/session"
	"github.com/dmitrijs2005/babycare/internal/logging"
	"github.com/dmitrijs2005/babycare/internal/testutil/fakebackend"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

// ---- helpers ----

type env struct {
	backend *fakebackend.Backend
	gw      *client.HTTPClient
	db      *sql.DB
	session *session.Session
}

func setup(t *testing.T) *env {
	t.Helper()
	fb := fakebackend.New()
	srv := fb.Start(t)

	gw, err := client.NewHTTPClient(srv.URL, time.Second)
	require.NoError(t, err)

	dsn := fmt.Sprintf("file:services_%s?mode=memory&cache=shared", t.Name())
	db, err := client.InitDatabase(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	slots := metadata.NewSQLiteRepository(db)
	return &env{
		backend: fb,
		gw:      gw,
		db:      db,
		session: session.New(session.NewMetadataTokenStore(slots), slots),
	}
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

var quiet = logging.Discard()
