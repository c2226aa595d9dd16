package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/babycare/internal/client/client"
	"github.com/dmitrijs2005/babycare/internal/client/config"
	"github.com/dmitrijs2005/babycare/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/babycare/internal/client/services"
	"github.com/dmitrijs2005/babycare/internal/client/session"
	"github.com/dmitrijs2005/babycare/internal/logging"

	_ "modernc.org/sqlite"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

const pingTimeout = 3 * time.Second

type App struct {
	config      *config.Config
	logger      logging.Logger
	session     *session.Session
	resolver    *session.Resolver
	authService services.AuthService
	tracking    *services.TrackingService

	mu    sync.RWMutex
	route session.Route
	tab   string
	mode  Mode

	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the local database at c.DatabasePath and builds every
// component the REPL needs.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}

	app, err := newApp(ctx, c, logger, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return app, nil
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger, db *sql.DB) (*App, error) {
	gw, err := client.NewHTTPClient(c.ServerBaseURL, c.RequestTimeout)
	if err != nil {
		return nil, err
	}

	slots := metadata.NewSQLiteRepository(db)
	sess := session.New(session.NewMetadataTokenStore(slots), slots, session.WithBabyID(c.BabyID))

	trk, err := services.NewTrackingService(ctx, gw, sess, db, c.TogglePersistence, logger)
	if err != nil {
		return nil, err
	}

	return &App{
		config:      c,
		logger:      logger,
		session:     sess,
		resolver:    session.NewResolver(sess, gw, logger),
		authService: services.NewAuthService(gw, sess, db, logger),
		tracking:    trk,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}, nil
}

// Session exposes the session context, e.g. for one-shot commands.
func (a *App) Session() *session.Session {
	return a.session
}

func (a *App) Resolver() *session.Resolver {
	return a.resolver
}

func (a *App) AuthService() services.AuthService {
	return a.authService
}

func (a *App) Run(ctx context.Context) {
	defer a.authService.Close(ctx)
	a.Root(ctx)
}

func (a *App) currentRoute() session.Route {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.route
}

func (a *App) currentMode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.logger.Info(ctx, "connectivity changed", "mode", mode)
	}
}

// StartOnlineStatusWatcher pings the backend every interval and flips the
// prompt between online and offline. It returns when ctx is done, or at once
// when interval is not positive.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		a.logger.Warn(ctx, "online status watcher disabled", "interval", interval)
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	err := a.authService.Ping(pctx)
	cancel()

	if err != nil {
		a.logger.Debug(ctx, "ping failed", "error", err)
		a.setMode(ctx, ModeOffline)
		return
	}
	a.setMode(ctx, ModeOnline)
}
