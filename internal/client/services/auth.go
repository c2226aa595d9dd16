// Package services composes the gateway, the session and the local stores
// into the operations the CLI offers.
package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/babycare/internal/client/client"
	"github.com/dmitrijs2005/babycare/internal/client/forms"
	"github.com/dmitrijs2005/babycare/internal/client/models"
	"github.com/dmitrijs2005/babycare/internal/client/repositories/checklist"
	"github.com/dmitrijs2005/babycare/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/babycare/internal/client/session"
	"github.com/dmitrijs2005/babycare/internal/dbx"
	"github.com/dmitrijs2005/babycare/internal/logging"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login / Register: validate the form locally, call the backend and
//     start a session with the returned token.
//   - Logout: end the session and wipe local per-user data.
//   - Ping: check backend reachability.
//   - Close: release the local database.
type AuthService interface {
	Login(ctx context.Context, form forms.LoginForm) (*models.User, error)
	Register(ctx context.Context, form forms.RegistrationForm) (*models.User, error)
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client  client.Client
	session *session.Session
	db      *sql.DB
	logger  logging.Logger
}

// NewAuthService binds the service to the gateway and session. db may be nil
// when the client runs without a local database.
func NewAuthService(c client.Client, s *session.Session, db *sql.DB, logger logging.Logger) AuthService {
	return &authService{client: c, session: s, db: db, logger: logger}
}

func (a *authService) Login(ctx context.Context, form forms.LoginForm) (*models.User, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	res, err := a.client.Login(ctx, models.Credentials{Email: form.Email, Password: form.Password})
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	user := a.completeProfile(ctx, res)
	pending := user.OnboardingComplete != nil && !*user.OnboardingComplete
	if err := a.start(ctx, res.Token, user, pending); err != nil {
		return nil, err
	}
	a.logger.Info(ctx, "logged in", "email", user.Email, "baby_id", user.BabyID)
	return &user, nil
}

// Register creates the account. A new account goes through onboarding unless
// the backend says it is already done.
func (a *authService) Register(ctx context.Context, form forms.RegistrationForm) (*models.User, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	res, err := a.client.Register(ctx, models.Registration{Name: form.Name, Email: form.Email, Password: form.Password})
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	user := a.completeProfile(ctx, res)
	pending := user.OnboardingComplete == nil || !*user.OnboardingComplete
	if err := a.start(ctx, res.Token, user, pending); err != nil {
		return nil, err
	}
	a.logger.Info(ctx, "registered", "email", user.Email)
	return &user, nil
}

// completeProfile fills fields the auth response left out from /auth/user.
// A failed lookup is not fatal.
func (a *authService) completeProfile(ctx context.Context, res *models.AuthResult) models.User {
	user := res.User
	if user.BabyID != "" && user.OnboardingComplete != nil {
		return user
	}

	profile, err := a.client.CurrentUser(ctx, res.Token)
	if err != nil {
		a.logger.Warn(ctx, "fetch user profile failed", "error", err)
		return user
	}
	if user.BabyID == "" {
		user.BabyID = profile.BabyID
	}
	if user.OnboardingComplete == nil {
		user.OnboardingComplete = profile.OnboardingComplete
	}
	if user.Email == "" {
		user.Email = profile.Email
	}
	return user
}

func (a *authService) start(ctx context.Context, token string, user models.User, pending bool) error {
	err := a.session.Begin(ctx, session.Login{
		Token:             token,
		Email:             user.Email,
		BabyID:            user.BabyID,
		OnboardingPending: pending,
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Logout ends the session. Requests already in flight finish with the old
// token.
func (a *authService) Logout(ctx context.Context) error {
	if err := a.session.End(ctx); err != nil {
		return err
	}
	if a.db == nil {
		return nil
	}
	return a.clearLocalData(ctx)
}

// clearLocalData wipes metadata slots and the checklist snapshot together.
func (a *authService) clearLocalData(ctx context.Context) error {
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := metadata.NewSQLiteRepository(tx).Clear(ctx); err != nil {
			return err
		}
		return checklist.NewSQLiteRepository(tx).DeleteAll(ctx)
	})
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) Close(ctx context.Context) error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
