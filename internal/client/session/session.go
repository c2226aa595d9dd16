package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/babycare/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/babycare/internal/common"
)

const (
	onboardingPending = "pending"
	onboardingDone    = "done"
)

// Session is the one place the rest of the client reads and writes the
// credential and the per-user slots next to it. Build one per process and
// pass it to whatever needs it.
//
// verified is true only after the backend accepted the stored token; Begin,
// ClearToken and End reset it.
type Session struct {
	mu       sync.RWMutex
	verified bool

	tokens        TokenStore
	slots         metadata.Repository
	defaultBabyID string
}

type Option func(*Session)

// WithBabyID pins the baby profile, overriding the one saved at login.
func WithBabyID(id string) Option {
	return func(s *Session) { s.defaultBabyID = id }
}

func New(tokens TokenStore, slots metadata.Repository, opts ...Option) *Session {
	s := &Session{tokens: tokens, slots: slots}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Login is what a successful login or registration hands to Begin.
type Login struct {
	Token             string
	Email             string
	BabyID            string
	OnboardingPending bool
}

func (s *Session) Token(ctx context.Context) (string, bool, error) {
	return s.tokens.Get(ctx)
}

// Begin starts a new session. The token is written last so an interrupted
// Begin leaves the user logged out.
func (s *Session) Begin(ctx context.Context, l Login) error {
	s.mu.Lock()
	s.verified = false
	s.mu.Unlock()

	state := onboardingDone
	if l.OnboardingPending {
		state = onboardingPending
	}
	if err := s.slots.Set(ctx, common.MetadataKeyOnboardingState, []byte(state)); err != nil {
		return fmt.Errorf("begin session: %w", err)
	}
	if err := s.slots.Set(ctx, common.MetadataKeyUserEmail, []byte(l.Email)); err != nil {
		return fmt.Errorf("begin session: %w", err)
	}
	if l.BabyID != "" {
		if err := s.slots.Set(ctx, common.MetadataKeyBabyID, []byte(l.BabyID)); err != nil {
			return fmt.Errorf("begin session: %w", err)
		}
	}
	if err := s.tokens.Set(ctx, l.Token); err != nil {
		return fmt.Errorf("begin session: %w", err)
	}
	return nil
}

func (s *Session) MarkVerified() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.verified = true
}

func (s *Session) Verified() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.verified
}

// ClearToken drops the stored token but keeps profile slots.
func (s *Session) ClearToken(ctx context.Context) error {
	s.mu.Lock()
	s.verified = false
	s.mu.Unlock()
	return s.tokens.Clear(ctx)
}

// OnboardingComplete reports false only when onboarding was explicitly
// recorded as pending.
func (s *Session) OnboardingComplete(ctx context.Context) (bool, error) {
	v, err := s.slots.Get(ctx, common.MetadataKeyOnboardingState)
	if err != nil {
		return false, fmt.Errorf("read onboarding state: %w", err)
	}
	return string(v) != onboardingPending, nil
}

func (s *Session) CompleteOnboarding(ctx context.Context) error {
	if err := s.slots.Set(ctx, common.MetadataKeyOnboardingState, []byte(onboardingDone)); err != nil {
		return fmt.Errorf("complete onboarding: %w", err)
	}
	return nil
}

// SetBabyID saves the baby profile learned after login.
func (s *Session) SetBabyID(ctx context.Context, id string) error {
	return s.slots.Set(ctx, common.MetadataKeyBabyID, []byte(id))
}

func (s *Session) BabyID(ctx context.Context) (string, error) {
	if s.defaultBabyID != "" {
		return s.defaultBabyID, nil
	}
	v, err := s.slots.Get(ctx, common.MetadataKeyBabyID)
	if err != nil {
		return "", fmt.Errorf("read baby id: %w", err)
	}
	return string(v), nil
}

func (s *Session) Email(ctx context.Context) (string, error) {
	v, err := s.slots.Get(ctx, common.MetadataKeyUserEmail)
	if err != nil {
		return "", fmt.Errorf("read user email: %w", err)
	}
	return string(v), nil
}

// End logs out: the token and every per-user slot are removed.
func (s *Session) End(ctx context.Context) error {
	if err := s.ClearToken(ctx); err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	if err := s.slots.Delete(ctx,
		common.MetadataKeyOnboardingState,
		common.MetadataKeyUserEmail,
		common.MetadataKeyBabyID,
	); err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	return nil
}

// State is a point-in-time copy of the session for display.
type State struct {
	LoggedIn           bool
	Verified           bool
	OnboardingComplete bool
	Email              string
	BabyID             string
	ExpiresAt          *time.Time
}

func (s *Session) Snapshot(ctx context.Context) (State, error) {
	var st State

	token, ok, err := s.tokens.Get(ctx)
	if err != nil {
		return st, err
	}
	st.LoggedIn = ok
	st.Verified = s.Verified() && ok
	if exp, found := TokenExpiry(token); found {
		st.ExpiresAt = &exp
	}

	if st.OnboardingComplete, err = s.OnboardingComplete(ctx); err != nil {
		return st, err
	}
	if st.Email, err = s.Email(ctx); err != nil {
		return st, err
	}
	if st.BabyID, err = s.BabyID(ctx); err != nil {
		return st, err
	}
	return st, nil
}
