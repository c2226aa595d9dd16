// Package session owns the client's credential: the persisted token slot,
// the session context shared by every command, and the startup resolver
// that decides where the user lands.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/babycare/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/babycare/internal/common"
)

// TokenStore is the persisted slot holding the current session token.
// Get reports ok=false when no token is stored; an empty value counts as
// absent. Clear is idempotent.
type TokenStore interface {
	Get(ctx context.Context) (token string, ok bool, err error)
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// MetadataTokenStore keeps the token in the metadata table of the local
// database.
type MetadataTokenStore struct {
	repo metadata.Repository
}

func NewMetadataTokenStore(repo metadata.Repository) *MetadataTokenStore {
	return &MetadataTokenStore{repo: repo}
}

func (s *MetadataTokenStore) Get(ctx context.Context) (string, bool, error) {
	v, err := s.repo.Get(ctx, common.MetadataKeySessionToken)
	if err != nil {
		return "", false, fmt.Errorf("read session token: %w", err)
	}
	if len(v) == 0 {
		return "", false, nil
	}
	return string(v), true, nil
}

func (s *MetadataTokenStore) Set(ctx context.Context, token string) error {
	if token == "" {
		return s.Clear(ctx)
	}
	if err := s.repo.Set(ctx, common.MetadataKeySessionToken, []byte(token)); err != nil {
		return fmt.Errorf("write session token: %w", err)
	}
	return nil
}

func (s *MetadataTokenStore) Clear(ctx context.Context) error {
	if err := s.repo.Delete(ctx, common.MetadataKeySessionToken); err != nil {
		return fmt.Errorf("clear session token: %w", err)
	}
	return nil
}

type MemoryTokenStore struct {
	mu    sync.Mutex
	token string
}

func NewMemoryTokenStore(token string) *MemoryTokenStore {
	return &MemoryTokenStore{token: token}
}

func (s *MemoryTokenStore) Get(context.Context) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.token != "", nil
}

func (s *MemoryTokenStore) Set(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryTokenStore) Clear(context.Context) error {
	return s.Set(context.Background(), "")
}
