package client

import (
	"context"

	"github.com/dmitrijs2005/babycare/internal/client/models"
)

// Client is the Backend Gateway contract. Every authenticated call takes the
// session token explicitly; the gateway keeps no credential state.
type Client interface {
	Ping(ctx context.Context) error
	Login(ctx context.Context, creds models.Credentials) (*models.AuthResult, error)
	Register(ctx context.Context, reg models.Registration) (*models.AuthResult, error)
	VerifyToken(ctx context.Context, token string) (bool, error)
	CurrentUser(ctx context.Context, token string) (*models.User, error)
	ListGrowthRecords(ctx context.Context, token, babyID string) ([]models.GrowthRecord, error)
	CreateGrowthRecord(ctx context.Context, token, babyID string, rec models.NewGrowthRecord) (*models.GrowthRecord, error)
	UpdateImmunization(ctx context.Context, token, babyID, recordID string, upd models.RecordUpdate) error
	UpdateMilestone(ctx context.Context, token, babyID, recordID string, upd models.RecordUpdate) error
}
