package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/babycare/internal/client/models"
	"github.com/dmitrijs2005/babycare/internal/testutil/fakebackend"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*HTTPClient, *fakebackend.Backend) {
	t.Helper()
	b := fakebackend.New()
	srv := b.Start(t)
	c, err := NewHTTPClient(srv.URL, 2*time.Second)
	require.NoError(t, err)
	return c, b
}

/*************
 * construction
 *************/

func TestNewHTTPClient_RejectsBadBaseURL(t *testing.T) {
	for _, u := range []string{"ftp://x", "127.0.0.1:8080", "http://", "::"} {
		_, err := NewHTTPClient(u, time.Second)
		require.Error(t, err, u)
	}
}

func TestEndpoint_JoinsAndEscapes(t *testing.T) {
	c, err := NewHTTPClient("https://api.example.org/api/", time.Second)
	require.NoError(t, err)
	require.Equal(t, "https://api.example.org/api/babies/b%2F1/growth", c.endpoint("babies", "b/1", "growth"))
	require.Equal(t, "https://api.example.org/api/verify-token", c.endpoint("verify-token"))
}

/*************
 * headers
 *************/

func TestDo_SetsDefaultHeadersAndBearer(t *testing.T) {
	c, b := newTestClient(t)
	c.requestID = func() string { return "req-1" }
	tok := b.AddAccount("a@example.org", "pw", "baby-1")

	_, err := c.CurrentUser(context.Background(), tok)
	require.NoError(t, err)

	req := b.LastRequest(fakebackend.RouteUser)
	require.Equal(t, "application/json", req.Header.Get("Accept"))
	require.Equal(t, "application/json", req.Header.Get("Content-Type"))
	require.Equal(t, "Bearer "+tok, req.Header.Get("Authorization"))
	require.Equal(t, "req-1", req.Header.Get("X-Request-ID"))
}

func TestDo_NoAuthorizationWithoutToken(t *testing.T) {
	c, b := newTestClient(t)

	require.NoError(t, c.Ping(context.Background()))
	require.Empty(t, b.LastRequest(fakebackend.RouteHealth).Header.Get("Authorization"))
}

/*************
 * status mapping
 *************/

func TestMapStatus(t *testing.T) {
	c := &HTTPClient{}

	require.ErrorIs(t, c.mapStatus(http.StatusUnauthorized, nil), ErrUnauthorized)
	require.ErrorIs(t, c.mapStatus(http.StatusForbidden, nil), ErrUnauthorized)
	require.ErrorIs(t, c.mapStatus(http.StatusServiceUnavailable, nil), ErrUnavailable)
	require.ErrorIs(t, c.mapStatus(http.StatusGatewayTimeout, nil), ErrUnavailable)
	require.ErrorIs(t, c.mapStatus(http.StatusInternalServerError, nil), ErrRequestFailed)

	err := c.mapStatus(http.StatusUnprocessableEntity, []byte(`{"message":"height must be positive"}`))
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	require.Equal(t, "height must be positive", apiErr.Message)
	require.Contains(t, err.Error(), "status 422")
}

func TestExtractMessage(t *testing.T) {
	require.Equal(t, "m", extractMessage([]byte(`{"message":"m","error":"e"}`)))
	require.Equal(t, "e", extractMessage([]byte(`{"error":"e"}`)))
	require.Equal(t, "", extractMessage([]byte(`<html>oops</html>`)))
	require.Equal(t, "", extractMessage(nil))
}

func TestDo_TransportFailureIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := NewHTTPClient(url, time.Second)
	require.NoError(t, err)

	require.ErrorIs(t, c.Ping(context.Background()), ErrUnavailable)
}

func TestDo_TimeoutIsUnavailable(t *testing.T) {
	b := fakebackend.New()
	srv := b.Start(t)
	b.Stall(fakebackend.RouteVerify, time.Second)

	c, err := NewHTTPClient(srv.URL, 50*time.Millisecond)
	require.NoError(t, err)

	_, err = c.VerifyToken(context.Background(), "x")
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestDo_CancelledContextIsReturnedAsIs(t *testing.T) {
	c, b := newTestClient(t)
	b.Stall(fakebackend.RouteHealth, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	err := c.Ping(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.NotErrorIs(t, err, ErrUnavailable)
}

/*************
 * VerifyToken
 *************/

func TestVerifyToken(t *testing.T) {
	c, b := newTestClient(t)
	tok := b.AddAccount("a@example.org", "pw", "baby-1")
	ctx := context.Background()

	ok, err := c.VerifyToken(ctx, tok)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = c.VerifyToken(ctx, "abc123")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestVerifyToken_UnauthorizedMeansInvalid(t *testing.T) {
	c, b := newTestClient(t)
	b.Fail(fakebackend.RouteVerify, http.StatusUnauthorized, `{"message":"expired"}`)

	ok, err := c.VerifyToken(context.Background(), "abc123")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestVerifyToken_ServerErrorAndMalformedBody(t *testing.T) {
	c, b := newTestClient(t)
	ctx := context.Background()

	b.Fail(fakebackend.RouteVerify, http.StatusInternalServerError, `{}`)
	_, err := c.VerifyToken(ctx, "t")
	require.ErrorIs(t, err, ErrRequestFailed)

	b.Fail(fakebackend.RouteVerify, http.StatusOK, `not json`)
	_, err = c.VerifyToken(ctx, "t")
	require.ErrorIs(t, err, ErrMalformedResponse)

	b.Fail(fakebackend.RouteVerify, http.StatusOK, `{"ok":true}`)
	_, err = c.VerifyToken(ctx, "t")
	require.ErrorIs(t, err, ErrMalformedResponse)
}

/*************
 * auth
 *************/

func TestLoginAndRegister(t *testing.T) {
	c, b := newTestClient(t)
	b.AddAccount("a@example.org", "Secret123", "baby-1")
	ctx := context.Background()

	res, err := c.Login(ctx, models.Credentials{Email: "a@example.org", Password: "Secret123"})
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)
	require.Equal(t, "baby-1", res.User.BabyID)

	_, err = c.Login(ctx, models.Credentials{Email: "a@example.org", Password: "wrong"})
	require.ErrorIs(t, err, ErrUnauthorized)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "invalid email or password", apiErr.Message)

	reg, err := c.Register(ctx, models.Registration{Name: "B", Email: "b@example.org", Password: "Secret123"})
	require.NoError(t, err)
	require.NotEmpty(t, reg.Token)
	require.NotNil(t, reg.User.OnboardingComplete)
	require.False(t, *reg.User.OnboardingComplete)

	_, err = c.Register(ctx, models.Registration{Email: "b@example.org", Password: "Secret123"})
	require.ErrorIs(t, err, ErrRequestFailed)
}

func TestLogin_EmptyTokenIsMalformed(t *testing.T) {
	c, b := newTestClient(t)
	b.Fail(fakebackend.RouteLogin, http.StatusOK, `{"user":{"id":"1"}}`)

	_, err := c.Login(context.Background(), models.Credentials{Email: "a", Password: "b"})
	require.ErrorIs(t, err, ErrMalformedResponse)
}

/*************
 * growth / checklist updates
 *************/

func TestGrowthRecords_CreateThenList(t *testing.T) {
	c, b := newTestClient(t)
	tok := b.AddAccount("a@example.org", "pw", "baby-1")
	ctx := context.Background()

	list, err := c.ListGrowthRecords(ctx, tok, "baby-1")
	require.NoError(t, err)
	require.Empty(t, list)

	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	created, err := c.CreateGrowthRecord(ctx, tok, "baby-1", models.NewGrowthRecord{
		ClientID: "c1", Height: 72.5, Weight: 9.1, HeadSize: 45, MeasuredAt: at,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	list, err = c.ListGrowthRecords(ctx, tok, "baby-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, 72.5, list[0].Height)
	require.True(t, at.Equal(list[0].MeasuredAt))
}

func TestGrowthRecords_RejectedToken(t *testing.T) {
	c, _ := newTestClient(t)
	_, err := c.ListGrowthRecords(context.Background(), "stale", "baby-1")
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestUpdateImmunizationAndMilestone(t *testing.T) {
	c, b := newTestClient(t)
	tok := b.AddAccount("a@example.org", "pw", "baby-1")
	ctx := context.Background()
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, c.UpdateImmunization(ctx, tok, "baby-1", "bcg", models.RecordUpdate{GroupID: "birth", Status: "completed", OccurredAt: &at}))
	got, ok := b.Immunization("baby-1", "bcg")
	require.True(t, ok)
	require.Equal(t, "completed", got.Status)

	require.NoError(t, c.UpdateMilestone(ctx, tok, "baby-1", "social-smile", models.RecordUpdate{GroupID: "2m", Status: "pending"}))
	m, ok := b.Milestone("baby-1", "social-smile")
	require.True(t, ok)
	require.Nil(t, m.OccurredAt)
}
