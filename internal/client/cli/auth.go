package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dmitrijs2005/babycare/internal/client/client"
	"github.com/dmitrijs2005/babycare/internal/client/forms"
	"github.com/dmitrijs2005/babycare/internal/client/session"
	"github.com/dmitrijs2005/babycare/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for name, email and a confirmed password, then creates
// the account. New accounts land on onboarding.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter your name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword(a.reader, a.out, "Repeat password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	_, err = a.authService.Register(ctx, forms.RegistrationForm{
		Name:            name,
		Email:           email,
		Password:        string(password),
		ConfirmPassword: string(confirm),
	})
	if err != nil {
		a.reportError(err, "Registration failed")
		return err
	}

	fmt.Fprintln(a.out, "Account created.")
	a.resolver.ResolveAndNavigate(ctx, a)
	return nil
}

// Login prompts for credentials and starts a session. The landing route is
// then resolved the same way as at startup.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if _, err := a.authService.Login(ctx, forms.LoginForm{Email: email, Password: string(password)}); err != nil {
		a.reportError(err, "Login failed")
		return err
	}

	a.resolver.ResolveAndNavigate(ctx, a)
	if a.currentRoute() == session.RouteMainApp {
		if err := a.tracking.Growth.Refresh(ctx); err != nil {
			a.logger.Warn(ctx, "initial growth refresh failed", "error", err)
		}
	}
	return nil
}

// Logout ends the session. It does not wait for or cancel requests in
// flight.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		a.reportError(err, "Logout failed")
		return err
	}
	a.Navigate(session.RouteAuth, nil)
	return nil
}

// Onboard finishes onboarding. When no baby profile is known yet it asks
// for one.
func (a *App) Onboard(ctx context.Context) error {
	if _, ok := a.resolver.RequireSession(ctx); !ok {
		a.Navigate(session.RouteAuth, nil)
		return common.ErrNoSession
	}

	babyID, err := a.session.BabyID(ctx)
	if err != nil {
		return err
	}
	if babyID == "" {
		id, err := getSimpleText(a.reader, "Enter your baby's profile ID", a.out)
		if err != nil {
			return err
		}
		if id == "" {
			fmt.Fprintln(a.out, "A baby profile ID is required.")
			return forms.FieldErrors{"baby_id": "required"}
		}
		if err := a.session.SetBabyID(ctx, id); err != nil {
			return err
		}
	}

	if err := a.session.CompleteOnboarding(ctx); err != nil {
		return err
	}
	a.Navigate(session.RouteMainApp, nil)
	return nil
}

// Status prints the session snapshot and connectivity.
func (a *App) Status(ctx context.Context) error {
	st, err := a.session.Snapshot(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Route:      %s\n", a.currentRoute())
	fmt.Fprintf(a.out, "Logged in:  %t\n", st.LoggedIn)
	fmt.Fprintf(a.out, "Verified:   %t\n", st.Verified)
	if st.Email != "" {
		fmt.Fprintf(a.out, "Email:      %s\n", st.Email)
	}
	if st.BabyID != "" {
		fmt.Fprintf(a.out, "Baby:       %s\n", st.BabyID)
	}
	if st.ExpiresAt != nil {
		fmt.Fprintf(a.out, "Expires:    %s\n", st.ExpiresAt.Local().Format(time.RFC1123))
	}
	if m := a.currentMode(); m != "" {
		fmt.Fprintf(a.out, "Connection: %s\n", m)
	}
	return nil
}

// reportError prints err for the user. Field errors are listed one per line.
func (a *App) reportError(err error, prefix string) {
	if fe, ok := forms.AsFieldErrors(err); ok {
		keys := make([]string, 0, len(fe))
		for k := range fe {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(a.out, "  %s: %s\n", k, fe[k])
		}
		return
	}

	var apiErr *client.APIError
	switch {
	case errors.As(err, &apiErr) && apiErr.Message != "":
		fmt.Fprintf(a.out, "%s: %s\n", prefix, apiErr.Message)
	case errors.Is(err, client.ErrUnavailable):
		fmt.Fprintf(a.out, "%s: server unavailable, try again later\n", prefix)
	default:
		fmt.Fprintf(a.out, "%s: %s\n", prefix, err)
	}
}
