package session

import (
	"context"

	"github.com/dmitrijs2005/babycare/internal/logging"
)

// Verifier asks the backend whether a token is still accepted.
type Verifier interface {
	VerifyToken(ctx context.Context, token string) (bool, error)
}

// Resolver decides where the user lands at startup.
type Resolver struct {
	session  *Session
	verifier Verifier
	logger   logging.Logger
}

func NewResolver(s *Session, v Verifier, logger logging.Logger) *Resolver {
	return &Resolver{session: s, verifier: v, logger: logger}
}

// ResolveInitialRoute returns Auth when no token is stored, without touching
// the network. Otherwise the token is checked once: accepted tokens lead to
// Onboarding or MainApp, anything else clears the token and leads to Auth.
// Rejection and unreachable backend look the same to the caller. If ctx ends
// while the check is in flight, nothing is changed and Auth is returned.
func (r *Resolver) ResolveInitialRoute(ctx context.Context) Route {
	token, ok, err := r.session.Token(ctx)
	if err != nil {
		r.logger.Warn(ctx, "token store unreadable, treating as logged out", "error", err)
		return RouteAuth
	}
	if !ok {
		return RouteAuth
	}

	valid, err := r.verifier.VerifyToken(ctx, token)
	if ctx.Err() != nil {
		r.logger.Debug(ctx, "token check abandoned, caller gone", "error", ctx.Err())
		return RouteAuth
	}
	if err != nil || !valid {
		reason := "rejected"
		if err != nil {
			reason = err.Error()
		}
		r.logger.Warn(ctx, "stored token not accepted", "reason", reason)
		if cerr := r.session.ClearToken(ctx); cerr != nil {
			r.logger.Error(ctx, "clear stored token failed", "error", cerr)
		}
		return RouteAuth
	}

	r.session.MarkVerified()

	done, err := r.session.OnboardingComplete(ctx)
	if err != nil {
		r.logger.Warn(ctx, "onboarding state unreadable", "error", err)
		return RouteMainApp
	}
	if !done {
		return RouteOnboarding
	}
	return RouteMainApp
}

// RequireSession checks locally that a token is present. It returns
// (RouteAuth, false) when the caller should be sent to log in.
func (r *Resolver) RequireSession(ctx context.Context) (Route, bool) {
	_, ok, err := r.session.Token(ctx)
	if err != nil {
		r.logger.Warn(ctx, "token store unreadable", "error", err)
		return RouteAuth, false
	}
	if !ok {
		return RouteAuth, false
	}
	return "", true
}

type NavigateOption func(params map[string]string)

// WithInitialTab asks MainApp to open on tab.
func WithInitialTab(tab string) NavigateOption {
	return func(p map[string]string) {
		if tab != "" {
			p[ParamInitialTab] = tab
		}
	}
}

// ResolveAndNavigate resolves the initial route and hands it to nav. If ctx
// was cancelled meanwhile, nav is not called.
func (r *Resolver) ResolveAndNavigate(ctx context.Context, nav Navigator, opts ...NavigateOption) Route {
	route := r.ResolveInitialRoute(ctx)
	if ctx.Err() != nil {
		r.logger.Debug(ctx, "navigation skipped, caller gone", "route", route)
		return route
	}

	params := map[string]string{}
	if route == RouteMainApp {
		for _, o := range opts {
			o(params)
		}
	}
	r.logger.Info(ctx, "route resolved", "route", route, "verified", r.session.Verified())
	nav.Navigate(route, params)
	return route
}
