package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/babycare/internal/client/session"
)

func (a *App) getStatus() string {
	s := ""
	switch a.currentRoute() {
	case session.RouteMainApp:
		s = "main "
	case session.RouteOnboarding:
		s = "onboarding "
	case session.RouteAuth:
		s = "logged out "
	}
	if m := a.currentMode(); m != "" {
		s = s + string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Navigate switches the command set offered by the REPL.
func (a *App) Navigate(route session.Route, params map[string]string) {
	a.mu.Lock()
	a.route = route
	if tab, ok := params[session.ParamInitialTab]; ok {
		a.tab = tab
	}
	a.mu.Unlock()

	switch route {
	case session.RouteAuth:
		fmt.Fprintln(a.out, "Please log in or register.")
	case session.RouteOnboarding:
		fmt.Fprintln(a.out, "Welcome! Type 'onboard' to finish setting up your profile.")
	case session.RouteMainApp:
		fmt.Fprintln(a.out, "Welcome back.")
	}
}

// Root resolves where the user lands, opens the configured tab, starts the
// reachability watcher and runs the REPL until exit.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to babycare CLI (type 'help' for commands)")

	route := a.resolver.ResolveAndNavigate(ctx, a, session.WithInitialTab(a.config.InitialTab))
	if route == session.RouteMainApp {
		a.openInitialTab(ctx)
	}

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) openInitialTab(ctx context.Context) {
	a.mu.RLock()
	tab := a.tab
	a.mu.RUnlock()

	switch tab {
	case "growth":
		_ = a.Growth(ctx)
	case "vaccines":
		_ = a.ShowImmunizations(ctx)
	case "milestones":
		_ = a.ShowMilestones(ctx)
	}
}
