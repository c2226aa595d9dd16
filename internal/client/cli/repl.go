package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/babycare/internal/client/session"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	currentRoute() session.Route
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Onboard(ctx context.Context) error
	Status(ctx context.Context) error
	ShowImmunizations(ctx context.Context) error
	ShowMilestones(ctx context.Context) error
	ToggleImmunization(ctx context.Context, args []string) error
	ToggleMilestone(ctx context.Context, args []string) error
	NoteImmunization(ctx context.Context, args []string) error
	Growth(ctx context.Context) error
	AddGrowth(ctx context.Context) error
}

const (
	helpAuth       = "Available commands: register, login, status, exit"
	helpOnboarding = "Available commands: onboard, status, logout, exit"
	helpMain       = "Available commands: (v)accines, toggle-vaccine <group> <id>, note-vaccine <group> <id>, " +
		"(m)ilestones, toggle-milestone <group> <id>, (g)rowth, addgrowth, status, logout, exit"
)

// runREPL starts a simple read–eval–print loop for the babycare CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Command prompts read from the same reader.
// Unknown commands are reported back to the user. The loop exits at end of
// input or when the user types "exit" or "quit".
//
// The help text depends on the current route (Auth, Onboarding, MainApp).
// Any errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("bc %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			switch a.currentRoute() {
			case session.RouteMainApp:
				printlnFn(helpMain)
			case session.RouteOnboarding:
				printlnFn(helpOnboarding)
			default:
				printlnFn(helpAuth)
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "onboard":
			_ = a.Onboard(ctx)

		case "status":
			_ = a.Status(ctx)

		case "v", "vaccines":
			_ = a.ShowImmunizations(ctx)

		case "toggle-vaccine":
			_ = a.ToggleImmunization(ctx, args)

		case "note-vaccine":
			_ = a.NoteImmunization(ctx, args)

		case "m", "milestones":
			_ = a.ShowMilestones(ctx)

		case "toggle-milestone":
			_ = a.ToggleMilestone(ctx, args)

		case "g", "growth":
			_ = a.Growth(ctx)

		case "addgrowth":
			_ = a.AddGrowth(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
