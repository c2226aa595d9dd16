package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/babycare/internal/client/forms"
	"github.com/dmitrijs2005/babycare/internal/client/session"
	"github.com/dmitrijs2005/babycare/internal/client/tracking"
	"github.com/dmitrijs2005/babycare/internal/common"
)

// requireMain keeps checklist and growth commands behind a session.
func (a *App) requireMain(ctx context.Context) error {
	if _, ok := a.resolver.RequireSession(ctx); !ok {
		fmt.Fprintln(a.out, "Please log in first.")
		a.Navigate(session.RouteAuth, nil)
		return common.ErrNoSession
	}
	if a.currentRoute() == session.RouteOnboarding {
		fmt.Fprintln(a.out, "Finish onboarding first (type 'onboard').")
		return common.ErrNoSession
	}
	return nil
}

func (a *App) ShowImmunizations(ctx context.Context) error {
	return a.showChecklist(ctx, tracking.KindImmunization)
}

func (a *App) ShowMilestones(ctx context.Context) error {
	return a.showChecklist(ctx, tracking.KindMilestone)
}

func (a *App) showChecklist(ctx context.Context, kind tracking.Kind) error {
	if err := a.requireMain(ctx); err != nil {
		return err
	}
	renderChecklist(a.out, a.tracking.Checklist(kind).Groups())
	return nil
}

func (a *App) ToggleImmunization(ctx context.Context, args []string) error {
	return a.toggle(ctx, tracking.KindImmunization, "toggle-vaccine", args)
}

func (a *App) ToggleMilestone(ctx context.Context, args []string) error {
	return a.toggle(ctx, tracking.KindMilestone, "toggle-milestone", args)
}

func (a *App) toggle(ctx context.Context, kind tracking.Kind, cmd string, args []string) error {
	if err := a.requireMain(ctx); err != nil {
		return err
	}
	if len(args) != 2 {
		fmt.Fprintf(a.out, "Usage: %s <group> <id>\n", cmd)
		return common.ErrValidation
	}

	groups, err := a.tracking.Checklist(kind).Toggle(ctx, args[0], args[1])
	if errors.Is(err, tracking.ErrRecordNotFound) {
		fmt.Fprintf(a.out, "No such item: %s %s\n", args[0], args[1])
		return err
	}
	if err != nil {
		fmt.Fprintln(a.out, "Saved locally, but it could not be synced.")
	}

	for _, g := range groups {
		if g.ID == args[0] {
			renderGroup(a.out, g)
		}
	}
	return err
}

// NoteImmunization records who gave a dose, where, and free notes.
func (a *App) NoteImmunization(ctx context.Context, args []string) error {
	if err := a.requireMain(ctx); err != nil {
		return err
	}
	if len(args) != 2 {
		fmt.Fprintln(a.out, "Usage: note-vaccine <group> <id>")
		return common.ErrValidation
	}

	cl := a.tracking.Immunizations
	rec, err := cl.Find(args[0], args[1])
	if err != nil {
		fmt.Fprintf(a.out, "No such item: %s %s\n", args[0], args[1])
		return err
	}

	md := rec.Metadata
	if md.AdministeredBy, err = getSimpleText(a.reader, "Administered by", a.out); err != nil {
		return err
	}
	if md.AdministeredAt, err = getSimpleText(a.reader, "Administered at (clinic)", a.out); err != nil {
		return err
	}
	if md.Notes, err = GetMultiline(a.reader, "Notes", a.out); err != nil {
		return err
	}

	if _, err := cl.SetMetadata(ctx, args[0], args[1], md); err != nil {
		fmt.Fprintln(a.out, "Saved locally, but it could not be synced.")
		return err
	}
	fmt.Fprintln(a.out, "Saved.")
	return nil
}

func (a *App) Growth(ctx context.Context) error {
	if err := a.requireMain(ctx); err != nil {
		return err
	}
	if err := a.tracking.Growth.Refresh(ctx); err != nil {
		a.reportError(err, "Could not load growth records")
	}
	renderGrowth(a.out, a.tracking.Growth.Records())
	return nil
}

// AddGrowth prompts for a measurement. A rejected submission keeps the typed
// values and offers to retry them as they are.
func (a *App) AddGrowth(ctx context.Context) error {
	if err := a.requireMain(ctx); err != nil {
		return err
	}

	var draft forms.GrowthDraft
	var err error
	if draft.Height, err = getSimpleText(a.reader, "Height (cm)", a.out); err != nil {
		return err
	}
	if draft.Weight, err = getSimpleText(a.reader, "Weight (kg)", a.out); err != nil {
		return err
	}
	if draft.HeadSize, err = getSimpleText(a.reader, "Head size (cm)", a.out); err != nil {
		return err
	}
	if draft.MeasuredAt, err = getSimpleText(a.reader, "Measured on (YYYY-MM-DD, empty for now)", a.out); err != nil {
		return err
	}
	if draft.Notes, err = getSimpleText(a.reader, "Notes", a.out); err != nil {
		return err
	}

	for {
		res, err := a.tracking.Growth.Add(ctx, draft)
		if err == nil {
			fmt.Fprintf(a.out, "Saved. %d records.\n", res.Count)
			return nil
		}

		var ue *tracking.UserError
		if !errors.As(err, &ue) {
			a.reportError(err, "Could not save")
			return err
		}
		fmt.Fprintln(a.out, ue.Message)
		if res.State == tracking.DraftSubmitted {
			return err
		}
		again, rerr := GetConfirmation(a.reader, "Retry with the same values?", a.out)
		if rerr != nil || !again {
			return err
		}
	}
}
