package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/reddot/reddot-client/internal/client/models"
	"github.com/reddot/reddot-client/internal/client/pages"
	"github.com/reddot/reddot-client/internal/client/periods"
	"github.com/reddot/reddot-client/internal/client/router"
)

var errUsage = errors.New("usage")

func usage(text string) error {
	return fmt.Errorf("%w: %s", errUsage, text)
}

// applySet runs "<field> <value...>" against a table of setters. The value
// may be empty to clear a field.
func applySet(args []string, setters map[string]func(string) error) error {
	names := make([]string, 0, len(setters))
	for name := range setters {
		names = append(names, name)
	}
	sort.Strings(names)

	if len(args) == 0 {
		return usage("set <" + strings.Join(names, "|") + "> <value>")
	}
	fn, ok := setters[strings.ToLower(args[0])]
	if !ok {
		return fmt.Errorf("unknown field %q, expected one of %s", args[0], strings.Join(names, ", "))
	}
	return fn(strings.Join(args[1:], " "))
}

func infallible(fn func(string)) func(string) error {
	return func(s string) error {
		fn(s)
		return nil
	}
}

// Period manages the period log:
//
//	period                     open the log
//	period new                 show or hide the form
//	period set <field> <val>   start, end, flow, pain, notes
//	period notes               type multi-line notes
//	period save                log the period
//	period delete <id>
func (a *App) Period(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.Go(ctx, router.PathPeriods)
	}

	m, err := activeView[*periods.Manager](a, router.PathPeriods)
	if err != nil {
		return err
	}

	switch args[0] {
	case "new", "form":
		m.ToggleForm()
	case "set":
		if !m.FormVisible() {
			m.ToggleForm()
		}
		err = applySet(args[1:], map[string]func(string) error{
			"start": m.SetStartDate,
			"end":   m.SetEndDate,
			"flow":  m.SetFlowIntensity,
			"pain":  m.SetPainLevel,
			"notes": infallible(m.SetNotes),
		})
	case "notes":
		notes, nerr := getMultiline(a.reader, "Notes", a.out)
		if nerr != nil {
			return nerr
		}
		m.SetNotes(notes)
	case "save":
		_, err = m.Create(ctx)
		if err == nil {
			m.Wait()
		}
	case "delete", "rm":
		if len(args) < 2 {
			return usage("period delete <id>")
		}
		if err = m.Delete(ctx, models.ID(args[1])); err == nil {
			m.Wait()
		}
	default:
		return usage("period [new | set <field> <value> | notes | save | delete <id>]")
	}
	if err != nil {
		return err
	}

	m.Render(a.out)
	return nil
}

// Wellness logs daily wellness data:
//
//	wellness                     open the page
//	wellness set <field> <val>   water, sleep, quality, exercise, type, notes
//	wellness save                submit the log
//	wellness tip                 fetch another tip
func (a *App) Wellness(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.Go(ctx, router.PathWellness)
	}

	v, err := activeView[*pages.Wellness](a, router.PathWellness)
	if err != nil {
		return err
	}

	switch args[0] {
	case "set":
		err = applySet(args[1:], map[string]func(string) error{
			"water":    v.SetWaterIntake,
			"sleep":    v.SetSleepHours,
			"quality":  v.SetSleepQuality,
			"exercise": v.SetExerciseMinutes,
			"type":     infallible(v.SetExerciseType),
			"notes":    infallible(v.SetNotes),
		})
	case "save":
		err = v.Submit(ctx)
	case "tip":
		v.NewTip(ctx)
		v.Wait()
	default:
		return usage("wellness [set <field> <value> | save | tip]")
	}
	if err != nil {
		return err
	}

	v.Render(a.out)
	return nil
}

// Profile shows and edits the profile:
//
//	profile                     open the page
//	profile edit                enter or leave edit mode
//	profile set <field> <val>   first, last, height, weight, cycle
//	profile save
func (a *App) Profile(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.Go(ctx, router.PathProfile)
	}

	p, err := activeView[*pages.Profile](a, router.PathProfile)
	if err != nil {
		return err
	}

	switch args[0] {
	case "edit":
		p.ToggleEdit()
	case "set":
		err = applySet(args[1:], map[string]func(string) error{
			"first":  p.SetFirstName,
			"last":   p.SetLastName,
			"height": p.SetHeight,
			"weight": p.SetWeight,
			"cycle":  p.SetAverageCycleLength,
		})
	case "save":
		if err = p.Save(ctx); err == nil {
			p.Wait()
		}
	default:
		return usage("profile [edit | set <field> <value> | save]")
	}
	if err != nil {
		return err
	}

	p.Render(a.out)
	return nil
}

// Notifications lists and acknowledges notifications:
//
//	notif              open the list
//	notif read <id>
//	notif readall
func (a *App) Notifications(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.Go(ctx, router.PathNotifications)
	}

	v, err := activeView[*pages.Notifications](a, router.PathNotifications)
	if err != nil {
		return err
	}

	switch args[0] {
	case "read":
		if len(args) < 2 {
			return usage("notif read <id>")
		}
		err = v.MarkRead(ctx, models.ID(args[1]))
	case "readall":
		err = v.MarkAllRead(ctx)
	default:
		return usage("notif [read <id> | readall]")
	}
	if err != nil {
		return err
	}

	v.Wait()
	v.Render(a.out)
	return nil
}

// Export writes the analytics charts as PNG files, into the configured chart
// directory unless one is given.
func (a *App) Export(ctx context.Context, args []string) error {
	v, err := activeView[*pages.Analytics](a, router.PathAnalytics)
	if err != nil {
		return err
	}

	dir := a.config.ChartDir
	if len(args) > 0 {
		dir = args[0]
	}

	v.Wait()
	paths, err := v.Export(ctx, dir)
	for _, p := range paths {
		fmt.Fprintln(a.out, "wrote", p)
	}
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		fmt.Fprintln(a.out, "No chart data to export yet.")
	}
	return nil
}
