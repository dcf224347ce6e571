package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/reddot/reddot-client/internal/client/onboarding"
	"github.com/reddot/reddot-client/internal/client/router"
)

// onboardingView adapts the wizard to the navigator. It has nothing to fetch.
type onboardingView struct {
	*onboarding.Wizard
}

func (v *onboardingView) Mount(context.Context) {}
func (v *onboardingView) Unmount()              {}

func (v *onboardingView) Render(w io.Writer) {
	st := v.State()
	f := v.Fields()

	switch st {
	case onboarding.Step1:
		fmt.Fprintln(w, "Step 1 of 3: Basic information")
		dob := ""
		if f.DateOfBirth != nil {
			dob = f.DateOfBirth.String()
		}
		fmt.Fprintf(w, "  dob     Date of birth:  %s\n", dob)
		fmt.Fprintf(w, "  height  Height (cm):    %s\n", optFloat(f.Height))
		fmt.Fprintf(w, "  weight  Weight (kg):    %s\n", optFloat(f.Weight))
	case onboarding.Step2:
		fmt.Fprintln(w, "Step 2 of 3: Cycle information")
		fmt.Fprintf(w, "  cycle   Average cycle length (days):   %s\n", optInt(f.AverageCycleLength))
		fmt.Fprintf(w, "  period  Average period length (days):  %s\n", optInt(f.AveragePeriodLength))
		fmt.Fprintf(w, "  add     Health conditions:             %s\n", strings.Join(f.HealthConditions, ", "))
	case onboarding.Step3:
		fmt.Fprintln(w, "Step 3 of 3: Lifestyle")
		fmt.Fprintf(w, "  activity  Activity level:  %s\n", f.ActivityLevel)
		fmt.Fprintf(w, "  diet      Diet type:       %s\n", f.DietType)
		fmt.Fprintf(w, "  consent   I agree to the terms and privacy policy: %t\n", f.ConsentGiven)
	case onboarding.Submitted:
		fmt.Fprintln(w, "Onboarding complete.")
	}
}

func optFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func optInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

// Onboard drives the onboarding wizard:
//
//	onboard                    open the wizard
//	onboard set <field> <val>  dob, height, weight, cycle, period, activity, diet, consent
//	onboard add <condition>    add a health condition
//	onboard next | back
//	onboard submit             finish and go to the dashboard
func (a *App) Onboard(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.Go(ctx, router.PathOnboarding)
	}

	v, err := activeView[*onboardingView](a, router.PathOnboarding)
	if err != nil {
		return err
	}

	switch args[0] {
	case "set":
		consent := func(s string) error { return v.SetConsent(parseYes(s)) }
		err = applySet(args[1:], map[string]func(string) error{
			"dob":      v.SetDateOfBirth,
			"height":   v.SetHeight,
			"weight":   v.SetWeight,
			"cycle":    v.SetAverageCycleLength,
			"period":   v.SetAveragePeriodLength,
			"activity": v.SetActivityLevel,
			"diet":     v.SetDietType,
			"consent":  consent,
		})
	case "add":
		err = v.AddHealthCondition(strings.Join(args[1:], " "))
	case "next":
		err = v.Next()
	case "back":
		err = v.Back()
	case "submit":
		if err = v.Submit(ctx); err == nil {
			a.nav.Navigate(router.PathDashboard)
			a.render()
			return nil
		}
	default:
		return usage("onboard [set <field> <value> | add <condition> | next | back | submit]")
	}
	if err != nil {
		return err
	}

	v.Render(a.out)
	return nil
}

func parseYes(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "true", "1":
		return true
	default:
		return false
	}
}
