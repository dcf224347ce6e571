package periods

import (
	"fmt"
	"io"

	"github.com/reddot/reddot-client/internal/client/fetch"
)

// Render writes the list, and the form when it is open.
func (m *Manager) Render(w io.Writer) {
	fmt.Fprintln(w, "Period Tracking")

	st := m.List()
	switch st.Phase {
	case fetch.PhaseReady:
		if len(st.Data) == 0 {
			fmt.Fprintln(w, "  No periods logged yet.")
		}
		for _, p := range st.Data {
			end := "ongoing"
			if p.EndDate != nil {
				end = p.EndDate.String()
			}
			fmt.Fprintf(w, "  [%s] %s - %s  flow %-10s pain %2d/10", p.ID, p.StartDate, end, p.AverageFlowIntensity, p.PainLevel)
			if p.Notes != "" {
				fmt.Fprintf(w, "  %s", p.Notes)
			}
			fmt.Fprintln(w)
		}
	case fetch.PhaseFailed:
		fmt.Fprintln(w, "  "+st.Error)
	default:
		fmt.Fprintln(w, "  Loading...")
	}

	if !m.FormVisible() {
		return
	}

	f := m.Form()
	end := ""
	if f.EndDate != nil {
		end = f.EndDate.String()
	}
	fmt.Fprintln(w, "\nNew period")
	fmt.Fprintf(w, "  Start date: %s\n", f.StartDate)
	fmt.Fprintf(w, "  End date:   %s\n", end)
	fmt.Fprintf(w, "  Flow:       %s\n", f.AverageFlowIntensity)
	fmt.Fprintf(w, "  Pain:       %d/10\n", f.PainLevel)
	fmt.Fprintf(w, "  Notes:      %s\n", f.Notes)
}
