package pages

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/reddot/reddot-client/internal/client/fetch"
	"github.com/reddot/reddot-client/internal/client/models"
	"github.com/reddot/reddot-client/internal/client/notify"
	"github.com/reddot/reddot-client/internal/common"
)

const (
	loadingText = "Loading..."
	na          = "N/A"
)

func toastSuccess(n notify.Notifier, msg string) {
	if n != nil {
		n.Success(msg)
	}
}

func toastError(n notify.Notifier, msg string) {
	if n != nil {
		n.Error(msg)
	}
}

func fmtDate(d *models.Date) string {
	if d == nil || d.IsZero() {
		return na
	}
	return d.String()
}

func fmtFloat(v *float64, unit string) string {
	if v == nil {
		return na
	}
	return strconv.FormatFloat(*v, 'f', -1, 64) + unit
}

func fmtInt(v *int, unit string) string {
	if v == nil {
		return na
	}
	return strconv.Itoa(*v) + unit
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return na
	}
	return s
}

// renderPending writes the loading or failure line for a state that is not
// ready and reports whether it did.
func renderPending[T any](w io.Writer, st fetch.State[T]) bool {
	switch st.Phase {
	case fetch.PhaseReady:
		return false
	case fetch.PhaseFailed:
		fmt.Fprintln(w, st.Error)
	default:
		fmt.Fprintln(w, loadingText)
	}
	return true
}

func parseCount(field, input string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || v < 0 {
		return 0, common.Invalid("%s %q: expected a non-negative whole number", field, input)
	}
	return v, nil
}

func parsePositiveFloat(field, input string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
	if err != nil || v <= 0 {
		return 0, common.Invalid("%s %q: expected a positive number", field, input)
	}
	return v, nil
}
