package pages

import (
	"context"
	"fmt"
	"io"

	"github.com/reddot/reddot-client/internal/client/fetch"
	"github.com/reddot/reddot-client/internal/client/models"
	"github.com/reddot/reddot-client/internal/client/notify"
	"github.com/reddot/reddot-client/internal/common"
	"github.com/reddot/reddot-client/internal/logging"
)

type NotificationsAPI interface {
	Notifications(ctx context.Context) ([]models.Notification, error)
	MarkNotificationRead(ctx context.Context, id models.ID) error
	MarkAllNotificationsRead(ctx context.Context) error
}

type Notifications struct {
	api      NotificationsAPI
	notifier notify.Notifier
	log      logging.Logger
	ctl      *fetch.Controller[[]models.Notification]
}

func NewNotifications(api NotificationsAPI, n notify.Notifier, log logging.Logger) *Notifications {
	if log == nil {
		log = logging.Nop()
	}
	return &Notifications{
		api:      api,
		notifier: n,
		log:      log,
		ctl:      fetch.New(api.Notifications, n, "notifications", fetch.WithLogger(log)),
	}
}

func (v *Notifications) Mount(ctx context.Context)   { v.ctl.Mount(ctx) }
func (v *Notifications) Unmount()                    { v.ctl.Unmount() }
func (v *Notifications) Refresh(ctx context.Context) { v.ctl.Refetch(ctx) }
func (v *Notifications) Wait()                       { v.ctl.Wait() }

func (v *Notifications) State() fetch.State[[]models.Notification] { return v.ctl.State() }

// Unread counts unread notifications in the loaded list.
func (v *Notifications) Unread() int {
	n := 0
	for _, item := range v.ctl.State().Data {
		if !item.Read {
			n++
		}
	}
	return n
}

func (v *Notifications) MarkRead(ctx context.Context, id models.ID) error {
	if err := v.api.MarkNotificationRead(ctx, id); err != nil {
		v.log.Warn(ctx, "mark notification read failed", "id", string(id), "error", err)
		toastError(v.notifier, "Failed to update notification")
		return &common.SubmitError{Action: "mark notification read", Err: err}
	}
	v.ctl.Refetch(ctx)
	return nil
}

func (v *Notifications) MarkAllRead(ctx context.Context) error {
	if err := v.api.MarkAllNotificationsRead(ctx); err != nil {
		v.log.Warn(ctx, "mark all notifications read failed", "error", err)
		toastError(v.notifier, "Failed to update notifications")
		return &common.SubmitError{Action: "mark all notifications read", Err: err}
	}
	toastSuccess(v.notifier, "All notifications marked as read")
	v.ctl.Refetch(ctx)
	return nil
}

func (v *Notifications) Render(w io.Writer) {
	fmt.Fprintln(w, "Notifications")
	st := v.ctl.State()
	if renderPending(w, st) {
		return
	}

	if len(st.Data) == 0 {
		fmt.Fprintln(w, "  No notifications.")
		return
	}

	fmt.Fprintf(w, "  %d unread\n", v.Unread())
	for _, n := range st.Data {
		mark := " "
		if !n.Read {
			mark = "*"
		}
		fmt.Fprintf(w, "%s [%s] %s: %s", mark, n.ID, n.Title, n.Message)
		if n.CreatedAt != "" {
			fmt.Fprintf(w, " (%s)", n.CreatedAt)
		}
		fmt.Fprintln(w)
	}
}
