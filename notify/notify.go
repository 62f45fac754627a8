// Package notify builds the toast, alert and dialog notices shown by the console.
package notify

import (
	"time"
)

// Kind is the notice category; it also selects the icon.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
	KindConfirm Kind = "confirm"
	KindLoading Kind = "loading"
)

// Position is where a notice is anchored on screen.
type Position string

const (
	PositionTopEnd Position = "top-end"
	PositionCenter Position = "center"
)

// Notice is a single user-facing notification.
type Notice struct {
	Kind     Kind
	Icon     string
	Title    string
	Message  string
	Duration time.Duration
	Position Position
	Toast    bool

	ConfirmText string
	CancelText  string
	// Blocking notices cannot be dismissed by clicking outside them.
	Blocking bool
}

// DurationMS is the auto-close timer in milliseconds, 0 when the notice stays open.
func (n Notice) DurationMS() int64 {
	return n.Duration.Milliseconds()
}

// IsDialog reports whether the notice needs an explicit user answer.
func (n Notice) IsDialog() bool {
	return n.Kind == KindConfirm
}

// Option overrides a default of a notice.
type Option func(*Notice)

// WithDuration sets the auto-close timer. Zero keeps the notice open.
func WithDuration(d time.Duration) Option {
	return func(n *Notice) { n.Duration = d }
}

// WithPosition anchors the notice.
func WithPosition(p Position) Option {
	return func(n *Notice) { n.Position = p }
}

// WithButtons sets the confirm and cancel button labels.
func WithButtons(confirm, cancel string) Option {
	return func(n *Notice) {
		if confirm != "" {
			n.ConfirmText = confirm
		}
		if cancel != "" {
			n.CancelText = cancel
		}
	}
}

// WithIcon overrides the icon, e.g. "question" for a confirmation.
func WithIcon(icon string) Option {
	return func(n *Notice) { n.Icon = icon }
}

func build(n Notice, title, message string, opts []Option) Notice {
	if title != "" {
		n.Title = title
	}
	if message != "" {
		n.Message = message
	}
	for _, opt := range opts {
		opt(&n)
	}
	return n
}

// Success is a top-end toast that closes after two seconds.
func Success(title, message string, opts ...Option) Notice {
	return build(Notice{
		Kind:     KindSuccess,
		Icon:     "success",
		Title:    "Success!",
		Message:  "Operation completed successfully.",
		Duration: 2 * time.Second,
		Position: PositionTopEnd,
		Toast:    true,
	}, title, message, opts)
}

// Error is a centered alert with an OK button.
func Error(title, message string, opts ...Option) Notice {
	return build(Notice{
		Kind:        KindError,
		Icon:        "error",
		Title:       "Error!",
		Message:     "Something went wrong.",
		Position:    PositionCenter,
		ConfirmText: "OK",
	}, title, message, opts)
}

// Warning is a centered alert with an OK button.
func Warning(title, message string, opts ...Option) Notice {
	return build(Notice{
		Kind:        KindWarning,
		Icon:        "warning",
		Title:       "Warning!",
		Message:     "Please be careful.",
		Position:    PositionCenter,
		ConfirmText: "OK",
	}, title, message, opts)
}

// Info is a top-end toast that closes after three seconds.
func Info(title, message string, opts ...Option) Notice {
	return build(Notice{
		Kind:     KindInfo,
		Icon:     "info",
		Title:    "Info",
		Message:  "Just so you know.",
		Duration: 3 * time.Second,
		Position: PositionTopEnd,
		Toast:    true,
	}, title, message, opts)
}

// Confirm is a dialog asking the user to confirm an action.
func Confirm(title, message string, opts ...Option) Notice {
	return build(Notice{
		Kind:        KindConfirm,
		Icon:        "warning",
		Title:       "Are you sure?",
		Message:     "This action cannot be undone.",
		Position:    PositionCenter,
		ConfirmText: "Yes, proceed",
		CancelText:  "Cancel",
	}, title, message, opts)
}

// Loading is a blocking indicator shown while a request is in flight.
func Loading(title, message string, opts ...Option) Notice {
	return build(Notice{
		Kind:     KindLoading,
		Title:    "Loading...",
		Message:  "Please wait",
		Position: PositionCenter,
		Blocking: true,
	}, title, message, opts)
}

// Queue collects notices for one page render. Stacking is allowed; nothing is deduplicated.
type Queue struct {
	notices []Notice
}

// Push appends n.
func (q *Queue) Push(n Notice) {
	q.notices = append(q.notices, n)
}

// Dismiss closes any open loading indicator.
func (q *Queue) Dismiss() {
	kept := q.notices[:0]
	for _, n := range q.notices {
		if n.Kind != KindLoading {
			kept = append(kept, n)
		}
	}
	q.notices = kept
}

// Notices returns the queued notices in push order.
func (q *Queue) Notices() []Notice {
	out := make([]Notice, len(q.notices))
	copy(out, q.notices)
	return out
}

// Len returns the number of queued notices.
func (q *Queue) Len() int {
	return len(q.notices)
}
