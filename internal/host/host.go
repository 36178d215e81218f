// Package host defines the capability surface the surrounding shell
// provides for delivering artifacts and feedback, plus a local filesystem
// implementation for CLI use. Components take the interface so tests can
// substitute an in-memory fake.
package host

import "context"

// NotificationType classifies a notification for the operator.
type NotificationType string

const (
	NotifySuccess NotificationType = "success"
	NotifyError   NotificationType = "error"
)

// Notification is one best-effort message to the operator.
type Notification struct {
	Title string
	Body  string
	Type  NotificationType
}

// Host is the injected capability interface onto the surrounding shell.
type Host interface {
	// SaveFile persists an export artifact under the suggested name.
	SaveFile(ctx context.Context, suggestedName string, content []byte) error
	// CopyToClipboard delivers text to the operator's clipboard.
	CopyToClipboard(ctx context.Context, content string) error
	// ShowNotification surfaces best-effort feedback; callers must not
	// fail their operation when it errors.
	ShowNotification(ctx context.Context, n Notification) error
}
