package export

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"secview/internal/domain"
	"secview/internal/host"
	"secview/internal/overview"
)

// Runner drives a full export: resolve details for the filtered principal
// set, render, and deliver through the host. Exports are all-or-nothing:
// any detail fetch failure aborts the run with no artifact, and a sink
// failure surfaces as a *domain.ExportSinkError. Notification failures are
// swallowed.
type Runner struct {
	builder *overview.MatrixBuilder
	host    host.Host
	logger  *slog.Logger

	// Now is the clock used for artifact names and report timestamps.
	// Overridable in tests.
	Now func() time.Time
}

// NewRunner creates a Runner around the given matrix builder and host.
func NewRunner(builder *overview.MatrixBuilder, h host.Host, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{builder: builder, host: h, logger: logger, Now: time.Now}
}

// UsersCSV exports the user matrix as a CSV file via the host's SaveFile.
func (r *Runner) UsersCSV(ctx context.Context, users []domain.User) error {
	m, err := r.builder.BuildUsers(ctx, users)
	if err != nil {
		return r.reportFailure(ctx, "Error Exporting to CSV", err)
	}
	return r.deliverCSV(ctx, m, "user-security-export")
}

// TeamsCSV exports the team matrix as a CSV file via the host's SaveFile.
func (r *Runner) TeamsCSV(ctx context.Context, teams []domain.Team) error {
	m, err := r.builder.BuildTeams(ctx, teams)
	if err != nil {
		return r.reportFailure(ctx, "Error Exporting to CSV", err)
	}
	return r.deliverCSV(ctx, m, "team-security-export")
}

// UsersMarkdown renders the user report and places it on the clipboard.
func (r *Runner) UsersMarkdown(ctx context.Context, users []domain.User) error {
	m, err := r.builder.BuildUsers(ctx, users)
	if err != nil {
		return r.reportFailure(ctx, "Error Copying as Markdown", err)
	}
	return r.deliverMarkdown(ctx, m)
}

// TeamsMarkdown renders the team report and places it on the clipboard.
func (r *Runner) TeamsMarkdown(ctx context.Context, teams []domain.Team) error {
	m, err := r.builder.BuildTeams(ctx, teams)
	if err != nil {
		return r.reportFailure(ctx, "Error Copying as Markdown", err)
	}
	return r.deliverMarkdown(ctx, m)
}

func (r *Runner) deliverCSV(ctx context.Context, m *overview.Matrix, prefix string) error {
	name := prefix + "-" + artifactTimestamp(r.Now()) + ".csv"
	content := RenderCSV(m)
	if err := r.host.SaveFile(ctx, name, []byte(content)); err != nil {
		sinkErr := domain.ErrExportSink(err, "save %s", name)
		return r.reportFailure(ctx, "Error Exporting to CSV", sinkErr)
	}
	r.notify(ctx, host.Notification{
		Title: "Export Successful",
		Body:  "Security data has been exported to " + name + ".",
		Type:  host.NotifySuccess,
	})
	r.logger.Info("exported CSV", "file", name, "rows", len(m.Rows), "columns", len(m.Columns))
	return nil
}

func (r *Runner) deliverMarkdown(ctx context.Context, m *overview.Matrix) error {
	content := RenderMarkdown(m, r.Now())
	if err := r.host.CopyToClipboard(ctx, content); err != nil {
		sinkErr := domain.ErrExportSink(err, "copy markdown report")
		return r.reportFailure(ctx, "Error Copying as Markdown", sinkErr)
	}
	r.notify(ctx, host.Notification{
		Title: "Copy Successful",
		Body:  "Security data has been copied to the clipboard as Markdown.",
		Type:  host.NotifySuccess,
	})
	r.logger.Info("copied markdown report", "principals", len(m.Rows))
	return nil
}

// reportFailure surfaces the failure once and hands the error back; the
// operation is abandoned, never retried.
func (r *Runner) reportFailure(ctx context.Context, title string, err error) error {
	r.logger.Error(title, "error", err)
	r.notify(ctx, host.Notification{Title: title, Body: err.Error(), Type: host.NotifyError})
	return err
}

// notify is best-effort: a failing notification never fails the export.
func (r *Runner) notify(ctx context.Context, n host.Notification) {
	if err := r.host.ShowNotification(ctx, n); err != nil {
		r.logger.Warn("notification failed", "title", n.Title, "error", err)
	}
}

// artifactTimestamp derives a filesystem-safe name fragment from the clock:
// ISO-8601 UTC with colons and periods replaced by dashes.
func artifactTimestamp(t time.Time) string {
	iso := t.UTC().Format("2006-01-02T15:04:05.000Z")
	return strings.NewReplacer(":", "-", ".", "-").Replace(iso)
}
