package workflow

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/alexanderramin/evaluador/internal/domain"
)

// SubmissionEvent records one collaborator call.
type SubmissionEvent struct {
	ExperienceID int
	UserID       int
	TotalScore   int
	LocalTier    domain.Tier
	RemoteTier   domain.Tier
	// RemoteTotal is only meaningful when RemoteTotalReported is set.
	RemoteTotal         int
	RemoteTotalReported bool
	Duration            time.Duration
	Success             bool
	Err                 error
}

// TierMismatch reports whether the collaborator resolved a different tier
// than the local preview.
func (e SubmissionEvent) TierMismatch() bool {
	return e.Success && e.RemoteTier != "" && e.RemoteTier != e.LocalTier
}

// TotalMismatch reports whether the collaborator summed a different total
// than the local preview.
func (e SubmissionEvent) TotalMismatch() bool {
	return e.Success && e.RemoteTotalReported && e.RemoteTotal != e.TotalScore
}

type SubmissionObserver interface {
	ObserveSubmission(ctx context.Context, event SubmissionEvent)
}

type NoopSubmissionObserver struct{}

func (NoopSubmissionObserver) ObserveSubmission(context.Context, SubmissionEvent) {}

type logSubmissionObserver struct {
	logger *slog.Logger
}

// NewLogSubmissionObserver writes submission events to w.
func NewLogSubmissionObserver(w io.Writer) SubmissionObserver {
	if w == nil {
		return NoopSubmissionObserver{}
	}
	return &logSubmissionObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *logSubmissionObserver) ObserveSubmission(ctx context.Context, event SubmissionEvent) {
	attrs := []any{
		"experience_id", event.ExperienceID,
		"user_id", event.UserID,
		"total_score", event.TotalScore,
		"local_tier", string(event.LocalTier),
		"duration_ms", event.Duration.Milliseconds(),
		"success", event.Success,
	}
	if event.Err != nil {
		attrs = append(attrs, "error", event.Err.Error())
		o.logger.ErrorContext(ctx, "evaluation_submit", attrs...)
		return
	}
	attrs = append(attrs, "remote_tier", string(event.RemoteTier))
	if event.RemoteTotalReported {
		attrs = append(attrs, "remote_total", event.RemoteTotal)
	}
	switch {
	case event.TierMismatch():
		o.logger.WarnContext(ctx, "evaluation_tier_mismatch", attrs...)
		return
	case event.TotalMismatch():
		o.logger.WarnContext(ctx, "evaluation_total_mismatch", attrs...)
		return
	}
	o.logger.InfoContext(ctx, "evaluation_submit", attrs...)
}

func submissionObserverOrNoop(observers []SubmissionObserver) SubmissionObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopSubmissionObserver{}
}
