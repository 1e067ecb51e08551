package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"marketplace-api/internal/mailer"
	"marketplace-api/internal/metrics"
	userrepo "marketplace-api/internal/repository/user"
)

// PasswordSweeper emails users whose password has not been changed for
// longer than maxAge. It only reminds, it never mutates accounts.
type PasswordSweeper struct {
	users   userrepo.Repository
	mail    mailer.Sender
	logger  *slog.Logger
	metrics *metrics.Metrics
	maxAge  time.Duration
	now     func() time.Time
}

func NewPasswordSweeper(users userrepo.Repository, mail mailer.Sender, logger *slog.Logger, m *metrics.Metrics, maxAge time.Duration) *PasswordSweeper {
	return &PasswordSweeper{
		users:   users,
		mail:    mail,
		logger:  logger.With("sweeper", "password"),
		metrics: m,
		maxAge:  maxAge,
		now:     time.Now,
	}
}

func (s *PasswordSweeper) RunOnce(ctx context.Context) error {
	cutoff := s.now().Add(-s.maxAge)
	stale, err := s.users.ListPasswordOlderThan(ctx, cutoff)
	if err != nil {
		s.metrics.SweepFailures.WithLabelValues("password").Inc()
		return err
	}

	for _, u := range stale {
		msg := mailer.Message{
			To:      u.Email,
			Subject: "Time to update your password",
			Text: fmt.Sprintf("Your password was last changed more than %d days ago. Please pick a new one.",
				int(s.maxAge.Hours()/24)),
		}
		if err := s.mail.Send(ctx, msg); err != nil {
			s.metrics.SweepFailures.WithLabelValues("password").Inc()
			s.logger.ErrorContext(ctx, "password reminder failed", "user_id", u.ID, "error", err)
		}
	}

	s.metrics.SweepRuns.WithLabelValues("password").Inc()
	return nil
}
