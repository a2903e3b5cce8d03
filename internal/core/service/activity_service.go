package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/donelist/task-service/internal/api/metrics"
	"github.com/donelist/task-service/internal/core/domain"
	"github.com/donelist/task-service/internal/core/ports"
)

type activityService struct {
	repo ports.ActivityRepository
	log  zerolog.Logger
}

// NewActivityService returns the processor that persists task activity
// entries handed over by the queue dispatcher.
func NewActivityService(repo ports.ActivityRepository, log zerolog.Logger) ports.ActivityProcessor {
	return &activityService{repo: repo, log: log}
}

// Process persists a single activity entry and records metrics.
func (s *activityService) Process(ctx context.Context, entry domain.TaskActivity) error {
	start := time.Now()

	if err := s.repo.Insert(ctx, &entry); err != nil {
		metrics.ActivityErrorsTotal.WithLabelValues("insert_failed").Inc()
		return fmt.Errorf("record activity: %w", err)
	}

	metrics.ActivityProcessedTotal.WithLabelValues(string(entry.Action)).Inc()
	metrics.ActivityWriteDuration.WithLabelValues(string(entry.Action)).Observe(time.Since(start).Seconds())

	s.log.Debug().
		Str("task_id", entry.TaskID).
		Str("action", string(entry.Action)).
		Msg("activity recorded")
	return nil
}
