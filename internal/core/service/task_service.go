package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/donelist/task-service/internal/core/domain"
	"github.com/donelist/task-service/internal/core/ports"
)

// TaskCache abstracts the owner task-list cache (Redis). A nil slice with a
// nil error means a cache miss.
type TaskCache interface {
	GetList(ctx context.Context, ownerID string) ([]*domain.Task, error)
	SetList(ctx context.Context, ownerID string, tasks []*domain.Task) error
	Invalidate(ctx context.Context, ownerID string) error
}

// TaskService implements the owner-scoped task use-cases. The cache and the
// activity trail are best-effort: their failures are logged and never fail
// the user-facing operation.
type TaskService struct {
	repo         ports.TaskRepository
	activityRepo ports.ActivityRepository
	recorder     ports.ActivityRecorder
	cache        TaskCache
	log          zerolog.Logger
}

func NewTaskService(
	repo ports.TaskRepository,
	activityRepo ports.ActivityRepository,
	recorder ports.ActivityRecorder,
	cache TaskCache,
	log zerolog.Logger,
) *TaskService {
	return &TaskService{
		repo:         repo,
		activityRepo: activityRepo,
		recorder:     recorder,
		cache:        cache,
		log:          log,
	}
}

// Create persists a new task for ownerID. Completion always starts false.
func (s *TaskService) Create(ctx context.Context, ownerID, title, description string) (string, error) {
	task := &domain.Task{
		Title:       title,
		Description: description,
		Completed:   false,
		OwnerID:     ownerID,
	}

	id, err := s.repo.Insert(ctx, task)
	if err != nil {
		s.log.Error().Err(err).Str("owner_id", ownerID).Msg("failed to create task")
		return "", fmt.Errorf("create task: %w", err)
	}

	s.invalidate(ctx, ownerID)
	s.recorder.Record(domain.TaskActivity{
		TaskID:    id,
		OwnerID:   ownerID,
		Action:    domain.ActionCreated,
		Timestamp: time.Now().UTC(),
	})

	s.log.Info().Str("task_id", id).Str("owner_id", ownerID).Msg("task created")
	return id, nil
}

// ListForOwner returns all tasks owned by ownerID, an empty slice when there
// are none. The result is served from the cache when possible.
func (s *TaskService) ListForOwner(ctx context.Context, ownerID string) ([]*domain.Task, error) {
	cached, err := s.cache.GetList(ctx, ownerID)
	if err != nil {
		s.log.Warn().Err(err).Str("owner_id", ownerID).Msg("task cache read failed")
	} else if cached != nil {
		return cached, nil
	}

	tasks, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	if tasks == nil {
		tasks = []*domain.Task{}
	}

	if err := s.cache.SetList(ctx, ownerID, tasks); err != nil {
		s.log.Warn().Err(err).Str("owner_id", ownerID).Msg("task cache write failed")
	}
	return tasks, nil
}

// GetOwned returns the task only when both id and owner match.
func (s *TaskService) GetOwned(ctx context.Context, id, ownerID string) (*domain.Task, error) {
	return s.repo.FindOwned(ctx, id, ownerID)
}

// Update merges the supplied fields into the stored task. A mismatch on id or
// owner surfaces as domain.ErrTaskNotFound, exactly like a nonexistent id.
// The returned flag follows storage semantics: writing values identical to
// the stored ones reports false.
func (s *TaskService) Update(ctx context.Context, id, ownerID string, update ports.TaskUpdate) (bool, error) {
	task, err := s.repo.FindOwned(ctx, id, ownerID)
	if err != nil {
		return false, err
	}

	wasCompleted := task.Completed
	if update.Title != nil {
		task.Title = *update.Title
	}
	if update.Description != nil {
		task.Description = *update.Description
	}
	if update.Completed != nil {
		task.Completed = *update.Completed
	}

	modified, err := s.repo.Update(ctx, task)
	if err != nil {
		return false, fmt.Errorf("update task: %w", err)
	}

	if modified {
		s.invalidate(ctx, ownerID)
		action := domain.ActionUpdated
		if !wasCompleted && task.Completed {
			action = domain.ActionCompleted
		}
		s.recorder.Record(domain.TaskActivity{
			TaskID:    id,
			OwnerID:   ownerID,
			Action:    action,
			Timestamp: time.Now().UTC(),
		})
	}
	return modified, nil
}

// Delete removes the task when id and owner both match and reports whether a
// record was removed.
func (s *TaskService) Delete(ctx context.Context, id, ownerID string) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id, ownerID)
	if err != nil {
		return false, fmt.Errorf("delete task: %w", err)
	}

	if deleted {
		s.invalidate(ctx, ownerID)
		s.recorder.Record(domain.TaskActivity{
			TaskID:    id,
			OwnerID:   ownerID,
			Action:    domain.ActionDeleted,
			Timestamp: time.Now().UTC(),
		})
		s.log.Info().Str("task_id", id).Str("owner_id", ownerID).Msg("task deleted")
	}
	return deleted, nil
}

// ListActivity returns the audit trail of an owned task. Ownership is checked
// first so a foreign task id yields domain.ErrTaskNotFound, never its history.
func (s *TaskService) ListActivity(ctx context.Context, id, ownerID string) ([]*domain.TaskActivity, error) {
	if _, err := s.repo.FindOwned(ctx, id, ownerID); err != nil {
		return nil, err
	}

	entries, err := s.activityRepo.ListByTask(ctx, id, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	if entries == nil {
		entries = []*domain.TaskActivity{}
	}
	return entries, nil
}

func (s *TaskService) invalidate(ctx context.Context, ownerID string) {
	if err := s.cache.Invalidate(ctx, ownerID); err != nil {
		s.log.Warn().Err(err).Str("owner_id", ownerID).Msg("task cache invalidation failed")
	}
}
