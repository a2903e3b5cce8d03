package domain

import "time"

// ActivityAction identifies what happened to a task.
type ActivityAction string

const (
	ActionCreated   ActivityAction = "created"
	ActionUpdated   ActivityAction = "updated"
	ActionCompleted ActivityAction = "completed"
	ActionDeleted   ActivityAction = "deleted"
)

// TaskActivity is one entry in a task's audit trail. Entries are written
// asynchronously by the activity dispatcher and are owner-scoped on read,
// like every other task resource.
type TaskActivity struct {
	TaskID    string         `json:"task_id"`
	OwnerID   string         `json:"-"`
	Action    ActivityAction `json:"action"`
	Timestamp time.Time      `json:"timestamp"`
}
