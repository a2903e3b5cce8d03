package handler

import "time"

type createTaskRequest struct {
	Title       string `json:"title"       validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
}

type createTaskResponse struct {
	TodoID string `json:"todo_id"`
}

// updateTaskRequest carries a partial update: nil fields were absent from the
// request body and leave the stored value untouched.
type updateTaskRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

// taskResponse is the transport view of a task. The owner id is implicit in
// the caller's token and intentionally omitted.
type taskResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

type updateTaskResponse struct {
	Modified bool `json:"modified"`
}

type deleteTaskResponse struct {
	Deleted bool `json:"deleted"`
}

type activityEntryResponse struct {
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}
