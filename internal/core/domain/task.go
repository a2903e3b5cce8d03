package domain

import "errors"

// ErrTaskNotFound covers both a genuinely missing task and a task owned by a
// different user. The two cases are deliberately indistinguishable so that a
// task id alone never reveals whether someone else's record exists.
var ErrTaskNotFound = errors.New("task not found")

// Task is a single to-do item. OwnerID is set once at creation and never
// reassigned; every read, update and delete filters by both ID and OwnerID.
type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	OwnerID     string `json:"user_id"`
}
