package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/donelist/task-service/internal/api/metrics"
	"github.com/donelist/task-service/internal/core/domain"
	"github.com/donelist/task-service/internal/core/ports"
)

// TaskHandler handles the owner-scoped task routes. The owner id always comes
// from the request context populated by the Auth middleware, never from the
// payload.
type TaskHandler struct {
	taskService ports.TaskService
}

func NewTaskHandler(taskService ports.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// Create handles POST /v1/todos.
//
// @Summary      Create a task
// @Tags         todos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTaskRequest  true  "Task details"
// @Success      201   {object}  createTaskResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/todos [post]
func (h *TaskHandler) Create(c echo.Context) error {
	ownerID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	taskID, err := h.taskService.Create(c.Request().Context(), ownerID, req.Title, req.Description)
	if err != nil {
		return err
	}

	metrics.TasksCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, createTaskResponse{TodoID: taskID})
}

// List handles GET /v1/todos.
//
// @Summary      List the caller's tasks
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   taskResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/todos [get]
func (h *TaskHandler) List(c echo.Context) error {
	ownerID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	tasks, err := h.taskService.ListForOwner(c.Request().Context(), ownerID)
	if err != nil {
		return err
	}

	resp := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		resp = append(resp, toTaskResponse(t))
	}
	return c.JSON(http.StatusOK, resp)
}

// Get handles GET /v1/todos/:id.
//
// @Summary      Get one of the caller's tasks
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  taskResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/todos/{id} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	ownerID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	taskID, err := pathTaskID(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.GetOwned(c.Request().Context(), taskID, ownerID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTaskResponse(task))
}

// Update handles PATCH /v1/todos/:id with partial-update semantics: only the
// fields present in the body are changed.
//
// @Summary      Update one of the caller's tasks
// @Tags         todos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Task id"
// @Param        body  body      updateTaskRequest  true  "Fields to change"
// @Success      200   {object}  updateTaskResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/todos/{id} [patch]
func (h *TaskHandler) Update(c echo.Context) error {
	ownerID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	taskID, err := pathTaskID(c)
	if err != nil {
		return err
	}

	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	modified, err := h.taskService.Update(c.Request().Context(), taskID, ownerID, ports.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updateTaskResponse{Modified: modified})
}

// Delete handles DELETE /v1/todos/:id. A task the caller does not own is
// reported exactly like a nonexistent one.
//
// @Summary      Delete one of the caller's tasks
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  deleteTaskResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/todos/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	ownerID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	taskID, err := pathTaskID(c)
	if err != nil {
		return err
	}

	deleted, err := h.taskService.Delete(c.Request().Context(), taskID, ownerID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrTaskNotFound
	}
	return c.JSON(http.StatusOK, deleteTaskResponse{Deleted: true})
}

// Activity handles GET /v1/todos/:id/activity.
//
// @Summary      List a task's activity trail
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task id"
// @Success      200  {array}   activityEntryResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/todos/{id}/activity [get]
func (h *TaskHandler) Activity(c echo.Context) error {
	ownerID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	taskID, err := pathTaskID(c)
	if err != nil {
		return err
	}

	entries, err := h.taskService.ListActivity(c.Request().Context(), taskID, ownerID)
	if err != nil {
		return err
	}

	resp := make([]activityEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, activityEntryResponse{
			Action:    string(e.Action),
			Timestamp: e.Timestamp,
		})
	}
	return c.JSON(http.StatusOK, resp)
}

// pathTaskID validates the :id path parameter before it reaches storage.
func pathTaskID(c echo.Context) (string, error) {
	id := c.Param("id")
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "invalid task id")
	}
	return id, nil
}

func toTaskResponse(t *domain.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
	}
}
