package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/donelist/task-service/internal/api/middleware"
	"github.com/donelist/task-service/internal/core/domain"
	"github.com/donelist/task-service/internal/core/ports"
)

const (
	testOwnerID = "64f1c0ffee0000000000aaaa"
	testTaskID  = "64f1c0ffee0000000000bbbb"
)

type stubTaskService struct {
	createFn       func(ctx context.Context, ownerID, title, description string) (string, error)
	listFn         func(ctx context.Context, ownerID string) ([]*domain.Task, error)
	getFn          func(ctx context.Context, id, ownerID string) (*domain.Task, error)
	updateFn       func(ctx context.Context, id, ownerID string, update ports.TaskUpdate) (bool, error)
	deleteFn       func(ctx context.Context, id, ownerID string) (bool, error)
	listActivityFn func(ctx context.Context, id, ownerID string) ([]*domain.TaskActivity, error)
}

func (s *stubTaskService) Create(ctx context.Context, ownerID, title, description string) (string, error) {
	return s.createFn(ctx, ownerID, title, description)
}

func (s *stubTaskService) ListForOwner(ctx context.Context, ownerID string) ([]*domain.Task, error) {
	return s.listFn(ctx, ownerID)
}

func (s *stubTaskService) GetOwned(ctx context.Context, id, ownerID string) (*domain.Task, error) {
	return s.getFn(ctx, id, ownerID)
}

func (s *stubTaskService) Update(ctx context.Context, id, ownerID string, update ports.TaskUpdate) (bool, error) {
	return s.updateFn(ctx, id, ownerID, update)
}

func (s *stubTaskService) Delete(ctx context.Context, id, ownerID string) (bool, error) {
	return s.deleteFn(ctx, id, ownerID)
}

func (s *stubTaskService) ListActivity(ctx context.Context, id, ownerID string) ([]*domain.TaskActivity, error) {
	return s.listActivityFn(ctx, id, ownerID)
}

func newAuthedContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	c, rec := newJSONContext(t, method, target, body)
	c.Set(middleware.UserIDKey, testOwnerID)
	return c, rec
}

func setTaskParam(c echo.Context, id string) {
	c.SetParamNames("id")
	c.SetParamValues(id)
}

func TestTaskHandler_Create_Success(t *testing.T) {
	stub := &stubTaskService{
		createFn: func(_ context.Context, ownerID, title, description string) (string, error) {
			if ownerID != testOwnerID {
				t.Fatalf("owner id not taken from context: %q", ownerID)
			}
			if title != "groceries" || description != "milk" {
				t.Fatalf("unexpected args: %q %q", title, description)
			}
			return testTaskID, nil
		},
	}
	h := NewTaskHandler(stub)

	c, rec := newAuthedContext(t, http.MethodPost, "/v1/todos",
		`{"title":"groceries","description":"milk"}`)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["todo_id"] != testTaskID {
		t.Fatalf("unexpected todo_id: %q", resp["todo_id"])
	}
}

func TestTaskHandler_Create_MissingIdentity(t *testing.T) {
	stub := &stubTaskService{
		createFn: func(context.Context, string, string, string) (string, error) {
			t.Fatalf("service must not be called without an identity")
			return "", nil
		},
	}
	h := NewTaskHandler(stub)

	// No UserIDKey set on the context.
	c, _ := newJSONContext(t, http.MethodPost, "/v1/todos", `{"title":"groceries"}`)

	err := h.Create(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestTaskHandler_Create_MissingTitle(t *testing.T) {
	stub := &stubTaskService{
		createFn: func(context.Context, string, string, string) (string, error) {
			t.Fatalf("service must not be called on validation failure")
			return "", nil
		},
	}
	h := NewTaskHandler(stub)

	c, rec := newAuthedContext(t, http.MethodPost, "/v1/todos", `{"description":"milk"}`)

	_ = h.Create(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestTaskHandler_List(t *testing.T) {
	stub := &stubTaskService{
		listFn: func(_ context.Context, ownerID string) ([]*domain.Task, error) {
			return []*domain.Task{
				{ID: testTaskID, Title: "groceries", OwnerID: ownerID, Completed: true},
			}, nil
		},
	}
	h := NewTaskHandler(stub)

	c, rec := newAuthedContext(t, http.MethodGet, "/v1/todos", "")

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 1 || resp[0]["id"] != testTaskID {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
	if _, leaked := resp[0]["user_id"]; leaked {
		t.Fatalf("owner id leaked into response: %s", rec.Body.String())
	}
}

func TestTaskHandler_List_Empty(t *testing.T) {
	stub := &stubTaskService{
		listFn: func(context.Context, string) ([]*domain.Task, error) {
			return []*domain.Task{}, nil
		},
	}
	h := NewTaskHandler(stub)

	c, rec := newAuthedContext(t, http.MethodGet, "/v1/todos", "")

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Fatalf("expected empty array, got %q", body)
	}
}

func TestTaskHandler_Get_NotFound(t *testing.T) {
	stub := &stubTaskService{
		getFn: func(context.Context, string, string) (*domain.Task, error) {
			return nil, domain.ErrTaskNotFound
		},
	}
	h := NewTaskHandler(stub)

	c, _ := newAuthedContext(t, http.MethodGet, "/v1/todos/"+testTaskID, "")
	setTaskParam(c, testTaskID)

	if err := h.Get(c); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestTaskHandler_Get_InvalidID(t *testing.T) {
	stub := &stubTaskService{
		getFn: func(context.Context, string, string) (*domain.Task, error) {
			t.Fatalf("service must not be called with a malformed id")
			return nil, nil
		},
	}
	h := NewTaskHandler(stub)

	c, _ := newAuthedContext(t, http.MethodGet, "/v1/todos/not-hex", "")
	setTaskParam(c, "not-hex")

	err := h.Get(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestTaskHandler_Update_PartialFields(t *testing.T) {
	var captured ports.TaskUpdate
	stub := &stubTaskService{
		updateFn: func(_ context.Context, id, ownerID string, update ports.TaskUpdate) (bool, error) {
			if id != testTaskID || ownerID != testOwnerID {
				t.Fatalf("unexpected ids: %q %q", id, ownerID)
			}
			captured = update
			return true, nil
		},
	}
	h := NewTaskHandler(stub)

	c, rec := newAuthedContext(t, http.MethodPatch, "/v1/todos/"+testTaskID, `{"completed":true}`)
	setTaskParam(c, testTaskID)

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if captured.Title != nil || captured.Description != nil {
		t.Fatalf("absent fields must stay nil: %+v", captured)
	}
	if captured.Completed == nil || !*captured.Completed {
		t.Fatalf("completed flag not captured: %+v", captured)
	}

	var resp map[string]bool
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if !resp["modified"] {
		t.Fatalf("expected modified=true, got %s", rec.Body.String())
	}
}

func TestTaskHandler_Update_NoChange(t *testing.T) {
	stub := &stubTaskService{
		updateFn: func(context.Context, string, string, ports.TaskUpdate) (bool, error) {
			return false, nil
		},
	}
	h := NewTaskHandler(stub)

	c, rec := newAuthedContext(t, http.MethodPatch, "/v1/todos/"+testTaskID, `{}`)
	setTaskParam(c, testTaskID)

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]bool
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["modified"] {
		t.Fatalf("expected modified=false, got %s", rec.Body.String())
	}
}

func TestTaskHandler_Delete_Success(t *testing.T) {
	stub := &stubTaskService{
		deleteFn: func(_ context.Context, id, ownerID string) (bool, error) {
			if id != testTaskID || ownerID != testOwnerID {
				t.Fatalf("unexpected ids: %q %q", id, ownerID)
			}
			return true, nil
		},
	}
	h := NewTaskHandler(stub)

	c, rec := newAuthedContext(t, http.MethodDelete, "/v1/todos/"+testTaskID, "")
	setTaskParam(c, testTaskID)

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]bool
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if !resp["deleted"] {
		t.Fatalf("expected deleted=true, got %s", rec.Body.String())
	}
}

func TestTaskHandler_Delete_NothingDeleted(t *testing.T) {
	stub := &stubTaskService{
		deleteFn: func(context.Context, string, string) (bool, error) {
			return false, nil
		},
	}
	h := NewTaskHandler(stub)

	c, _ := newAuthedContext(t, http.MethodDelete, "/v1/todos/"+testTaskID, "")
	setTaskParam(c, testTaskID)

	if err := h.Delete(c); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestTaskHandler_Activity(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	stub := &stubTaskService{
		listActivityFn: func(_ context.Context, id, ownerID string) ([]*domain.TaskActivity, error) {
			if id != testTaskID || ownerID != testOwnerID {
				t.Fatalf("unexpected ids: %q %q", id, ownerID)
			}
			return []*domain.TaskActivity{
				{TaskID: id, OwnerID: ownerID, Action: domain.ActionCreated, Timestamp: now},
				{TaskID: id, OwnerID: ownerID, Action: domain.ActionCompleted, Timestamp: now.Add(time.Minute)},
			}, nil
		},
	}
	h := NewTaskHandler(stub)

	c, rec := newAuthedContext(t, http.MethodGet, "/v1/todos/"+testTaskID+"/activity", "")
	setTaskParam(c, testTaskID)

	if err := h.Activity(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 2 || resp[0]["action"] != "created" || resp[1]["action"] != "completed" {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestTaskHandler_Activity_NotFound(t *testing.T) {
	stub := &stubTaskService{
		listActivityFn: func(context.Context, string, string) ([]*domain.TaskActivity, error) {
			return nil, domain.ErrTaskNotFound
		},
	}
	h := NewTaskHandler(stub)

	c, _ := newAuthedContext(t, http.MethodGet, "/v1/todos/"+testTaskID+"/activity", "")
	setTaskParam(c, testTaskID)

	if err := h.Activity(c); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}
