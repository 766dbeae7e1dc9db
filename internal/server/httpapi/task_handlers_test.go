package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/dmitrijs2005/focusflow/internal/common"
	"github.com/dmitrijs2005/focusflow/internal/logging"
	"github.com/dmitrijs2005/focusflow/internal/server/validation"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}$`)

func TestCreateAndList(t *testing.T) {
	s := newTestServer(t)
	alice := s.signup(t, "alice")

	first := s.createTask(t, alice, "Write report", "quarterly")
	second := s.createTask(t, alice, "Call Bob", "")
	assert.Greater(t, second, first)

	list := s.listTasks(t, alice)
	require.Len(t, list, 2)

	assert.Equal(t, first, list[0].ID)
	assert.Equal(t, "Write report", list[0].Name)
	assert.Equal(t, "quarterly", list[0].Description)
	assert.False(t, list[0].Done)
	assert.Regexp(t, dateRe, list[0].Date)
	assert.Equal(t, second, list[1].ID)

	// the dashboard alias serves the same listing
	rec := s.do(t, http.MethodGet, "/task/dashboard", "", nil, alice)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Write report")

	page := s.do(t, http.MethodGet, "/task/dashboard/view", "", nil, alice)
	require.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Body.String(), "Write report")
	assert.Contains(t, page.Body.String(), "Call Bob")
}

func TestCreate_Validation(t *testing.T) {
	s := newTestServer(t)
	alice := s.signup(t, "alice")

	tests := []struct {
		name        string
		contentType string
		body        string
		want        int
	}{
		{"wrong types", "application/json", `{"name":true,"description":false}`, http.StatusUnprocessableEntity},
		{"missing description", "application/json", `{"name":"x"}`, http.StatusUnprocessableEntity},
		{"empty name", "application/json", `{"name":"","description":"d"}`, http.StatusUnprocessableEntity},
		{"name too long", "application/json", fmt.Sprintf(`{"name":%q,"description":""}`, strings.Repeat("n", 201)), http.StatusUnprocessableEntity},
		{"no body", "application/json", ``, http.StatusBadRequest},
		{"not json", "text/plain", `{"name":"x","description":"y"}`, http.StatusBadRequest},
		{"array", "application/json", `[1,2]`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, http.MethodPost, "/task/tasks", tt.contentType, strings.NewReader(tt.body), alice)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}

	assert.Empty(t, s.listTasks(t, alice))
}

func TestEdit(t *testing.T) {
	s := newTestServer(t)
	alice := s.signup(t, "alice")
	id := s.createTask(t, alice, "old", "old desc")

	t.Run("missing keys are listed", func(t *testing.T) {
		rec := s.sendJSON(t, http.MethodPatch, "/task/tasks", `{"name":"x"}`, alice)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, []any{"description", "id"}, decodeBody(t, rec)["missing"])
	})

	t.Run("wrong types", func(t *testing.T) {
		rec := s.sendJSON(t, http.MethodPatch, "/task/tasks", `{"name":1,"description":"d","id":1}`, alice)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		rec = s.sendJSON(t, http.MethodPatch, "/task/tasks", `{"name":"n","description":"d","id":"1"}`, alice)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("unknown id", func(t *testing.T) {
		rec := s.sendJSON(t, http.MethodPatch, "/task/tasks", `{"name":"n","description":"d","id":9999}`, alice)
		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Task not found or does not belong to current user", decodeBody(t, rec)["error"])
	})

	t.Run("success keeps done", func(t *testing.T) {
		rec := s.sendJSON(t, http.MethodPatch, fmt.Sprintf("/task/done/%d", id), `{"bool":true}`, alice)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = s.sendJSON(t, http.MethodPatch, "/task/tasks", fmt.Sprintf(`{"name":"new","description":"new desc","id":%d}`, id), alice)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Task updated!", decodeBody(t, rec)["message"])

		list := s.listTasks(t, alice)
		require.Len(t, list, 1)
		assert.Equal(t, "new", list[0].Name)
		assert.Equal(t, "new desc", list[0].Description)
		assert.True(t, list[0].Done)
	})
}

func TestDelete(t *testing.T) {
	s := newTestServer(t)
	alice := s.signup(t, "alice")
	id := s.createTask(t, alice, "temp", "")

	for _, path := range []string{"/task/delete/0", "/task/delete/abc", "/task/delete/9999"} {
		rec := s.do(t, http.MethodDelete, path, "", nil, alice)
		require.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.Equal(t, "Task not found!", decodeBody(t, rec)["error"])
	}

	rec := s.do(t, http.MethodDelete, fmt.Sprintf("/task/delete/%d", id), "", nil, alice)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Task deleted!", decodeBody(t, rec)["message"])
	assert.Empty(t, s.listTasks(t, alice))

	again := s.do(t, http.MethodDelete, fmt.Sprintf("/task/delete/%d", id), "", nil, alice)
	assert.Equal(t, http.StatusNotFound, again.Code)
}

func TestSetDone(t *testing.T) {
	s := newTestServer(t)
	alice := s.signup(t, "alice")
	id := s.createTask(t, alice, "toggle me", "")
	path := fmt.Sprintf("/task/done/%d", id)

	for i := 0; i < 2; i++ {
		rec := s.sendJSON(t, http.MethodPatch, path, `{"bool":true}`, alice)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Task done set as true!", decodeBody(t, rec)["message"])
		assert.True(t, s.listTasks(t, alice)[0].Done)
	}

	rec := s.sendJSON(t, http.MethodPatch, path, `{"bool":false}`, alice)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Task done set as false!", decodeBody(t, rec)["message"])
	assert.False(t, s.listTasks(t, alice)[0].Done)

	for _, body := range []string{`{"bool":"yes"}`, `{"bool":1}`, `{}`, `{"bool":null}`} {
		rec := s.sendJSON(t, http.MethodPatch, path, body, alice)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}

	zero := s.sendJSON(t, http.MethodPatch, "/task/done/0", `{"bool":true}`, alice)
	require.Equal(t, http.StatusNotFound, zero.Code)
	assert.Equal(t, "The Task with the ID: 0 doesn't exist!", decodeBody(t, zero)["error"])

	bad := s.sendJSON(t, http.MethodPatch, "/task/done/abc", `{"bool":true}`, alice)
	assert.Equal(t, http.StatusNotFound, bad.Code)
}

func TestCount(t *testing.T) {
	s := newTestServer(t)
	alice := s.signup(t, "alice")

	rec := s.do(t, http.MethodGet, "/task/getTasksLength/", "", nil, alice)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "There are no Task entries under the current user", decodeBody(t, rec)["error"])

	s.createTask(t, alice, "a", "")
	last := s.createTask(t, alice, "b", "")

	rec = s.do(t, http.MethodGet, "/task/getTasksLength/", "", nil, alice)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.EqualValues(t, 2, body["amount"])
	assert.EqualValues(t, last, body["latest_id"])
}

func TestOwnershipIsolation(t *testing.T) {
	s := newTestServer(t)
	alice := s.signup(t, "alice")
	bob := s.signup(t, "bob")

	id := s.createTask(t, alice, "private", "alice only")

	assert.Empty(t, s.listTasks(t, bob))

	rec := s.sendJSON(t, http.MethodPatch, "/task/tasks", fmt.Sprintf(`{"name":"hijack","description":"","id":%d}`, id), bob)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.sendJSON(t, http.MethodPatch, fmt.Sprintf("/task/done/%d", id), `{"bool":true}`, bob)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodDelete, fmt.Sprintf("/task/delete/%d", id), "", nil, bob)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodGet, "/task/getTasksLength/", "", nil, bob)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	list := s.listTasks(t, alice)
	require.Len(t, list, 1)
	assert.Equal(t, "private", list[0].Name)
	assert.Equal(t, "alice only", list[0].Description)
	assert.False(t, list[0].Done)
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	alice := s.signup(t, "alice")
	s.createTask(t, alice, "counted", "")
	assert.Equal(t, float64(1), testutil.ToFloat64(s.metrics.TaskMutations.WithLabelValues("create")))

	rec = s.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "focusflow_tasks_mutations_total")
	assert.Contains(t, rec.Body.String(), "focusflow_http_requests_total")
}

func TestHealth_StoreDown(t *testing.T) {
	r := NewRouter(Deps{
		Ping: func(_ context.Context) error { return errors.New("connection refused") },
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRespondTaskError(t *testing.T) {
	h := &Handler{log: logging.Nop{}}

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"missing keys", &validation.MissingKeysError{Keys: []string{"id"}}, http.StatusBadRequest},
		{"malformed", common.ErrMalformedBody, http.StatusBadRequest},
		{"bad payload", fmt.Errorf("%w: nope", common.ErrBadPayload), http.StatusBadRequest},
		{"wrong type", &validation.FieldError{Field: "id", Reason: "must be an integer", Err: common.ErrWrongType}, http.StatusUnprocessableEntity},
		{"validation", common.ErrValidation, http.StatusUnprocessableEntity},
		{"not found", fmt.Errorf("task 3: %w", common.ErrorNotFound), http.StatusNotFound},
		{"unauthorized", common.ErrorUnauthorized, http.StatusUnauthorized},
		{"corrupt record", fmt.Errorf("%w: task 3", common.ErrCorruptRecord), http.StatusInternalServerError},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			h.respondTaskError(c, tt.err, "gone")
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
