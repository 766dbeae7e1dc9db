package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/focusflow/internal/common"
	"github.com/dmitrijs2005/focusflow/internal/server/config"
	"github.com/dmitrijs2005/focusflow/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/focusflow/internal/server/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router  *gin.Engine
	metrics *Metrics
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := &config.Config{SecretKey: "test-secret", SessionLifetime: 50 * time.Minute}
	rm := repomanager.NewInMemoryRepositoryManager()
	sessions := services.NewSessionService(nil, rm, cfg)
	metrics := NewMetrics()

	r := NewRouter(Deps{
		Accounts: services.NewAccountService(nil, rm, sessions),
		Sessions: sessions,
		Tasks:    services.NewTaskService(nil, rm),
		Metrics:  metrics,
	})
	return &testServer{router: r, metrics: metrics}
}

func (s *testServer) do(t *testing.T, method, path, contentType string, body io.Reader, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for _, c := range cookies {
		if c != nil {
			req.AddCookie(c)
		}
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) postForm(t *testing.T, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	return s.do(t, http.MethodPost, path, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()), cookies...)
}

func (s *testServer) sendJSON(t *testing.T, method, path, body string, session *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	return s.do(t, method, path, "application/json", strings.NewReader(body), session)
}

// signup registers username and returns its session cookie.
func (s *testServer) signup(t *testing.T, username string) *http.Cookie {
	t.Helper()
	rec := s.postForm(t, "/auth/signup", url.Values{
		"user_email":    {username + "@example.com"},
		"user_name":     {username},
		"user_password": {"pw-" + username},
	})
	require.Equal(t, http.StatusFound, rec.Code, rec.Body.String())
	c := cookieNamed(rec, common.SessionCookieName)
	require.NotNil(t, c, "session cookie not set")
	return c
}

// createTask adds a task and returns its id.
func (s *testServer) createTask(t *testing.T, session *http.Cookie, name, description string) int64 {
	t.Helper()
	body, err := json.Marshal(map[string]string{"name": name, "description": description})
	require.NoError(t, err)

	rec := s.do(t, http.MethodPost, "/task/tasks", "application/json", bytes.NewReader(body), session)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var out struct {
		Message string `json:"message"`
		TaskID  int64  `json:"task_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Equal(t, "Task added!", out.Message)
	return out.TaskID
}

func (s *testServer) listTasks(t *testing.T, session *http.Cookie) []taskView {
	t.Helper()
	rec := s.do(t, http.MethodGet, "/task/tasks", "", nil, session)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var out []taskView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func cookieNamed(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	var found *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			found = c
		}
	}
	return found
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m), rec.Body.String())
	return m
}
