// Package api is a small client for the FocusFlow HTTP surface. It drives
// the form-based signup and login flows with a cookie jar and calls the
// JSON task endpoints on behalf of the logged-in account.
package api

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/focusflow/internal/common"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("not logged in")
	ErrNotFound     = errors.New("not found")
	ErrRejected     = errors.New("rejected")
)

const dashboardPath = "/task/dashboard/view"

// Error is a non-2xx JSON response that maps to no sentinel.
type Error struct {
	Status  int
	Message string
	Missing []string
}

func (e *Error) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("%d: %s (%s)", e.Status, e.Message, strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

type Task struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Done        bool   `json:"done"`
	Date        string `json:"date"`
}

type Stats struct {
	Amount   int64 `json:"amount"`
	LatestID int64 `json:"latest_id"`
}

type Client struct {
	base *url.URL
	http *http.Client
}

func New(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported server url scheme %q", u.Scheme)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	return &Client{
		base: u,
		http: &http.Client{
			Jar:     jar,
			Timeout: timeout,
			// redirects carry the outcome of the form flows
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}, nil
}

func (c *Client) endpoint(path string) string {
	return c.base.JoinPath(path).String()
}

func (c *Client) send(req *http.Request) (*http.Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return resp, nil
}

// Ping checks the server's health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("/health"), nil)
	if err != nil {
		return err
	}
	resp, err := c.send(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: health returned %d", ErrUnavailable, resp.StatusCode)
	}
	return nil
}

// postForm submits an auth form and interprets the redirect. Success lands
// on the dashboard; anything else carries its reason in the flash cookie.
func (c *Client) postForm(ctx context.Context, path string, form url.Values) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path), strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.send(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch {
	case resp.StatusCode == http.StatusFound && resp.Header.Get("Location") == dashboardPath:
		return nil
	case resp.StatusCode == http.StatusFound:
		return fmt.Errorf("%w: %s", ErrRejected, flashMessage(resp))
	case resp.StatusCode == http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: invalid input", ErrRejected)
	default:
		return &Error{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}
}

func flashMessage(resp *http.Response) string {
	for _, ck := range resp.Cookies() {
		if ck.Name != common.FlashCookieName || ck.Value == "" {
			continue
		}
		if msg, err := base64.RawURLEncoding.DecodeString(ck.Value); err == nil {
			return string(msg)
		}
	}
	return "request was not accepted"
}

func (c *Client) Signup(ctx context.Context, email, username string, password []byte) error {
	return c.postForm(ctx, "/auth/signup", url.Values{
		"user_email":    {email},
		"user_name":     {username},
		"user_password": {string(password)},
	})
}

func (c *Client) Login(ctx context.Context, email string, password []byte) error {
	return c.postForm(ctx, "/auth/login_page", url.Values{
		"user_email":    {email},
		"user_password": {string(password)},
	})
}

func (c *Client) Logout(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/auth/logout"), nil)
	if err != nil {
		return err
	}
	resp, err := c.send(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusSeeOther:
		return nil
	case http.StatusFound:
		return ErrUnauthorized
	default:
		return &Error{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}
}

// doJSON sends body as JSON and decodes a 2xx answer into out.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.send(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		return json.NewDecoder(resp.Body).Decode(out)
	}

	var e struct {
		Error   string   `json:"error"`
		Missing []string `json:"missing"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&e)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, e.Error)
	default:
		return &Error{Status: resp.StatusCode, Message: e.Error, Missing: e.Missing}
	}
}

func (c *Client) List(ctx context.Context) ([]Task, error) {
	var out []Task
	if err := c.doJSON(ctx, http.MethodGet, "/task/tasks", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Add(ctx context.Context, name, description string) (int64, error) {
	var out struct {
		TaskID int64 `json:"task_id"`
	}
	err := c.doJSON(ctx, http.MethodPost, "/task/tasks", map[string]string{
		"name":        name,
		"description": description,
	}, &out)
	if err != nil {
		return 0, err
	}
	return out.TaskID, nil
}

func (c *Client) Edit(ctx context.Context, id int64, name, description string) error {
	return c.doJSON(ctx, http.MethodPatch, "/task/tasks", map[string]any{
		"id":          id,
		"name":        name,
		"description": description,
	}, nil)
}

func (c *Client) SetDone(ctx context.Context, id int64, done bool) error {
	return c.doJSON(ctx, http.MethodPatch, fmt.Sprintf("/task/done/%d", id), map[string]bool{"bool": done}, nil)
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/task/delete/%d", id), nil, nil)
}

// Count returns the number of tasks and the newest id. An account without
// tasks is reported as zero stats rather than ErrNotFound.
func (c *Client) Count(ctx context.Context) (Stats, error) {
	var out Stats
	err := c.doJSON(ctx, http.MethodGet, "/task/getTasksLength/", nil, &out)
	if errors.Is(err, ErrNotFound) {
		return Stats{}, nil
	}
	return out, err
}
