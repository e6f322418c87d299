// Package client is a Go consumer of the task service HTTP contract. It
// mirrors the browser app's state holders: a session that survives restarts
// through a durable token store, and a task list that merges mutations
// locally instead of refetching.
package client

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/taskhive/backend/domain"
)

// APIError carries the status and server-provided message of a failed call.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// AuthResult is the outcome of register and login.
type AuthResult struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// TaskInput is the create-task form. Empty optional fields are omitted from
// the request so the server applies its defaults.
type TaskInput struct {
	Title          string `json:"title"`
	Description    string `json:"description,omitempty"`
	Status         string `json:"status,omitempty"`
	ExpirationDate string `json:"expirationDate,omitempty"`
}

// API performs requests against the task service.
type API struct {
	baseURL string
	httpc   *fasthttp.Client
	timeout time.Duration
}

// NewAPI creates a client for the service at baseURL (no trailing slash).
func NewAPI(baseURL string) *API {
	return &API{
		baseURL: baseURL,
		httpc:   &fasthttp.Client{},
		timeout: 10 * time.Second,
	}
}

func (a *API) Register(email, password, name string) (AuthResult, error) {
	var result AuthResult
	body := map[string]string{"email": email, "password": password}
	if name != "" {
		body["name"] = name
	}
	err := a.do(fasthttp.MethodPost, "/auth/register", "", body, &result)
	return result, err
}

func (a *API) Login(email, password string) (AuthResult, error) {
	var result AuthResult
	body := map[string]string{"email": email, "password": password}
	err := a.do(fasthttp.MethodPost, "/auth/login", "", body, &result)
	return result, err
}

func (a *API) Verify(token string) (domain.User, error) {
	var result struct {
		User domain.User `json:"user"`
	}
	err := a.do(fasthttp.MethodGet, "/auth/verify", token, nil, &result)
	return result.User, err
}

func (a *API) ListTasks(token string) ([]domain.Task, error) {
	var tasks []domain.Task
	err := a.do(fasthttp.MethodGet, "/tasks", token, nil, &tasks)
	return tasks, err
}

func (a *API) CreateTask(token string, in TaskInput) (domain.Task, error) {
	var task domain.Task
	err := a.do(fasthttp.MethodPost, "/tasks", token, in, &task)
	return task, err
}

func (a *API) UpdateTask(token, id string, patch domain.TaskPatch) error {
	return a.do(fasthttp.MethodPut, "/tasks/"+id, token, patchBody(patch), nil)
}

func (a *API) DeleteTask(token, id string) error {
	return a.do(fasthttp.MethodDelete, "/tasks/"+id, token, nil, nil)
}

func (a *API) do(method, path, token string, body, out interface{}) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(a.baseURL + path)
	req.Header.SetMethod(method)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		req.Header.SetContentType("application/json")
		req.SetBody(payload)
	}

	if err := a.httpc.DoTimeout(req, resp, a.timeout); err != nil {
		return err
	}

	if status := resp.StatusCode(); status >= fasthttp.StatusBadRequest {
		var msg struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(resp.Body(), &msg)
		return &APIError{Status: status, Message: msg.Message}
	}

	if out != nil {
		return json.Unmarshal(resp.Body(), out)
	}
	return nil
}

// patchBody serializes a patch preserving the absent/set/cleared distinction:
// absent fields are left out entirely, cleared fields become explicit nulls.
func patchBody(p domain.TaskPatch) map[string]interface{} {
	m := map[string]interface{}{}
	if p.Title != nil {
		m["title"] = *p.Title
	}
	if p.DescriptionSet {
		if p.Description != nil {
			m["description"] = *p.Description
		} else {
			m["description"] = nil
		}
	}
	if p.Status != nil {
		m["status"] = *p.Status
	}
	if p.ExpirationDateSet {
		if p.ExpirationDate != nil {
			m["expirationDate"] = p.ExpirationDate.Format(time.RFC3339)
		} else {
			m["expirationDate"] = nil
		}
	}
	return m
}
