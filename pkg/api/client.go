package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/zthreefires/neonctl/pkg/logging"
)

const (
	DefaultServerURL = "https://console.neon.tech/api/v2"

	RequestIDHeader = "X-Request-Id"
	contentTypeJSON = "application/json"
)

// HTTPRequestDoer performs HTTP requests. *http.Client implements it.
type HTTPRequestDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// RequestEditorFn is called on every request before it is sent.
type RequestEditorFn func(ctx context.Context, req *http.Request) error

// Client talks to the platform REST API.
type Client struct {
	// Server is the API base URL, all operation paths are appended to it.
	Server string

	// Client is used to send requests. http.DefaultClient unless set with
	// WithHTTPClient.
	Client HTTPRequestDoer

	// RequestEditors run, in order, on each request.
	RequestEditors []RequestEditorFn
}

type ClientOption func(*Client) error

func NewClient(server string, opts ...ClientOption) (*Client, error) {
	client := Client{
		Server: strings.TrimRight(server, "/"),
	}
	for _, o := range opts {
		if err := o(&client); err != nil {
			return nil, err
		}
	}
	u, err := url.Parse(client.Server)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAPIEndpoint, server)
	}
	if client.Client == nil {
		client.Client = http.DefaultClient
	}
	return &client, nil
}

// WithHTTPClient sets the doer used to send requests.
func WithHTTPClient(doer HTTPRequestDoer) ClientOption {
	return func(c *Client) error {
		c.Client = doer
		return nil
	}
}

// WithRequestEditorFn adds a request editor, e.g. for authentication.
func WithRequestEditorFn(fn RequestEditorFn) ClientOption {
	return func(c *Client) error {
		c.RequestEditors = append(c.RequestEditors, fn)
		return nil
	}
}

func (c *Client) GetProjectBranch(ctx context.Context, projectID, branchID string) (*Branch, error) {
	var resp BranchResponse
	err := c.do(ctx, http.MethodGet, branchPath(projectID, branchID), nil, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Branch, nil
}

func (c *Client) ListProjectBranches(ctx context.Context, projectID string) ([]Branch, error) {
	var resp BranchesResponse
	err := c.do(ctx, http.MethodGet, branchesPath(projectID), nil, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Branches, nil
}

func (c *Client) CreateProjectBranch(ctx context.Context, projectID string, body BranchCreateRequest) (*Branch, error) {
	var resp BranchResponse
	err := c.do(ctx, http.MethodPost, branchesPath(projectID), body, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Branch, nil
}

func (c *Client) RestoreProjectBranch(ctx context.Context, projectID, branchID string, body BranchRestoreRequest) (*Branch, error) {
	var resp BranchResponse
	err := c.do(ctx, http.MethodPost, branchPath(projectID, branchID)+"/restore", body, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Branch, nil
}

func branchesPath(projectID string) string {
	return "/projects/" + url.PathEscape(projectID) + "/branches"
}

func branchPath(projectID, branchID string) string {
	return branchesPath(projectID) + "/" + url.PathEscape(branchID)
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.Server+path, bodyReader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", contentTypeJSON)
	if body != nil {
		req.Header.Set("Content-Type", contentTypeJSON)
	}
	for _, edit := range c.RequestEditors {
		if err := edit(ctx, req); err != nil {
			return err
		}
	}

	log := logging.FromContext(ctx).WithFields(logging.Fields{
		logging.MethodFieldKey:    method,
		logging.PathFieldKey:      path,
		logging.RequestIDFieldKey: req.Header.Get(RequestIDHeader),
	})
	log.Trace("API request")

	resp, err := c.Client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}
	log.WithField("status_code", resp.StatusCode).Trace("API response")

	if err := responseAsError(resp, respBody); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%w: decode response: %s", ErrRequestFailed, err)
	}
	return nil
}
