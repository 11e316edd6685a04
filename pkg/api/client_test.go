package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-openapi/swag"
	"github.com/stretchr/testify/require"
	"github.com/zthreefires/neonctl/pkg/api"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...api.ClientOption) *api.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := api.NewClient(server.URL+"/api/v2/", opts...)
	require.NoError(t, err)
	return client
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestNewClient_InvalidEndpoint(t *testing.T) {
	for _, server := range []string{"", "console.neon.tech", "://bad"} {
		_, err := api.NewClient(server)
		require.ErrorIs(t, err, api.ErrInvalidAPIEndpoint, server)
	}
}

func TestClient_GetProjectBranch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/v2/projects/p-1/branches/br-child", r.URL.Path)
		writeJSON(t, w, http.StatusOK, api.BranchResponse{Branch: api.Branch{
			ID:        "br-child",
			ProjectID: "p-1",
			ParentID:  swag.String("br-parent"),
			Name:      "child",
		}})
	})

	branch, err := client.GetProjectBranch(context.Background(), "p-1", "br-child")
	require.NoError(t, err)
	require.Equal(t, "br-child", branch.ID)
	require.Equal(t, "br-parent", swag.StringValue(branch.ParentID))
}

func TestClient_GetProjectBranch_NoParent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"branch":{"id":"br-main","project_id":"p-1","parent_id":null,"name":"main","default":true}}`))
	})

	branch, err := client.GetProjectBranch(context.Background(), "p-1", "br-main")
	require.NoError(t, err)
	require.Nil(t, branch.ParentID)
	require.True(t, branch.Default)
}

func TestClient_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		target  error
		message string
	}{
		{name: "not found", status: http.StatusNotFound, body: `{"code":"","message":"branch not found"}`, target: api.ErrNotFound, message: "branch not found"},
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"message":"authentication required"}`, target: api.ErrUnauthorized, message: "authentication required"},
		{name: "forbidden", status: http.StatusForbidden, body: `{"message":"forbidden"}`, target: api.ErrUnauthorized, message: "forbidden"},
		{name: "locked", status: http.StatusLocked, body: `{"message":"project already has running operations"}`, target: api.ErrConflict, message: "project already has running operations"},
		{name: "server error without body", status: http.StatusBadGateway, target: api.ErrRequestFailed, message: "502 Bad Gateway"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set(api.RequestIDHeader, "req-1")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			_, err := client.GetProjectBranch(context.Background(), "p-1", "br-1")
			require.ErrorIs(t, err, tt.target)
			require.ErrorIs(t, err, api.ErrRequestFailed)
			var respErr *api.ResponseError
			require.True(t, errors.As(err, &respErr))
			require.Equal(t, tt.status, respErr.StatusCode)
			require.Equal(t, tt.message, respErr.Message)
			require.Equal(t, "req-1", respErr.RequestID)
		})
	}
}

func TestClient_ListProjectBranches(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v2/projects/p-1/branches", r.URL.Path)
		writeJSON(t, w, http.StatusOK, api.BranchesResponse{Branches: []api.Branch{
			{ID: "br-main", Name: "main", Default: true},
			{ID: "br-dev", Name: "dev", ParentID: swag.String("br-main")},
		}})
	})

	branches, err := client.ListProjectBranches(context.Background(), "p-1")
	require.NoError(t, err)
	require.Len(t, branches, 2)
	require.Equal(t, "dev", branches[1].Name)
}

func TestClient_CreateProjectBranch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v2/projects/p-1/branches", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, map[string]string{"name": "feature", "parent_id": "br-main", "parent_lsn": "0/16B3748"}, body["branch"])
		writeJSON(t, w, http.StatusCreated, api.BranchResponse{Branch: api.Branch{ID: "br-feature", Name: "feature"}})
	})

	branch, err := client.CreateProjectBranch(context.Background(), "p-1", api.BranchCreateRequest{
		Branch: api.BranchCreateRequestBranch{
			Name:      swag.String("feature"),
			ParentID:  swag.String("br-main"),
			ParentLSN: swag.String("0/16B3748"),
		},
	})
	require.NoError(t, err)
	require.Equal(t, "br-feature", branch.ID)
}

func TestClient_RestoreProjectBranch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v2/projects/p-1/branches/br-target/restore", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, map[string]string{
			"source_branch_id":    "br-source",
			"source_timestamp":    "2024-12-31T00:00:00Z",
			"preserve_under_name": "backup",
		}, body)
		writeJSON(t, w, http.StatusOK, api.BranchResponse{Branch: api.Branch{ID: "br-target", Name: "target"}})
	})

	branch, err := client.RestoreProjectBranch(context.Background(), "p-1", "br-target", api.BranchRestoreRequest{
		SourceBranchID:    "br-source",
		SourceTimestamp:   swag.String("2024-12-31T00:00:00Z"),
		PreserveUnderName: swag.String("backup"),
	})
	require.NoError(t, err)
	require.Equal(t, "br-target", branch.ID)
}

func TestClient_RequestEditors(t *testing.T) {
	var calls []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.Equal(t, "application/json", r.Header.Get("Accept"))
		writeJSON(t, w, http.StatusOK, api.BranchesResponse{})
	},
		api.WithRequestEditorFn(func(_ context.Context, req *http.Request) error {
			calls = append(calls, "auth")
			req.Header.Set("Authorization", "Bearer secret")
			return nil
		}),
		api.WithRequestEditorFn(func(_ context.Context, req *http.Request) error {
			calls = append(calls, "second")
			return nil
		}),
	)

	_, err := client.ListProjectBranches(context.Background(), "p-1")
	require.NoError(t, err)
	require.Equal(t, []string{"auth", "second"}, calls)
}

func TestClient_RequestEditorError(t *testing.T) {
	editorErr := errors.New("no credentials")
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("request should not be sent")
	}, api.WithRequestEditorFn(func(context.Context, *http.Request) error {
		return editorErr
	}))

	_, err := client.GetProjectBranch(context.Background(), "p-1", "br-1")
	require.ErrorIs(t, err, editorErr)
}

func TestClient_PathEscaping(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v2/projects/p-1/branches/feature%2Flogin", r.URL.RawPath)
		writeJSON(t, w, http.StatusOK, api.BranchResponse{Branch: api.Branch{ID: "feature/login"}})
	})

	_, err := client.GetProjectBranch(context.Background(), "p-1", "feature/login")
	require.NoError(t, err)
}
