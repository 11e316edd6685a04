package cmd

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/go-openapi/swag"
	"github.com/stretchr/testify/require"
	"github.com/zthreefires/neonctl/pkg/api"
	"github.com/zthreefires/neonctl/pkg/api/helpers"
	"github.com/zthreefires/neonctl/pkg/contextfile"
	"github.com/zthreefires/neonctl/pkg/pointintime"
)

const testProjectID = "young-frog-123456"

// fakePlatform serves the branch endpoints of a single project.
type fakePlatform struct {
	mu       sync.Mutex
	branches []api.Branch
	created  []api.BranchCreateRequest
	restored map[string]api.BranchRestoreRequest
	listed   int
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{
		branches: []api.Branch{
			{ID: "br-main-frog-111111", ProjectID: testProjectID, Name: "main", Default: true},
			{ID: "br-dev-wind-222222", ProjectID: testProjectID, Name: "dev", ParentID: swag.String("br-main-frog-111111")},
		},
		restored: map[string]api.BranchRestoreRequest{},
	}
}

func (f *fakePlatform) branch(id string) *api.Branch {
	for i := range f.branches {
		if f.branches[i].ID == id {
			return &f.branches[i]
		}
	}
	return nil
}

func (f *fakePlatform) listCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listed
}

func (f *fakePlatform) restoreRequests() map[string]api.BranchRestoreRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.restored
}

func (f *fakePlatform) handler(t *testing.T) http.Handler {
	reply := func(w http.ResponseWriter, status int, v interface{}) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		require.NoError(t, json.NewEncoder(w).Encode(v))
	}
	notFound := func(w http.ResponseWriter) {
		reply(w, http.StatusNotFound, api.Error{Message: "branch not found"})
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v2/projects/{project}/branches", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.listed++
		reply(w, http.StatusOK, api.BranchesResponse{Branches: f.branches})
	})
	mux.HandleFunc("GET /api/v2/projects/{project}/branches/{branch}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		b := f.branch(r.PathValue("branch"))
		if b == nil {
			notFound(w)
			return
		}
		reply(w, http.StatusOK, api.BranchResponse{Branch: *b})
	})
	mux.HandleFunc("POST /api/v2/projects/{project}/branches", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		var req api.BranchCreateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		f.created = append(f.created, req)
		b := api.Branch{
			ID:        "br-new-moon-333333",
			ProjectID: r.PathValue("project"),
			Name:      swag.StringValue(req.Branch.Name),
			ParentID:  req.Branch.ParentID,
			CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		}
		f.branches = append(f.branches, b)
		reply(w, http.StatusCreated, api.BranchResponse{Branch: b})
	})
	mux.HandleFunc("POST /api/v2/projects/{project}/branches/{branch}/restore", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		b := f.branch(r.PathValue("branch"))
		if b == nil {
			notFound(w)
			return
		}
		var req api.BranchRestoreRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		f.restored[b.ID] = req
		reply(w, http.StatusOK, api.BranchResponse{Branch: *b})
	})
	return mux
}

func newFakeClient(t *testing.T, platform *fakePlatform) *api.Client {
	t.Helper()
	server := httptest.NewServer(platform.handler(t))
	t.Cleanup(server.Close)
	client, err := api.NewClient(server.URL + "/api/v2")
	require.NoError(t, err)
	return client
}

func TestGetBranch(t *testing.T) {
	platform := newFakePlatform()
	client := newFakeClient(t, platform)
	ctx := context.Background()

	branch, err := getBranch(ctx, client, testProjectID, "dev")
	require.NoError(t, err)
	require.Equal(t, "br-dev-wind-222222", branch.ID)
	require.Equal(t, 1, platform.listCalls())

	branch, err = getBranch(ctx, client, testProjectID, "br-main-frog-111111")
	require.NoError(t, err)
	require.Equal(t, "main", branch.Name)
	require.Equal(t, 1, platform.listCalls(), "branch ids are not looked up")

	_, err = getBranch(ctx, client, testProjectID, "staging")
	require.ErrorIs(t, err, helpers.ErrBranchNotFound)
	require.ErrorContains(t, err, "main, dev")

	_, err = getBranch(ctx, client, testProjectID, "br-gone-leaf-000000")
	require.ErrorIs(t, err, api.ErrNotFound)
}

func TestBranchCreateRequest(t *testing.T) {
	tests := []struct {
		name     string
		branch   string
		parent   string
		expected api.BranchCreateRequestBranch
		err      error
	}{
		{
			name:     "no parent",
			branch:   "feature",
			expected: api.BranchCreateRequestBranch{Name: swag.String("feature")},
		},
		{
			name:     "no name",
			parent:   "dev",
			expected: api.BranchCreateRequestBranch{ParentID: swag.String("br-dev-wind-222222")},
		},
		{
			name:     "parent name",
			branch:   "feature",
			parent:   "dev",
			expected: api.BranchCreateRequestBranch{Name: swag.String("feature"), ParentID: swag.String("br-dev-wind-222222")},
		},
		{
			name:     "parent id",
			branch:   "feature",
			parent:   "br-dev-wind-222222",
			expected: api.BranchCreateRequestBranch{Name: swag.String("feature"), ParentID: swag.String("br-dev-wind-222222")},
		},
		{
			name:   "lsn on default branch",
			branch: "at-lsn",
			parent: "0/1F2A3B4C",
			expected: api.BranchCreateRequestBranch{
				Name:      swag.String("at-lsn"),
				ParentID:  swag.String("br-main-frog-111111"),
				ParentLSN: swag.String("0/1F2A3B4C"),
			},
		},
		{
			name:   "timestamp on default branch",
			branch: "before-migration",
			parent: "2024-12-31T00:00:00Z",
			expected: api.BranchCreateRequestBranch{
				Name:            swag.String("before-migration"),
				ParentID:        swag.String("br-main-frog-111111"),
				ParentTimestamp: swag.String("2024-12-31T00:00:00Z"),
			},
		},
		{
			name:   "unknown parent",
			branch: "feature",
			parent: "staging",
			err:    helpers.ErrBranchNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newFakeClient(t, newFakePlatform())
			req, err := branchCreateRequest(context.Background(), client, testProjectID, tt.branch, tt.parent)
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.expected, req.Branch)
		})
	}
}

func TestRestoreBranch(t *testing.T) {
	parser := pointintime.NewParser(func() time.Time {
		return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	})

	tests := []struct {
		name     string
		target   string
		source   string
		preserve string
		targetID string
		expected api.BranchRestoreRequest
	}{
		{
			name:     "parent head",
			target:   "dev",
			source:   pointintime.ParentMarker,
			targetID: "br-dev-wind-222222",
			expected: api.BranchRestoreRequest{SourceBranchID: "br-main-frog-111111"},
		},
		{
			name:     "self at timestamp",
			target:   "dev",
			source:   "dev@2024-12-31T00:00:00Z",
			targetID: "br-dev-wind-222222",
			expected: api.BranchRestoreRequest{
				SourceBranchID:  "br-dev-wind-222222",
				SourceTimestamp: swag.String("2024-12-31T00:00:00Z"),
			},
		},
		{
			name:     "other branch at lsn",
			target:   "br-main-frog-111111",
			source:   "dev@0/16B3748",
			preserve: "main-before-restore",
			targetID: "br-main-frog-111111",
			expected: api.BranchRestoreRequest{
				SourceBranchID:    "br-dev-wind-222222",
				SourceLSN:         swag.String("0/16B3748"),
				PreserveUnderName: swag.String("main-before-restore"),
			},
		},
		{
			name:     "self marker",
			target:   "main",
			source:   pointintime.SelfMarker,
			targetID: "br-main-frog-111111",
			expected: api.BranchRestoreRequest{SourceBranchID: "br-main-frog-111111"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			platform := newFakePlatform()
			client := newFakeClient(t, platform)
			branch, err := restoreBranch(context.Background(), client, parser, restoreParams{
				ProjectID:         testProjectID,
				Target:            tt.target,
				Source:            tt.source,
				PreserveUnderName: tt.preserve,
			})
			require.NoError(t, err)
			require.Equal(t, tt.targetID, branch.ID)
			require.Equal(t, tt.expected, platform.restoreRequests()[tt.targetID])
		})
	}
}

func TestRestoreBranch_Errors(t *testing.T) {
	parser := pointintime.NewParser(func() time.Time {
		return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	})
	tests := []struct {
		name   string
		target string
		source string
		err    error
	}{
		{name: "parent of root branch", target: "main", source: pointintime.ParentMarker, err: pointintime.ErrMissingParent},
		{name: "future timestamp", target: "main", source: "dev@2025-06-01T00:00:00Z", err: pointintime.ErrFutureTimestamp},
		{name: "bad qualifier", target: "main", source: "dev@yesterday", err: pointintime.ErrInvalidTimestampFormat},
		{name: "unknown source", target: "main", source: "staging@0/0", err: helpers.ErrBranchNotFound},
		{name: "unknown target", target: "staging", source: pointintime.SelfMarker, err: helpers.ErrBranchNotFound},
		{name: "missing target id", target: "br-gone-leaf-000000", source: pointintime.ParentMarker, err: api.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			platform := newFakePlatform()
			client := newFakeClient(t, platform)
			_, err := restoreBranch(context.Background(), client, parser, restoreParams{
				ProjectID: testProjectID,
				Target:    tt.target,
				Source:    tt.source,
			})
			require.ErrorIs(t, err, tt.err)
			require.Empty(t, platform.restoreRequests())
		})
	}
}

func TestFilterBranches(t *testing.T) {
	branches := []api.Branch{
		{ID: "br-1", Name: "main"},
		{ID: "br-2", Name: "preview/pr-12"},
		{ID: "br-3", Name: "preview/pr-13/db"},
		{ID: "br-4", Name: "dev"},
	}
	names := func(bs []api.Branch) []string {
		out := make([]string, 0, len(bs))
		for _, b := range bs {
			out = append(out, b.Name)
		}
		return out
	}

	tests := []struct {
		pattern string
		want    []string
	}{
		{pattern: "", want: []string{"main", "preview/pr-12", "preview/pr-13/db", "dev"}},
		{pattern: "main", want: []string{"main"}},
		{pattern: "preview/*", want: []string{"preview/pr-12"}},
		{pattern: "preview/**", want: []string{"preview/pr-12", "preview/pr-13/db"}},
		{pattern: "{main,dev}", want: []string{"main", "dev"}},
		{pattern: "staging*", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got, err := filterBranches(branches, tt.pattern)
			require.NoError(t, err)
			require.Equal(t, tt.want, names(got))
		})
	}

	_, err := filterBranches(branches, "preview/[")
	require.Error(t, err)
}

func TestBranchArgs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "context.json")
	_, err := contextfile.Update(path, contextfile.Context{ProjectID: testProjectID, BranchID: "br-dev-wind-222222"})
	require.NoError(t, err)

	t.Run("explicit target", func(t *testing.T) {
		args, err := branchArgs(path, testProjectID, []string{"main", "^parent"}, branchRestoreArgs)
		require.NoError(t, err)
		require.Equal(t, []string{"main", "^parent"}, args)
	})

	t.Run("context target", func(t *testing.T) {
		args, err := branchArgs(path, testProjectID, []string{"^parent"}, branchRestoreArgs)
		require.NoError(t, err)
		require.Equal(t, []string{"br-dev-wind-222222", "^parent"}, args)

		args, err = branchArgs(path, testProjectID, nil, 1)
		require.NoError(t, err)
		require.Equal(t, []string{"br-dev-wind-222222"}, args)
	})

	t.Run("other project", func(t *testing.T) {
		_, err := branchArgs(path, "other-project-654321", []string{"^parent"}, branchRestoreArgs)
		require.ErrorIs(t, err, errNoContextBranch)
	})

	t.Run("no saved branch", func(t *testing.T) {
		empty := filepath.Join(t.TempDir(), "context.json")
		_, err := contextfile.Update(empty, contextfile.Context{ProjectID: testProjectID})
		require.NoError(t, err)
		_, err = branchArgs(empty, testProjectID, nil, 1)
		require.ErrorIs(t, err, errNoContextBranch)
	})
}

func TestRestoreBranch_ContextTarget(t *testing.T) {
	path := filepath.Join(t.TempDir(), "context.json")
	_, err := contextfile.Update(path, contextfile.Context{ProjectID: testProjectID, BranchID: "dev"})
	require.NoError(t, err)
	args, err := branchArgs(path, testProjectID, []string{pointintime.ParentMarker}, branchRestoreArgs)
	require.NoError(t, err)

	platform := newFakePlatform()
	client := newFakeClient(t, platform)
	branch, err := restoreBranch(context.Background(), client, pointintime.NewParser(nil), restoreParams{
		ProjectID: testProjectID,
		Target:    args[0],
		Source:    args[1],
	})
	require.NoError(t, err)
	require.Equal(t, "br-dev-wind-222222", branch.ID)
	require.Equal(t, map[string]api.BranchRestoreRequest{
		"br-dev-wind-222222": {SourceBranchID: "br-main-frog-111111"},
	}, platform.restoreRequests())
}
