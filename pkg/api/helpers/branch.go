package helpers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/zthreefires/neonctl/pkg/api"
	"github.com/zthreefires/neonctl/pkg/logging"
	"github.com/zthreefires/neonctl/pkg/pointintime"
)

var ErrBranchNotFound = errors.New("branch not found")

// BranchLister lists the branches of a project.
type BranchLister interface {
	ListProjectBranches(ctx context.Context, projectID string) ([]api.Branch, error)
}

// ResolveBranchID returns the id of branch within projectID. Values that look
// like a branch id are returned as is without calling the API, otherwise the
// project branches are listed and matched by name.
func ResolveBranchID(ctx context.Context, client BranchLister, projectID, branch string) (string, error) {
	if pointintime.LooksLikeBranchID(branch) {
		return branch, nil
	}
	branches, err := client.ListProjectBranches(ctx, projectID)
	if err != nil {
		return "", err
	}
	names := make([]string, 0, len(branches))
	for _, b := range branches {
		if b.Name == branch {
			logging.FromContext(ctx).
				WithFields(logging.Fields{logging.BranchFieldKey: branch, "branch_id": b.ID}).
				Debug("Resolved branch name")
			return b.ID, nil
		}
		names = append(names, b.Name)
	}
	return "", fmt.Errorf("%w: %s. Available branches: %s", ErrBranchNotFound, branch, strings.Join(names, ", "))
}

// BranchResolver resolves branch names using the API client.
type BranchResolver struct {
	Client BranchLister
}

func NewBranchResolver(client BranchLister) *BranchResolver {
	return &BranchResolver{Client: client}
}

func (r *BranchResolver) ResolveBranchID(ctx context.Context, projectID, branch string) (string, error) {
	return ResolveBranchID(ctx, r.Client, projectID, branch)
}

// DefaultBranch returns the default branch of projectID.
func DefaultBranch(ctx context.Context, client BranchLister, projectID string) (*api.Branch, error) {
	branches, err := client.ListProjectBranches(ctx, projectID)
	if err != nil {
		return nil, err
	}
	for i := range branches {
		if branches[i].Default {
			return &branches[i], nil
		}
	}
	return nil, fmt.Errorf("%w: project %s has no default branch", ErrBranchNotFound, projectID)
}
