package pointintime

import (
	"context"

	"github.com/go-openapi/swag"
	"github.com/zthreefires/neonctl/pkg/api"
	"github.com/zthreefires/neonctl/pkg/logging"
)

//go:generate mockgen -package=mock -destination=mock/resolve.go github.com/zthreefires/neonctl/pkg/pointintime BranchGetter,BranchIDResolver

// Markers addressing branches relative to the target branch.
const (
	SelfMarker   = "^self"
	ParentMarker = "^parent"
)

// BranchGetter reads a single branch record.
type BranchGetter interface {
	GetProjectBranch(ctx context.Context, projectID, branchID string) (*api.Branch, error)
}

// BranchIDResolver turns a branch name (or id) into a branch id.
type BranchIDResolver interface {
	ResolveBranchID(ctx context.Context, projectID, branch string) (string, error)
}

// Params are the inputs of a single point in time resolution.
type Params struct {
	// PointInTime is the reference typed by the user, e.g. "main@0/1F2A3B4C",
	// "^parent" or "br-cool-rain-123456@2024-12-31T00:00:00Z".
	PointInTime string
	// TargetBranchID is the branch the markers are relative to.
	TargetBranchID string
	ProjectID      string
}

// ResolvedPointInTime is a PITBranch whose branch was resolved to an id.
type ResolvedPointInTime struct {
	BranchID  string `json:"branchId" yaml:"branchId"`
	Tag       Tag    `json:"tag" yaml:"tag"`
	LSN       string `json:"lsn,omitempty" yaml:"lsn,omitempty"`
	Timestamp string `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
}

type Resolver struct {
	Branches BranchGetter
	Names    BranchIDResolver
	Parser   *Parser
}

func NewResolver(branches BranchGetter, names BranchIDResolver, parser *Parser) *Resolver {
	return &Resolver{
		Branches: branches,
		Names:    names,
		Parser:   parser,
	}
}

// ParsePointInTime resolves params.PointInTime to a branch id and point in
// time. It calls the API at most once: never for ^self, to read the target's
// parent for ^parent, and to resolve the branch name otherwise. Errors from
// the collaborators are returned as is.
func (r *Resolver) ParsePointInTime(ctx context.Context, params Params) (*ResolvedPointInTime, error) {
	log := logging.FromContext(ctx).WithFields(logging.Fields{
		logging.PointInTimeFieldKey: params.PointInTime,
		logging.ProjectFieldKey:     params.ProjectID,
	})

	switch params.PointInTime {
	case SelfMarker:
		log.WithField(logging.BranchFieldKey, params.TargetBranchID).Debug("Point in time is the target branch head")
		return &ResolvedPointInTime{BranchID: params.TargetBranchID, Tag: TagHead}, nil

	case ParentMarker:
		branch, err := r.Branches.GetProjectBranch(ctx, params.ProjectID, params.TargetBranchID)
		if err != nil {
			return nil, err
		}
		parentID := swag.StringValue(branch.ParentID)
		if parentID == "" {
			return nil, newParseError(KindMissingParent, params.TargetBranchID)
		}
		log.WithField(logging.BranchFieldKey, parentID).Debug("Point in time is the parent branch head")
		return &ResolvedPointInTime{BranchID: parentID, Tag: TagHead}, nil
	}

	parsed, err := r.Parser.ParsePITBranch(params.PointInTime)
	if err != nil {
		return nil, err
	}
	branchID, err := r.Names.ResolveBranchID(ctx, params.ProjectID, parsed.Branch)
	if err != nil {
		return nil, err
	}
	log.WithFields(logging.Fields{
		logging.BranchFieldKey: branchID,
		"tag":                  parsed.Tag,
	}).Debug("Resolved point in time")
	return &ResolvedPointInTime{
		BranchID:  branchID,
		Tag:       parsed.Tag,
		LSN:       parsed.LSN,
		Timestamp: parsed.Timestamp,
	}, nil
}
