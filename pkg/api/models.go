package api

import "time"

// Error is the body of unsuccessful replies.
type Error struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

type Branch struct {
	ID              string     `json:"id" yaml:"id"`
	ProjectID       string     `json:"project_id" yaml:"project_id"`
	ParentID        *string    `json:"parent_id,omitempty" yaml:"parent_id,omitempty"`
	ParentLSN       *string    `json:"parent_lsn,omitempty" yaml:"parent_lsn,omitempty"`
	ParentTimestamp *time.Time `json:"parent_timestamp,omitempty" yaml:"parent_timestamp,omitempty"`
	Name            string     `json:"name" yaml:"name"`
	CurrentState    string     `json:"current_state,omitempty" yaml:"current_state,omitempty"`
	Default         bool       `json:"default" yaml:"default"`
	Protected       bool       `json:"protected" yaml:"protected"`
	CreatedAt       time.Time  `json:"created_at" yaml:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" yaml:"updated_at"`
}

type BranchResponse struct {
	Branch Branch `json:"branch"`
}

type BranchesResponse struct {
	Branches []Branch `json:"branches"`
}

type BranchCreateRequestBranch struct {
	Name            *string `json:"name,omitempty"`
	ParentID        *string `json:"parent_id,omitempty"`
	ParentLSN       *string `json:"parent_lsn,omitempty"`
	ParentTimestamp *string `json:"parent_timestamp,omitempty"`
}

type BranchCreateRequest struct {
	Branch BranchCreateRequestBranch `json:"branch"`
}

// BranchRestoreRequest restores a branch to the state of a source branch,
// optionally at an LSN or timestamp on the source.
type BranchRestoreRequest struct {
	SourceBranchID    string  `json:"source_branch_id"`
	SourceLSN         *string `json:"source_lsn,omitempty"`
	SourceTimestamp   *string `json:"source_timestamp,omitempty"`
	PreserveUnderName *string `json:"preserve_under_name,omitempty"`
}
