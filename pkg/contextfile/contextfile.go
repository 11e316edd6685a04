// Package contextfile keeps the project and branch that commands default
// to when none is given on the command line.
package contextfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/mitchellh/go-homedir"
)

const fileMode = 0o644

var ErrInvalidContextFile = errors.New("invalid context file")

type Context struct {
	ProjectID string `json:"projectId,omitempty"`
	BranchID  string `json:"branchId,omitempty"`
}

// Read loads the context stored at path, "~" is expanded. A missing file is
// an empty context.
func Read(path string) (*Context, error) {
	expand, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(expand)
	if errors.Is(err, fs.ErrNotExist) {
		return &Context{}, nil
	}
	if err != nil {
		return nil, err
	}
	c := &Context{}
	if err := json.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("%w %s: %s", ErrInvalidContextFile, expand, err)
	}
	return c, nil
}

// Update merges the non-empty fields of update into the context stored at
// path and writes it back.
func Update(path string, update Context) (*Context, error) {
	c, err := Read(path)
	if err != nil {
		return nil, err
	}
	if update.ProjectID != "" {
		if update.ProjectID != c.ProjectID {
			// branch belongs to the previous project
			c.BranchID = ""
		}
		c.ProjectID = update.ProjectID
	}
	if update.BranchID != "" {
		c.BranchID = update.BranchID
	}

	expand, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(expand, data, fileMode); err != nil {
		return nil, err
	}
	return c, nil
}
