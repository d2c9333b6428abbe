package indexcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-postindex/internal/index"
)

const (
	buildIndexMessageType    = "postindex.index.build"
	validateIndexMessageType = "postindex.index.validate"
)

// ResultCallback receives build results produced by index operations. The callback is
// optional and is invoked synchronously from the handler when a BuildResult is available.
type ResultCallback func(ResultEnvelope)

// ResultEnvelope captures the outcome of an index command execution.
type ResultEnvelope struct {
	Result   *index.BuildResult
	Metadata map[string]any
}

// BuildIndexCommand runs a full index build over a posts root.
type BuildIndexCommand struct {
	PostsRoot      string         `json:"posts_root"`
	Output         string         `json:"output,omitempty"`
	DryRun         bool           `json:"dry_run,omitempty"`
	ResultCallback ResultCallback `json:"-"`
}

// Type implements command.Message.
func (BuildIndexCommand) Type() string { return buildIndexMessageType }

// Validate ensures the posts root is present.
func (m BuildIndexCommand) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(m.PostsRoot) == "" {
		errs["posts_root"] = validation.NewError("postindex.index.build.posts_root_required", "posts_root is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidateIndexCommand runs the load/parse/validate pipeline without writing the index.
type ValidateIndexCommand struct {
	PostsRoot      string         `json:"posts_root"`
	ResultCallback ResultCallback `json:"-"`
}

// Type implements command.Message.
func (ValidateIndexCommand) Type() string { return validateIndexMessageType }

// Validate ensures the posts root is present.
func (m ValidateIndexCommand) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(m.PostsRoot) == "" {
		errs["posts_root"] = validation.NewError("postindex.index.validate.posts_root_required", "posts_root is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
