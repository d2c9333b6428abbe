package scaffoldcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-postindex/internal/scaffold"
)

const createPostMessageType = "postindex.posts.create"

// ResultCallback receives the scaffolding outcome. The callback is optional and
// is invoked synchronously from the handler after the post is written.
type ResultCallback func(ResultEnvelope)

// ResultEnvelope captures the outcome of a scaffold command execution.
type ResultEnvelope struct {
	Result   *scaffold.CreateResult
	Metadata map[string]any
}

// CreatePostCommand scaffolds a new post directory under the posts root.
type CreatePostCommand struct {
	PostsRoot      string         `json:"posts_root"`
	Title          string         `json:"title"`
	Description    string         `json:"description,omitempty"`
	Tags           []string       `json:"tags,omitempty"`
	Slug           string         `json:"slug,omitempty"`
	ResultCallback ResultCallback `json:"-"`
}

// Type implements command.Message.
func (CreatePostCommand) Type() string { return createPostMessageType }

// Validate ensures the posts root and title are present and tags are well-formed.
func (m CreatePostCommand) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(m.PostsRoot) == "" {
		errs["posts_root"] = validation.NewError("postindex.posts.create.posts_root_required", "posts_root is required")
	}
	if strings.TrimSpace(m.Title) == "" {
		errs["title"] = validation.NewError("postindex.posts.create.title_required", "title is required")
	}
	for _, tag := range m.Tags {
		if strings.TrimSpace(tag) == "" {
			errs["tags"] = validation.NewError("postindex.posts.create.tag_invalid", "tags must not contain empty values")
			break
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
