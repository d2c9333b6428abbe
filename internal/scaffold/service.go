// Package scaffold creates new post directories whose frontmatter already
// satisfies the index schema, so a freshly scaffolded tree builds cleanly.
package scaffold

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goliatone/go-postindex/internal/logging"
	"github.com/goliatone/go-postindex/internal/posts"
	"github.com/goliatone/go-postindex/pkg/interfaces"
	"github.com/goliatone/go-slug"
	"gopkg.in/yaml.v2"
)

// ErrPostExists is returned when the target slug directory already exists.
var ErrPostExists = errors.New("post already exists")

// publishedLayout renders UTC instants with millisecond precision, matching
// the timestamps hand-written posts typically carry.
const publishedLayout = "2006-01-02T15:04:05.000Z07:00"

const defaultBody = "Write your post here.\n"

// Service creates post documents under a posts root.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*CreateResult, error)
}

// Config controls scaffolding behavior.
type Config struct {
	// Filename is the document name written inside the post directory.
	// Defaults to index.md.
	Filename string
	// Now overrides the clock used to stamp the published field.
	Now func() time.Time
	// Logger receives structured diagnostics. Defaults to a no-op logger.
	Logger interfaces.Logger
}

// CreateRequest describes the post to scaffold.
type CreateRequest struct {
	PostsRoot   string
	Title       string
	Description string
	Tags        []string
	// Slug overrides the slug derived from the title.
	Slug string
}

// CreateResult reports what was written.
type CreateResult struct {
	Slug      string
	Path      string
	Published string
}

type service struct {
	filename string
	now      func() time.Time
	logger   interfaces.Logger
}

// NewService returns a scaffolding service.
func NewService(cfg Config) Service {
	filename := cfg.Filename
	if filename == "" {
		filename = posts.DefaultDocumentFilename
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &service{filename: filename, now: now, logger: logger}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*CreateResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	root := strings.TrimSpace(req.PostsRoot)
	if root == "" {
		return nil, errors.New("scaffold: posts root is required")
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("scaffold: posts root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scaffold: posts root %s is not a directory", root)
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, errors.New("scaffold: title is required")
	}

	slugValue, err := postSlug(req.Slug, title)
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(root, slugValue)
	if _, err := os.Stat(dir); err == nil {
		return nil, fmt.Errorf("post %s: %w", slugValue, ErrPostExists)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("post %s: %w", slugValue, err)
	}

	published := s.now().UTC().Format(publishedLayout)
	document, err := renderDocument(title, strings.TrimSpace(req.Description), req.Tags, published)
	if err != nil {
		return nil, fmt.Errorf("post %s: %w", slugValue, err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("post %s: %w", slugValue, err)
	}
	path := filepath.Join(dir, s.filename)
	if err := os.WriteFile(path, document, 0o644); err != nil {
		return nil, fmt.Errorf("post %s: %w", slugValue, err)
	}

	logging.WithPostContext(s.logger.WithContext(ctx), slugValue, path).
		Debug("scaffold.post.created", "published", published)

	return &CreateResult{Slug: slugValue, Path: path, Published: published}, nil
}

func postSlug(explicit, title string) (string, error) {
	source := strings.TrimSpace(explicit)
	if source == "" {
		source = title
	}
	normalized, err := slug.Normalize(source)
	if err != nil {
		return "", fmt.Errorf("scaffold: slug for %q: %w", source, err)
	}
	if normalized == "" {
		return "", fmt.Errorf("scaffold: slug for %q is empty", source)
	}
	return normalized, nil
}

// renderDocument assembles the frontmatter header and a placeholder body.
// The header goes through the YAML encoder so titles with quotes or colons
// survive a later parse.
func renderDocument(title, description string, tags []string, published string) ([]byte, error) {
	if tags == nil {
		tags = []string{}
	}
	header, err := yaml.Marshal(yaml.MapSlice{
		{Key: "title", Value: title},
		{Key: "description", Value: description},
		{Key: "published", Value: published},
		{Key: "tags", Value: tags},
	})
	if err != nil {
		return nil, fmt.Errorf("encode frontmatter: %w", err)
	}

	var doc bytes.Buffer
	doc.WriteString("---\n")
	doc.Write(header)
	doc.WriteString("---\n\n")
	doc.WriteString(defaultBody)
	return doc.Bytes(), nil
}
