package posts

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-postindex/internal/logging"
	"github.com/goliatone/go-postindex/pkg/interfaces"
)

// DefaultDocumentFilename is the document every post directory is expected
// to contain.
const DefaultDocumentFilename = "index.md"

// ErrDocumentRead marks a post document that is missing or unreadable.
var ErrDocumentRead = errors.New("post document unreadable")

// LoaderConfig configures how post documents are discovered within a posts
// root.
type LoaderConfig struct {
	// Filename is the document name expected inside each post directory
	// (defaults to "index.md").
	Filename string
	// Logger receives discovery diagnostics. Defaults to a no-op logger.
	Logger interfaces.Logger
}

// Loader turns post directories into raw document results.
type Loader struct {
	fs       fs.FS
	filename string
	logger   interfaces.Logger
}

// NewLoader constructs a Loader over the provided filesystem, which must be
// rooted at the posts root.
func NewLoader(filesystem fs.FS, cfg LoaderConfig) *Loader {
	filename := strings.TrimSpace(cfg.Filename)
	if filename == "" {
		filename = DefaultDocumentFilename
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}

	return &Loader{
		fs:       filesystem,
		filename: filename,
		logger:   logger,
	}
}

// List enumerates the post directories directly under the posts root and
// returns their slugs in lexicographic order. Non-directory entries and
// dot-directories are ignored. Directory names that differ from their
// normalized slug form are reported but still listed. The returned order
// fixes the position of each post in the generated index.
func (l *Loader) List(ctx context.Context) ([]string, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	entries, err := fs.ReadDir(l.fs, ".")
	if err != nil {
		return nil, fmt.Errorf("posts loader: read posts root: %w", err)
	}

	slugs := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() {
			l.logger.Debug("posts.entry.skipped", "entry", name, "reason", "not_directory")
			continue
		}
		if strings.HasPrefix(name, ".") {
			l.logger.Debug("posts.entry.skipped", "entry", name, "reason", "hidden")
			continue
		}
		if normalized, err := slug.Normalize(name); err == nil && normalized != name {
			l.logger.Warn("posts.slug.mismatch", "entry", name, "normalized", normalized)
		}
		slugs = append(slugs, name)
	}

	sort.Strings(slugs)
	return slugs, nil
}

// Load reads the document for a single post directory and returns its raw
// content with modification time and checksum.
func (l *Loader) Load(ctx context.Context, slug string) (*DocumentResult, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	rel := path.Join(slug, l.filename)

	data, err := fs.ReadFile(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("post %s: %w: %w", slug, ErrDocumentRead, err)
	}

	info, err := fs.Stat(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("post %s: %w: %w", slug, ErrDocumentRead, err)
	}

	sum := sha256.Sum256(data)

	return &DocumentResult{
		Slug:         slug,
		FilePath:     rel,
		Source:       data,
		LastModified: info.ModTime(),
		Checksum:     sum[:],
	}, nil
}

// DocumentResult carries the raw document content for a post along with
// file metadata.
type DocumentResult struct {
	Slug         string
	FilePath     string
	Source       []byte
	LastModified time.Time
	Checksum     []byte
}

// RootFS opens a posts root directory as an fs.FS for use with a Loader.
func RootFS(root string) (fs.FS, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("posts loader: posts root is required")
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("posts loader: stat posts root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("posts loader: posts root %s is not a directory", root)
	}
	return os.DirFS(root), nil
}
