package index

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-postindex/internal/logging"
	"github.com/goliatone/go-postindex/internal/posts"
	"github.com/goliatone/go-postindex/pkg/interfaces"
)

// DefaultOutputFilename is the index file written into the posts root.
const DefaultOutputFilename = "index.json"

// ErrIndexWrite indicates the index file could not be written.
var ErrIndexWrite = errors.New("index write failed")

// Service describes the post index builder contract.
type Service interface {
	Build(ctx context.Context, req BuildRequest) (*BuildResult, error)
	Validate(ctx context.Context, req ValidateRequest) (*BuildResult, error)
}

// Config captures runtime behaviour toggles for the index builder.
type Config struct {
	// Filename is the document name expected inside each post directory.
	Filename string
	// OutputFilename names the generated index file (defaults to "index.json").
	OutputFilename string
	// Workers bounds concurrent post loads; zero or less uses the CPU count.
	Workers int
	// WordsPerMinute is the assumed reading speed for reading-time estimates.
	WordsPerMinute int
	// Logger receives structured build diagnostics. Defaults to a no-op logger.
	Logger interfaces.Logger
	// PostsLogger receives post discovery diagnostics from the loader.
	// Defaults to a no-op logger.
	PostsLogger interfaces.Logger
}

// BuildRequest describes a single index build run.
type BuildRequest struct {
	// PostsRoot is the directory holding one subdirectory per post.
	PostsRoot string
	// Output overrides the index filename. Relative values are joined to
	// PostsRoot; absolute values are used verbatim.
	Output string
	// DryRun loads and validates every post without writing the index.
	DryRun bool
}

// ValidateRequest describes a verification run over a posts tree.
type ValidateRequest struct {
	PostsRoot string
}

// BuildResult reports aggregated build metadata.
type BuildResult struct {
	RunID        string
	PostsIndexed int
	PostsFailed  int
	Output       string
	BytesWritten int
	Summaries    interfaces.PostIndex
	Duration     time.Duration
	Errors       []error
	DryRun       bool
}

// NewService wires an index builder with the provided configuration.
func NewService(cfg Config) Service {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &service{cfg: cfg, logger: logger}
}

type service struct {
	cfg    Config
	logger interfaces.Logger
}

func (s *service) Build(ctx context.Context, req BuildRequest) (*BuildResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	result := &BuildResult{
		RunID:  uuid.NewString(),
		DryRun: req.DryRun,
		Output: s.outputPath(req),
	}

	logger := logging.WithFields(s.logger.WithContext(ctx), map[string]any{
		"operation": "index.build",
		"run_id":    result.RunID,
	})
	logger.Debug("index.build.start", "posts_root", req.PostsRoot, "dry_run", req.DryRun)

	filesystem, err := posts.RootFS(req.PostsRoot)
	if err != nil {
		return nil, err
	}
	loader := posts.NewLoader(filesystem, posts.LoaderConfig{
		Filename: s.cfg.Filename,
		Logger:   s.cfg.PostsLogger,
	})

	slugs, err := loader.List(ctx)
	if err != nil {
		return nil, err
	}

	// Documents land at their enumeration position so completion order
	// never affects index order.
	documents := make([]*interfaces.Document, len(slugs))

	var (
		mu          sync.Mutex
		errorsSlice []error
	)
	collect := func(outcome loadOutcome) {
		mu.Lock()
		defer mu.Unlock()
		if outcome.err != nil {
			result.PostsFailed++
			errorsSlice = append(errorsSlice, outcome.err)
			logging.WithPostContext(logger, outcome.slug, "").Error("index.post.failed", "error", outcome.err)
			return
		}
		documents[outcome.position] = outcome.document
		result.PostsIndexed++
	}

	workerCount := s.effectiveWorkerCount(len(slugs))
	if workerCount <= 1 || len(slugs) <= 1 {
		for position, slug := range slugs {
			select {
			case <-ctx.Done():
				result.Duration = time.Since(start)
				return result, ctx.Err()
			default:
				collect(loadPost(ctx, loader, position, slug))
			}
		}
	} else {
		if err := loadConcurrently(ctx, loader, slugs, workerCount, collect); err != nil {
			errorsSlice = append(errorsSlice, err)
		}
	}

	summaries := make(interfaces.PostIndex, 0, len(documents))
	for _, doc := range documents {
		if doc == nil {
			continue
		}
		summaries = append(summaries, s.summarize(doc))
	}
	result.Summaries = summaries

	if len(errorsSlice) > 0 {
		result.Errors = append(result.Errors, errorsSlice...)
		result.Duration = time.Since(start)
		logger.Error("index.build.failed", "posts_failed", result.PostsFailed)
		return result, errors.Join(errorsSlice...)
	}

	encoded, err := encodeIndex(summaries)
	if err != nil {
		result.Errors = append(result.Errors, err)
		result.Duration = time.Since(start)
		return result, err
	}

	writer := newArtifactWriter(req.DryRun)
	if dir := filepath.Dir(result.Output); dir != "." {
		if err := writer.EnsureDir(ctx, dir); err != nil {
			wrapped := fmt.Errorf("index %s: %w: %w", result.Output, ErrIndexWrite, err)
			result.Errors = append(result.Errors, wrapped)
			result.Duration = time.Since(start)
			return result, wrapped
		}
	}
	if err := writer.WriteFile(ctx, writeFileRequest{Path: result.Output, Content: encoded}); err != nil {
		wrapped := fmt.Errorf("index %s: %w: %w", result.Output, ErrIndexWrite, err)
		result.Errors = append(result.Errors, wrapped)
		result.Duration = time.Since(start)
		logger.Error("index.write.failed", "error", err)
		return result, wrapped
	}

	if !req.DryRun {
		result.BytesWritten = len(encoded)
	}
	result.Duration = time.Since(start)
	logger.Debug("index.build.completed",
		"posts_indexed", result.PostsIndexed,
		"bytes_written", result.BytesWritten,
		"duration_ms", result.Duration.Milliseconds(),
	)
	return result, nil
}

// Validate runs the full load/parse/validate pipeline without writing,
// collecting every post error instead of stopping at the first.
func (s *service) Validate(ctx context.Context, req ValidateRequest) (*BuildResult, error) {
	return s.Build(ctx, BuildRequest{PostsRoot: req.PostsRoot, DryRun: true})
}

type loadOutcome struct {
	position int
	slug     string
	document *interfaces.Document
	err      error
}

func loadPost(ctx context.Context, loader *posts.Loader, position int, slug string) loadOutcome {
	outcome := loadOutcome{position: position, slug: slug}

	result, err := loader.Load(ctx, slug)
	if err != nil {
		outcome.err = err
		return outcome
	}

	doc, err := posts.BuildDocument(result)
	if err != nil {
		outcome.err = err
		return outcome
	}

	outcome.document = doc
	return outcome
}

func loadConcurrently(
	ctx context.Context,
	loader *posts.Loader,
	slugs []string,
	workers int,
	collect func(loadOutcome),
) error {
	jobs := make(chan int)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for position := range jobs {
				select {
				case <-ctx.Done():
					collect(loadOutcome{position: position, slug: slugs[position], err: ctx.Err()})
					return
				default:
					collect(loadPost(ctx, loader, position, slugs[position]))
				}
			}
		}()
	}

	for position := range slugs {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return ctx.Err()
		case jobs <- position:
		}
	}
	close(jobs)
	wg.Wait()
	return nil
}

func (s *service) summarize(doc *interfaces.Document) interfaces.PostSummary {
	tags := doc.FrontMatter.Tags
	if tags == nil {
		tags = []string{}
	}
	return interfaces.PostSummary{
		Title:       doc.FrontMatter.Title,
		Description: doc.FrontMatter.Description,
		Published:   doc.FrontMatter.Published,
		Tags:        tags,
		ReadingTime: posts.ReadingTime(doc.WordCount, s.cfg.WordsPerMinute),
		Slug:        doc.Slug,
	}
}

func (s *service) outputPath(req BuildRequest) string {
	output := strings.TrimSpace(req.Output)
	if output == "" {
		output = strings.TrimSpace(s.cfg.OutputFilename)
	}
	if output == "" {
		output = DefaultOutputFilename
	}
	if filepath.IsAbs(output) {
		return output
	}
	return filepath.Join(req.PostsRoot, output)
}

func (s *service) effectiveWorkerCount(postCount int) int {
	workers := s.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers < 1 {
		workers = 1
	}
	if postCount > 0 && workers > postCount {
		return postCount
	}
	return workers
}
