package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/facebookgo/flagenv"
	"github.com/goliatone/go-postindex/cmd/postindex/internal/bootstrap"
	indexcmd "github.com/goliatone/go-postindex/internal/commands/index"
	scaffoldcmd "github.com/goliatone/go-postindex/internal/commands/scaffold"
)

const defaultPostsRoot = "content/posts"

// envPrefix scopes the environment overlay: flag -posts-root reads
// POSTINDEX_POSTS_ROOT, -words-per-minute reads POSTINDEX_WORDS_PER_MINUTE.
const envPrefix = "POSTINDEX_"

type buildHandler interface {
	Execute(ctx context.Context, msg indexcmd.BuildIndexCommand) error
}

type validateHandler interface {
	Execute(ctx context.Context, msg indexcmd.ValidateIndexCommand) error
}

type createHandler interface {
	Execute(ctx context.Context, msg scaffoldcmd.CreatePostCommand) error
}

type handlerSet struct {
	build    buildHandler
	validate validateHandler
	create   createHandler
}

type moduleOptions = bootstrap.Options

type moduleResources struct {
	resources *bootstrap.Resources
	handlers  handlerSet
}

var moduleBuilder = buildModule

func buildModule(opts moduleOptions) (*moduleResources, error) {
	resources, err := bootstrap.BuildModule(opts)
	if err != nil {
		return nil, err
	}
	return &moduleResources{
		resources: resources,
		handlers: handlerSet{
			build:    indexcmd.NewBuildIndexHandler(resources.Index, resources.Logger),
			validate: indexcmd.NewValidateIndexHandler(resources.Index, resources.Logger),
			create:   scaffoldcmd.NewCreatePostHandler(resources.Scaffold, resources.Logger),
		},
	}, nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("postindex: %v", err)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		return errors.New("missing subcommand: expected build, validate, or new")
	}

	switch args[0] {
	case "build":
		return runBuild(args[1:])
	case "validate":
		return runValidate(args[1:])
	case "new":
		return runNew(args[1:])
	default:
		return fmt.Errorf("unknown subcommand %q: expected build, validate, or new", args[0])
	}
}

func runBuild(args []string) error {
	fs := flag.NewFlagSet("postindex build", flag.ExitOnError)
	common := registerCommonFlags(fs)
	output := fs.String("output", "", "Index file to write; relative paths resolve against the posts root (default \"index.json\")")
	dryRun := fs.Bool("dry-run", false, "Load and validate every post without writing the index")

	if err := fs.Parse(args); err != nil {
		return err
	}

	opts, postsRoot, err := resolveCommon(fs, common)
	if err != nil {
		return err
	}

	resources, err := moduleBuilder(opts)
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	if resources == nil || resources.handlers.build == nil {
		return errors.New("build handler not configured; ensure the module is enabled")
	}

	cmd := indexcmd.BuildIndexCommand{
		PostsRoot:      postsRoot,
		Output:         *output,
		DryRun:         *dryRun,
		ResultCallback: reportIndexResult,
	}
	if err := resources.handlers.build.Execute(context.Background(), cmd); err != nil {
		return fmt.Errorf("execute build command: %w", err)
	}
	return nil
}

func runValidate(args []string) error {
	fs := flag.NewFlagSet("postindex validate", flag.ExitOnError)
	common := registerCommonFlags(fs)

	if err := fs.Parse(args); err != nil {
		return err
	}

	opts, postsRoot, err := resolveCommon(fs, common)
	if err != nil {
		return err
	}

	resources, err := moduleBuilder(opts)
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	if resources == nil || resources.handlers.validate == nil {
		return errors.New("validate handler not configured; ensure the module is enabled")
	}

	cmd := indexcmd.ValidateIndexCommand{
		PostsRoot:      postsRoot,
		ResultCallback: reportIndexResult,
	}
	if err := resources.handlers.validate.Execute(context.Background(), cmd); err != nil {
		return fmt.Errorf("execute validate command: %w", err)
	}
	return nil
}

func runNew(args []string) error {
	fs := flag.NewFlagSet("postindex new", flag.ExitOnError)
	common := registerCommonFlags(fs)
	title := fs.String("title", "", "Title for the new post (required)")
	description := fs.String("description", "", "Description stored in the post frontmatter")
	tags := fs.String("tags", "", "Comma separated list of tags")
	slug := fs.String("slug", "", "Directory name override (defaults to a slug derived from the title)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	opts, postsRoot, err := resolveCommon(fs, common)
	if err != nil {
		return err
	}
	if strings.TrimSpace(*title) == "" {
		return errors.New("title is required")
	}

	resources, err := moduleBuilder(opts)
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	if resources == nil || resources.handlers.create == nil {
		return errors.New("create handler not configured; ensure the module is enabled")
	}

	cmd := scaffoldcmd.CreatePostCommand{
		PostsRoot:      postsRoot,
		Title:          *title,
		Description:    *description,
		Tags:           bootstrap.SplitTags(*tags),
		Slug:           *slug,
		ResultCallback: reportScaffoldResult,
	}
	if err := resources.handlers.create.Execute(context.Background(), cmd); err != nil {
		return fmt.Errorf("execute create command: %w", err)
	}
	return nil
}

type commonFlags struct {
	config         *string
	postsRoot      *string
	filename       *string
	workers        *int
	wordsPerMinute *int
	logLevel       *string
}

func registerCommonFlags(fs *flag.FlagSet) *commonFlags {
	return &commonFlags{
		config:         fs.String("config", "", "Path to a postindex.toml file (defaults to ./postindex.toml when present)"),
		postsRoot:      fs.String("posts-root", "", "Directory holding one subdirectory per post (default \"content/posts\")"),
		filename:       fs.String("filename", "", "Document filename expected inside each post directory (default \"index.md\")"),
		workers:        fs.Int("workers", 0, "Concurrent post loads; zero uses the CPU count"),
		wordsPerMinute: fs.Int("words-per-minute", 0, "Reading speed applied to reading time estimates (default 200)"),
		logLevel:       fs.String("log-level", "", "Enable console logging at the given level (trace, debug, info, warn, error)"),
	}
}

// resolveCommon layers configuration sources onto the parsed flag set. Explicit
// flags win over environment variables, which win over the config file; each
// layer only fills flags the previous layers left unset.
func resolveCommon(fs *flag.FlagSet, flags *commonFlags) (bootstrap.Options, string, error) {
	if err := flagenv.ParseSet(envPrefix, fs); err != nil {
		return bootstrap.Options{}, "", fmt.Errorf("apply environment: %w", err)
	}

	fileCfg, err := bootstrap.LoadFileConfig(*flags.config)
	if err != nil {
		return bootstrap.Options{}, "", fmt.Errorf("load config file: %w", err)
	}
	if err := fileCfg.Apply(fs); err != nil {
		return bootstrap.Options{}, "", fmt.Errorf("apply config file: %w", err)
	}

	postsRoot := strings.TrimSpace(*flags.postsRoot)
	if postsRoot == "" {
		postsRoot = defaultPostsRoot
	}

	opts := bootstrap.Options{
		Filename:       *flags.filename,
		Workers:        *flags.workers,
		WordsPerMinute: *flags.wordsPerMinute,
		LogLevel:       *flags.logLevel,
	}
	return opts, postsRoot, nil
}

func reportIndexResult(envelope indexcmd.ResultEnvelope) {
	operation, _ := envelope.Metadata["operation"].(string)
	if operation == "" {
		operation = "index"
	}

	result := envelope.Result
	if result == nil {
		log.Printf("module=postindex operation=%s completed", operation)
		return
	}
	log.Printf(
		"module=postindex operation=%s summary run_id=%s posts_indexed=%d posts_failed=%d output=%s bytes_written=%d duration=%s dry_run=%t",
		operation,
		result.RunID,
		result.PostsIndexed,
		result.PostsFailed,
		result.Output,
		result.BytesWritten,
		result.Duration,
		result.DryRun,
	)
}

func reportScaffoldResult(envelope scaffoldcmd.ResultEnvelope) {
	operation, _ := envelope.Metadata["operation"].(string)
	if operation == "" {
		operation = "create"
	}

	result := envelope.Result
	if result == nil {
		log.Printf("module=postindex operation=%s completed", operation)
		return
	}
	log.Printf(
		"module=postindex operation=%s summary slug=%s path=%s published=%s",
		operation,
		result.Slug,
		result.Path,
		result.Published,
	)
}
