package indexcmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-postindex/internal/commands"
	"github.com/goliatone/go-postindex/internal/index"
	"github.com/goliatone/go-postindex/internal/validation"
)

func TestBuildIndexHandler_Execute(t *testing.T) {
	cmd := loadBuildFixture(t, "build_basic.json")

	var captured index.BuildRequest
	callbackInvoked := false

	svc := &fakeIndexService{
		buildFunc: func(ctx context.Context, req index.BuildRequest) (*index.BuildResult, error) {
			captured = req
			return &index.BuildResult{PostsIndexed: 3}, nil
		},
	}

	handler := NewBuildIndexHandler(svc, commands.CommandLogger(nil, "index"))

	cmd.ResultCallback = func(env ResultEnvelope) {
		callbackInvoked = true
		if env.Result == nil {
			t.Fatal("expected build result, got nil")
		}
		if env.Result.PostsIndexed != 3 {
			t.Fatalf("expected PostsIndexed 3, got %d", env.Result.PostsIndexed)
		}
		if env.Metadata["operation"] != "build" {
			t.Fatalf("expected operation build, got %v", env.Metadata["operation"])
		}
	}

	if err := handler.Execute(context.Background(), cmd); err != nil {
		t.Fatalf("execute build: %v", err)
	}

	if captured.PostsRoot != "./content/posts" {
		t.Fatalf("unexpected posts root %q", captured.PostsRoot)
	}
	if captured.Output != "public/index.json" {
		t.Fatalf("unexpected output %q", captured.Output)
	}
	if captured.DryRun {
		t.Fatal("expected DryRun false")
	}
	if !callbackInvoked {
		t.Fatal("expected callback to be invoked")
	}
}

func TestBuildIndexHandler_Execute_ServiceMissing(t *testing.T) {
	handler := NewBuildIndexHandler(nil, nil)
	err := handler.Execute(context.Background(), BuildIndexCommand{PostsRoot: "./posts"})
	if !errors.Is(err, ErrServiceRequired) {
		t.Fatalf("expected ErrServiceRequired, got %v", err)
	}
}

func TestBuildIndexHandler_Execute_TagsValidationFailures(t *testing.T) {
	cause := validation.ValidateFrontmatter(map[string]any{"title": "only"})
	svc := &fakeIndexService{
		buildFunc: func(ctx context.Context, req index.BuildRequest) (*index.BuildResult, error) {
			return &index.BuildResult{PostsFailed: 1}, fmt.Errorf("post broken: %w", cause)
		},
	}

	handler := NewBuildIndexHandler(svc, nil)
	err := handler.Execute(context.Background(), BuildIndexCommand{PostsRoot: "./posts"})
	if err == nil {
		t.Fatal("expected build failure")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}

func TestValidateIndexHandler_Execute(t *testing.T) {
	callbackInvoked := false
	svc := &fakeIndexService{
		validateFunc: func(ctx context.Context, req index.ValidateRequest) (*index.BuildResult, error) {
			return &index.BuildResult{PostsIndexed: 2, PostsFailed: 1, DryRun: true},
				errors.New("post bad-date: frontmatter invalid")
		},
	}

	handler := NewValidateIndexHandler(svc, nil)
	cmd := ValidateIndexCommand{
		PostsRoot: "./posts",
		ResultCallback: func(env ResultEnvelope) {
			callbackInvoked = true
			if env.Result == nil || env.Result.PostsFailed != 1 {
				t.Fatalf("unexpected validate result: %#v", env.Result)
			}
			if env.Metadata["operation"] != "validate" {
				t.Fatalf("expected operation validate, got %v", env.Metadata["operation"])
			}
		},
	}

	err := handler.Execute(context.Background(), cmd)
	if err == nil {
		t.Fatal("expected validation failure to propagate")
	}
	if !callbackInvoked {
		t.Fatal("expected callback to be invoked even on failure")
	}
}

func TestBuildIndexCommandValidate(t *testing.T) {
	cmd := loadBuildFixture(t, "build_missing_root.json")
	if err := cmd.Validate(); err == nil {
		t.Fatal("expected validation error for blank posts root")
	}
}

func TestValidateIndexCommandValidate(t *testing.T) {
	if err := (ValidateIndexCommand{}).Validate(); err == nil {
		t.Fatal("expected validation error for empty posts root")
	}
	if err := (ValidateIndexCommand{PostsRoot: "./posts"}).Validate(); err != nil {
		t.Fatalf("expected valid command, got %v", err)
	}
}

func loadBuildFixture(t *testing.T, name string) BuildIndexCommand {
	t.Helper()
	var cmd BuildIndexCommand
	loadFixture(t, name, &cmd)
	return cmd
}

func loadFixture(t *testing.T, name string, target any) {
	t.Helper()
	path := filepath.Join("testdata", name)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture %s: %v", name, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		t.Fatalf("unmarshal fixture %s: %v", name, err)
	}
}

type fakeIndexService struct {
	buildFunc    func(context.Context, index.BuildRequest) (*index.BuildResult, error)
	validateFunc func(context.Context, index.ValidateRequest) (*index.BuildResult, error)
}

func (f *fakeIndexService) Build(ctx context.Context, req index.BuildRequest) (*index.BuildResult, error) {
	if f.buildFunc != nil {
		return f.buildFunc(ctx, req)
	}
	return nil, nil
}

func (f *fakeIndexService) Validate(ctx context.Context, req index.ValidateRequest) (*index.BuildResult, error) {
	if f.validateFunc != nil {
		return f.validateFunc(ctx, req)
	}
	return nil, nil
}
