package index

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-postindex/internal/posts"
	"github.com/goliatone/go-postindex/internal/validation"
)

func writePost(tb testing.TB, root, slug, title, description, published string, tags []string, body string) {
	tb.Helper()

	var sb strings.Builder
	sb.WriteString("---\n")
	fmt.Fprintf(&sb, "title: %s\n", title)
	fmt.Fprintf(&sb, "description: %s\n", description)
	fmt.Fprintf(&sb, "published: %s\n", published)
	if len(tags) == 0 {
		sb.WriteString("tags: []\n")
	} else {
		sb.WriteString("tags:\n")
		for _, tag := range tags {
			fmt.Fprintf(&sb, "  - %s\n", tag)
		}
	}
	sb.WriteString("---\n\n")
	sb.WriteString(body)

	writeRawPost(tb, root, slug, sb.String())
}

func writeRawPost(tb testing.TB, root, slug, content string) {
	tb.Helper()

	dir := filepath.Join(root, slug)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		tb.Fatalf("mkdir %s: %v", dir, err)
	}
	if err := os.WriteFile(filepath.Join(dir, "index.md"), []byte(content), 0o644); err != nil {
		tb.Fatalf("write post %s: %v", slug, err)
	}
}

func TestServiceBuildWritesIndexInSlugOrder(t *testing.T) {
	root := t.TempDir()
	writePost(t, root, "zoo-layouts", "Zoo Layouts", "Grid tricks.", "2024-02-01T00:00:00Z", []string{"css"}, "Some body text here.\n")
	writePost(t, root, "about-types", "About Types", "Type tricks.", "2024-01-01T00:00:00Z", []string{"typescript"}, "Another body entirely.\n")

	svc := NewService(Config{})
	result, err := svc.Build(context.Background(), BuildRequest{PostsRoot: root})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if result.PostsIndexed != 2 {
		t.Fatalf("expected 2 posts indexed, got %d", result.PostsIndexed)
	}
	if result.Output != filepath.Join(root, "index.json") {
		t.Fatalf("unexpected output path %q", result.Output)
	}
	if result.RunID == "" {
		t.Fatal("expected run ID to be populated")
	}

	data, err := os.ReadFile(result.Output)
	if err != nil {
		t.Fatalf("read index: %v", err)
	}

	var entries []map[string]any
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatalf("decode index: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0]["slug"] != "about-types" || entries[1]["slug"] != "zoo-layouts" {
		t.Fatalf("expected lexicographic slug order, got %v then %v", entries[0]["slug"], entries[1]["slug"])
	}
	if entries[0]["published"] != "2024-01-01T00:00:00Z" {
		t.Fatalf("expected published to round-trip, got %v", entries[0]["published"])
	}
}

func TestServiceBuildSinglePostOutput(t *testing.T) {
	root := t.TempDir()
	body := strings.Repeat("word ", 400)
	writePost(t, root, "hello", "Hello", "World", "2024-01-01T00:00:00.000Z", []string{"CSS"}, body)

	svc := NewService(Config{WordsPerMinute: 200})
	result, err := svc.Build(context.Background(), BuildRequest{PostsRoot: root})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	data, err := os.ReadFile(result.Output)
	if err != nil {
		t.Fatalf("read index: %v", err)
	}

	want := `[
  {
    "title": "Hello",
    "description": "World",
    "published": "2024-01-01T00:00:00.000Z",
    "tags": [
      "CSS"
    ],
    "readingTime": 2,
    "slug": "hello"
  }
]
`
	if string(data) != want {
		t.Fatalf("unexpected index content:\n%s\nwant:\n%s", data, want)
	}
	if result.BytesWritten != len(data) {
		t.Fatalf("expected %d bytes written, got %d", len(data), result.BytesWritten)
	}
}

func TestServiceBuildEmptyRoot(t *testing.T) {
	root := t.TempDir()

	svc := NewService(Config{})
	result, err := svc.Build(context.Background(), BuildRequest{PostsRoot: root})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if result.PostsIndexed != 0 {
		t.Fatalf("expected no posts indexed, got %d", result.PostsIndexed)
	}

	data, err := os.ReadFile(filepath.Join(root, "index.json"))
	if err != nil {
		t.Fatalf("read index: %v", err)
	}
	if string(data) != "[]\n" {
		t.Fatalf("expected empty array, got %q", data)
	}
}

func TestServiceBuildIdempotent(t *testing.T) {
	root := t.TempDir()
	writePost(t, root, "hello", "Hello", "World", "2024-01-01T00:00:00.000Z", []string{"CSS"}, "Stable body.\n")

	svc := NewService(Config{})
	if _, err := svc.Build(context.Background(), BuildRequest{PostsRoot: root}); err != nil {
		t.Fatalf("first build: %v", err)
	}
	first, err := os.ReadFile(filepath.Join(root, "index.json"))
	if err != nil {
		t.Fatalf("read first index: %v", err)
	}

	// The second run sees the index file at the root; it must be ignored
	// and the output must not change.
	if _, err := svc.Build(context.Background(), BuildRequest{PostsRoot: root}); err != nil {
		t.Fatalf("second build: %v", err)
	}
	second, err := os.ReadFile(filepath.Join(root, "index.json"))
	if err != nil {
		t.Fatalf("read second index: %v", err)
	}

	if string(first) != string(second) {
		t.Fatalf("expected byte-identical output, got:\n%s\nand:\n%s", first, second)
	}
}

func TestServiceBuildMissingDocument(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "broken-post"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	svc := NewService(Config{})
	result, err := svc.Build(context.Background(), BuildRequest{PostsRoot: root})
	if err == nil {
		t.Fatal("expected error for missing document")
	}
	if !errors.Is(err, posts.ErrDocumentRead) {
		t.Fatalf("expected ErrDocumentRead, got %v", err)
	}
	if !strings.Contains(err.Error(), "broken-post") {
		t.Fatalf("expected error to name the post, got %q", err.Error())
	}
	if result.PostsFailed != 1 {
		t.Fatalf("expected 1 failed post, got %d", result.PostsFailed)
	}

	if _, statErr := os.Stat(filepath.Join(root, "index.json")); !os.IsNotExist(statErr) {
		t.Fatal("expected no index file after failed build")
	}
}

func TestServiceBuildInvalidFrontmatterLeavesPriorIndex(t *testing.T) {
	root := t.TempDir()
	prior := filepath.Join(root, "index.json")
	if err := os.WriteFile(prior, []byte("[\"prior\"]\n"), 0o644); err != nil {
		t.Fatalf("write prior index: %v", err)
	}
	writeRawPost(t, root, "no-tags", "---\ntitle: Hello\ndescription: World\npublished: 2024-01-01T00:00:00Z\n---\nBody.\n")

	svc := NewService(Config{})
	_, err := svc.Build(context.Background(), BuildRequest{PostsRoot: root})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !errors.Is(err, validation.ErrSchemaValidation) {
		t.Fatalf("expected ErrSchemaValidation, got %v", err)
	}
	if !strings.Contains(err.Error(), "no-tags") || !strings.Contains(err.Error(), "tags") {
		t.Fatalf("expected error to name post and field, got %q", err.Error())
	}

	data, err := os.ReadFile(prior)
	if err != nil {
		t.Fatalf("read prior index: %v", err)
	}
	if string(data) != "[\"prior\"]\n" {
		t.Fatalf("expected prior index to be untouched, got %q", data)
	}
}

func TestServiceBuildCollectsAllErrors(t *testing.T) {
	root := t.TempDir()
	writeRawPost(t, root, "first-bad", "---\ntitle: One\n---\nBody.\n")
	writeRawPost(t, root, "second-bad", "---\ntitle: Two\n---\nBody.\n")
	writePost(t, root, "good-post", "Good", "Fine.", "2024-01-01T00:00:00Z", []string{"ok"}, "Body.\n")

	svc := NewService(Config{})
	result, err := svc.Build(context.Background(), BuildRequest{PostsRoot: root})
	if err == nil {
		t.Fatal("expected error")
	}

	message := err.Error()
	if !strings.Contains(message, "first-bad") || !strings.Contains(message, "second-bad") {
		t.Fatalf("expected both failing posts to be reported, got %q", message)
	}
	if result.PostsFailed != 2 {
		t.Fatalf("expected 2 failed posts, got %d", result.PostsFailed)
	}
	if result.PostsIndexed != 1 {
		t.Fatalf("expected 1 indexed post, got %d", result.PostsIndexed)
	}
}

func TestServiceBuildDryRun(t *testing.T) {
	root := t.TempDir()
	writePost(t, root, "hello", "Hello", "World", "2024-01-01T00:00:00Z", []string{"CSS"}, "Body.\n")

	svc := NewService(Config{})
	result, err := svc.Build(context.Background(), BuildRequest{PostsRoot: root, DryRun: true})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if !result.DryRun {
		t.Fatal("expected dry-run result")
	}
	if len(result.Summaries) != 1 {
		t.Fatalf("expected summaries to be populated, got %d", len(result.Summaries))
	}
	if result.BytesWritten != 0 {
		t.Fatalf("expected no bytes written, got %d", result.BytesWritten)
	}
	if _, err := os.Stat(filepath.Join(root, "index.json")); !os.IsNotExist(err) {
		t.Fatal("expected no index file after dry run")
	}
}

func TestServiceValidateReportsEveryIssue(t *testing.T) {
	root := t.TempDir()
	writeRawPost(t, root, "bad-date", "---\ntitle: T\ndescription: D\npublished: not-a-date\ntags: []\n---\nBody.\n")
	writePost(t, root, "fine", "Fine", "Ok.", "2024-01-01T00:00:00Z", nil, "Body.\n")

	svc := NewService(Config{})
	result, err := svc.Validate(context.Background(), ValidateRequest{PostsRoot: root})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if result.PostsFailed != 1 || result.PostsIndexed != 1 {
		t.Fatalf("unexpected counts: failed=%d indexed=%d", result.PostsFailed, result.PostsIndexed)
	}
	if !strings.Contains(err.Error(), "bad-date") {
		t.Fatalf("expected failing post to be named, got %q", err.Error())
	}
}

func TestServiceBuildConcurrentWorkersPreserveOrder(t *testing.T) {
	root := t.TempDir()
	want := make([]string, 0, 9)
	for i := 1; i <= 9; i++ {
		slug := fmt.Sprintf("post-%d", i)
		writePost(t, root, slug, fmt.Sprintf("Post %d", i), "Body.", "2024-01-01T00:00:00Z", []string{"t"}, strings.Repeat("words and more ", i))
		want = append(want, slug)
	}

	svc := NewService(Config{Workers: 4})
	result, err := svc.Build(context.Background(), BuildRequest{PostsRoot: root})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if result.PostsIndexed != 9 {
		t.Fatalf("expected 9 posts indexed, got %d", result.PostsIndexed)
	}

	data, err := os.ReadFile(result.Output)
	if err != nil {
		t.Fatalf("read index: %v", err)
	}
	var entries []map[string]any
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatalf("decode index: %v", err)
	}

	got := make([]string, 0, len(entries))
	for _, entry := range entries {
		got = append(got, entry["slug"].(string))
	}
	// Single-digit suffixes keep lexicographic order equal to insertion order.
	for i, slug := range want {
		if got[i] != slug {
			t.Fatalf("expected slug %q at position %d, got %q (full order %v)", slug, i, got[i], got)
		}
	}
}

func TestServiceBuildOutputOverride(t *testing.T) {
	root := t.TempDir()
	writePost(t, root, "hello", "Hello", "World", "2024-01-01T00:00:00Z", []string{"CSS"}, "Body.\n")

	svc := NewService(Config{})
	result, err := svc.Build(context.Background(), BuildRequest{PostsRoot: root, Output: filepath.Join("out", "posts.json")})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	want := filepath.Join(root, "out", "posts.json")
	if result.Output != want {
		t.Fatalf("expected output %q, got %q", want, result.Output)
	}
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("expected index at override path: %v", err)
	}
}

func TestEncodeIndexEmpty(t *testing.T) {
	data, err := encodeIndex(nil)
	if err != nil {
		t.Fatalf("encodeIndex: %v", err)
	}
	if string(data) != "[]\n" {
		t.Fatalf("expected empty array, got %q", data)
	}
}
