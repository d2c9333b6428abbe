package index

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// writeFileRequest describes a file write routed through the artifact writer.
type writeFileRequest struct {
	Path    string
	Content []byte
}

// artifactWriter abstracts filesystem specifics so dry runs can swap in a
// writer that records nothing.
type artifactWriter interface {
	EnsureDir(ctx context.Context, path string) error
	WriteFile(ctx context.Context, req writeFileRequest) error
}

func newArtifactWriter(dryRun bool) artifactWriter {
	if dryRun {
		return noopWriter{}
	}
	return fsWriter{}
}

type fsWriter struct{}

func (fsWriter) EnsureDir(ctx context.Context, dir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(dir) == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

// WriteFile stages content in a temp file and renames it into place, so a
// failed write never leaves a truncated index behind.
func (fsWriter) WriteFile(ctx context.Context, req writeFileRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(req.Path) == "" {
		return errors.New("index: write requires path")
	}

	dir := filepath.Dir(req.Path)
	tmp, err := os.CreateTemp(dir, filepath.Base(req.Path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(req.Content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, req.Path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

type noopWriter struct{}

func (noopWriter) EnsureDir(context.Context, string) error { return nil }

func (noopWriter) WriteFile(context.Context, writeFileRequest) error { return nil }
