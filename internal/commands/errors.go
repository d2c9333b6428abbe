package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-postindex/internal/index"
	"github.com/goliatone/go-postindex/internal/posts"
	"github.com/goliatone/go-postindex/internal/validation"
)

const (
	commandValidationCode   = "COMMAND_VALIDATION_FAILED"
	commandContextCanceled  = "COMMAND_CONTEXT_CANCELED"
	commandContextTimeout   = "COMMAND_CONTEXT_TIMEOUT"
	commandContextErrorCode = "COMMAND_CONTEXT_ERROR"
	commandExecuteFailed    = "COMMAND_EXECUTION_FAILED"
)

const (
	postReadFailedCode         = "POST_READ_FAILED"
	postFrontmatterInvalidCode = "POST_FRONTMATTER_INVALID"
	indexWriteFailedCode       = "INDEX_WRITE_FAILED"
)

// WrapDomainError tags known pipeline failures with their category and text
// code so callers above the command boundary can branch without unwrapping
// sentinel chains. Unknown errors pass through untouched and pick up the
// generic execution code later.
func WrapDomainError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	switch {
	case errors.Is(err, validation.ErrSchemaValidation):
		return goerrors.Wrap(err, goerrors.CategoryValidation, "post frontmatter rejected").
			WithTextCode(postFrontmatterInvalidCode)
	case errors.Is(err, posts.ErrDocumentRead):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "post document unreadable").
			WithTextCode(postReadFailedCode)
	case errors.Is(err, index.ErrIndexWrite):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "index write failed").
			WithTextCode(indexWriteFailedCode)
	}
	return err
}

func wrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "command validation failed").
		WithTextCode(commandValidationCode)
}

func wrapContextError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	switch err {
	case context.Canceled:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution cancelled").
			WithTextCode(commandContextCanceled)
	case context.DeadlineExceeded:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution deadline exceeded").
			WithTextCode(commandContextTimeout)
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command context error").
			WithTextCode(commandContextErrorCode)
	}
}

func wrapExecuteError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution failed").
		WithTextCode(commandExecuteFailed)
}
