package posts

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-postindex/internal/validation"
	"github.com/goliatone/go-postindex/pkg/interfaces"
)

// ParseFrontMatter extracts metadata and body content from the provided
// source bytes. The metadata block is validated against the post schema
// before binding, so a successful return always carries the required
// fields. A document without a frontmatter block fails validation the same
// way a document missing required keys does.
func ParseFrontMatter(source []byte) (interfaces.FrontMatter, []byte, error) {
	payload := map[string]any{}

	reader := bytes.NewReader(source)
	body, err := frontmatter.Parse(reader, &payload)
	if err != nil {
		return interfaces.FrontMatter{}, nil, &validation.PayloadValidationError{
			Issues: []validation.ValidationIssue{{Message: fmt.Sprintf("malformed frontmatter: %v", err)}},
			Cause:  err,
		}
	}

	normalized := validation.NormalizePayload(payload)
	if err := validation.ValidateFrontmatter(normalized); err != nil {
		return interfaces.FrontMatter{}, nil, err
	}

	meta, err := bindFrontMatter(normalized)
	if err != nil {
		return interfaces.FrontMatter{}, nil, err
	}
	return meta, body, nil
}

// BuildDocument assembles an interfaces.Document from a raw load result,
// parsing the frontmatter and counting the body words.
func BuildDocument(result *DocumentResult) (*interfaces.Document, error) {
	if result == nil {
		return nil, errors.New("posts: document result is nil")
	}

	meta, body, err := ParseFrontMatter(result.Source)
	if err != nil {
		return nil, fmt.Errorf("post %s: %w", result.Slug, err)
	}

	return &interfaces.Document{
		Slug:         result.Slug,
		FilePath:     result.FilePath,
		FrontMatter:  meta,
		Body:         body,
		WordCount:    CountWords(body),
		LastModified: result.LastModified,
		Checksum:     result.Checksum,
	}, nil
}

// bindFrontMatter converts a schema-validated payload into the typed
// FrontMatter. The payload types are guaranteed by the schema; only the
// published timestamp can still fail, when its text passes the format check
// but does not parse as a date-time.
func bindFrontMatter(payload map[string]any) (interfaces.FrontMatter, error) {
	title, _ := payload["title"].(string)
	description, _ := payload["description"].(string)

	rawPublished, _ := payload["published"].(string)
	published, err := interfaces.ParseTimestamp(rawPublished)
	if err != nil {
		return interfaces.FrontMatter{}, &validation.PayloadValidationError{
			Issues: []validation.ValidationIssue{{Location: "/published", Message: err.Error()}},
			Cause:  err,
		}
	}

	tags := make([]string, 0)
	switch typed := payload["tags"].(type) {
	case []string:
		tags = append(tags, typed...)
	case []any:
		for _, item := range typed {
			if tag, ok := item.(string); ok {
				tags = append(tags, tag)
			}
		}
	}

	return interfaces.FrontMatter{
		Title:       title,
		Description: description,
		Published:   published,
		Tags:        tags,
		Raw:         payload,
	}, nil
}
