package interfaces

import "time"

// Document represents a loaded post file with parsed metadata and content.
// The struct is shared between the interfaces package and internal
// implementations so consumers can depend on a stable contract.
type Document struct {
	Slug        string
	FilePath    string
	FrontMatter FrontMatter
	Body        []byte
	// WordCount is the number of words extracted from the rendered body
	// text, excluding markup syntax.
	WordCount    int
	LastModified time.Time
	// Checksum stores a digest of the original file content (SHA-256) so
	// callers can detect changes without re-reading unchanged files.
	Checksum []byte
}

// FrontMatter models the validated metadata block of a post document. The
// required fields are typed; everything else the author wrote is preserved
// in Raw so unknown keys survive a load/inspect cycle.
type FrontMatter struct {
	Title       string
	Description string
	Published   Timestamp
	Tags        []string
	Raw         map[string]any
}

// PostSummary is the derived output record for a single post. Field order
// matches the serialized object layout consumed by the site.
type PostSummary struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Published   Timestamp `json:"published"`
	Tags        []string  `json:"tags"`
	ReadingTime float64   `json:"readingTime"`
	Slug        string    `json:"slug"`
}

// PostIndex is the ordered collection of summaries written to the index
// file, one entry per discovered post directory.
type PostIndex []PostSummary
