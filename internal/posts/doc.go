// Package posts loads blog post directories from a posts root, splits each
// document into frontmatter and body, validates the metadata, and derives
// the word count backing reading-time estimates.
package posts
