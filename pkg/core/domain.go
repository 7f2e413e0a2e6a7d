// Package core holds the docsense domain: documents, the storage contract,
// and the Service that composes storage with the text metrics.
package core

import (
	"fmt"
	"strings"
	"time"
)

// Defaults applied to a new document when a field is left empty.
const (
	DefaultAuthor   = "Unknown"
	DefaultCategory = "General"
)

// ContentExt is the extension of stored document bodies.
const ContentExt = ".txt"

// Metadata describes a stored document. It is fixed at creation time.
type Metadata struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Category    string `json:"category"`
	Filename    string `json:"filename"`
	CreatedDate string `json:"created_date"`
	WordCount   int    `json:"word_count"`
}

// Document is a stored document: its identifier and metadata. The body is
// read separately through Repository.ReadContent.
type Document struct {
	ID string `json:"document_id"`
	Metadata
}

// NewDocument is the input of an add.
type NewDocument struct {
	Content  string `json:"content"`
	Title    string `json:"title,omitempty"`
	Author   string `json:"author,omitempty"`
	Category string `json:"category,omitempty"`
}

// NextID returns the identifier for a document added to a store holding
// count documents: doc_001, doc_002, ... widening past doc_999.
func NextID(count int) string {
	return fmt.Sprintf("doc_%03d", count+1)
}

// ContentFilename returns the body filename of a document.
func ContentFilename(id string) string {
	return id + ContentExt
}

// CountWords counts whitespace separated tokens.
func CountWords(content string) int {
	return len(strings.Fields(content))
}

// BuildMetadata fills the metadata of a new document, applying defaults
// for empty title, author and category.
func BuildMetadata(id string, in NewDocument, created time.Time) Metadata {
	m := Metadata{
		Title:       in.Title,
		Author:      in.Author,
		Category:    in.Category,
		Filename:    ContentFilename(id),
		CreatedDate: created.UTC().Format(time.RFC3339),
		WordCount:   CountWords(in.Content),
	}
	if m.Title == "" {
		m.Title = "Document " + id
	}
	if m.Author == "" {
		m.Author = DefaultAuthor
	}
	if m.Category == "" {
		m.Category = DefaultCategory
	}
	return m
}
