package core

import (
	"testing"
	"time"
)

func TestNextID(t *testing.T) {
	tests := []struct {
		count int
		want  string
	}{
		{0, "doc_001"},
		{9, "doc_010"},
		{998, "doc_999"},
		{999, "doc_1000"},
	}
	for _, tt := range tests {
		if got := NextID(tt.count); got != tt.want {
			t.Errorf("NextID(%d) = %s, want %s", tt.count, got, tt.want)
		}
	}
}

func TestCountWords(t *testing.T) {
	if got := CountWords("  one\ttwo\n\nthree  "); got != 3 {
		t.Errorf("expected 3, got %d", got)
	}
	if got := CountWords(""); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}

func TestBuildMetadata(t *testing.T) {
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.FixedZone("X", 3600))
	m := BuildMetadata("doc_007", NewDocument{Content: "a b", Author: "Zoe"}, created)

	if m.Title != "Document doc_007" {
		t.Errorf("unexpected title %q", m.Title)
	}
	if m.Author != "Zoe" {
		t.Errorf("author should be kept, got %q", m.Author)
	}
	if m.Category != DefaultCategory {
		t.Errorf("unexpected category %q", m.Category)
	}
	if m.Filename != "doc_007.txt" {
		t.Errorf("unexpected filename %q", m.Filename)
	}
	if m.CreatedDate != "2025-01-02T02:04:05Z" {
		t.Errorf("created_date should be UTC RFC 3339, got %q", m.CreatedDate)
	}
	if m.WordCount != 2 {
		t.Errorf("unexpected word count %d", m.WordCount)
	}
}

func TestBuildMetadataEmptyValuesGetDefaults(t *testing.T) {
	in := NewDocument{Content: "x", Title: "", Author: "", Category: ""}
	m := BuildMetadata("doc_002", in, time.Now())

	if m.Title != "Document doc_002" {
		t.Errorf("empty title should default, got %q", m.Title)
	}
	if m.Author != DefaultAuthor {
		t.Errorf("empty author should default, got %q", m.Author)
	}
	if m.Category != DefaultCategory {
		t.Errorf("empty category should default, got %q", m.Category)
	}
}
