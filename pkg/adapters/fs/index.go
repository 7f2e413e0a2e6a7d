package fs

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/docsense/pkg/core"
)

// index is the in-memory form of documents.json: metadata keyed by
// document ID, remembering insertion order.
type index struct {
	ids  []string
	meta map[string]core.Metadata
}

func newIndex() *index {
	return &index{meta: make(map[string]core.Metadata)}
}

func (ix *index) Len() int {
	return len(ix.ids)
}

func (ix *index) get(id string) (core.Metadata, bool) {
	m, ok := ix.meta[id]
	return m, ok
}

// put stores m under id. An existing id keeps its position.
func (ix *index) put(id string, m core.Metadata) (prev core.Metadata, existed bool) {
	prev, existed = ix.meta[id]
	if !existed {
		ix.ids = append(ix.ids, id)
	}
	ix.meta[id] = m
	return prev, existed
}

// undo reverts a put.
func (ix *index) undo(id string, prev core.Metadata, existed bool) {
	if existed {
		ix.meta[id] = prev
		return
	}
	delete(ix.meta, id)
	for i := len(ix.ids) - 1; i >= 0; i-- {
		if ix.ids[i] == id {
			ix.ids = append(ix.ids[:i], ix.ids[i+1:]...)
			break
		}
	}
}

func (ix *index) documents() []core.Document {
	docs := make([]core.Document, 0, len(ix.ids))
	for _, id := range ix.ids {
		docs = append(docs, core.Document{ID: id, Metadata: ix.meta[id]})
	}
	return docs
}

// encode renders the index as an indented JSON object in insertion order.
// Non-ASCII text and HTML characters are written literally.
func (ix *index) encode() ([]byte, error) {
	var compact bytes.Buffer
	compact.WriteByte('{')
	for i, id := range ix.ids {
		if i > 0 {
			compact.WriteByte(',')
		}
		key, err := marshalLiteral(id)
		if err != nil {
			return nil, err
		}
		val, err := marshalLiteral(ix.meta[id])
		if err != nil {
			return nil, fmt.Errorf("document %s: %w", id, err)
		}
		compact.Write(key)
		compact.WriteByte(':')
		compact.Write(val)
	}
	compact.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", "  "); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func marshalLiteral(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// decodeIndex parses documents.json keeping the key order of the file.
// Unknown fields are ignored and missing ones are left empty. A key that
// appears twice keeps its first position and its last value.
func decodeIndex(data []byte) (*index, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected a JSON object, found %v", tok)
	}

	ix := newIndex()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		id, _ := tok.(string)

		var m core.Metadata
		if err := dec.Decode(&m); err != nil {
			return nil, fmt.Errorf("document %s: %w", id, err)
		}
		ix.put(id, m)
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after the index object")
	}
	return ix, nil
}
