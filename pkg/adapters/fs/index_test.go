package fs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/docsense/pkg/core"
)

func TestIndexEncode(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		data, err := newIndex().encode()
		require.NoError(t, err)
		assert.Equal(t, "{}", string(data))
	})

	t.Run("Insertion Order And Literal Text", func(t *testing.T) {
		ix := newIndex()
		ix.put("doc_002", core.Metadata{Title: "Zürich <notes> & more", Author: "Ana", Category: "Travel", Filename: "doc_002.txt", CreatedDate: "N/A", WordCount: 4})
		ix.put("doc_001", core.Metadata{Title: "First", Author: "Bo", Category: "General", Filename: "doc_001.txt", CreatedDate: "N/A", WordCount: 1})

		data, err := ix.encode()
		require.NoError(t, err)

		want := `{
  "doc_002": {
    "title": "Zürich <notes> & more",
    "author": "Ana",
    "category": "Travel",
    "filename": "doc_002.txt",
    "created_date": "N/A",
    "word_count": 4
  },
  "doc_001": {
    "title": "First",
    "author": "Bo",
    "category": "General",
    "filename": "doc_001.txt",
    "created_date": "N/A",
    "word_count": 1
  }
}`
		assert.Equal(t, want, string(data))
	})
}

func TestDecodeIndex(t *testing.T) {
	t.Run("Keeps File Order", func(t *testing.T) {
		ix, err := decodeIndex([]byte(`{"doc_003": {"title": "c"}, "doc_001": {"title": "a"}, "doc_002": {"title": "b"}}`))
		require.NoError(t, err)

		docs := ix.documents()
		require.Len(t, docs, 3)
		assert.Equal(t, []string{"doc_003", "doc_001", "doc_002"}, []string{docs[0].ID, docs[1].ID, docs[2].ID})
		assert.Equal(t, "a", docs[1].Title)
	})

	t.Run("Tolerates Unknown And Missing Fields", func(t *testing.T) {
		ix, err := decodeIndex([]byte(`{"doc_001": {"title": "x", "tags": ["a"], "rating": 5}}`))
		require.NoError(t, err)

		m, ok := ix.get("doc_001")
		require.True(t, ok)
		assert.Equal(t, core.Metadata{Title: "x"}, m)
	})

	t.Run("Duplicate Key Keeps First Position", func(t *testing.T) {
		ix, err := decodeIndex([]byte(`{"a": {"title": "1"}, "b": {}, "a": {"title": "2"}}`))
		require.NoError(t, err)

		docs := ix.documents()
		require.Len(t, docs, 2)
		assert.Equal(t, "a", docs[0].ID)
		assert.Equal(t, "2", docs[0].Title)
	})

	t.Run("Round Trip", func(t *testing.T) {
		ix := newIndex()
		ix.put("doc_001", core.Metadata{Title: "Ünïcode", Filename: "doc_001.txt", WordCount: 2})
		data, err := ix.encode()
		require.NoError(t, err)

		back, err := decodeIndex(data)
		require.NoError(t, err)
		assert.Equal(t, ix.documents(), back.documents())
	})

	for name, input := range map[string]string{
		"Not An Object":  `["doc_001"]`,
		"Truncated":      `{"doc_001": {"title": "x"`,
		"Trailing Data":  `{} {}`,
		"Bad Field Type": `{"doc_001": {"word_count": "many"}}`,
		"Empty":          ``,
	} {
		t.Run("Rejects "+name, func(t *testing.T) {
			_, err := decodeIndex([]byte(input))
			assert.Error(t, err)
		})
	}
}

func TestIndexUndo(t *testing.T) {
	ix := newIndex()
	ix.put("doc_001", core.Metadata{Title: "one"})

	prev, existed := ix.put("doc_002", core.Metadata{Title: "two"})
	ix.undo("doc_002", prev, existed)
	assert.Equal(t, 1, ix.Len())
	_, ok := ix.get("doc_002")
	assert.False(t, ok)

	prev, existed = ix.put("doc_001", core.Metadata{Title: "replaced"})
	ix.undo("doc_001", prev, existed)
	m, _ := ix.get("doc_001")
	assert.Equal(t, "one", m.Title)
	assert.Equal(t, 1, ix.Len())
}
