package main

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildDocsense builds the binary once per test and returns its path.
func buildDocsense(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping CLI build in short mode")
	}
	bin := filepath.Join(t.TempDir(), "docsense")
	buildCmd := exec.Command("go", "build", "-o", bin, ".")
	if out, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build docsense: %v\n%s", err, string(out))
	}
	return bin
}

type cli struct {
	bin string
	dir string
}

func (c cli) run(stdin string, args ...string) (stdout, stderr string, err error) {
	cmd := exec.Command(c.bin, args...)
	cmd.Dir = c.dir
	cmd.Env = append(os.Environ(), "NO_COLOR=1")
	cmd.Stdin = strings.NewReader(stdin)
	var out, errOut bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errOut
	err = cmd.Run()
	return out.String(), errOut.String(), err
}

func (c cli) mustRun(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	out, errOut, err := c.run(stdin, args...)
	require.NoError(t, err, "docsense %s\n%s", strings.Join(args, " "), errOut)
	return out
}

func TestCLI(t *testing.T) {
	c := cli{bin: buildDocsense(t), dir: t.TempDir()}
	store := filepath.Join(t.TempDir(), "store")

	t.Run("Add From Stdin", func(t *testing.T) {
		out := c.mustRun(t, "The cat sat. The dog ran.", "add", "--store", store, "--title", "Pets", "--author", "Ana")
		assert.Equal(t, "Added doc_001\n", out)
		assert.FileExists(t, filepath.Join(store, "documents.json"))
		assert.FileExists(t, filepath.Join(store, "content", "doc_001.txt"))
	})

	t.Run("List", func(t *testing.T) {
		var docs []map[string]any
		require.NoError(t, json.Unmarshal([]byte(c.mustRun(t, "", "list", "--store", store, "--json")), &docs))
		require.Len(t, docs, 1)
		assert.Equal(t, "doc_001", docs[0]["document_id"])
		assert.Equal(t, "Pets", docs[0]["title"])
		assert.Equal(t, "General", docs[0]["category"])
	})

	t.Run("Analyze", func(t *testing.T) {
		var a map[string]any
		require.NoError(t, json.Unmarshal([]byte(c.mustRun(t, "", "analyze", "doc_001", "--store", store, "--json")), &a))
		r := a["readability"].(map[string]any)
		assert.Equal(t, 119.19, r["flesch_score"])
		assert.Equal(t, "very easy", r["reading_level"])
	})

	t.Run("Analyze Unknown Document", func(t *testing.T) {
		_, errOut, err := c.run("", "analyze", "doc_404", "--store", store)
		assert.Error(t, err)
		assert.Contains(t, errOut, "document not found")
	})

	t.Run("Search", func(t *testing.T) {
		var results []map[string]any
		require.NoError(t, json.Unmarshal([]byte(c.mustRun(t, "", "search", "cat", "--store", store, "--json")), &results))
		require.Len(t, results, 1)
		assert.Equal(t, "doc_001", results[0]["document_id"])
	})

	t.Run("Inside Store Directory", func(t *testing.T) {
		inStore := cli{bin: c.bin, dir: store}
		var docs []map[string]any
		require.NoError(t, json.Unmarshal([]byte(inStore.mustRun(t, "", "list", "--json")), &docs))
		assert.Len(t, docs, 1)
	})

	t.Run("Sentiment And Keywords Without A Store", func(t *testing.T) {
		var s map[string]any
		require.NoError(t, json.Unmarshal([]byte(c.mustRun(t, "", "sentiment", "--ephemeral", "--json", "good")), &s))
		assert.Equal(t, "positive", s["sentiment"])

		var kws []map[string]any
		require.NoError(t, json.Unmarshal([]byte(c.mustRun(t, "", "keywords", "--ephemeral", "--json", "-n", "1", "cat", "cat", "dog")), &kws))
		require.Len(t, kws, 1)
		assert.Equal(t, "cat", kws[0]["keyword"])
		assert.EqualValues(t, 2, kws[0]["frequency"])
	})

	t.Run("Serve MCP", func(t *testing.T) {
		in := `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}` + "\n" +
			`{"jsonrpc":"2.0","method":"notifications/initialized"}` + "\n" +
			`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"list_documents","arguments":{}}}` + "\n"
		out := c.mustRun(t, in, "serve", "--store", store)

		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 2, "stdout carries only protocol responses")
		assert.Contains(t, lines[0], `"name":"document-analyzer"`)
		assert.Contains(t, lines[1], `doc_001`)
	})

	t.Run("Import Markdown", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(root, "guides"), 0755))
		require.NoError(t, os.WriteFile(filepath.Join(root, "guides", "setup.md"), []byte("# Setup Guide\n\nInstall the *tool* first.\n"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("ignored"), 0644))

		var results []map[string]any
		out := c.mustRun(t, "", "import", "**/*.md", "--root", root, "--store", store, "--json")
		require.NoError(t, json.Unmarshal([]byte(out), &results))
		require.Len(t, results, 1)
		assert.Equal(t, "doc_002", results[0]["document_id"])
		assert.Equal(t, "Setup Guide", results[0]["title"])

		var docs []map[string]any
		require.NoError(t, json.Unmarshal([]byte(c.mustRun(t, "", "list", "--store", store, "--json")), &docs))
		require.Len(t, docs, 2)
		assert.Equal(t, "guides", docs[1]["category"])
	})

	t.Run("SQLite Adapter", func(t *testing.T) {
		db := filepath.Join(t.TempDir(), "docs.db")
		out := c.mustRun(t, "hello world", "add", "--adapter", "sqlite", "--store", db, "--json")
		assert.Contains(t, out, `"document_id": "doc_001"`)
		assert.FileExists(t, db)
	})

	t.Run("Config File", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "docsense.yaml"), []byte("store:\n  path: data\n"), 0644))

		withConfig := cli{bin: c.bin, dir: dir}
		withConfig.mustRun(t, "configured", "add", "--title", "Cfg")
		assert.FileExists(t, filepath.Join(dir, "data", "documents.json"))
	})

	t.Run("Lexicon Sentiment Model", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "docsense.yaml"), []byte("analysis:\n  model: lexicon\n"), 0644))

		var s map[string]any
		withConfig := cli{bin: c.bin, dir: dir}
		require.NoError(t, json.Unmarshal([]byte(withConfig.mustRun(t, "", "sentiment", "--ephemeral", "--json", "This is a good day.")), &s))
		assert.Equal(t, "positive", s["sentiment"])
		assert.Equal(t, 0.7, s["polarity"])
		assert.Equal(t, 0.6, s["subjectivity"])
	})

	t.Run("Version", func(t *testing.T) {
		assert.True(t, strings.HasPrefix(c.mustRun(t, "", "version"), "docsense version "))
	})
}
