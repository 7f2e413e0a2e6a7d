package ingest

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownToText renders Markdown as plain text: one block per heading,
// paragraph or code block, separated by blank lines so paragraph counts
// survive. Markup, link targets and raw HTML are dropped. title is the
// text of the first heading, if any.
func MarkdownToText(src []byte) (title, body string) {
	root := goldmark.DefaultParser().Parse(text.NewReader(src))

	var blocks []string
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		var block string
		switch node := n.(type) {
		case *ast.Heading:
			block = inlineText(node, src)
			if title == "" {
				title = block
			}
		case *ast.Paragraph, *ast.TextBlock:
			block = inlineText(node, src)
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			block = linesText(node, src)
		default:
			return ast.WalkContinue, nil
		}
		if block != "" {
			blocks = append(blocks, block)
		}
		return ast.WalkSkipChildren, nil
	})

	return title, strings.Join(blocks, "\n\n")
}

func inlineText(n ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte('\n')
			}
		case *ast.String:
			b.Write(t.Value)
		case *ast.AutoLink:
			b.Write(t.Label(src))
			return ast.WalkSkipChildren, nil
		case *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

func linesText(n ast.Node, src []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(src))
	}
	return strings.TrimRight(b.String(), "\n")
}
