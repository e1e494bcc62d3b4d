package parser

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Heading is a markdown heading found in a prompt
type Heading struct {
	Level int
	Text  string
}

// Outline summarizes the markdown structure of a prompt document
type Outline struct {
	Headings []Heading
	// Scenarios holds the bodies of fenced code blocks tagged gherkin, cucumber or feature
	Scenarios []string
}

// OutlineParser builds an Outline from prompt markdown
type OutlineParser struct {
	markdown goldmark.Markdown
}

// NewOutlineParser returns an OutlineParser using the default goldmark configuration.
func NewOutlineParser() *OutlineParser {
	return &OutlineParser{
		markdown: goldmark.New(),
	}
}

// Parse walks the markdown AST of content. A leading front-matter block is
// removed first so its closing delimiter is not read as a setext heading.
func (p *OutlineParser) Parse(content string) (*Outline, error) {
	source := []byte(stripFrontMatter(content))
	doc := p.markdown.Parser().Parse(text.NewReader(source))

	outline := &Outline{}
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			outline.Headings = append(outline.Headings, Heading{
				Level: node.Level,
				Text:  extractText(node, source),
			})
			return ast.WalkSkipChildren, nil
		case *ast.FencedCodeBlock:
			if isScenarioLanguage(string(node.Language(source))) {
				outline.Scenarios = append(outline.Scenarios, blockBody(node, source))
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}
	return outline, nil
}

func stripFrontMatter(content string) string {
	loc := frontMatterBlock.FindStringIndex(content)
	if loc == nil {
		return content
	}
	return content[loc[1]:]
}

func isScenarioLanguage(lang string) bool {
	switch strings.ToLower(lang) {
	case "gherkin", "cucumber", "feature":
		return true
	}
	return false
}

// extractText concatenates the text segments directly under n
func extractText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Segment.Value(source))
			if t.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		}
	}
	return strings.TrimSpace(buf.String())
}

func blockBody(n *ast.FencedCodeBlock, source []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
	return strings.TrimRight(buf.String(), "\n")
}
