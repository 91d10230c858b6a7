// Package goldmark checks formatted Markdown against its original using the
// goldmark parser, so that a formatting run never alters code blocks.
package goldmark

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Supported Markdown flavors.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Parser reads the block structure of Markdown documents. It is safe for
// concurrent use.
type Parser struct {
	flavor string
	md     goldmark.Markdown
}

// New returns a parser for flavor. Anything but "commonmark" means GFM.
func New(flavor string) *Parser {
	if flavor == FlavorCommonMark {
		return &Parser{flavor: flavor, md: goldmark.New()}
	}
	return &Parser{flavor: FlavorGFM, md: goldmark.New(goldmark.WithExtensions(extension.GFM))}
}

func (p *Parser) Flavor() string { return p.flavor }

// CodeBlock is a fenced code block as goldmark sees it. Line is the 1-based
// line of its first content line, or 0 when the block is empty.
type CodeBlock struct {
	Info    string
	Line    int
	Content string
}

// CodeBlocks returns the fenced code blocks of content in document order.
func (p *Parser) CodeBlocks(ctx context.Context, content []byte) ([]CodeBlock, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	root := p.md.Parser().Parse(text.NewReader(content), parser.WithContext(parser.NewContext()))

	var blocks []CodeBlock
	walk := func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		fenced, ok := node.(*ast.FencedCodeBlock)
		if !entering || !ok {
			return ast.WalkContinue, nil
		}
		blocks = append(blocks, codeBlockOf(fenced, content))
		return ast.WalkSkipChildren, nil
	}
	if err := ast.Walk(root, walk); err != nil {
		return nil, fmt.Errorf("walk document: %w", err)
	}
	return blocks, nil
}

func codeBlockOf(fenced *ast.FencedCodeBlock, source []byte) CodeBlock {
	var block CodeBlock
	if fenced.Info != nil {
		block.Info = string(fenced.Info.Segment.Value(source))
	}

	segments := fenced.Lines()
	if segments.Len() == 0 {
		return block
	}
	block.Line = 1 + bytes.Count(source[:segments.At(0).Start], []byte{'\n'})

	var body bytes.Buffer
	for _, seg := range segments.Sliced(0, segments.Len()) {
		body.Write(seg.Value(source))
	}
	block.Content = body.String()
	return block
}
