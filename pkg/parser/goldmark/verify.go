package goldmark

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Verification errors.
var (
	// ErrCodeBlockCount means formatting added or removed a fenced code block.
	ErrCodeBlockCount = errors.New("fenced code block count changed")

	// ErrCodeBlockContent means formatting altered the body of a fenced code block.
	ErrCodeBlockContent = errors.New("fenced code block content changed")
)

// Verify reports an error if formatted has different fenced code blocks
// than original. Info strings are ignored, and so are whitespace-only
// differences such as expanded tabs, stripped trailing spaces and dropped
// trailing blank lines.
//
// Verify implements lint.Verifier.
func (p *Parser) Verify(ctx context.Context, original, formatted []byte) error {
	before, err := p.CodeBlocks(ctx, original)
	if err != nil {
		return err
	}
	after, err := p.CodeBlocks(ctx, formatted)
	if err != nil {
		return err
	}

	if len(before) != len(after) {
		return fmt.Errorf("%w: %d before, %d after", ErrCodeBlockCount, len(before), len(after))
	}
	for i := range before {
		if normalizeCode(before[i].Content) != normalizeCode(after[i].Content) {
			return fmt.Errorf("%w: block %d at line %d", ErrCodeBlockContent, i+1, before[i].Line)
		}
	}
	return nil
}

// normalizeCode reduces every line of a code body to its words and drops
// trailing blank lines.
func normalizeCode(body string) string {
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}
