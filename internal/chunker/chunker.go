// Package chunker splits extracted text into bounded-size, paragraph-aligned
// chunks for embedding and storage.
package chunker

import (
	"regexp"
	"strings"

	"github.com/iepirkumi/tenderlens/internal/extractor"
)

// DefaultTargetSize is the default chunk size in characters.
const DefaultTargetSize = 2000

// DefaultMinLength is the minimum viable chunk length; anything shorter is
// noise, not content.
const DefaultMinLength = 50

var paragraphSplit = regexp.MustCompile(`\n\n+`)

// BlockChunk is one chunk of a rich-text document, carrying the aligned plain
// and display renderings built from the same source blocks.
type BlockChunk struct {
	Plain   string
	Display string
}

// SplitText splits plain text into chunks at blank-line paragraph boundaries.
// A chunk is closed only when the next paragraph would push it over target and
// it already holds content, so a chunk may exceed target but is never empty.
// Chunks shorter than minLen are discarded.
func SplitText(text string, target, minLen int) []string {
	if target <= 0 {
		target = DefaultTargetSize
	}

	var chunks []string
	var current strings.Builder

	for _, para := range paragraphSplit.Split(text, -1) {
		if current.Len() > 0 && current.Len()+len(para) > target {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(para)
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}

	kept := chunks[:0]
	for _, c := range chunks {
		c = strings.TrimSpace(c)
		if len(c) >= minLen {
			kept = append(kept, c)
		}
	}
	return kept
}

// SplitBlocks applies the same boundary policy to extractor blocks, sizing by
// the plain rendering. Each output chunk carries both renderings assembled
// from the same block range, so embedding input and display content can never
// desynchronize.
func SplitBlocks(blocks []extractor.Block, target, minLen int) []BlockChunk {
	if target <= 0 {
		target = DefaultTargetSize
	}

	var chunks []BlockChunk
	var plains, displays []string
	plainLen := 0

	flush := func() {
		if len(plains) == 0 {
			return
		}
		chunks = append(chunks, BlockChunk{
			Plain:   strings.Join(plains, "\n\n"),
			Display: strings.Join(displays, "\n"),
		})
		plains, displays, plainLen = nil, nil, 0
	}

	for _, block := range blocks {
		if plainLen > 0 && plainLen+len(block.Plain) > target {
			flush()
		}
		plains = append(plains, block.Plain)
		displays = append(displays, block.Display)
		plainLen += len(block.Plain)
		if len(plains) > 1 {
			plainLen += 2 // joining blank line
		}
	}
	flush()

	kept := chunks[:0]
	for _, c := range chunks {
		if len(strings.TrimSpace(c.Plain)) >= minLen {
			kept = append(kept, c)
		}
	}
	return kept
}
