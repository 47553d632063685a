package chunker

import (
	"regexp"
	"strings"
)

// Config configures the chunker behavior.
type Config struct {
	// ChunkSize is the maximum characters per chunk
	ChunkSize int

	// Overlap is the character overlap between consecutive chunks
	Overlap int

	// PreserveParagraphs tries to cut at paragraph boundaries first
	PreserveParagraphs bool

	// PreserveSentences tries to cut at sentence boundaries
	PreserveSentences bool
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		ChunkSize:          2000,
		Overlap:            200,
		PreserveParagraphs: true,
		PreserveSentences:  true,
	}
}

// Piece is one chunk of normalized text with its position.
// Content is always an exact substring of the normalized input,
// so overlapping pieces reconstruct the original text.
type Piece struct {
	Content   string
	Index     int
	StartChar int
	EndChar   int
}

// Chunker splits document text into bounded, overlapping pieces,
// preferring paragraph and sentence boundaries over hard cuts.
type Chunker struct {
	cfg Config
}

// New creates a chunker with the given config.
func New(cfg Config) *Chunker {
	if cfg.ChunkSize < 1 {
		cfg.ChunkSize = DefaultConfig().ChunkSize
	}
	if cfg.Overlap < 0 {
		cfg.Overlap = 0
	}
	if cfg.Overlap >= cfg.ChunkSize {
		cfg.Overlap = cfg.ChunkSize / 2
	}
	return &Chunker{cfg: cfg}
}

var excessNewlines = regexp.MustCompile(`\n{3,}`)

// Normalize canonicalizes raw document text before chunking:
// CRLF to LF, runs of 3+ newlines collapsed to 2, surrounding space trimmed.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = excessNewlines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// sentenceEnders mark cut points after a complete sentence
var sentenceEnders = []string{". ", "! ", "? ", ".\n", "!\n", "?\n"}

// Split normalizes text and cuts it into ordered pieces.
// Empty or whitespace-only input yields zero pieces.
func (c *Chunker) Split(text string) []Piece {
	text = Normalize(text)
	if text == "" {
		return nil
	}

	if len(text) <= c.cfg.ChunkSize {
		return []Piece{{Content: text, Index: 0, StartChar: 0, EndChar: len(text)}}
	}

	var pieces []Piece
	start := 0
	for start < len(text) {
		end := start + c.cfg.ChunkSize
		if end >= len(text) {
			end = len(text)
		} else {
			end = c.breakPoint(text, start, end)
		}

		pieces = append(pieces, Piece{
			Content:   text[start:end],
			Index:     len(pieces),
			StartChar: start,
			EndChar:   end,
		})

		if end >= len(text) {
			break
		}

		// Seed the next chunk with the overlap tail, advanced to the
		// first sentence boundary inside the tail when one exists.
		next := end - c.cfg.Overlap
		if next <= start {
			// Always make progress
			next = start + 1
		}
		if c.cfg.PreserveSentences {
			next = alignToSentence(text, next, end)
		}
		start = next
	}

	return pieces
}

// breakPoint picks the cut for the window text[start:maxEnd].
// Preference order: last paragraph boundary, last sentence boundary,
// hard character cut at maxEnd.
func (c *Chunker) breakPoint(text string, start, maxEnd int) int {
	window := text[start:maxEnd]

	if c.cfg.PreserveParagraphs {
		if idx := strings.LastIndex(window, "\n\n"); idx > 0 {
			return start + idx + 2
		}
	}

	if c.cfg.PreserveSentences {
		best := -1
		for _, ender := range sentenceEnders {
			if idx := strings.LastIndex(window, ender); idx != -1 {
				if cut := idx + len(ender); cut > best {
					best = cut
				}
			}
		}
		if best > 0 {
			return start + best
		}
	}

	return maxEnd
}

// alignToSentence moves next forward to just past the first sentence
// ender in text[next:end], so the overlap seed starts on a sentence.
// Returns next unchanged when the tail holds no complete sentence.
func alignToSentence(text string, next, end int) int {
	tail := text[next:end]
	best := -1
	for _, ender := range sentenceEnders {
		if idx := strings.Index(tail, ender); idx != -1 {
			if cut := idx + len(ender); best == -1 || cut < best {
				best = cut
			}
		}
	}
	if best > 0 && next+best < end {
		return next + best
	}
	return next
}

// WordCount counts whitespace-separated words in a piece.
func WordCount(content string) int {
	return len(strings.Fields(content))
}

// Section returns the nearest markdown-style heading preceding offset
// in the normalized text, best effort. Empty when none exists.
func Section(text string, offset int) string {
	if offset > len(text) {
		offset = len(text)
	}
	head := text[:offset]
	if idx := strings.LastIndex(head, "\n#"); idx != -1 {
		return headingLine(head[idx+1:])
	}
	if strings.HasPrefix(head, "#") {
		return headingLine(head)
	}
	return ""
}

func headingLine(s string) string {
	if nl := strings.IndexByte(s, '\n'); nl != -1 {
		s = s[:nl]
	}
	return strings.TrimSpace(strings.TrimLeft(s, "# "))
}

// Characters assumed per rendered page, for the page estimate only
const pageChars = 1800

// PageEstimate derives a best-effort 1-based page number from a
// character offset into the source text.
func PageEstimate(offset int) int {
	if offset < 0 {
		return 1
	}
	return offset/pageChars + 1
}
