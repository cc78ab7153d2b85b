package chunker

import (
	"strings"

	"docuchat-be/internal/pkg/apperrors"
)

// Page is one extracted page of a document. Numbers are 1-based and come from
// the extraction layer; empty or whitespace-only pages contribute nothing.
type Page struct {
	Number int
	Text   string
}

// Chunk is a token-bounded slice of document text with page provenance.
// Index values form a contiguous increasing sequence starting at 0.
type Chunk struct {
	Index      int
	PageStart  int
	PageEnd    int
	TokenCount int
	Content    string
}

type Config struct {
	ChunkTokens   int
	OverlapTokens int
}

func DefaultConfig() Config {
	return Config{
		ChunkTokens:   500,
		OverlapTokens: 100,
	}
}

type Chunker struct {
	tokenizer Tokenizer
	cfg       Config
}

func New(tokenizer Tokenizer, cfg Config) (*Chunker, error) {
	if cfg.OverlapTokens >= cfg.ChunkTokens {
		return nil, apperrors.ErrChunkConfig
	}
	return &Chunker{
		tokenizer: tokenizer,
		cfg:       cfg,
	}, nil
}

// window is the fold state threaded through the page loop: the accumulated
// token stream, the parallel text parts, and the page range contributing to
// the pending chunk. Zero page values mean "not yet anchored".
type window struct {
	tokens    []string
	parts     []string
	pageStart int
	pageEnd   int
}

// ChunkPages splits pages into overlapping, page-range-annotated chunks.
// Pure function of its inputs: identical pages and config always produce a
// byte-identical chunk sequence.
func (c *Chunker) ChunkPages(pages []Page) []Chunk {
	var chunks []Chunk
	w := window{}
	idx := 0

	emit := func() {
		content := strings.TrimSpace(strings.Join(w.parts, "\n\n"))
		if content == "" {
			return
		}
		pageStart := w.pageStart
		if pageStart == 0 {
			pageStart = 1
		}
		pageEnd := w.pageEnd
		if pageEnd == 0 {
			pageEnd = pageStart
		}
		chunks = append(chunks, Chunk{
			Index:      idx,
			PageStart:  pageStart,
			PageEnd:    pageEnd,
			TokenCount: len(w.tokens),
			Content:    content,
		})
		idx++

		// Carry the last overlap tokens forward, re-materialized to text,
		// as the seed of the next window.
		if c.cfg.OverlapTokens > 0 && len(w.tokens) > c.cfg.OverlapTokens {
			overlap := append([]string(nil), w.tokens[len(w.tokens)-c.cfg.OverlapTokens:]...)
			seed := strings.TrimSpace(c.tokenizer.Decode(overlap))
			w.tokens = overlap
			if seed != "" {
				w.parts = []string{seed}
			} else {
				w.parts = nil
			}
		} else {
			w.tokens = nil
			w.parts = nil
		}
		w.pageStart = 0
		w.pageEnd = 0
	}

	for _, p := range pages {
		text := strings.TrimSpace(p.Text)
		if text == "" {
			continue
		}
		tokens := c.tokenizer.Encode(text)

		if w.pageStart == 0 {
			w.pageStart = p.Number
		}
		w.pageEnd = p.Number

		// Emit the pending window before this page would overflow it.
		if len(w.tokens) > 0 && len(w.tokens)+len(tokens) > c.cfg.ChunkTokens {
			emit()
			w.pageStart = p.Number
		}

		w.tokens = append(w.tokens, tokens...)
		w.parts = append(w.parts, text)

		// Oversized-unit escape valve: a single page can fill the window
		// on its own.
		if len(w.tokens) >= c.cfg.ChunkTokens {
			emit()
		}
	}

	if len(w.tokens) > 0 {
		emit()
	}

	return chunks
}
