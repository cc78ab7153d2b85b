package chunker

import "strings"

// Tokenizer converts page text into a flat token stream and re-materializes
// token windows back to text. Chunk boundaries and stored token counts depend
// on it, so the scheme is versioned: changing the scheme invalidates every
// previously stored embedding and requires a full re-ingest.
type Tokenizer interface {
	Version() string
	Encode(text string) []string
	Decode(tokens []string) string
}

// wsTokenizer is scheme "ws/1": whitespace-delimited tokens, re-joined with
// single spaces. Deterministic for any input.
type wsTokenizer struct{}

func NewTokenizer() Tokenizer {
	return wsTokenizer{}
}

func (wsTokenizer) Version() string {
	return "ws/1"
}

func (wsTokenizer) Encode(text string) []string {
	return strings.Fields(text)
}

func (wsTokenizer) Decode(tokens []string) string {
	return strings.Join(tokens, " ")
}
