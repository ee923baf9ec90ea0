package suggest

import "context"

// Word is a single suggestion as returned by a source.
// The JSON shape matches the Datamuse /sug response.
type Word struct {
	Word  string `json:"word"`
	Score int    `json:"score,omitempty"`
}

// Source produces word suggestions for a text fragment.
type Source interface {
	// Name returns the source name ("datamuse" or "dict").
	Name() string

	// Suggest returns up to limit suggestions for term, best first.
	// A limit of 0 means the source's default.
	Suggest(ctx context.Context, term string, limit int) ([]Word, error)
}
