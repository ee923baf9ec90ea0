package suggest

import (
	"bufio"
	_ "embed"
	"strings"
	"sync"
)

// words.txt is a small frequency-ranked word list so --offline works
// out of the box without a configured dictionary file.
//
//go:embed words.txt
var embeddedWords string

var (
	embeddedOnce sync.Once
	embeddedDict *Dict
)

// EmbeddedDict returns the built-in dictionary. The list is parsed once
// and shared; callers must not Add to it.
func EmbeddedDict() *Dict {
	embeddedOnce.Do(func() {
		embeddedDict = NewDict()
		// The embedded list is generated and always parses.
		_ = ParseDict(embeddedDict, bufio.NewScanner(strings.NewReader(embeddedWords)))
	})
	return embeddedDict
}
