package suggest

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/tchap/go-patricia/v2/patricia"
)

// dictEntry preserves the display form of a word; trie keys are
// lowercased for case-insensitive prefix lookup.
type dictEntry struct {
	word string
	rank int
}

// Dict is an offline suggestion source backed by a radix trie over a
// local word list. Matches are prefix matches ranked by stored rank.
type Dict struct {
	trie  *patricia.Trie
	count int
}

// NewDict creates an empty dictionary source.
func NewDict() *Dict {
	return &Dict{trie: patricia.NewTrie()}
}

// Add inserts a word with the given rank. Higher ranks sort first.
// Re-adding a word overwrites its rank.
func (d *Dict) Add(word string, rank int) {
	word = strings.TrimSpace(word)
	if word == "" {
		return
	}
	key := patricia.Prefix(strings.ToLower(word))
	if d.trie.Get(key) == nil {
		d.count++
	}
	d.trie.Set(key, dictEntry{word: word, rank: rank})
}

// Len returns the number of words in the dictionary.
func (d *Dict) Len() int { return d.count }

func (d *Dict) Name() string { return "dict" }

// Suggest returns words starting with term, highest rank first.
// Ties are broken alphabetically for stable output.
func (d *Dict) Suggest(ctx context.Context, term string, limit int) ([]Word, error) {
	if term == "" {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prefix := patricia.Prefix(strings.ToLower(term))
	var entries []dictEntry
	err := d.trie.VisitSubtree(prefix, func(p patricia.Prefix, item patricia.Item) error {
		if e, ok := item.(dictEntry); ok {
			entries = append(entries, e)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk dictionary: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].rank != entries[j].rank {
			return entries[i].rank > entries[j].rank
		}
		return entries[i].word < entries[j].word
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	words := make([]Word, len(entries))
	for i, e := range entries {
		words[i] = Word{Word: e.word, Score: e.rank}
	}
	return words, nil
}

// ParseDict reads a word list: one word per line, optionally followed
// by a tab and a numeric rank. Blank lines and # comments are skipped.
func ParseDict(d *Dict, lines *bufio.Scanner) error {
	lineNo := 0
	for lines.Scan() {
		lineNo++
		line := strings.TrimSpace(lines.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		word := line
		rank := 0
		if i := strings.IndexByte(line, '\t'); i >= 0 {
			word = strings.TrimSpace(line[:i])
			r, err := strconv.Atoi(strings.TrimSpace(line[i+1:]))
			if err != nil {
				return fmt.Errorf("line %d: bad rank %q", lineNo, line[i+1:])
			}
			rank = r
		}
		d.Add(word, rank)
	}
	return lines.Err()
}

// LoadDictFile loads a dictionary from a word list file.
func LoadDictFile(path string) (*Dict, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()

	d := NewDict()
	if err := ParseDict(d, bufio.NewScanner(f)); err != nil {
		return nil, fmt.Errorf("parse word list %s: %w", path, err)
	}
	return d, nil
}
