package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okessler/sugg/internal/suggest"
)

func testWords() []suggest.Word {
	return []suggest.Word{{Word: "cat", Score: 500}, {Word: "car", Score: 400}}
}

func TestCache_SetGet(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "suggestions.json"), 0)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if _, ok := c.Get("ca"); ok {
		t.Error("Get() on empty cache should miss")
	}

	c.Set("ca", testWords())

	words, ok := c.Get("ca")
	if !ok {
		t.Fatal("Get() should hit after Set")
	}
	if len(words) != 2 || words[0].Word != "cat" {
		t.Errorf("words = %+v", words)
	}

	if _, ok := c.Get("CA"); ok {
		t.Error("cache keys are exact terms; different case should miss")
	}
}

func TestCache_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suggestions.json")

	c, err := Load(path, 0)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	c.Set("ca", testWords())
	if err := c.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	reloaded, err := Load(path, 0)
	if err != nil {
		t.Fatalf("Load() after Save error = %v", err)
	}
	words, ok := reloaded.Get("ca")
	if !ok {
		t.Fatal("Get() after reload should hit")
	}
	if len(words) != 2 {
		t.Errorf("len(words) = %d, want 2", len(words))
	}
}

func TestCache_StaleEntriesMiss(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "suggestions.json"), 10*time.Millisecond)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	c.Set("ca", testWords())

	time.Sleep(30 * time.Millisecond)

	if _, ok := c.Get("ca"); ok {
		t.Error("Get() should miss once the entry is older than the TTL")
	}
}

func TestCache_SaveDropsStaleEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suggestions.json")
	c, err := Load(path, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	c.Set("ca", testWords())
	time.Sleep(30 * time.Millisecond)

	if err := c.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("Len() after pruning save = %d, want 0", c.Len())
	}
}

func TestCache_CorruptedFileStartsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suggestions.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path, 0)
	if err != nil {
		t.Fatalf("Load() on corrupted file error = %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
}

func TestCache_MissingFileIsEmpty(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nope", "suggestions.json"), 0)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}

	// Save creates the directory.
	c.Set("ca", testWords())
	if err := c.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
}
