package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestHistory_Record(t *testing.T) {
	t.Run("prepends newest first", func(t *testing.T) {
		h := &History{}
		h.Record(Pick{Word: "cat", Term: "ca"}, 10)
		h.Record(Pick{Word: "dog", Term: "do"}, 10)

		if len(h.Picks) != 2 {
			t.Fatalf("len(Picks) = %d, want 2", len(h.Picks))
		}
		if h.Picks[0].Word != "dog" || h.Picks[1].Word != "cat" {
			t.Errorf("Picks = %+v, want dog then cat", h.Picks)
		}
	})

	t.Run("repeated word moves to front", func(t *testing.T) {
		h := &History{}
		h.Record(Pick{Word: "cat"}, 10)
		h.Record(Pick{Word: "dog"}, 10)
		h.Record(Pick{Word: "cat"}, 10)

		if len(h.Picks) != 2 {
			t.Fatalf("len(Picks) = %d, want 2", len(h.Picks))
		}
		if h.Picks[0].Word != "cat" {
			t.Errorf("Picks[0] = %q, want cat", h.Picks[0].Word)
		}
	})

	t.Run("truncates to size", func(t *testing.T) {
		h := &History{}
		for _, w := range []string{"a", "b", "c", "d"} {
			h.Record(Pick{Word: w}, 3)
		}

		if len(h.Picks) != 3 {
			t.Fatalf("len(Picks) = %d, want 3", len(h.Picks))
		}
		if h.Picks[0].Word != "d" || h.Picks[2].Word != "b" {
			t.Errorf("Picks = %+v, want d, c, b", h.Picks)
		}
	})

	t.Run("fills in timestamp", func(t *testing.T) {
		h := &History{}
		h.Record(Pick{Word: "cat"}, 10)
		if h.Picks[0].PickedAt.IsZero() {
			t.Error("PickedAt should be set")
		}
	})

	t.Run("keeps explicit timestamp", func(t *testing.T) {
		h := &History{}
		at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
		h.Record(Pick{Word: "cat", PickedAt: at}, 10)
		if !h.Picks[0].PickedAt.Equal(at) {
			t.Errorf("PickedAt = %v, want %v", h.Picks[0].PickedAt, at)
		}
	})
}

func TestHistory_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")

	h := &History{}
	h.Record(Pick{Word: "cat", Term: "ca"}, 10)
	if err := h.saveTo(path); err != nil {
		t.Fatalf("saveTo() error = %v", err)
	}

	loaded, err := loadFrom(path)
	if err != nil {
		t.Fatalf("loadFrom() error = %v", err)
	}
	if len(loaded.Picks) != 1 || loaded.Picks[0].Word != "cat" {
		t.Errorf("Picks = %+v, want one cat entry", loaded.Picks)
	}
}

func TestHistory_LoadMissingOrCorrupted(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		h, err := loadFrom(filepath.Join(t.TempDir(), "history.json"))
		if err != nil {
			t.Fatalf("loadFrom() error = %v", err)
		}
		if len(h.Picks) != 0 {
			t.Errorf("Picks = %+v, want empty", h.Picks)
		}
	})

	t.Run("corrupted file starts fresh", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "history.json")
		if err := os.WriteFile(path, []byte("{oops"), 0o600); err != nil {
			t.Fatal(err)
		}
		h, err := loadFrom(path)
		if err != nil {
			t.Fatalf("loadFrom() error = %v", err)
		}
		if len(h.Picks) != 0 {
			t.Errorf("Picks = %+v, want empty", h.Picks)
		}
	})
}
