package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/okessler/sugg/internal/query"
	"github.com/okessler/sugg/internal/suggest"
)

type fakeSource struct {
	calls int32
	words []suggest.Word
	err   error
}

func (s *fakeSource) Name() string { return "fake" }

func (s *fakeSource) Suggest(ctx context.Context, term string, limit int) ([]suggest.Word, error) {
	atomic.AddInt32(&s.calls, 1)
	if s.err != nil {
		return nil, s.err
	}
	return s.words, nil
}

func keyMsg(key string) tea.KeyPressMsg {
	switch key {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "tab":
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case "backspace":
		return tea.KeyPressMsg{Code: tea.KeyBackspace}
	default:
		if len(key) == 1 {
			r := rune(key[0])
			return tea.KeyPressMsg{Code: r, Text: key}
		}
		return tea.KeyPressMsg{}
	}
}

func newTestPicker(src *fakeSource) *Picker {
	p := NewPicker(context.Background(), query.NewRunner(src), Options{Limit: 5})
	p.Init()
	return p
}

func typeText(t *testing.T, p *Picker, text string) {
	t.Helper()
	for _, r := range text {
		model, _ := p.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
		if model.(*Picker) != p {
			t.Fatal("Update should return the same picker")
		}
	}
}

func TestPicker_TypingBumpsGeneration(t *testing.T) {
	p := newTestPicker(&fakeSource{})

	before := p.gen
	typeText(t, p, "ca")

	if p.gen != before+2 {
		t.Errorf("gen = %d, want %d (one per keystroke)", p.gen, before+2)
	}
	if p.inputValue != "ca" {
		t.Errorf("inputValue = %q, want ca", p.inputValue)
	}
}

func TestPicker_StaleDebounceTickIgnored(t *testing.T) {
	src := &fakeSource{words: []suggest.Word{{Word: "cat"}}}
	p := newTestPicker(src)

	typeText(t, p, "c")
	stale := p.gen
	typeText(t, p, "a")

	_, cmd := p.Update(debounceMsg{gen: stale})
	if cmd != nil {
		t.Error("superseded debounce tick must not fetch")
	}
	if atomic.LoadInt32(&src.calls) != 0 {
		t.Errorf("source calls = %d, want 0", src.calls)
	}
}

func TestPicker_CurrentDebounceTickFetches(t *testing.T) {
	src := &fakeSource{words: []suggest.Word{{Word: "cat", Score: 3000}}}
	p := newTestPicker(src)
	typeText(t, p, "ca")

	_, cmd := p.Update(debounceMsg{gen: p.gen})
	if cmd == nil {
		t.Fatal("current tick should start a fetch")
	}
	if !p.combo.Loading() {
		t.Error("combobox should be loading during the fetch")
	}

	// Run the batched commands until the lookup result surfaces.
	msg := drain(t, cmd)
	sm, ok := msg.(suggestionsMsg)
	if !ok {
		t.Fatalf("fetch produced %T, want suggestionsMsg", msg)
	}
	if sm.gen != p.gen || len(sm.words) != 1 {
		t.Errorf("suggestionsMsg = %+v, want current gen with one word", sm)
	}

	p.Update(sm)
	if p.combo.Loading() {
		t.Error("loading should stop once results apply")
	}
	if !strings.Contains(viewString(p), "cat") {
		t.Error("view should show the fetched suggestion")
	}
}

// drain executes a command tree until the lookup result surfaces.
func drain(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("nil command")
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			if c == nil {
				continue
			}
			if sm, ok := c().(suggestionsMsg); ok {
				return sm
			}
		}
		t.Fatal("batch contained no suggestionsMsg")
		return nil
	default:
		return msg
	}
}

func TestPicker_StaleSuggestionsDiscarded(t *testing.T) {
	p := newTestPicker(&fakeSource{})
	typeText(t, p, "ca")

	p.Update(suggestionsMsg{gen: p.gen - 1, term: "c", words: []suggest.Word{{Word: "cot"}}})

	if strings.Contains(viewString(p), "cot") {
		t.Error("stale suggestions must not render")
	}
}

func TestPicker_BlankTermClearsList(t *testing.T) {
	p := newTestPicker(&fakeSource{})
	typeText(t, p, "c")
	p.Update(suggestionsMsg{gen: p.gen, term: "c", words: []suggest.Word{{Word: "cat"}}})

	p.Update(keyMsg("backspace"))
	p.Update(debounceMsg{gen: p.gen})

	if strings.Contains(viewString(p), "cat") {
		t.Error("clearing the input should clear the suggestions")
	}
}

func TestPicker_ErrorShownAndClearedOnSuccess(t *testing.T) {
	p := newTestPicker(&fakeSource{})
	typeText(t, p, "ca")

	p.Update(suggestionsMsg{gen: p.gen, err: errors.New("datamuse unreachable")})
	if !strings.Contains(viewString(p), "datamuse unreachable") {
		t.Error("view should surface the lookup error")
	}

	p.Update(suggestionsMsg{gen: p.gen, words: []suggest.Word{{Word: "cat"}}})
	if strings.Contains(viewString(p), "datamuse unreachable") {
		t.Error("a successful lookup should clear the error")
	}
}

func TestPicker_PickFlow(t *testing.T) {
	p := newTestPicker(&fakeSource{})
	typeText(t, p, "ca")
	p.Update(suggestionsMsg{gen: p.gen, words: []suggest.Word{
		{Word: "cat", Score: 3000},
		{Word: "catalog", Score: 2000},
	}})

	p.Update(keyMsg("down"))
	p.Update(keyMsg("enter")) // commit in the list, closes it

	if p.done {
		t.Fatal("first enter commits, it does not finish the picker")
	}
	if v := viewString(p); !strings.Contains(v, "✓ cat") || !strings.Contains(v, "3,000") {
		t.Errorf("view = %q, want the committed pick with its score", v)
	}

	_, cmd := p.Update(keyMsg("enter")) // accept the pick
	if !p.done {
		t.Fatal("second enter should finish the picker")
	}
	if cmd == nil {
		t.Error("finishing should quit the program")
	}

	word, ok := p.Picked()
	if !ok || word.Word != "cat" || word.Score != 3000 {
		t.Errorf("Picked() = %+v, %v, want cat with score", word, ok)
	}
}

func TestPicker_EscapeCancels(t *testing.T) {
	p := newTestPicker(&fakeSource{})
	typeText(t, p, "ca")

	p.Update(keyMsg("esc")) // closes the list
	if p.done {
		t.Fatal("first esc only closes the list")
	}

	p.Update(keyMsg("esc"))
	if !p.done || !p.Cancelled() {
		t.Error("second esc should cancel the picker")
	}
	if _, ok := p.Picked(); ok {
		t.Error("a cancelled picker has no pick")
	}
}

func TestPicker_ViewRequestsMouseReporting(t *testing.T) {
	p := newTestPicker(&fakeSource{})

	if mode := p.View().MouseMode; mode != tea.MouseModeAllMotion {
		t.Errorf("View().MouseMode = %v, want all-motion for hover and outside clicks", mode)
	}
}

func TestPicker_TabTogglesFocus(t *testing.T) {
	p := newTestPicker(&fakeSource{})

	if !p.combo.Focused() {
		t.Fatal("picker starts focused")
	}
	_, cmd := p.Update(keyMsg("tab"))
	if p.combo.Focused() {
		t.Error("tab should blur the combobox")
	}
	if cmd == nil {
		t.Error("blur schedules the resync tick")
	}

	p.Update(keyMsg("tab"))
	if !p.combo.Focused() {
		t.Error("tab again should refocus")
	}
}

// viewString renders the picker's view layer to plain text.
func viewString(p *Picker) string {
	return fmt.Sprint(p.View().Content)
}
