package ui

import (
	"context"
	"os"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/colorprofile"
	"github.com/dustin/go-humanize"

	"github.com/okessler/sugg/internal/combobox"
	"github.com/okessler/sugg/internal/query"
	"github.com/okessler/sugg/internal/suggest"
	"github.com/okessler/sugg/internal/ui/styles"
)

// DefaultDebounce is how long the picker waits after the last
// keystroke before firing a suggestion lookup.
const DefaultDebounce = 150 * time.Millisecond

// debounceMsg fires when typing has been quiet for the debounce
// window. Stale generations are ignored.
type debounceMsg struct {
	gen int
}

// suggestionsMsg carries the result of an async lookup.
type suggestionsMsg struct {
	gen   int
	term  string
	words []suggest.Word
	err   error
}

// Options configures a Picker.
type Options struct {
	Title       string
	Placeholder string
	Default     string // preselect this word when it appears
	Limit       int    // max suggestions per lookup
	Debounce    time.Duration
	Fuzzy       bool // fuzzy-filter fetched suggestions instead of substring
}

// Picker is the interactive word picker. It owns the combobox input
// state: every text change bumps a generation, schedules a debounced
// lookup, and any in-flight response from an older generation is
// dropped when it arrives.
type Picker struct {
	ctx    context.Context
	runner *query.Runner
	combo  *combobox.Model[suggest.Word]

	title    string
	limit    int
	debounce time.Duration

	inputValue string
	inputDirty bool
	gen        int

	picked    *suggest.Word
	lastTerm  string // term that produced the current suggestions
	lastErr   error
	cancelled bool
	done      bool
}

// NewPicker creates a picker backed by the given runner.
func NewPicker(ctx context.Context, runner *query.Runner, opts Options) *Picker {
	if opts.Title == "" {
		opts.Title = "Pick a word"
	}
	if opts.Limit <= 0 {
		opts.Limit = 10
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}

	combo := combobox.New("word", "Word:", func(w suggest.Word) combobox.Option {
		opt := combobox.Option{Label: w.Word, Value: w.Word}
		if w.Score > 0 {
			opt.Description = humanize.Comma(int64(w.Score))
		}
		return opt
	})
	combo.SetPlaceholder(opts.Placeholder)
	if opts.Default != "" {
		combo.SetDefaultValue(opts.Default)
	}
	if opts.Fuzzy {
		combo.SetFilter(combobox.Fuzzy)
	}
	// The combobox renders below the title and a blank line.
	combo.SetOffset(0, 2)

	p := &Picker{
		ctx:      ctx,
		runner:   runner,
		combo:    combo,
		title:    opts.Title,
		limit:    opts.Limit,
		debounce: opts.Debounce,
	}

	combo.OnInput(func(text string) {
		if text == p.inputValue {
			return
		}
		p.inputValue = text
		p.inputDirty = true
	})
	combo.OnSelect(func(w suggest.Word, ok bool) {
		if ok {
			word := w
			p.picked = &word
		}
	})

	return p
}

// Picked returns the committed word, if the picker finished with one.
func (p *Picker) Picked() (suggest.Word, bool) {
	if p.cancelled || p.picked == nil {
		return suggest.Word{}, false
	}
	if _, ok := p.combo.Selected(); !ok {
		return suggest.Word{}, false
	}
	return *p.picked, true
}

// Cancelled reports whether the user aborted without picking.
func (p *Picker) Cancelled() bool {
	return p.cancelled
}

// LastTerm returns the search term behind the suggestions that were on
// screen last, for history records.
func (p *Picker) LastTerm() string {
	return p.lastTerm
}

// Run executes the picker and returns when it finishes or is
// cancelled. The TUI renders to stderr so stdout remains available
// for piping (e.g., WORD=$(sugg pick)).
func (p *Picker) Run() error {
	// Detect color profile for stderr (handles piped output, NO_COLOR, etc.)
	profile := colorprofile.Detect(os.Stderr, os.Environ())

	prog := tea.NewProgram(p,
		tea.WithOutput(os.Stderr),
		tea.WithColorProfile(profile),
	)
	_, err := prog.Run()
	return err
}

// BubbleTea Model interface

func (p *Picker) Init() tea.Cmd {
	return tea.Batch(p.combo.Focus(), p.afterInput())
}

func (p *Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			p.cancelled = true
			p.done = true
			return p, tea.Quit
		case "esc":
			if !p.combo.Open() {
				p.cancelled = true
				p.done = true
				return p, tea.Quit
			}
		case "enter":
			if !p.combo.Open() {
				if _, ok := p.combo.Selected(); ok {
					p.done = true
					return p, tea.Quit
				}
				return p, nil
			}
		case "tab":
			if p.combo.Focused() {
				return p, p.combo.Blur()
			}
			return p, tea.Batch(p.combo.Focus(), p.afterInput())
		}
		cmd := p.combo.Update(msg)
		return p, p.afterInput(cmd)

	case debounceMsg:
		if msg.gen != p.gen {
			return p, nil // newer keystroke superseded this tick
		}
		term := strings.TrimSpace(p.inputValue)
		if term == "" {
			p.combo.SetValues(nil)
			return p, p.combo.SetLoading(false)
		}
		return p, tea.Batch(p.combo.SetLoading(true), p.fetchCmd(msg.gen, term))

	case suggestionsMsg:
		if msg.gen != p.gen {
			return p, nil // response for an earlier term
		}
		p.combo.SetLoading(false)
		if msg.err != nil {
			p.lastErr = msg.err
			return p, nil
		}
		p.lastErr = nil
		p.lastTerm = msg.term
		p.combo.SetValues(msg.words)
		return p, nil
	}

	// Blur timers, spinner ticks and mouse events go to the combobox.
	// These can change the input too (an outside click resyncs it), so
	// they run through the same debounce scheduling as keys.
	return p, p.afterInput(p.combo.Update(msg))
}

func (p *Picker) View() tea.View {
	if p.done {
		return tea.NewView("")
	}

	var b strings.Builder
	b.WriteString(titleStyle().Render(p.title))
	b.WriteString("\n\n")
	b.WriteString(p.combo.View())
	b.WriteString("\n")

	if w, ok := p.Picked(); ok && !p.combo.Open() {
		line := "✓ " + w.Word
		if w.Score > 0 {
			line += "  score " + humanize.Comma(int64(w.Score))
		}
		b.WriteString(pickedStyle().Render(line))
		b.WriteString("\n")
	}

	if p.lastErr != nil {
		b.WriteString(errorStyle().Render("error: " + p.lastErr.Error()))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle().Render("type to search • ↑/↓ navigate • enter pick • esc cancel"))

	v := tea.NewView(b.String())
	// Mouse reporting is enabled per view; the combobox needs motion
	// events for hover focus and outside-click resync.
	v.MouseMode = tea.MouseModeAllMotion
	return v
}

// afterInput schedules a debounced lookup when the input text changed
// during the message that was just handled.
func (p *Picker) afterInput(cmds ...tea.Cmd) tea.Cmd {
	if p.inputDirty {
		p.inputDirty = false
		p.gen++
		gen := p.gen
		cmds = append(cmds, tea.Tick(p.debounce, func(time.Time) tea.Msg {
			return debounceMsg{gen: gen}
		}))
	}
	return tea.Batch(cmds...)
}

func (p *Picker) fetchCmd(gen int, term string) tea.Cmd {
	return func() tea.Msg {
		words, err := p.runner.Lookup(p.ctx, term, p.limit)
		return suggestionsMsg{gen: gen, term: term, words: words, err: err}
	}
}

func titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(styles.Primary)
}

func pickedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(styles.Success)
}

func errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(styles.Error)
}

func helpStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(styles.Muted).MarginTop(1)
}
