package combobox

import (
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// DefaultBlurDelay is how long the component waits after losing focus
// before it resyncs the input and closes the list. A refocus within
// the window cancels the resync.
const DefaultBlurDelay = 150 * time.Millisecond

const defaultMaxVisible = 10

// Option is one selectable entry in the popup list.
type Option struct {
	Label       string
	Value       string
	Description string // optional, rendered muted after the label
}

// FilterFunc narrows the option list for a search term. It returns
// indices into options, in display order.
type FilterFunc func(term string, options []Option) []int

// blurMsg fires after the blur delay. The generation is compared
// against the current one so a refocus invalidates pending blurs.
type blurMsg struct {
	id  string
	gen int
}

// Model is a combobox over values of type T. Options are derived from
// the values via the toOption mapping given to New.
//
// Model is not a tea.Model itself; the owning model forwards messages
// to Update and embeds View output into its own view.
type Model[T any] struct {
	id       string
	label    string
	toOption func(T) Option

	values   []T
	options  []Option
	filtered []int // indices into options, display order

	input textinput.Model
	spin  spinner.Model

	selected     *Option
	focusedIndex int // index into filtered, -1 when nothing is active
	open         bool
	loading      bool

	blurGen     int
	blurPending bool
	blurDelay   time.Duration

	defaultValue string
	hasDefault   bool

	filter       FilterFunc
	onInput      func(text string)
	onSelect     func(value T, ok bool)
	renderOption func(opt Option, focused bool) string

	maxVisible int
	viewStart  int

	// Position of the component's first row within the owning view,
	// used to translate mouse coordinates.
	offsetX, offsetY int
}

// New creates a combobox. The toOption mapping turns each value into
// its displayed option.
func New[T any](id, label string, toOption func(T) Option) *Model[T] {
	ti := textinput.New()
	ti.CharLimit = 156
	ti.SetWidth(40)

	st := ti.Styles()
	st.Cursor.Shape = tea.CursorBar
	st.Cursor.Blink = true
	ti.SetStyles(st)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &Model[T]{
		id:           id,
		label:        label,
		toOption:     toOption,
		input:        ti,
		spin:         sp,
		focusedIndex: -1,
		blurDelay:    DefaultBlurDelay,
		filter:       Substring,
		maxVisible:   defaultMaxVisible,
	}
}

// ID returns the component id.
func (m *Model[T]) ID() string { return m.id }

// OnInput registers a callback observing every input text change,
// whether typed or set by the component itself.
func (m *Model[T]) OnInput(fn func(text string)) {
	m.onInput = fn
}

// OnSelect registers a callback fired when the committed selection
// changes. ok is false when no value matches the selection (or nothing
// is selected).
func (m *Model[T]) OnSelect(fn func(value T, ok bool)) {
	m.onSelect = fn
}

// SetFilter replaces the filter (Substring by default).
func (m *Model[T]) SetFilter(fn FilterFunc) {
	if fn != nil {
		m.filter = fn
	}
}

// SetRenderOption replaces the default row rendering. The returned
// string must be a single line.
func (m *Model[T]) SetRenderOption(fn func(opt Option, focused bool) string) {
	m.renderOption = fn
}

// SetPlaceholder sets the input placeholder text.
func (m *Model[T]) SetPlaceholder(text string) {
	m.input.Placeholder = text
}

// SetWidth sets the input width.
func (m *Model[T]) SetWidth(width int) {
	m.input.SetWidth(width)
}

// SetBlurDelay overrides the blur resync delay.
func (m *Model[T]) SetBlurDelay(d time.Duration) {
	m.blurDelay = d
}

// SetMaxVisible limits how many options render at once.
func (m *Model[T]) SetMaxVisible(n int) {
	if n > 0 {
		m.maxVisible = n
	}
}

// SetDefaultValue preselects the option with this value the next time
// it appears in the option list, unless something is already selected.
func (m *Model[T]) SetDefaultValue(value string) {
	m.defaultValue = value
	m.hasDefault = true
}

// SetOffset tells the component where its first row is rendered within
// the owning view so mouse coordinates can be translated.
func (m *Model[T]) SetOffset(x, y int) {
	m.offsetX, m.offsetY = x, y
}

// InputValue returns the current input text.
func (m *Model[T]) InputValue() string {
	return m.input.Value()
}

// SetInputValue pushes text into the input without echoing it back
// through OnInput. The filtered list is recomputed.
func (m *Model[T]) SetInputValue(text string) {
	m.input.SetValue(text)
	m.recomputeFiltered()
}

// Selected returns the committed selection, if any.
func (m *Model[T]) Selected() (Option, bool) {
	if m.selected == nil {
		return Option{}, false
	}
	return *m.selected, true
}

// Open reports whether the popup list is showing.
func (m *Model[T]) Open() bool { return m.open }

// Focused reports whether the input has focus.
func (m *Model[T]) Focused() bool { return m.input.Focused() }

// Loading reports whether the loading indicator is showing.
func (m *Model[T]) Loading() bool { return m.loading }

// SetValues replaces the value list. Options are rebuilt, the filter
// reapplied, and the default value preselected if nothing is selected
// yet. OnSelect fires so the owner can revalidate its selection
// against the new list.
func (m *Model[T]) SetValues(values []T) {
	m.values = values
	m.options = make([]Option, len(values))
	for i, v := range values {
		m.options[i] = m.toOption(v)
	}

	if m.selected == nil && m.hasDefault {
		for i := range m.options {
			if m.options[i].Value == m.defaultValue {
				opt := m.options[i]
				m.selected = &opt
				// Don't clobber the input mid-interaction.
				if !m.open {
					m.setInputText(opt.Label)
				}
				break
			}
		}
	}

	m.recomputeFiltered()
	m.notifySelect()
}

// SetLoading toggles the loading indicator. While loading, the popup
// shows a fetching placeholder instead of "no matches". Returns the
// spinner tick command when loading starts.
func (m *Model[T]) SetLoading(loading bool) tea.Cmd {
	if loading == m.loading {
		return nil
	}
	m.loading = loading
	if loading {
		return m.spin.Tick
	}
	return nil
}

// Focus gives the input focus, clears it and opens the full list. Any
// pending blur resync is invalidated.
func (m *Model[T]) Focus() tea.Cmd {
	m.blurGen++
	m.blurPending = false
	m.input.Focus()
	m.setInputText("")
	m.open = true
	m.recomputeFiltered()
	return textinput.Blink
}

// Blur removes focus and schedules a resync after the blur delay. A
// Focus before the delay elapses cancels it.
func (m *Model[T]) Blur() tea.Cmd {
	if m.blurPending {
		return nil
	}
	m.blurPending = true
	m.input.Blur()
	id, gen := m.id, m.blurGen
	return tea.Tick(m.blurDelay, func(time.Time) tea.Msg {
		return blurMsg{id: id, gen: gen}
	})
}

// Update handles key, mouse, blur and spinner messages. Unrecognized
// messages are ignored.
func (m *Model[T]) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case blurMsg:
		if msg.id != m.id || msg.gen != m.blurGen {
			return nil // superseded by a refocus
		}
		m.blurPending = false
		m.resync()
		return nil

	case spinner.TickMsg:
		if !m.loading {
			return nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return cmd

	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case tea.MouseClickMsg:
		return m.handleClick(msg)

	case tea.MouseMotionMsg:
		m.handleMotion(msg)
		return nil

	case tea.MouseWheelMsg:
		m.handleWheel(msg)
		return nil
	}
	return nil
}

func (m *Model[T]) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "down":
		m.moveFocus(1)
		return nil
	case "up":
		m.moveFocus(-1)
		return nil
	case "enter":
		if !m.open {
			return nil // owner's enter
		}
		if m.focusedIndex >= 0 {
			m.commit(m.filtered[m.focusedIndex])
		} else {
			m.resync()
		}
		return nil
	case "esc":
		if m.open {
			m.resync()
		}
		return nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		if m.onInput != nil {
			m.onInput(after)
		}
		// Typing reopens the list.
		m.open = true
		m.recomputeFiltered()
	}
	return cmd
}

// moveFocus moves the active option by delta with wraparound. When the
// list is closed, the first press opens it.
func (m *Model[T]) moveFocus(delta int) {
	if !m.open {
		m.open = true
		m.recomputeFiltered()
	}
	n := len(m.filtered)
	if n == 0 {
		return
	}
	if m.focusedIndex < 0 {
		if delta > 0 {
			m.focusedIndex = 0
		} else {
			m.focusedIndex = n - 1
		}
	} else {
		m.focusedIndex = ((m.focusedIndex+delta)%n + n) % n
	}
	m.scrollToFocus()
}

func (m *Model[T]) scrollToFocus() {
	if m.focusedIndex < m.viewStart {
		m.viewStart = m.focusedIndex
	}
	if m.focusedIndex >= m.viewStart+m.maxVisible {
		m.viewStart = m.focusedIndex - m.maxVisible + 1
	}
}

// commit records the option at index i (into options) as the
// selection, resyncs the input and notifies the owner.
func (m *Model[T]) commit(i int) {
	opt := m.options[i]
	m.selected = &opt
	m.resync()
	m.notifySelect()
}

// resync closes the list and restores the input text to the committed
// selection (empty when nothing is selected).
func (m *Model[T]) resync() {
	if m.selected != nil {
		m.setInputText(m.selected.Label)
	} else {
		m.setInputText("")
	}
	m.open = false
	m.focusedIndex = -1
	m.viewStart = 0
}

func (m *Model[T]) setInputText(text string) {
	m.input.SetValue(text)
	if m.onInput != nil {
		m.onInput(text)
	}
}

func (m *Model[T]) recomputeFiltered() {
	m.filtered = m.filter(m.input.Value(), m.options)
	m.focusedIndex = -1
	m.viewStart = 0
}

// notifySelect resolves the committed selection back to a value by
// first value-string match and reports it to the owner.
func (m *Model[T]) notifySelect() {
	if m.onSelect == nil {
		return
	}
	if m.selected != nil {
		for i := range m.options {
			if m.options[i].Value == m.selected.Value {
				m.onSelect(m.values[i], true)
				return
			}
		}
	}
	var zero T
	m.onSelect(zero, false)
}

func (m *Model[T]) handleClick(msg tea.MouseClickMsg) tea.Cmd {
	if msg.Button != tea.MouseLeft {
		return nil
	}
	y := msg.Y - m.offsetY

	if y == 0 {
		if !m.input.Focused() {
			return m.Focus()
		}
		return nil
	}

	if m.open {
		if idx, ok := m.rowAt(y); ok {
			m.commit(m.filtered[idx])
			return nil
		}
	}

	// Click landed outside the component: resync immediately, no
	// blur delay needed.
	if m.open || m.blurPending || m.input.Focused() {
		m.blurGen++
		m.blurPending = false
		m.input.Blur()
		m.resync()
	}
	return nil
}

func (m *Model[T]) handleMotion(msg tea.MouseMotionMsg) {
	if !m.open {
		return
	}
	if idx, ok := m.rowAt(msg.Y - m.offsetY); ok {
		m.focusedIndex = idx
	}
}

func (m *Model[T]) handleWheel(msg tea.MouseWheelMsg) {
	if !m.open {
		return
	}
	switch msg.Button {
	case tea.MouseWheelUp:
		if m.viewStart > 0 {
			m.viewStart--
		}
	case tea.MouseWheelDown:
		if m.viewStart+m.maxVisible < len(m.filtered) {
			m.viewStart++
		}
	}
}

// rowAt maps a y coordinate relative to the component origin to an
// index into the filtered list. Placeholder rows ("no matches",
// "fetching") are not selectable.
func (m *Model[T]) rowAt(y int) (int, bool) {
	if m.loading || len(m.filtered) == 0 {
		return 0, false
	}
	r := y - 1 // row 0 is the input
	if r < 0 || r >= m.visibleCount() {
		return 0, false
	}
	return m.viewStart + r, true
}

func (m *Model[T]) visibleCount() int {
	n := len(m.filtered) - m.viewStart
	if n > m.maxVisible {
		n = m.maxVisible
	}
	return n
}

// View renders the input row and, when open, the popup list below it.
func (m *Model[T]) View() string {
	var b strings.Builder

	if m.label != "" {
		b.WriteString(labelStyle().Render(m.label))
		b.WriteString(" ")
	}
	b.WriteString(m.input.View())
	switch {
	case m.loading:
		b.WriteString(" " + m.spin.View())
	case m.open:
		b.WriteString(" " + toggleStyle().Render("▴"))
	default:
		b.WriteString(" " + toggleStyle().Render("▾"))
	}

	if !m.open {
		return b.String()
	}

	b.WriteString("\n")
	switch {
	case m.loading:
		b.WriteString(placeholderStyle().Render("  fetching suggestions…"))
	case len(m.filtered) == 0:
		b.WriteString(placeholderStyle().Render("  no matches"))
	default:
		vis := m.visibleCount()
		for i := 0; i < vis; i++ {
			idx := m.viewStart + i
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(m.renderRow(idx))
		}
		if rest := len(m.filtered) - (m.viewStart + vis); rest > 0 {
			b.WriteString("\n" + placeholderStyle().Render(fmt.Sprintf("  +%d more", rest)))
		}
	}
	return b.String()
}

func (m *Model[T]) renderRow(idx int) string {
	opt := m.options[m.filtered[idx]]
	if m.renderOption != nil {
		return m.renderOption(opt, idx == m.focusedIndex)
	}
	line := opt.Label
	if opt.Description != "" {
		line += " " + descriptionStyle().Render(opt.Description)
	}
	if idx == m.focusedIndex {
		return focusedOptionStyle().Render("> ") + line
	}
	return "  " + line
}
