// Package combobox implements a filterable dropdown input for Bubble
// Tea programs.
//
// The component combines a text input with a popup list of options.
// Typing filters the list, arrow keys move the active option with
// wraparound, enter commits it and escape closes the list without
// changing the committed selection. Losing focus resyncs the input
// after a short delay so a quick refocus (for example clicking from
// the input into the list) does not flicker the popup closed.
//
// Input state is lifted: the owner observes every text change through
// OnInput and can push text back with SetInputValue, so the same
// string can drive both the widget and an async suggestion lookup.
package combobox
