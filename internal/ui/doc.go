// Package ui provides the interactive terminal surface for sugg.
//
// The main component is [Picker], a Bubble Tea model that wires the
// combobox widget to the suggestion runner: typing is debounced,
// suggestions are fetched asynchronously, and stale responses are
// discarded by generation so fast typists never see results for an
// earlier term.
//
// All interactive output renders to stderr so stdout stays clean for
// piping (e.g., WORD=$(sugg pick) works correctly).
package ui
