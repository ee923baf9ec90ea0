// Package suggest defines the word-suggestion domain model and its
// sources.
//
// A Source produces suggestions for a text fragment. Two implementations
// exist: Datamuse queries the public Datamuse /sug endpoint, and Dict
// serves prefix matches from a local word list so --offline works
// without network access.
package suggest
