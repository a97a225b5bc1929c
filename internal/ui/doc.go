// Package ui implements an interactive album browser using bubbletea's Elm architecture.
//
// The TUI has two views:
//  1. [SearchView] : a search box over a ranked list of albums; tab switches between album and artist search
//  2. [DetailView] : the selected album's release date, copyright and songs
//
// Every edit of the search box is handed to a [Searcher] (in practice a tasks.Coordinator), which debounces
// the edits and reports back through a [Bridge]. The Bridge queues callbacks in order and forwards them to the
// running program as [Msg] values, so the coordinator never waits on the Update loop.
//
// Catalog errors are shown as a notice above the results; the results themselves are kept. esc dismisses it.
package ui
