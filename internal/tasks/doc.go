// Package tasks coordinates catalog calls on behalf of an interactive search box.
//
// # Search pipeline
//
// [Coordinator.Submit] receives every edit of the query. Edits are debounced ([DefaultDebounce]),
// so only the text that survives the quiet period becomes a [services.Catalog] search:
//
//  1. An empty query clears the results at once and never reaches the network.
//  2. A non-empty query stops the pending timer, cancels the in-flight call and schedules a new one.
//  3. A finished call is delivered only if no newer edit happened in the meantime.
//
// Successful results are ordered with [Rank] before they reach the [Consumer]. Failures are
// reported once through [Consumer.OnError]; cancellations are dropped silently.
//
// # Detail view
//
// [Coordinator.LoadTracks] fetches the songs of one album. It has its own slot, so loading tracks
// never cancels a search and vice versa.
//
// # Call states
//
// Every call starts [Pending] and ends [Delivered], [Cancelled], [Superseded] or [Failed]. The
// final state is logged with the call's request id.
package tasks
