// Package services defines the [Catalog] interface and implements it for the iTunes Search API.
//
// # Catalog Interface
//
// The search pipeline depends only on [Catalog], so tests substitute fakes and the TUI and CLI share one client.
//
// # iTunes Implementation
//
// [CatalogClient] is stateless apart from its configuration. Each call builds a query against
// /search or /lookup, decodes the JSON body, and maps it into [models.Album] or [models.Track].
//
// Requests are paced client-side with a [rate.Limiter]; waiting honors context cancellation.
// There are no retries.
//
// # Error Handling
//
// Every failure is one of three typed errors, each reporting an [ErrorKind]:
//   - [TransportError] : network failure, or cancellation (see [IsCanceled])
//   - [HTTPStatusError] : any status other than 200
//   - [DecodeError] : payload does not match the expected shape
//
// All three wrap [shared.ErrAPIRequest]. Cancellation is not a failure to report; callers drop it.
//
// # Raw Access
//
// [APIService] issues raw GET requests against the catalog host for the `api get` debug command.
package services
