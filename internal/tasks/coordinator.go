package tasks

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tunes/internal/models"
	"github.com/desertthunder/tunes/internal/services"
	"github.com/desertthunder/tunes/internal/shared"
)

// DefaultDebounce is the quiet period a query must survive before it reaches the catalog.
const DefaultDebounce = 500 * time.Millisecond

// Consumer receives the outcomes of coordinated calls.
//
// Callbacks run on coordinator goroutines (or, for an empty query, on the goroutine that called
// [Coordinator.Submit]) and are serialized. They must return promptly and must not call back
// into the coordinator.
type Consumer interface {
	// OnResultsChanged replaces the visible result set with albums, already ranked.
	OnResultsChanged(albums []models.Album)
	// OnError reports a failed call. Current results stay as they were.
	OnError(kind services.ErrorKind, message string)
	// OnTracksLoaded delivers the songs of albumID.
	OnTracksLoaded(albumID int64, tracks []models.Track)
}

// CoordinatorOpts configures a [Coordinator].
type CoordinatorOpts struct {
	Debounce time.Duration // DefaultDebounce when zero
	Region   string        // storefront hint passed to every search; empty uses the catalog default
	Logger   *log.Logger
}

// slot holds the single live call of one kind. Bumping seq invalidates everything older.
type slot struct {
	seq    uint64
	timer  *time.Timer
	cancel context.CancelFunc
}

func (s *slot) reset() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// Coordinator turns a stream of query edits into at most one in-flight catalog search.
//
// Edits inside the debounce window coalesce into one call for the latest text and scope. A newer
// edit cancels the pending timer and any in-flight call, and responses that lose that race are
// dropped without reaching the [Consumer]. Cancellations are never reported.
type Coordinator struct {
	catalog  services.Catalog
	consumer Consumer
	debounce time.Duration
	region   string
	logger   *log.Logger

	mu     sync.Mutex // guards closed and both slots
	closed bool
	search slot
	tracks slot

	deliverMu sync.Mutex // serializes consumer callbacks; acquired before mu, never after
}

// NewCoordinator creates a [Coordinator] that searches catalog and reports to consumer.
func NewCoordinator(catalog services.Catalog, consumer Consumer, opts CoordinatorOpts) *Coordinator {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	return &Coordinator{
		catalog:  catalog,
		consumer: consumer,
		debounce: opts.Debounce,
		region:   opts.Region,
		logger:   shared.WithLogger(opts.Logger, "catalog", catalog.Name()),
	}
}

// Submit records the latest query.
//
// An empty query clears the results synchronously and never reaches the network. Anything else
// restarts the debounce window; when it elapses exactly one search is issued.
func (c *Coordinator) Submit(q models.SearchQuery) {
	q = models.NewSearchQuery(q.Text, q.Scope)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.search.reset()
	c.search.seq++
	seq := c.search.seq

	if q.IsEmpty() {
		c.mu.Unlock()
		c.deliver(&c.search, seq, func() { c.consumer.OnResultsChanged([]models.Album{}) })
		return
	}

	c.search.timer = time.AfterFunc(c.debounce, func() { c.runSearch(seq, q) })
	c.mu.Unlock()
}

// LoadTracks fetches the songs of albumID. A newer call supersedes an older one.
func (c *Coordinator) LoadTracks(albumID int64) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.tracks.reset()
	c.tracks.seq++
	seq := c.tracks.seq

	ctx, cancel := context.WithCancel(context.Background())
	c.tracks.cancel = cancel
	c.mu.Unlock()

	go c.runTracks(ctx, cancel, seq, albumID)
}

// Close stops pending timers and cancels in-flight calls. Nothing is delivered afterwards.
func (c *Coordinator) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	c.search.reset()
	c.tracks.reset()
}

func (c *Coordinator) runSearch(seq uint64, q models.SearchQuery) {
	c.mu.Lock()
	if c.closed || c.search.seq != seq {
		c.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.search.timer = nil
	c.search.cancel = cancel
	c.mu.Unlock()
	defer cancel()

	logger := shared.WithLogger(c.logger,
		"op", SearchAlbums, "request_id", shared.GenerateID(), "query", q.Text, "scope", q.Scope)
	logger.Debug("issuing search")

	albums, err := c.catalog.SearchAlbums(ctx, q.Text, q.Scope, c.region)

	var state CallState
	switch {
	case err != nil && services.IsCanceled(err):
		state = Cancelled
	case err != nil:
		state = c.deliverState(Failed, c.deliver(&c.search, seq, func() {
			c.consumer.OnError(services.KindOf(err), services.UserMessage(err))
		}))
		logger.Warn("search failed", "kind", services.KindOf(err), "error", err)
	default:
		ranked := Rank(albums, q.Text, q.Scope)
		state = c.deliverState(Delivered, c.deliver(&c.search, seq, func() {
			c.consumer.OnResultsChanged(ranked)
		}))
		logger.Debug("search returned", "results", len(ranked))
	}

	c.release(&c.search, seq)
	logger.Debug("search finished", "state", state)
}

func (c *Coordinator) runTracks(ctx context.Context, cancel context.CancelFunc, seq uint64, albumID int64) {
	defer cancel()

	logger := shared.WithLogger(c.logger, "op", LoadTracks, "request_id", shared.GenerateID(), "album_id", albumID)
	logger.Debug("loading tracks")

	tracks, err := c.catalog.FetchTracks(ctx, albumID)

	var state CallState
	switch {
	case err != nil && services.IsCanceled(err):
		state = Cancelled
	case err != nil:
		state = c.deliverState(Failed, c.deliver(&c.tracks, seq, func() {
			c.consumer.OnError(services.KindOf(err), services.UserMessage(err))
		}))
		logger.Warn("track lookup failed", "kind", services.KindOf(err), "error", err)
	default:
		state = c.deliverState(Delivered, c.deliver(&c.tracks, seq, func() {
			c.consumer.OnTracksLoaded(albumID, tracks)
		}))
	}

	c.release(&c.tracks, seq)
	logger.Debug("track lookup finished", "state", state, "tracks", len(tracks))
}

// deliver runs fn under the delivery lock if seq is still the slot's latest call.
func (c *Coordinator) deliver(s *slot, seq uint64, fn func()) bool {
	c.deliverMu.Lock()
	defer c.deliverMu.Unlock()

	if !c.current(s, seq) {
		return false
	}
	fn()
	return true
}

func (c *Coordinator) current(s *slot, seq uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.closed && s.seq == seq
}

// release drops the slot's cancel func once its call has finished.
func (c *Coordinator) release(s *slot, seq uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s.seq == seq {
		s.cancel = nil
	}
}

func (c *Coordinator) deliverState(ok CallState, delivered bool) CallState {
	if delivered {
		return ok
	}
	return Superseded
}
