package ui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tunes/internal/models"
	"github.com/desertthunder/tunes/internal/services"
	"github.com/desertthunder/tunes/internal/tasks"
)

var _ tasks.Consumer = (*Bridge)(nil)

// Bridge implements [tasks.Consumer] for a running [tea.Program].
//
// Callbacks only append to an unbounded queue, so they never block. [Bridge.Pump] forwards queued
// messages in arrival order.
type Bridge struct {
	mu     sync.Mutex
	queue  []tea.Msg
	wake   chan struct{}
	done   chan struct{}
	closer sync.Once
}

func NewBridge() *Bridge {
	return &Bridge{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
}

func (b *Bridge) OnResultsChanged(albums []models.Album) {
	b.push(resultsChangedMsg(albums))
}

func (b *Bridge) OnError(kind services.ErrorKind, message string) {
	b.push(catalogErrorMsg(kind, message))
}

func (b *Bridge) OnTracksLoaded(albumID int64, tracks []models.Track) {
	b.push(tracksLoadedMsg(albumID, tracks))
}

func (b *Bridge) push(msg tea.Msg) {
	b.mu.Lock()
	b.queue = append(b.queue, msg)
	b.mu.Unlock()

	select {
	case b.wake <- struct{}{}:
	default:
	}
}

func (b *Bridge) drain() []tea.Msg {
	b.mu.Lock()
	defer b.mu.Unlock()
	msgs := b.queue
	b.queue = nil
	return msgs
}

// Pump hands queued messages to send until [Bridge.Close] is called. Run it on its own goroutine
// with [tea.Program.Send].
func (b *Bridge) Pump(send func(tea.Msg)) {
	for {
		select {
		case <-b.done:
			return
		case <-b.wake:
		}

		for _, msg := range b.drain() {
			select {
			case <-b.done:
				return
			default:
				send(msg)
			}
		}
	}
}

// Close stops [Bridge.Pump]. Messages still queued are discarded.
func (b *Bridge) Close() {
	b.closer.Do(func() { close(b.done) })
}
