package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/tunes/internal/models"
	"github.com/desertthunder/tunes/internal/shared"
)

var (
	_ list.Item = albumItem{}
	_ list.Item = trackItem{}
)

// albumItem wraps [models.Album] to implement [list.Item].
type albumItem struct {
	album models.Album
}

func (i albumItem) FilterValue() string { return i.album.CollectionName }
func (i albumItem) Title() string       { return i.album.CollectionName }
func (i albumItem) Description() string {
	parts := []string{i.album.ArtistName}
	if !i.album.ReleaseDate.IsZero() {
		parts = append(parts, fmt.Sprint(i.album.ReleaseDate.Year()))
	}
	parts = append(parts, fmt.Sprintf("%d tracks", i.album.TrackCount))
	return strings.Join(parts, " • ")
}

// trackItem wraps [models.Track] to implement [list.Item].
type trackItem struct {
	number int
	track  models.Track
}

func (i trackItem) FilterValue() string { return i.track.Name }
func (i trackItem) Title() string       { return fmt.Sprintf("%d. %s", i.number, i.track.Name) }
func (i trackItem) Description() string { return shared.FormatDuration(i.track.DurationSeconds) }

func albumItems(albums []models.Album) []list.Item {
	items := make([]list.Item, len(albums))
	for i, a := range albums {
		items[i] = albumItem{album: a}
	}
	return items
}

func trackItems(tracks []models.Track) []list.Item {
	items := make([]list.Item, len(tracks))
	for i, t := range tracks {
		items[i] = trackItem{number: i + 1, track: t}
	}
	return items
}

func newList(title string) list.Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	return l
}
