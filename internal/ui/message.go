package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tunes/internal/models"
	"github.com/desertthunder/tunes/internal/services"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgResultsChanged MsgKind = iota
	MsgCatalogError
	MsgTracksLoaded
	MsgNotice
)

type catalogError struct {
	kind    services.ErrorKind
	message string
}

type tracksLoaded struct {
	albumID int64
	tracks  []models.Track
}

// resultsChangedMsg is the constructor for [MsgResultsChanged]
func resultsChangedMsg(albums []models.Album) Msg {
	return Msg{kind: MsgResultsChanged, data: albums}
}

// catalogErrorMsg is the constructor for [MsgCatalogError]
func catalogErrorMsg(kind services.ErrorKind, message string) Msg {
	return Msg{kind: MsgCatalogError, data: catalogError{kind: kind, message: message}}
}

// tracksLoadedMsg is the constructor for [MsgTracksLoaded]
func tracksLoadedMsg(albumID int64, tracks []models.Track) Msg {
	return Msg{kind: MsgTracksLoaded, data: tracksLoaded{albumID: albumID, tracks: tracks}}
}

// noticeMsg is the constructor for [MsgNotice]
func noticeMsg(text string) Msg {
	return Msg{kind: MsgNotice, data: text}
}
