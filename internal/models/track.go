package models

// Track is a song on an album.
//
// DurationSeconds is truncated (not rounded) from the catalog's millisecond value.
type Track struct {
	Name            string `json:"name"`
	DurationSeconds int    `json:"duration_seconds"`
}

// NewTrack builds a [Track] from a catalog millisecond duration using floor division.
func NewTrack(name string, millis int64) Track {
	if millis < 0 {
		millis = 0
	}
	return Track{Name: name, DurationSeconds: int(millis / 1000)}
}
