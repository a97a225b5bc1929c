package tasks

// CallState tracks one catalog call issued by the [Coordinator].
//
// Pending moves to exactly one of Delivered, Cancelled, Superseded or Failed.
type CallState int

const (
	Pending CallState = iota
	Delivered
	Cancelled
	Superseded
	Failed
)

func (s CallState) String() string {
	switch s {
	case Pending:
		return "pending"
	case Delivered:
		return "delivered"
	case Cancelled:
		return "cancelled"
	case Superseded:
		return "superseded"
	case Failed:
		return "failed"
	default:
		return ""
	}
}

// Terminal reports whether no further transition can happen.
func (s CallState) Terminal() bool {
	return s != Pending
}

// Operation names the kind of work a call performs.
type Operation int

const (
	SearchAlbums Operation = iota
	LoadTracks
)

func (o Operation) String() string {
	switch o {
	case SearchAlbums:
		return "search_albums"
	case LoadTracks:
		return "load_tracks"
	default:
		return ""
	}
}
