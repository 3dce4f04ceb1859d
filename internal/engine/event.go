package engine

import "time"

// EventKind is the declared intent of an inbound transport event.
type EventKind string

const (
	Command      EventKind = "command"
	ButtonPress  EventKind = "button"
	TextMessage  EventKind = "text"
	PhotoMessage EventKind = "photo"
)

// Event is what the transport hands the engine: who sent it, what kind of
// input it is, and the payload. For photo events the transport has already
// stored the image and passes its reference.
type Event struct {
	UserID    int64
	Username  string
	FirstName string
	Kind      EventKind
	Text      string // text message body or command
	Data      string // button press payload
	PhotoRef  string // stored image reference
}

// Button is one selectable choice in a reply.
type Button struct {
	Label string
	Data  string
}

// Reply is what the engine asks the transport to display. ImageRef may
// point at a file that no longer exists; the transport degrades to
// text-only in that case. Pause is a display nicety honored before the
// reply is sent.
type Reply struct {
	Text       string
	ImageRef   string
	Buttons    [][]Button
	Attachment string // file sent as a document, e.g. a result report
	Pause      time.Duration
}
