package entity

// StreamEvent is one server-sent event delivered to the chat client. Exactly
// one of its fields is set; the zero values are omitted on the wire.
type StreamEvent struct {
	// Content is a non-empty piece of the answer.
	Content string `json:"content,omitempty"`

	// Error terminates the stream with a failure.
	Error string `json:"error,omitempty"`

	// Done terminates the stream successfully.
	Done bool `json:"done,omitempty"`
}

func ContentEvent(s string) *StreamEvent { return &StreamEvent{Content: s} }
func ErrorEvent(s string) *StreamEvent   { return &StreamEvent{Error: s} }
func DoneEvent() *StreamEvent            { return &StreamEvent{Done: true} }

// Terminal reports whether the event ends the stream.
func (e *StreamEvent) Terminal() bool {
	return e.Done || e.Error != ""
}
