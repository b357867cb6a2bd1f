package report

import "sync"

// Recorder is a Sink that retains every emitted message while forwarding to
// an optional next sink. It lets a transport capture the report text a
// dispatched line produced. Safe for concurrent use, though callers that
// need request-scoped capture must serialize dispatch-then-Drain themselves.
type Recorder struct {
	mu   sync.Mutex
	next Sink
	buf  []string
}

// NewRecorder creates a recorder forwarding to next. next may be nil.
func NewRecorder(next Sink) *Recorder {
	return &Recorder{next: next}
}

// Emit retains message and forwards it to the next sink.
func (r *Recorder) Emit(message string) {
	r.mu.Lock()
	r.buf = append(r.buf, message)
	r.mu.Unlock()

	if r.next != nil {
		r.next.Emit(message)
	}
}

// Drain returns all retained messages and clears the buffer.
func (r *Recorder) Drain() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := r.buf
	r.buf = nil
	return out
}
