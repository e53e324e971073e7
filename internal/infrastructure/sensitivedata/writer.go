package sensitivedata

import (
	"io"
	"sync"

	"github.com/reglet-dev/connmask/internal/application/ports"
)

// Writer wraps an io.Writer and scrubs all data before writing.
// Thread-safe: can be used concurrently by multiple goroutines.
type Writer struct {
	underlying io.Writer
	scrubbers  []ports.Scrubber
	mu         sync.Mutex // Protects writes to underlying writer
}

// NewWriter creates a writer that passes every chunk through the given
// scrubbers in order. Nil scrubbers are ignored.
func NewWriter(w io.Writer, scrubbers ...ports.Scrubber) *Writer {
	active := make([]ports.Scrubber, 0, len(scrubbers))
	for _, s := range scrubbers {
		if s != nil {
			active = append(active, s)
		}
	}
	return &Writer{
		underlying: w,
		scrubbers:  active,
	}
}

// Write implements io.Writer, scrubbing data before passing it on.
func (w *Writer) Write(p []byte) (n int, err error) {
	if len(w.scrubbers) == 0 {
		w.mu.Lock()
		defer w.mu.Unlock()
		return w.underlying.Write(p)
	}

	text := string(p)
	for _, s := range w.scrubbers {
		text = s.ScrubString(text)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	n, err = w.underlying.Write([]byte(text))

	// io.Writer callers expect len(p) even when scrubbing changed the length
	if err == nil {
		n = len(p)
	}

	return n, err
}
