package ui

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Spinner animates a single status line while a quiet command runs.
type Spinner struct {
	w       io.Writer
	done    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

var spinFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// NewSpinner starts a spinner on w with a dimmed message.
// Call Stop() to clear the line.
func NewSpinner(w io.Writer, message string) *Spinner {
	s := &Spinner{
		w:       w,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	msg := Dim(message)

	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		frame := 0
		for {
			select {
			case <-s.done:
				fmt.Fprint(s.w, "\r\033[K")
				return
			case <-ticker.C:
				fmt.Fprintf(s.w, "\r\033[K%s %s", Cyan(spinFrames[frame]), msg)
				frame = (frame + 1) % len(spinFrames)
			}
		}
	}()

	return s
}

// Stop clears the spinner line and joins the goroutine.
// Safe to call multiple times.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		close(s.done)
		<-s.stopped
	})
}
