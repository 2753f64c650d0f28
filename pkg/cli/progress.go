package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// ProgressReporter reports progress of a batch of operations.
type ProgressReporter interface {
	Start(total int)
	Step(label string)
	Finish()
}

// SimpleProgress renders a one-line progress bar.
type SimpleProgress struct {
	mu      sync.Mutex
	total   int
	current int
	label   string
	started time.Time
	writer  io.Writer
}

// NewProgressReporter creates a reporter writing to w, or os.Stderr when w
// is nil.
func NewProgressReporter(w io.Writer) ProgressReporter {
	if w == nil {
		w = os.Stderr
	}
	return &SimpleProgress{writer: w}
}

// Start resets the reporter for total operations.
func (p *SimpleProgress) Start(total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.total = total
	p.current = 0
	p.label = ""
	p.started = time.Now()
	p.render()
}

// Step marks one operation as done.
func (p *SimpleProgress) Step(label string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current < p.total {
		p.current++
	}
	p.label = label
	p.render()
}

// Finish completes the bar and ends the line.
func (p *SimpleProgress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.current = p.total
	p.render()
	fmt.Fprintf(p.writer, " done in %s\n", time.Since(p.started).Round(time.Millisecond))
}

func (p *SimpleProgress) render() {
	if p.total == 0 {
		return
	}

	const width = 30
	filled := width * p.current / p.total
	bar := strings.Repeat("#", filled) + strings.Repeat(".", width-filled)

	fmt.Fprintf(p.writer, "\r[%s] %d/%d %s", bar, p.current, p.total, p.label)
}
