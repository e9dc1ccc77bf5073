package console

import (
	"fmt"
	"io"
	"sync"

	"github.com/chrissnell/humifix/internal/calibration"
)

// Writer prints the operator display
type Writer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriter creates a Writer printing to w
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Println writes one block followed by a newline
func (cw *Writer) Println(s string) {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	fmt.Fprintln(cw.w, s)
}

// Cycle prints a cycle line
func (cw *Writer) Cycle(c *calibration.Cycle, discarded bool) {
	cw.Println(CycleLine(c, discarded))
}
