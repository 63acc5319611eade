// Package fallback surfaces declarations that could not be placed
// automatically, so generated code is never silently lost.
package fallback

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"
)

// Presenter receives one block of unplaced declarations per rule.
type Presenter interface {
	Present(lines []string)
}

// Join renders lines as the copyable block.
func Join(lines []string) string {
	return strings.Join(lines, "\n")
}

// Collector keeps every presented block in memory.
type Collector struct {
	mu     sync.Mutex
	blocks []string
}

func (c *Collector) Present(lines []string) {
	if len(lines) == 0 {
		return
	}
	c.mu.Lock()
	c.blocks = append(c.blocks, Join(lines))
	c.mu.Unlock()
}

// Blocks returns the presented blocks in order.
func (c *Collector) Blocks() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.blocks...)
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	blockStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)

	noteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// Terminal prints each block to Out inside a border. With Clipboard set the
// raw block text is also copied to the system clipboard; later blocks
// replace earlier ones there.
type Terminal struct {
	Out       io.Writer
	Clipboard bool
	// Plain disables styling, so the output can be piped as-is.
	Plain bool

	// writeClipboard is swapped in tests.
	writeClipboard func(string) error
}

// NewTerminal returns a presenter writing to out.
func NewTerminal(out io.Writer, copyToClipboard bool) *Terminal {
	return &Terminal{Out: out, Clipboard: copyToClipboard}
}

func (t *Terminal) Present(lines []string) {
	if len(lines) == 0 {
		return
	}
	text := Join(lines)

	if t.Plain {
		fmt.Fprintln(t.Out, text)
	} else {
		fmt.Fprintln(t.Out, titleStyle.Render("Generated code (copy manually):"))
		fmt.Fprintln(t.Out, blockStyle.Render(text))
	}

	if !t.Clipboard {
		return
	}
	write := t.writeClipboard
	if write == nil {
		write = clipboard.WriteAll
	}
	if err := write(text); err != nil {
		fmt.Fprintln(t.Out, noteStyle.Render(fmt.Sprintf("clipboard unavailable: %v", err)))
		return
	}
	if !t.Plain {
		fmt.Fprintln(t.Out, noteStyle.Render("copied to clipboard"))
	}
}
