package progress

import (
	"io"
	"os"

	"golang.org/x/term"
)

const (
	cursorHome  = "\x1b[H"
	clearScreen = "\x1b[2J"
)

// Sink receives rendered frames. Implementations are called from the render
// loop only.
type Sink interface {
	// Write outputs one frame. clear asks for the screen to be wiped first.
	Write(frame string, clear bool) error
}

// Console writes frames to a terminal or to any other writer. On an
// interactive terminal every frame is drawn over the previous one.
type Console struct {
	w           io.Writer
	interactive bool
}

// NewConsole wraps f, detecting whether it is attached to a terminal.
func NewConsole(f *os.File) *Console {
	return &Console{w: f, interactive: term.IsTerminal(int(f.Fd()))}
}

// NewConsoleWriter wraps w. Use interactive false for captured output such as
// files, pipes and test buffers.
func NewConsoleWriter(w io.Writer, interactive bool) *Console {
	return &Console{w: w, interactive: interactive}
}

// Interactive reports whether escape sequences are written.
func (c *Console) Interactive() bool {
	return c.interactive
}

// Write draws frame from the top left corner, clearing the screen first
// when clear is set. Non-interactive consoles get the frame only.
func (c *Console) Write(frame string, clear bool) error {
	if c.interactive {
		prefix := cursorHome
		if clear {
			prefix = clearScreen + cursorHome
		}
		if _, err := io.WriteString(c.w, prefix); err != nil {
			return err
		}
	}
	_, err := io.WriteString(c.w, frame)
	return err
}

// discardSink drops every frame. BackgroundReporter uses it.
type discardSink struct{}

func (discardSink) Write(string, bool) error { return nil }
