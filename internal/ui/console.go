package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	fserrors "github.com/jscyril/freesound_cli/pkg/errors"
)

// Console owns line-oriented terminal I/O for the whole process: one
// reader goroutine feeds lines into a channel so a blocking ReadLine can
// also notice an interrupt signal arriving mid-read.
type Console struct {
	out       io.Writer
	term      *termenv.Output
	lines     chan lineEvent
	interrupt chan os.Signal

	successStyle lipgloss.Style
	errorStyle   lipgloss.Style
	warnStyle    lipgloss.Style
	promptStyle  lipgloss.Style
}

type lineEvent struct {
	text string
	err  error
}

// NewConsole creates a console over the given input and output streams
// and takes ownership of the interrupt signal.
func NewConsole(in io.Reader, out io.Writer) *Console {
	c := &Console{
		out:          out,
		term:         termenv.NewOutput(out),
		lines:        make(chan lineEvent),
		interrupt:    make(chan os.Signal, 1),
		successStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		errorStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		warnStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		promptStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	}
	signal.Notify(c.interrupt, os.Interrupt)
	go c.readLoop(in)
	return c
}

func (c *Console) readLoop(in io.Reader) {
	r := bufio.NewReader(in)
	for {
		line, err := r.ReadString('\n')
		if line != "" {
			c.lines <- lineEvent{text: strings.TrimRight(line, "\r\n")}
		}
		if err != nil {
			c.lines <- lineEvent{err: err}
			return
		}
	}
}

// ReadLine prints the prompt and blocks until a full input line arrives.
// An interrupt signal received while waiting is reported as
// fserrors.ErrInterrupted; end of input surfaces as io.EOF.
func (c *Console) ReadLine(prompt string) (string, error) {
	fmt.Fprint(c.out, c.promptStyle.Render(prompt)+" ")
	select {
	case ev := <-c.lines:
		return ev.text, ev.err
	case <-c.interrupt:
		fmt.Fprintln(c.out)
		return "", fserrors.ErrInterrupted
	}
}

// Success prints a message in the success style.
func (c *Console) Success(format string, args ...any) {
	fmt.Fprintln(c.out, c.successStyle.Render(fmt.Sprintf(format, args...)))
}

// Errorf prints a message in the error style.
func (c *Console) Errorf(format string, args ...any) {
	fmt.Fprintln(c.out, c.errorStyle.Render(fmt.Sprintf(format, args...)))
}

// Warnf prints a message in the warning style.
func (c *Console) Warnf(format string, args ...any) {
	fmt.Fprintln(c.out, c.warnStyle.Render(fmt.Sprintf(format, args...)))
}

// Print writes pre-rendered content followed by a newline.
func (c *Console) Print(s string) {
	fmt.Fprintln(c.out, s)
}

// Clear wipes the terminal and moves the cursor home.
func (c *Console) Clear() {
	c.term.ClearScreen()
}
