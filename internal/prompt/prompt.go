// Package prompt reads answers to console questions, hiding the input of
// secrets when it comes from a terminal.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrNoInput is returned when the input closes before any text for a prompt
// was read.
var ErrNoInput = errors.New("no input")

// Prompter writes labels to out and reads trimmed answers from in.
type Prompter struct {
	in     io.Reader
	reader *bufio.Reader
	out    io.Writer
}

// New creates a Prompter. When in is a terminal *os.File, Secret reads
// without echo.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:     in,
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// Line prints label and returns the next line with surrounding whitespace
// removed. A last line without a trailing newline is accepted.
func (p *Prompter) Line(label string) (string, error) {
	if _, err := fmt.Fprint(p.out, label); err != nil {
		return "", fmt.Errorf("write prompt: %w", err)
	}

	line, err := p.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", fmt.Errorf("%s: %w", strings.TrimSpace(label), ErrNoInput)
		}
		return "", fmt.Errorf("read input: %w", err)
	}

	return strings.TrimSpace(line), nil
}

// Secret behaves like Line but hides the typed text when reading from a
// terminal.
func (p *Prompter) Secret(label string) (string, error) {
	fd, ok := p.terminalFd()
	if !ok {
		return p.Line(label)
	}

	if _, err := fmt.Fprint(p.out, label); err != nil {
		return "", fmt.Errorf("write prompt: %w", err)
	}

	secret, err := term.ReadPassword(fd)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	// ReadPassword swallows the newline
	fmt.Fprintln(p.out)

	return strings.TrimSpace(string(secret)), nil
}

// terminalFd reports whether secrets can be read with echo disabled. Once
// the buffered reader holds data the terminal cannot be read directly.
func (p *Prompter) terminalFd() (int, bool) {
	f, ok := p.in.(*os.File)
	if !ok || p.reader.Buffered() > 0 {
		return 0, false
	}
	fd := int(f.Fd())
	return fd, term.IsTerminal(fd)
}
