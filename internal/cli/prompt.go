// ABOUTME: Interactive prompting for credentials missing from env and config.
// ABOUTME: Reads secrets without echo when stdin is a terminal.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// prompter writes labels to out and reads answers from in.
type prompter struct {
	reader *bufio.Reader
	out    io.Writer
	fd     int
	tty    bool
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stderr
	}
	p := &prompter{reader: bufio.NewReader(in), out: out, fd: -1}
	if f, ok := in.(*os.File); ok {
		p.fd = int(f.Fd())
		p.tty = term.IsTerminal(p.fd)
	}
	return p
}

// isTerminal reports whether in is a terminal. Only *os.File can be one.
func isTerminal(in io.Reader) bool {
	f, ok := in.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (p *prompter) Ask(label string, defaultValue string) (string, error) {
	prompt := label
	if defaultValue != "" {
		prompt += fmt.Sprintf(" [%s]", defaultValue)
	}
	if _, err := fmt.Fprintf(p.out, "%s: ", prompt); err != nil {
		return "", err
	}

	text, err := p.readLine()
	if err != nil {
		return "", err
	}
	if text == "" {
		return defaultValue, nil
	}
	return text, nil
}

// AskSecret never echoes on a terminal; otherwise it reads a plain line.
func (p *prompter) AskSecret(label string) (string, error) {
	if _, err := fmt.Fprintf(p.out, "%s: ", label); err != nil {
		return "", err
	}

	if p.tty {
		secret, err := term.ReadPassword(p.fd)
		_, _ = fmt.Fprintln(p.out)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(secret)), nil
	}

	return p.readLine()
}

// readLine accepts a final line without a trailing newline.
func (p *prompter) readLine() (string, error) {
	text, err := p.reader.ReadString('\n')
	if err != nil && !(err == io.EOF && text != "") {
		return "", err
	}
	return strings.TrimSpace(text), nil
}
