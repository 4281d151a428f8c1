package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"syscall"

	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/tmurzenkov/circulation-service/internal/errs"
)

func (c *CLI) printf(format string, a ...interface{}) {
	fmt.Fprintf(c.out, format, a...)
}

func (c *CLI) println(a ...interface{}) {
	fmt.Fprintln(c.out, a...)
}

func (c *CLI) readLine(prompt string) (string, error) {
	c.printf("%s", prompt)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.in.Text()), nil
}

// readInt re-surfaces non-numeric input as ErrValidation so the menu can
// recover with a message instead of falling over.
func (c *CLI) readInt(prompt string) (int, error) {
	line, err := c.readLine(prompt)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		return 0, errors.Wrap(errs.ErrValidation, "expected a number")
	}
	return n, nil
}

// readOptional returns nil when the user leaves the field blank.
func (c *CLI) readOptional(prompt string) (*string, error) {
	line, err := c.readLine(prompt)
	if err != nil {
		return nil, err
	}
	if line == "" {
		return nil, nil
	}
	return &line, nil
}

func readPasswordMasked(out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)
	b, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(out)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

func (c *CLI) clear() {
	fmt.Fprint(c.out, "\033[H\033[2J")
}
