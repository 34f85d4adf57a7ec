package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

var (
	ErrInvalidAnswer = errors.New("error parsing 'yes' or 'no' answer")
	ErrMenuExit      = errors.New("menu exited without a selection")
	ErrNoInput       = errors.New("no input available")
)

// Prompter is the interactive capability used by the config locator,
// the entry menu and destructive operations
type Prompter interface {
	// Confirm asks a yes/no question
	Confirm(message string) (bool, error)
	// Select shows a numbered menu and returns the index of the chosen item.
	// Option 0 is reserved for exiting and yields ErrMenuExit.
	Select(message string, items []string) (int, error)
	// Secret reads a value without echoing it
	Secret(message string) (string, error)
}

var (
	yesAnswers = []string{"y", "ye", "yes"}
	noAnswers  = []string{"n", "no"}
)

// ParseYesNo interprets a y/n style answer
func ParseYesNo(answer string) (bool, error) {
	a := strings.ToLower(strings.TrimSpace(answer))
	for _, y := range yesAnswers {
		if a == y {
			return true, nil
		}
	}
	for _, n := range noAnswers {
		if a == n {
			return false, nil
		}
	}
	return false, fmt.Errorf("%w: %q", ErrInvalidAnswer, answer)
}

// Console prompts on a terminal
type Console struct {
	in  *bufio.Reader
	out io.Writer
	// fd is used for hidden input; -1 when the input is not a terminal
	fd int
}

// NewConsole prompts on stdin/stdout
func NewConsole() *Console {
	c := NewConsoleWithIO(os.Stdin, os.Stdout)
	if term.IsTerminal(int(os.Stdin.Fd())) {
		c.fd = int(os.Stdin.Fd())
	}
	return c
}

// NewConsoleWithIO prompts on arbitrary streams
func NewConsoleWithIO(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out, fd: -1}
}

func (c *Console) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrNoInput
		}
		return "", fmt.Errorf("error reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func (c *Console) Confirm(message string) (bool, error) {
	if message == "" {
		message = "Are you sure?"
	}
	fmt.Fprintf(c.out, "%s (y/n) >> ", message)
	answer, err := c.readLine()
	if err != nil {
		return false, err
	}
	return ParseYesNo(answer)
}

// Select keeps asking until it gets an integer; an out-of-range integer ends the menu
func (c *Console) Select(message string, items []string) (int, error) {
	if len(items) == 0 {
		return 0, fmt.Errorf("menu has no items")
	}
	if message == "" {
		message = "Please select an integer"
	}

	for {
		fmt.Fprintln(c.out, "MENU\n-----")
		fmt.Fprintln(c.out, "0 Exit.")
		for i, item := range items {
			fmt.Fprintf(c.out, "%d %s\n", i+1, item)
		}
		fmt.Fprintf(c.out, "%s >> ", message)

		answer, err := c.readLine()
		if err != nil {
			return 0, err
		}
		if strings.EqualFold(answer, "exit") {
			return 0, ErrMenuExit
		}

		n, err := strconv.Atoi(answer)
		if err != nil {
			fmt.Fprintln(c.out, "Please enter an integer. Try again.")
			continue
		}
		if n == 0 {
			return 0, ErrMenuExit
		}
		if n < 0 || n > len(items) {
			return 0, fmt.Errorf("selection %d is not in the menu", n)
		}
		return n - 1, nil
	}
}

func (c *Console) Secret(message string) (string, error) {
	fmt.Fprintf(c.out, "%s: ", message)
	if c.fd >= 0 {
		b, err := term.ReadPassword(c.fd)
		fmt.Fprintln(c.out)
		if err != nil {
			return "", fmt.Errorf("error reading secret: %w", err)
		}
		return string(b), nil
	}
	return c.readLine()
}
