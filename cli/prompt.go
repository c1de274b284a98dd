package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// ErrInvalidChoice is returned by Select when the answer matches no option.
var ErrInvalidChoice = errors.New("invalid choice")

// Prompter asks the user for input.
type Prompter interface {
	// Select asks for one of options and returns its index.
	Select(title string, options []string) (int, error)

	// Input asks for a line of text. Surrounding whitespace is removed.
	Input(title string) (string, error)

	// Confirm asks a yes/no question.
	Confirm(title string) (bool, error)
}

// huhPrompter shows interactive forms on a terminal.
type huhPrompter struct{}

func (huhPrompter) Select(title string, options []string) (int, error) {
	choices := make([]huh.Option[int], len(options))
	for i, option := range options {
		choices[i] = huh.NewOption(fmt.Sprintf("%d. %s", i+1, option), i)
	}

	var choice int
	err := huh.NewSelect[int]().
		Title(title).
		Options(choices...).
		Value(&choice).
		Run()
	if err != nil {
		return 0, fmt.Errorf("failed to read choice: %w", err)
	}

	return choice, nil
}

func (huhPrompter) Input(title string) (string, error) {
	var value string
	err := huh.NewInput().
		Title(title).
		Value(&value).
		Run()
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	return strings.TrimSpace(value), nil
}

func (huhPrompter) Confirm(title string) (bool, error) {
	var confirm bool
	err := huh.NewConfirm().
		Title(title).
		WithButtonAlignment(lipgloss.Left).
		Value(&confirm).
		Run()
	if err != nil {
		return false, fmt.Errorf("failed to read response: %w", err)
	}

	return confirm, nil
}

// LinePrompter reads answers line by line, for piped input and scripts.
// Prompts are written to w.
type LinePrompter struct {
	scanner *bufio.Scanner
	w       io.Writer
}

// NewLinePrompter creates a prompter reading answers from r.
func NewLinePrompter(r io.Reader, w io.Writer) *LinePrompter {
	return &LinePrompter{scanner: bufio.NewScanner(r), w: w}
}

// Select lists the numbered options and accepts a number or an option name.
func (p *LinePrompter) Select(title string, options []string) (int, error) {
	_, _ = fmt.Fprintf(p.w, "\n%s\n", title)
	for i, option := range options {
		_, _ = fmt.Fprintf(p.w, "%d. %s\n", i+1, option)
	}

	answer, err := p.readLine("Select an option: ")
	if err != nil {
		return 0, err
	}

	if n, err := strconv.Atoi(answer); err == nil {
		if n < 1 || n > len(options) {
			return 0, ErrInvalidChoice
		}
		return n - 1, nil
	}

	for i, option := range options {
		if strings.EqualFold(answer, option) {
			return i, nil
		}
	}

	return 0, ErrInvalidChoice
}

func (p *LinePrompter) Input(title string) (string, error) {
	return p.readLine(title + ": ")
}

// Confirm accepts yes or y, in any case, as agreement.
func (p *LinePrompter) Confirm(title string) (bool, error) {
	answer, err := p.readLine(title + " (yes/no): ")
	if err != nil {
		return false, err
	}

	switch strings.ToLower(answer) {
	case "yes", "y":
		return true, nil
	}
	return false, nil
}

// readLine returns io.EOF once the input is exhausted.
func (p *LinePrompter) readLine(prompt string) (string, error) {
	_, _ = io.WriteString(p.w, prompt)

	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", io.EOF
	}

	return strings.TrimSpace(p.scanner.Text()), nil
}
