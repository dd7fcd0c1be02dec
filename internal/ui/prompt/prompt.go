// File: internal/ui/prompt/prompt.go
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Defines the interface for prompting the user for input
type Prompter interface {
	// Asks the user a yes/no question and reports whether they agreed
	Confirm(message string) (bool, error)
}

// Provides a standard implementation of the Prompter interface using specified input/output streams
type StandardPrompter struct {
	reader io.Reader
	writer io.Writer
}

// Creates a new StandardPrompter with the given input and output streams
func NewStandardPrompter(in io.Reader, out io.Writer) *StandardPrompter {
	return &StandardPrompter{
		reader: in,
		writer: out,
	}
}

var _ Prompter = (*StandardPrompter)(nil)

// Asks the user a yes/no question. Only "yes" or "y" (any case) counts as
// agreement; end of input counts as a no.
func (p *StandardPrompter) Confirm(message string) (bool, error) {
	fmt.Fprintln(p.writer, message)
	fmt.Fprint(p.writer, "Are you sure you want to continue? (yes/no): ")

	reader := bufio.NewReader(p.reader)
	input, err := reader.ReadString('\n')
	if err != nil {
		if err == io.EOF {
			return false, nil
		}
		return false, fmt.Errorf("error reading user input: %w", err)
	}

	answer := strings.ToLower(strings.TrimSpace(input))

	return answer == "yes" || answer == "y", nil
}
