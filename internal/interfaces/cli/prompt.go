package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Prompter reads interactive answers. All prompts treat a read failure or a
// blank line as the default answer so piped input never hangs a lookup.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Confirm asks a yes/no question, defaulting to yes.
func (p *Prompter) Confirm(question string) bool {
	fmt.Fprintf(p.out, "%s [Y/n]: ", question)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return true
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "", "y", "yes":
		return true
	default:
		return false
	}
}

// Choose asks for a number between 1 and max; zero, a blank line or anything
// unparsable cancels.
func (p *Prompter) Choose(question string, max int) int {
	fmt.Fprintf(p.out, "%s: ", question)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || n < 1 || n > max {
		return 0
	}
	return n
}
