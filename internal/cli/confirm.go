package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// promptConfirmer asks on in/out. --yes short-circuits; a non-terminal stdin
// file declines so scripts never hang waiting for an answer.
type promptConfirmer struct {
	in  io.Reader
	out io.Writer
	yes bool
}

func newPromptConfirmer(in io.Reader, out io.Writer, yes bool) *promptConfirmer {
	return &promptConfirmer{in: in, out: out, yes: yes}
}

func (p *promptConfirmer) Confirm(prompt string) bool {
	if p.yes {
		return true
	}
	if f, ok := p.in.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
		fmt.Fprintln(p.out, prompt+" (pass --yes to confirm non-interactively)")
		return false
	}
	fmt.Fprintf(p.out, "%s [y/N] ", prompt)
	line, err := bufio.NewReader(p.in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
