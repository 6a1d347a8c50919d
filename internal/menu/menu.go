// Package menu implements the terminal prompts used by the interactive
// workflows. Presentation only; all decision logic lives with the
// callers behind small interfaces.
package menu

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/franz/playlist-curator/internal/util"
)

// Menu prompts on stderr and reads selections from stdin. The zero
// value is not usable; create one with New.
type Menu struct {
	in  *bufio.Scanner
	tty bool
}

// New creates a menu reading from stdin
func New() *Menu {
	return &Menu{
		in:  bufio.NewScanner(os.Stdin),
		tty: util.IsTerminal(os.Stdin.Fd()),
	}
}

// Choose presents numbered options and returns the selected index.
// The cursor option is marked in the listing. Empty input, q, or
// stdin not being a terminal cancels.
func (m *Menu) Choose(title string, options []string, cursor int) (int, bool) {
	if !m.tty {
		util.WarnLog("No terminal on stdin, cannot prompt for: %s", title)
		return 0, false
	}

	fmt.Fprintf(os.Stderr, "\n%s\n", title)
	for i, opt := range options {
		marker := " "
		if i == cursor {
			marker = "*"
		}
		fmt.Fprintf(os.Stderr, " %s %2d) %s\n", marker, i+1, opt)
	}

	for {
		fmt.Fprintf(os.Stderr, "Select [1-%d, q to quit]: ", len(options))
		if !m.in.Scan() {
			return 0, false
		}

		input := strings.TrimSpace(m.in.Text())
		if input == "" || input == "q" || input == "Q" {
			return 0, false
		}

		n, err := strconv.Atoi(input)
		if err != nil || n < 1 || n > len(options) {
			fmt.Fprintf(os.Stderr, "Invalid selection: %s\n", input)
			continue
		}
		return n - 1, true
	}
}

// Confirm asks a yes/no question, defaulting to no
func (m *Menu) Confirm(prompt string) bool {
	if !m.tty {
		return false
	}

	fmt.Fprintf(os.Stderr, "%s [y/N]: ", prompt)
	if !m.in.Scan() {
		return false
	}

	answer := strings.ToLower(strings.TrimSpace(m.in.Text()))
	return answer == "y" || answer == "yes"
}
