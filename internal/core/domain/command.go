package domain

import (
	"strconv"
	"strings"
)

// Command is a process invocation: an argument vector run from a working directory.
type Command struct {
	Args []string
	Dir  string
}

// NewCommand creates a Command from its parts, running in dir.
func NewCommand(dir string, parts ...[]string) Command {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	args := make([]string, 0, n)
	for _, p := range parts {
		args = append(args, p...)
	}
	return Command{Args: args, Dir: dir}
}

// String returns the command line as it would be typed in a shell.
func (c Command) String() string {
	quoted := make([]string, len(c.Args))
	for i, a := range c.Args {
		if a == "" || strings.ContainsAny(a, " \t\n\"'\\$") {
			quoted[i] = strconv.Quote(a)
			continue
		}
		quoted[i] = a
	}
	return strings.Join(quoted, " ")
}

// Empty reports whether the command has no program to run.
func (c Command) Empty() bool {
	return len(c.Args) == 0
}
