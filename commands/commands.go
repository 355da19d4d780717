// Package commands dispatches lines of text input to named commands.
package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kjk/cfgstore/helpmanual"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrEmptyInput     = errors.New("empty input")
)

// Command is run by a Pipeline for input starting with its name
type Command interface {
	Name() string
	// Run returns false if the command failed
	Run(args []string) bool
}

// Base can be embedded to implement Name() and Manual()
type Base struct {
	CmdName string
}

func (b Base) Name() string {
	return b.CmdName
}

// Manual returns help text for the command
func (b Base) Manual(m *helpmanual.Manuals) (string, bool) {
	if m == nil {
		return "", false
	}
	return m.Manual(b.CmdName)
}

// Func adapts a function to a Command
type Func struct {
	Base
	Fn func(args []string) bool
}

func (f Func) Run(args []string) bool {
	return f.Fn(args)
}

// Pipeline holds commands in registration order
type Pipeline struct {
	commands []Command
}

// Register adds cmd. A command with the same name is replaced.
func (p *Pipeline) Register(cmd Command) {
	for i, c := range p.commands {
		if c.Name() == cmd.Name() {
			p.commands[i] = cmd
			return
		}
	}
	p.commands = append(p.commands, cmd)
}

// Commands returns names of registered commands
func (p *Pipeline) Commands() []string {
	res := make([]string, len(p.commands))
	for i, c := range p.commands {
		res[i] = c.Name()
	}
	return res
}

func (p *Pipeline) find(name string) Command {
	for _, c := range p.commands {
		if c.Name() == name {
			return c
		}
	}
	return nil
}

// Split splits input into whitespace-separated arguments. Double
// quotes group words into one argument.
func Split(input string) ([]string, error) {
	var args []string
	var cur strings.Builder
	inQuotes, hasArg := false, false
	for _, c := range input {
		switch {
		case c == '"':
			inQuotes = !inQuotes
			hasArg = true
		case !inQuotes && (c == ' ' || c == '\t' || c == '\n' || c == '\r'):
			if hasArg {
				args = append(args, cur.String())
				cur.Reset()
				hasArg = false
			}
		default:
			cur.WriteRune(c)
			hasArg = true
		}
	}
	if inQuotes {
		return nil, fmt.Errorf("unterminated quote in '%s'", input)
	}
	if hasArg {
		args = append(args, cur.String())
	}
	return args, nil
}

// Process runs the command named by the first word of input with the
// remaining words as arguments. Returns the result of Run.
func (p *Pipeline) Process(input string) (bool, error) {
	args, err := Split(input)
	if err != nil {
		return false, err
	}
	if len(args) == 0 {
		return false, ErrEmptyInput
	}
	cmd := p.find(args[0])
	if cmd == nil {
		return false, fmt.Errorf("%w: '%s'", ErrUnknownCommand, args[0])
	}
	return cmd.Run(args[1:]), nil
}
