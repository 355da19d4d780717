package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/kjk/cfgstore/commands"
	"github.com/kjk/cfgstore/helpmanual"
	"github.com/kjk/cfgstore/output"
	"github.com/kjk/cfgstore/store"
	"github.com/spf13/cobra"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Read commands from stdin, one per line",
	Long: `Read commands from stdin, one per line, and run them on the store.

Commands: add KEY VALUE, remove KEY, get KEY, at INDEX, list, reload,
help [COMMAND], quit. Use double quotes for values with spaces.`,
	Args: cobra.NoArgs,
	Run:  runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

type shell struct {
	s       *store.Store[store.Record]
	manuals *helpmanual.Manuals
	f       *output.Formatter
	w       io.Writer
	quit    bool
}

func (sh *shell) cmd(name string, fn func(args []string) bool) commands.Command {
	return commands.Func{Base: commands.Base{CmdName: name}, Fn: fn}
}

func (sh *shell) wantArgs(name string, args []string, n int) bool {
	if len(args) == n {
		return true
	}
	sh.f.FormatColored(fmt.Sprintf("1r1%s needs %d arguments, got %d", name, n, len(args)), false)
	if text, ok := (commands.Base{CmdName: name}).Manual(sh.manuals); ok {
		fmt.Fprintln(sh.w, text)
	}
	return false
}

func (sh *shell) reportErr(err error) bool {
	if err == nil {
		return true
	}
	sh.f.Format("error: " + err.Error())
	return false
}

func (sh *shell) pipeline() *commands.Pipeline {
	p := &commands.Pipeline{}
	p.Register(sh.cmd("add", func(args []string) bool {
		if !sh.wantArgs("add", args, 2) {
			return false
		}
		added, err := sh.s.Add(store.NewRecord(args[0], args[1]))
		if !sh.reportErr(err) {
			return false
		}
		if !added {
			sh.f.Format("record '" + args[0] + "' already exists")
			return false
		}
		sh.f.Format("added '" + args[0] + "'")
		return true
	}))
	p.Register(sh.cmd("remove", func(args []string) bool {
		if !sh.wantArgs("remove", args, 1) {
			return false
		}
		removed, err := sh.s.Remove(store.NewRecord(args[0], ""))
		if !sh.reportErr(err) {
			return false
		}
		if !removed {
			sh.f.Format("record '" + args[0] + "' not found")
			return false
		}
		sh.f.Format("removed '" + args[0] + "'")
		return true
	}))
	p.Register(sh.cmd("get", func(args []string) bool {
		if !sh.wantArgs("get", args, 1) {
			return false
		}
		r, ok := sh.s.Get(args[0])
		if !ok {
			sh.f.Format("record '" + args[0] + "' not found")
			return false
		}
		fmt.Fprintf(sh.w, "%s: %s\n", r.Key(), r.Value())
		return true
	}))
	p.Register(sh.cmd("at", func(args []string) bool {
		if !sh.wantArgs("at", args, 1) {
			return false
		}
		i, err := strconv.Atoi(args[0])
		if err != nil {
			sh.f.Format("invalid index '" + args[0] + "'")
			return false
		}
		r, ok := sh.s.TryAt(i)
		if !ok {
			return false
		}
		fmt.Fprintf(sh.w, "%s: %s\n", r.Key(), r.Value())
		return true
	}))
	p.Register(sh.cmd("list", func(args []string) bool {
		for _, r := range sh.s.View() {
			fmt.Fprintf(sh.w, "%s: %s\n", r.Key(), r.Value())
		}
		return true
	}))
	p.Register(sh.cmd("reload", func(args []string) bool {
		return sh.reportErr(sh.s.Reload())
	}))
	p.Register(sh.cmd("help", func(args []string) bool {
		if len(args) == 0 {
			for _, name := range p.Commands() {
				fmt.Fprintln(sh.w, name)
			}
			return true
		}
		sh.manuals.PrintHelp(sh.w, args[0])
		return true
	}))
	p.Register(sh.cmd("quit", func(args []string) bool {
		sh.quit = true
		return true
	}))
	return p
}

// run processes lines from r until end of input or quit.
// Returns number of failed commands.
func (sh *shell) run(r io.Reader) int {
	p := sh.pipeline()
	nFailed := 0
	scanner := bufio.NewScanner(r)
	for !sh.quit && scanner.Scan() {
		ok, err := p.Process(scanner.Text())
		if errors.Is(err, commands.ErrEmptyInput) {
			continue
		}
		if err != nil {
			sh.f.Format(err.Error())
		}
		if err != nil || !ok {
			nFailed++
		}
	}
	return nFailed
}

func runShell(cmd *cobra.Command, args []string) {
	sh := &shell{
		s:       openStore(storePath, true),
		manuals: openManuals(helpPath),
		f:       output.New(os.Stdout),
		w:       os.Stdout,
	}
	if n := sh.run(os.Stdin); n > 0 {
		os.Exit(ExitError)
	}
}
