package main

import (
	"os"

	"github.com/kjk/cfgstore/helpmanual"
	"github.com/kjk/cfgstore/store"
	"github.com/spf13/cobra"
)

var (
	manualSet    string
	manualRemove bool
)

var manualCmd = &cobra.Command{
	Use:   "manual [COMMAND]",
	Short: "Show or edit help manuals of commands",
	Long: `Show the help manual of a command, or list commands that have one.

Manuals are kept in their own store (--help-file). A missing or
unreadable manuals file is not an error, it has no manuals.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runManual,
}

func init() {
	manualCmd.Flags().StringVar(&manualSet, "set", "", "Set help text of COMMAND")
	manualCmd.Flags().BoolVar(&manualRemove, "remove", false, "Remove help text of COMMAND")
	rootCmd.AddCommand(manualCmd)
}

func openManuals(path string) *helpmanual.Manuals {
	m, err := helpmanual.New(path, store.WithSuppressErrors(true))
	if err != nil {
		exitWithError(ExitError, "opening help manuals %s: %v", path, err)
	}
	return m
}

func runManual(cmd *cobra.Command, args []string) {
	editing := cmd.Flags().Changed("set") || manualRemove
	if editing && len(args) == 0 {
		exitWithError(ExitError, "--set and --remove need COMMAND")
	}
	if editing {
		ensureDir(helpPath)
	}
	m := openManuals(helpPath)

	if len(args) == 0 {
		if humanOutput {
			for _, name := range m.Commands() {
				outputHuman("%s\n", name)
			}
			return
		}
		outputJSON(m.ViewAsMap())
		return
	}

	name := args[0]
	s := m.Store()
	switch {
	case manualRemove:
		removed, err := s.Remove(store.NewRecord(name, ""))
		if err != nil {
			exitWithError(exitCodeFor(err), "removing manual of '%s': %v", name, err)
		}
		if !removed {
			exitWithError(ExitNoChange, "no manual for '%s'", name)
		}
		outputJSON(StatusResponse{Status: "removed", Key: name, Path: s.Path(), Count: s.Len()})
	case cmd.Flags().Changed("set"):
		// replace existing text
		if _, ok := s.Get(name); ok {
			if _, err := s.Remove(store.NewRecord(name, "")); err != nil {
				exitWithError(exitCodeFor(err), "replacing manual of '%s': %v", name, err)
			}
		}
		if _, err := s.Add(store.NewRecord(name, manualSet)); err != nil {
			exitWithError(exitCodeFor(err), "setting manual of '%s': %v", name, err)
		}
		outputJSON(StatusResponse{Status: "set", Key: name, Path: s.Path(), Count: s.Len()})
	default:
		if humanOutput {
			m.PrintHelp(os.Stdout, name)
			return
		}
		text, ok := m.Manual(name)
		if !ok {
			exitWithError(ExitNoChange, "no manual for '%s'", name)
		}
		outputJSON(RecordJSON{Key: name, Value: text})
	}
}
