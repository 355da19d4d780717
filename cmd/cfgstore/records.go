package main

import (
	"os"
	"strconv"

	"github.com/kjk/cfgstore/store"
	"github.com/kjk/cfgstore/u"
	"github.com/spf13/cobra"
)

var addFromFile string

var addCmd = &cobra.Command{
	Use:   "add KEY [VALUE]",
	Short: "Add a record",
	Long: `Add a record. Fails if a record with the same key exists.

The value is the second argument, or the content of a file given
with --from-file.`,
	Args: cobra.RangeArgs(1, 2),
	Run:  runAdd,
}

var removeCmd = &cobra.Command{
	Use:   "remove KEY",
	Short: "Remove a record",
	Args:  cobra.ExactArgs(1),
	Run:   runRemove,
}

var (
	getIndex int
	getTry   bool
)

var getCmd = &cobra.Command{
	Use:   "get [KEY]",
	Short: "Get a record by key or by --index",
	Args:  cobra.MaximumNArgs(1),
	Run:   runGet,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all records in order",
	Args:  cobra.NoArgs,
	Run:   runList,
}

var reloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Check that the store file can be read",
	Args:  cobra.NoArgs,
	Run:   runReload,
}

func init() {
	addCmd.Flags().StringVar(&addFromFile, "from-file", "", "Read value from a file")
	getCmd.Flags().IntVar(&getIndex, "index", -1, "Get record at index instead of by key")
	getCmd.Flags().BoolVar(&getTry, "try", false, "With --index, report not found instead of an error for invalid index")
	rootCmd.AddCommand(addCmd, removeCmd, getCmd, listCmd, reloadCmd)
}

func addValue(args []string) string {
	if addFromFile == "" {
		if len(args) < 2 {
			exitWithError(ExitError, "add needs VALUE or --from-file")
		}
		return args[1]
	}
	if len(args) > 1 {
		exitWithError(ExitError, "use either VALUE or --from-file, not both")
	}
	d, err := os.ReadFile(addFromFile)
	if err != nil {
		exitWithError(ExitError, "reading %s: %v", addFromFile, err)
	}
	return string(u.NormalizeNewlines(d))
}

func runAdd(cmd *cobra.Command, args []string) {
	key := args[0]
	value := addValue(args)
	s := openStore(storePath, true)
	added, err := s.Add(store.NewRecord(key, value))
	if err != nil {
		exitWithError(exitCodeFor(err), "adding '%s': %v", key, err)
	}
	if !added {
		exitWithError(ExitNoChange, "record '%s' already exists", key)
	}
	if humanOutput {
		outputHuman("Added '%s' (%d records)\n", key, s.Len())
		return
	}
	outputJSON(StatusResponse{Status: "added", Key: key, Path: s.Path(), Count: s.Len()})
}

func runRemove(cmd *cobra.Command, args []string) {
	key := args[0]
	s := openStore(storePath, true)
	removed, err := s.Remove(store.NewRecord(key, ""))
	if err != nil {
		exitWithError(exitCodeFor(err), "removing '%s': %v", key, err)
	}
	if !removed {
		exitWithError(ExitNoChange, "record '%s' not found", key)
	}
	if humanOutput {
		outputHuman("Removed '%s' (%d records)\n", key, s.Len())
		return
	}
	outputJSON(StatusResponse{Status: "removed", Key: key, Path: s.Path(), Count: s.Len()})
}

func outputRecord(r store.Record) {
	if humanOutput {
		outputHuman("%s: %s\n", r.Key(), r.Value())
		return
	}
	outputJSON(toRecordJSON(r))
}

func runGet(cmd *cobra.Command, args []string) {
	byIndex := cmd.Flags().Changed("index")
	if byIndex == (len(args) == 1) {
		exitWithError(ExitError, "give either KEY or --index")
	}
	s := openStore(storePath, false)
	if !byIndex {
		r, ok := s.Get(args[0])
		if !ok {
			exitWithError(ExitNoChange, "record '%s' not found", args[0])
		}
		outputRecord(r)
		return
	}
	if getTry {
		r, ok := s.TryAt(getIndex)
		if !ok {
			exitWithError(ExitNoChange, "no record at index %d", getIndex)
		}
		outputRecord(r)
		return
	}
	r, err := s.At(getIndex)
	if err != nil {
		exitWithError(exitCodeFor(err), "%v", err)
	}
	outputRecord(r)
}

func runList(cmd *cobra.Command, args []string) {
	s := openStore(storePath, false)
	view := s.View()
	if humanOutput {
		for i, r := range view {
			outputHuman("%3s. %s: %s\n", strconv.Itoa(i), r.Key(), r.Value())
		}
		size := u.FileSize(s.Path())
		if size < 0 {
			size = 0
		}
		outputHuman("%d records in %s (%s)\n", len(view), s.Path(), u.FormatSize(size))
		return
	}
	res := ListResponse{
		Path:    s.Path(),
		Count:   len(view),
		Records: make([]RecordJSON, len(view)),
	}
	for i, r := range view {
		res.Records[i] = toRecordJSON(r)
	}
	outputJSON(res)
}

func runReload(cmd *cobra.Command, args []string) {
	s := openStore(storePath, false)
	if err := s.Reload(); err != nil {
		exitWithError(exitCodeFor(err), "%v", err)
	}
	if humanOutput {
		outputHuman("%s: %d records\n", s.Path(), s.Len())
		return
	}
	outputJSON(StatusResponse{Status: "ok", Path: s.Path(), Count: s.Len()})
}
