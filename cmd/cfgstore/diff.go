package main

import (
	"fmt"
	"strings"

	"github.com/kjk/cfgstore/store"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"
)

var diffCmd = &cobra.Command{
	Use:   "diff OTHER_FILE",
	Short: "Show differences between the store and another store file",
	Args:  cobra.ExactArgs(1),
	Run:   runDiff,
}

func init() {
	rootCmd.AddCommand(diffCmd)
}

// recordsText renders records one per line, escaping newlines so that
// a multi-line value is still one line of the diff
func recordsText(recs []store.Record) string {
	var sb strings.Builder
	for _, r := range recs {
		v := strings.ReplaceAll(r.Value(), "\n", `\n`)
		fmt.Fprintf(&sb, "%s: %s\n", r.Key(), v)
	}
	return sb.String()
}

func diffStores(a, b *store.Store[store.Record]) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(recordsText(a.View())),
		B:        difflib.SplitLines(recordsText(b.View())),
		FromFile: a.Path(),
		ToFile:   b.Path(),
		Context:  2,
	}
	return difflib.GetUnifiedDiffString(diff)
}

// DiffResponse is the response for diff
type DiffResponse struct {
	Same bool   `json:"same"`
	Diff string `json:"diff,omitempty"`
}

func runDiff(cmd *cobra.Command, args []string) {
	a := openStore(storePath, false)
	b := openStore(args[0], false)
	s, err := diffStores(a, b)
	if err != nil {
		exitWithError(ExitError, "diff: %v", err)
	}
	if humanOutput {
		outputHuman("%s", s)
		return
	}
	outputJSON(DiffResponse{Same: s == "", Diff: s})
}
