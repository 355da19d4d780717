// Package main provides the cfgstore CLI entry point.
package main

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/kjk/cfgstore/helpmanual"
	"github.com/kjk/cfgstore/log"
	"github.com/kjk/cfgstore/store"
	"github.com/kjk/cfgstore/u"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

const defaultStorePath = "configs/settings.txt"

var (
	storePath      string
	helpPath       string
	suppressErrors bool
	logDir         string
	verbose        bool
	humanOutput    bool
)

func main() {
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cfgstore",
	Short: "Keep named settings and help text in a file",
	Long: `cfgstore manages records (key/value pairs) stored in a single
human-readable file. Every change rewrites the whole file.

Commands output JSON by default, use --human for human-readable output.
Defaults for --file, --help-file and --log-dir can be set with
CFGSTORE_FILE, CFGSTORE_HELP_FILE and CFGSTORE_LOG_DIR, also from a
.env file in the current directory.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		applyEnvDefaults()
		// stdout is for command output
		log.Stdout = os.Stderr
		log.Verbose = verbose
		log.Init(&log.Config{Dir: logDir})
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		log.Close()
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&storePath, "file", "f", "", "Store file (default "+defaultStorePath+")")
	pf.StringVar(&helpPath, "help-file", "", "Help manuals file (default "+helpmanual.DefaultPath+")")
	pf.BoolVar(&suppressErrors, "suppress-errors", false, "Treat an unreadable store file as empty")
	pf.StringVar(&logDir, "log-dir", "", "Directory for log files")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")
	pf.BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}

func envOr(v string, env string, def string) string {
	if v != "" {
		return v
	}
	if s := os.Getenv(env); s != "" {
		return s
	}
	return def
}

func applyEnvDefaults() {
	storePath = u.ExpandTildeInPath(envOr(storePath, "CFGSTORE_FILE", defaultStorePath))
	helpPath = u.ExpandTildeInPath(envOr(helpPath, "CFGSTORE_HELP_FILE", helpmanual.DefaultPath))
	logDir = u.ExpandTildeInPath(envOr(logDir, "CFGSTORE_LOG_DIR", ""))
}

// ensureDir creates the directory of file at path, exits on failure
func ensureDir(path string) {
	dir := filepath.Dir(path)
	if u.DirExists(dir) {
		return
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		exitWithError(ExitError, "creating directory %s: %v", dir, err)
	}
}

// openStore opens the store at path, exits on failure.
// With forWrite, creates the directory of the file.
func openStore(path string, forWrite bool) *store.Store[store.Record] {
	if forWrite {
		ensureDir(path)
	}
	log.Verbosef("opening %s\n", path)
	s, err := store.OpenRecords(path, store.WithSuppressErrors(suppressErrors))
	if err != nil {
		exitWithError(exitCodeFor(err), "opening %s: %v", path, err)
	}
	return s
}
