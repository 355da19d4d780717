package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/kjk/cfgstore/store"
	"github.com/tidwall/pretty"
)

// RecordJSON is a record in JSON output
type RecordJSON struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func toRecordJSON(r store.Record) RecordJSON {
	return RecordJSON{Key: r.Key(), Value: r.Value()}
}

// StatusResponse is the response for commands that change the store
type StatusResponse struct {
	Status string `json:"status"`
	Key    string `json:"key,omitempty"`
	Path   string `json:"path"`
	Count  int    `json:"count"`
}

// ListResponse is the response for list
type ListResponse struct {
	Path    string       `json:"path"`
	Count   int          `json:"count"`
	Records []RecordJSON `json:"records"`
}

// ErrorResponse is a JSON error response
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w io.Writer, v any) error {
	d, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = w.Write(pretty.Pretty(d))
	return err
}

// outputJSON writes a value as indented JSON to stdout, exits on failure
func outputJSON(v any) {
	if err := writeJSON(os.Stdout, v); err != nil {
		fmt.Fprintf(os.Stderr, "error: writing output: %s\n", err)
		os.Exit(ExitError)
	}
}

// outputHuman writes a human-readable string to stdout
func outputHuman(format string, args ...any) {
	fmt.Printf(format, args...)
}

func exitCodeFor(err error) int {
	switch {
	case errors.Is(err, store.ErrFormat):
		return ExitDataError
	case errors.Is(err, store.ErrOutOfRange):
		return ExitNoChange
	}
	return ExitError
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits
func exitWithError(code int, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		// exiting anyway, a failed write can't be reported
		_ = writeJSON(os.Stdout, ErrorResponse{Error: msg})
	}
	os.Exit(code)
}
