package u

import (
	"fmt"
)

func fmtArgs(def string, args []any) string {
	if len(args) == 0 {
		return def
	}
	s := fmt.Sprintf("%s", args[0])
	if len(args) > 1 {
		s = fmt.Sprintf(s, args[1:]...)
	}
	return s
}

// Must panics if err is not nil
func Must(err error) {
	if err != nil {
		panic(err)
	}
}

// PanicIf panics if cond is true. Optional args are a format string
// and its arguments.
func PanicIf(cond bool, args ...any) {
	if cond {
		panic(fmtArgs("condition failed", args))
	}
}

// PanicIfErr panics if err is not nil
func PanicIfErr(err error, args ...any) {
	if err != nil {
		panic(fmtArgs(err.Error(), args))
	}
}
