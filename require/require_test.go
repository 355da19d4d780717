package require

import (
	"errors"
	"fmt"
	"testing"

	"github.com/alecthomas/assert"
)

type recordingT struct {
	errors int
	failed bool
}

func (t *recordingT) Errorf(format string, args ...interface{}) {
	t.errors++
}

func (t *recordingT) FailNow() {
	t.failed = true
}

func TestErrorIs(t *testing.T) {
	errBase := errors.New("base")

	rt := &recordingT{}
	ErrorIs(rt, fmt.Errorf("wrapped: %w", errBase), errBase)
	assert.False(t, rt.failed)
	assert.Equal(t, 0, rt.errors)

	rt = &recordingT{}
	ErrorIs(rt, errors.New("other"), errBase)
	assert.True(t, rt.failed)
	assert.Equal(t, 1, rt.errors)

	rt = &recordingT{}
	ErrorIs(rt, nil, errBase)
	assert.True(t, rt.failed)
}
