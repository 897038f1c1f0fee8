package panicerr_test

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/incident/internal/panicerr"
)

func TestRecover(t *testing.T) {
	for _, tc := range []struct {
		name    string
		err     string
		wraps   string
		fun     func() error
		isPanic bool
		isExit  bool
	}{
		{
			name: "normal",
			fun:  func() error { return nil },
		},
		{
			name: "normal err",
			err:  "bang",
			fun:  func() error { return errors.New("bang") },
		},
		{
			name:    "",
			err:     "panicked: shrug",
			wraps:   "shrug",
			isPanic: true,
			fun:     func() error { panic(errors.New("shrug")) },
		},
		{
			name:    "panic err",
			err:     "panic err panicked: bang",
			wraps:   "bang",
			isPanic: true,
			fun:     func() error { panic(errors.New("bang")) },
		},
		{
			name:    "panic string",
			err:     "panic string panicked: hello",
			isPanic: true,
			fun:     func() error { panic("hello") },
		},
		{
			name:    "index panic",
			err:     "index panic panicked: runtime error: index out of range [1] with length 0",
			isPanic: true,
			fun:     func() error { _ = ([]int)(nil)[1]; return nil },
		},
		{
			name:   "exit",
			err:    "exit called runtime.Goexit",
			isExit: true,
			fun:    func() error { runtime.Goexit(); return nil },
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := panicerr.Recover(tc.name, tc.fun)
			if tc.err == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tc.err)
			}
			if tc.wraps != "" {
				assert.EqualError(t, errors.Unwrap(err), tc.wraps, "expected panic(error) value")
			}
			assert.Equal(t, tc.isPanic, panicerr.IsPanic(err), "expected IsPanic")
			assert.Equal(t, tc.isExit, panicerr.IsExit(err), "expected IsExit")

			stack := panicerr.PanicStack(err)
			assert.Equal(t, tc.isPanic, stack != "", "expected a stack trace iff panicked")
			if t.Failed() && stack != "" {
				t.Logf("panic stack: %v", stack)
			}
		})
	}
}

func TestRecover_stacktrace(t *testing.T) {
	err := panicerr.Recover("", func() error { panic("nope") })
	require.Error(t, err)
	assert.True(t,
		strings.HasSuffix(fmt.Sprintf("%+v", err), panicerr.PanicStack(err)),
		"expected verbose format to end with a stack trace")
}

type haltError struct{ error }

func TestRecover_wrappedHalt(t *testing.T) {
	cause := errors.New("limit")
	err := panicerr.Recover("vm", func() error { panic(haltError{cause}) })
	var halt haltError
	require.True(t, errors.As(err, &halt), "expected a panicked error to be recoverable by type")
	assert.Same(t, cause, halt.error)
}
