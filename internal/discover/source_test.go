package discover

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mexus/memory-watcher/internal/watch"
)

func TestResidentSetSumsAllProcesses(t *testing.T) {
	src := New()
	src.memoryOf = func(pid int32) (uint64, error) {
		return uint64(pid) * 1000, nil
	}

	total, err := src.ResidentSet([]watch.Handle{{PID: 1}, {PID: 2}, {PID: 3}})
	require.NoError(t, err)
	assert.Equal(t, uint64(6000), total)
}

func TestResidentSetSkipsFailedReads(t *testing.T) {
	// A PID that exits between enumeration and read is excluded from the
	// sum without failing the call.
	src := New()
	src.memoryOf = func(pid int32) (uint64, error) {
		if pid == 2 {
			return 0, fmt.Errorf("process does not exist")
		}
		return 500, nil
	}

	total, err := src.ResidentSet([]watch.Handle{{PID: 1}, {PID: 2}, {PID: 3}})
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), total)
}

func TestEnvironWrapsReadFailure(t *testing.T) {
	src := New()
	src.environOf = func(pid int32) ([]byte, error) {
		return nil, os.ErrPermission
	}

	_, err := src.Environ(watch.Handle{PID: 42})
	require.Error(t, err)
	assert.Equal(t, watch.ErrorKindEnvironment, watch.KindOf(err))
	assert.True(t, errors.Is(err, os.ErrPermission))
}

func TestEnvironParsesBlock(t *testing.T) {
	src := New()
	src.environOf = func(pid int32) ([]byte, error) {
		return []byte("FOO=bar\x00BAZ=qux\x00"), nil
	}

	env, err := src.Environ(watch.Handle{PID: 42})
	require.NoError(t, err)
	assert.Equal(t, watch.Environment{
		{Name: "FOO", Value: "bar"},
		{Name: "BAZ", Value: "qux"},
	}, env)
}

func TestFindSelf(t *testing.T) {
	// The test binary itself is always in the process table.
	self, err := os.Executable()
	require.NoError(t, err)

	src := New()
	handles, err := src.Find(commFor(self))
	require.NoError(t, err)
	require.NotEmpty(t, handles)

	found := false
	for _, h := range handles {
		if h.PID == int32(os.Getpid()) {
			found = true
			assert.NotZero(t, h.StartedAt)

			alive, err := src.Alive(h)
			require.NoError(t, err)
			assert.True(t, alive)
		}
	}
	assert.True(t, found, "own PID should match its own comm name")
}

func TestFindNoMatch(t *testing.T) {
	src := New()
	handles, err := src.Find("definitely-not-a-real-process-name")
	require.NoError(t, err)
	assert.Empty(t, handles, "an empty result is not an error")
}

// commFor reduces an executable path to the comm value the kernel reports:
// the base name truncated to 15 bytes.
func commFor(path string) string {
	base := path
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			base = path[i+1:]
			break
		}
	}
	if len(base) > 15 {
		base = base[:15]
	}
	return base
}
