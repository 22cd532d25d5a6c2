package spawn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mexus/memory-watcher/internal/watch"
)

func TestTerminateAbsentProcessIsSuccess(t *testing.T) {
	// PIDs are capped well below this on Linux, so nothing can own it.
	res, err := New().Terminate(1 << 30)
	require.NoError(t, err, "a process that is already gone satisfies the goal")
	assert.Equal(t, watch.AlreadyAbsent, res)
}

func TestRelaunchMissingCommand(t *testing.T) {
	_, err := New().Relaunch("/definitely/not/an/executable", nil, nil)
	require.Error(t, err)
	assert.Equal(t, watch.ErrorKindSpawn, watch.KindOf(err))
}
