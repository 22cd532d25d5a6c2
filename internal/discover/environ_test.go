package discover

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mexus/memory-watcher/internal/watch"
)

func TestParseEnvironBlock(t *testing.T) {
	raw := []byte("HOME=/home/user\x00DISPLAY=:0\x00LS_COLORS=rs=0:di=01;34\x00")

	env := ParseEnvironBlock(raw)

	assert.Equal(t, watch.Environment{
		{Name: "HOME", Value: "/home/user"},
		{Name: "DISPLAY", Value: ":0"},
		{Name: "LS_COLORS", Value: "rs=0:di=01;34"}, // value keeps further '='
	}, env)
}

func TestParseEnvironBlockEmpty(t *testing.T) {
	assert.Empty(t, ParseEnvironBlock(nil))
	assert.Empty(t, ParseEnvironBlock([]byte{}))
	assert.Empty(t, ParseEnvironBlock([]byte{0, 0, 0}))
}

func TestParseEnvironBlockMalformedEntries(t *testing.T) {
	// Separator-less and name-less segments are dropped, the rest survives
	// in order.
	raw := []byte("GOOD=1\x00garbage\x00=nameless\x00ALSO_GOOD=2\x00")

	env := ParseEnvironBlock(raw)

	assert.Equal(t, watch.Environment{
		{Name: "GOOD", Value: "1"},
		{Name: "ALSO_GOOD", Value: "2"},
	}, env)
}

func TestParseEnvironBlockEmptyValue(t *testing.T) {
	env := ParseEnvironBlock([]byte("EMPTY=\x00"))

	assert.Equal(t, watch.Environment{{Name: "EMPTY", Value: ""}}, env)

	v, ok := env.Lookup("EMPTY")
	assert.True(t, ok)
	assert.Equal(t, "", v)
}

func TestEnvironmentStrings(t *testing.T) {
	env := watch.Environment{
		{Name: "FOO", Value: "bar"},
		{Name: "EMPTY", Value: ""},
	}

	assert.Equal(t, []string{"FOO=bar", "EMPTY="}, env.Strings())
}
