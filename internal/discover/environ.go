package discover

import (
	"bytes"
	"strings"

	"github.com/mexus/memory-watcher/internal/watch"
)

// ParseEnvironBlock turns a raw null-delimited key=value environment block
// (the /proc/[pid]/environ format) into an ordered environment. Order is
// kept as-is. Empty segments and segments without a separator are skipped;
// the value keeps any further = characters.
func ParseEnvironBlock(raw []byte) watch.Environment {
	var env watch.Environment
	for _, entry := range bytes.Split(raw, []byte{0}) {
		if len(entry) == 0 {
			continue
		}
		name, value, ok := strings.Cut(string(entry), "=")
		if !ok || name == "" {
			continue
		}
		env = append(env, watch.Variable{Name: name, Value: value})
	}
	return env
}
