package bundle

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_AnnouncesNewVersion(t *testing.T) {
	base := t.TempDir()

	var mu sync.Mutex
	var got []int
	w, err := NewWatcher(base, func(version int, dir string) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, version)
	})
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.Mkdir(filepath.Join(base, FormatVersion(4)), 0o755))
	// Non-version entries must be ignored.
	require.NoError(t, os.Mkdir(filepath.Join(base, "tmp-upload"), 0o755))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 1 && got[0] == 4
	}, 5*time.Second, 50*time.Millisecond)

	assert.Equal(t, uint32(1), w.SeenCount())
}
