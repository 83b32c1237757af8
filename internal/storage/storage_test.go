package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"cfr/internal/config"
	"cfr/internal/triage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) (*JSONStorage, *config.Config) {
	t.Helper()
	cfg := config.New()
	cfg.StateDir = t.TempDir()
	return NewJSONStorage(cfg), cfg
}

func TestJSONStorage_LoadMissingState(t *testing.T) {
	st, _ := newTestStorage(t)

	state, err := st.LoadState("deadbeef")
	require.NoError(t, err)
	assert.Empty(t, state.Selected)
	assert.Empty(t, state.Reviewed)
}

func TestJSONStorage_SaveAndLoad(t *testing.T) {
	st, cfg := newTestStorage(t)

	state := triage.NewState()
	state.SetSelected("tests/b.spec.ts", true)
	state.SetSelected("tests/a.spec.ts", true)
	state.SetReviewed("tests/c.spec.ts", true)

	require.NoError(t, st.SaveState("cafe", "build.zip", state))

	data, err := os.ReadFile(cfg.GetStatePath("cafe"))
	require.NoError(t, err)
	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "build.zip", raw["archive"])

	loaded, err := st.LoadState("cafe")
	require.NoError(t, err)
	assert.Equal(t, []string{"tests/b.spec.ts", "tests/a.spec.ts"}, loaded.SelectedFiles())
	assert.True(t, loaded.IsReviewed("tests/c.spec.ts"))

	entries, err := os.ReadDir(cfg.StateDir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp-", "temp files must not be left behind")
	}
}

func TestJSONStorage_CorruptState(t *testing.T) {
	st, cfg := newTestStorage(t)
	require.NoError(t, os.WriteFile(cfg.GetStatePath("bad"), []byte("{"), 0644))

	_, err := st.LoadState("bad")
	assert.Error(t, err)
}

func TestJSONStorage_Lock(t *testing.T) {
	st, _ := newTestStorage(t)

	lock, err := st.Lock("cafe")
	require.NoError(t, err)

	_, err = st.Lock("cafe")
	assert.ErrorIs(t, err, ErrStateLocked)

	other, err := st.Lock("beef")
	require.NoError(t, err)
	require.NoError(t, other.Unlock())

	require.NoError(t, lock.Unlock())

	again, err := st.Lock("cafe")
	require.NoError(t, err)
	require.NoError(t, again.Unlock())
}

func TestAtomicWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")
	require.NoError(t, AtomicWrite(path, []byte("one")))
	require.NoError(t, AtomicWrite(path, []byte("two")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))
}
