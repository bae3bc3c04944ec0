package file

import (
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
	assert.Empty(t, store.Keys())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	if runtime.GOOS == "windows" {
		t.Setenv("USERPROFILE", home)
	}

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".figprep", "config.toml"), store.Path())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("dataset.root", "/data/fig"))

	val, ok := store.Get("dataset.root")
	assert.True(t, ok)
	assert.Equal(t, "/data/fig", val)
	assert.Equal(t, "/data/fig", store.GetString("dataset.root"))
}

func TestConfigStore_Persistence(t *testing.T) {
	tmpDir := t.TempDir()

	store1, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store1.Set("dataset.root", "/data"))
	require.NoError(t, store1.Set("validate.samples", 4))
	require.NoError(t, store1.Set("history.enabled", false))
	require.NoError(t, store1.Set("pipeline.processors", []string{"text_clean", "label"}))
	require.NoError(t, store1.Set("pipeline.label.strict", false))

	store2, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "/data", store2.GetString("dataset.root"))
	assert.Equal(t, 4, store2.GetInt("validate.samples"))
	assert.False(t, store2.GetBool("history.enabled"))
	_, ok := store2.Get("history.enabled")
	assert.True(t, ok)
	assert.Equal(t, []string{"text_clean", "label"}, store2.GetStringSlice("pipeline.processors"))
	assert.False(t, store2.GetBool("pipeline.label.strict"))
	assert.Equal(t, []string{
		"dataset.root",
		"history.enabled",
		"pipeline.label.strict",
		"pipeline.processors",
		"validate.samples",
	}, store2.Keys())
}

func TestConfigStore_WritesNestedTables(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("dataset.root", "/data"))

	content, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(content), "[dataset]")
	assert.NotContains(t, string(content), `"dataset.root"`)
}

func TestConfigStore_ReadsHandWrittenFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := `
[dataset]
root = "./fig/"
format = "jsonl"

[validate]
samples = 3

[pipeline]
processors = ["text_clean", "label"]

[pipeline.label]
strict = true
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "./fig/", store.GetString("dataset.root"))
	assert.Equal(t, "jsonl", store.GetString("dataset.format"))
	assert.Equal(t, 3, store.GetInt("validate.samples"))
	assert.Equal(t, []string{"text_clean", "label"}, store.GetStringSlice("pipeline.processors"))
	assert.True(t, store.GetBool("pipeline.label.strict"))
}

func TestConfigStore_Reload(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store.Set("dataset.root", "/a"))

	require.NoError(t, os.WriteFile(store.Path(), []byte("[dataset]\nroot = \"/b\"\n"), 0600))
	require.NoError(t, store.Reload())
	assert.Equal(t, "/b", store.GetString("dataset.root"))

	require.NoError(t, os.Remove(store.Path()))
	require.NoError(t, store.Reload())
	assert.Empty(t, store.Keys())
}

func TestConfigStore_FilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not enforced on windows")
	}
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("dataset.root", "/data"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), nil, 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Empty(t, store.Keys())
}

func TestNewConfigStore_InvalidTOML(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("[[[ not toml"), 0600))

	_, err := NewConfigStore(tmpDir)
	assert.Error(t, err)
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	tmpDir := t.TempDir()
	blocker := filepath.Join(tmpDir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

	_, err := NewConfigStore(filepath.Join(blocker, "sub"))
	assert.Error(t, err)
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			assert.NoError(t, store.Set("validate.samples", n))
			_ = store.GetInt("validate.samples")
		}(i)
	}
	wg.Wait()

	_, ok := store.Get("validate.samples")
	assert.True(t, ok)
}

func TestFlattenAndNestMap(t *testing.T) {
	nested := map[string]any{
		"dataset":  map[string]any{"root": "/d", "format": "arrow"},
		"pipeline": map[string]any{"label": map[string]any{"strict": true}},
		"top":      1,
	}

	flat := flattenMap(nested, "")
	assert.Equal(t, map[string]any{
		"dataset.root":          "/d",
		"dataset.format":        "arrow",
		"pipeline.label.strict": true,
		"top":                   1,
	}, flat)

	assert.Equal(t, nested, nestMap(flat))
}

func TestNestMap_ValueWinsOverTable(t *testing.T) {
	out := nestMap(map[string]any{"a": 1, "a.b": 2})
	assert.Equal(t, map[string]any{"a": 1}, out)
}

func TestConfigStore_SaveLeavesNoTempFiles(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("dataset.root", "/a"))
	require.NoError(t, store.Set("validate.samples", 3))

	entries, err := os.ReadDir(tmpDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "config.toml", entries[0].Name())
}
