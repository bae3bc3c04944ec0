package values

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap_TypedAccessors(t *testing.T) {
	m := New(map[string]any{
		"s":       "text",
		"i":       int64(5),
		"n":       3,
		"f":       float64(7),
		"b":       true,
		"strs":    []string{"a", "b"},
		"anys":    []any{"x", 1, "y"},
		"wrongly": 12,
	})

	assert.Equal(t, "text", m.GetString("s"))
	assert.Equal(t, "", m.GetString("wrongly"))
	assert.Equal(t, "", m.GetString("missing"))

	assert.Equal(t, 5, m.GetInt("i"))
	assert.Equal(t, 3, m.GetInt("n"))
	assert.Equal(t, 7, m.GetInt("f"))
	assert.Equal(t, 0, m.GetInt("s"))

	assert.True(t, m.GetBool("b"))
	assert.False(t, m.GetBool("s"))
	assert.False(t, m.GetBool("missing"))

	assert.Equal(t, []string{"a", "b"}, m.GetStringSlice("strs"))
	assert.Equal(t, []string{"x", "y"}, m.GetStringSlice("anys"))
	assert.Nil(t, m.GetStringSlice("s"))
}

func TestMap_NewCopiesInput(t *testing.T) {
	data := map[string]any{"k": "v"}
	m := New(data)
	data["k"] = "changed"

	assert.Equal(t, "v", m.GetString("k"))
}

func TestMap_KeysSorted(t *testing.T) {
	m := New(nil)
	m.Put("b.key", 1)
	m.Put("a.key", 2)

	assert.Equal(t, []string{"a.key", "b.key"}, m.Keys())
}

func TestMap_ReplaceAndSnapshot(t *testing.T) {
	m := New(map[string]any{"old": 1})
	m.Replace(map[string]any{"new": 2})

	_, ok := m.Get("old")
	assert.False(t, ok)

	snap := m.Snapshot()
	snap["new"] = 99
	assert.Equal(t, 2, m.GetInt("new"))
}

func TestMap_ConcurrentAccess(t *testing.T) {
	m := New(nil)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			m.Put("k", n)
			_ = m.GetInt("k")
			_ = m.Keys()
		}(i)
	}
	wg.Wait()
}
