package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore(t *testing.T) {
	store := NewConfigStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.values)
	assert.Equal(t, ":memory:", store.Path())
}

func TestNewConfigStoreWith_CopiesSeed(t *testing.T) {
	seed := map[string]any{"format.keys": "dasherize"}
	store := NewConfigStoreWith(seed)

	seed["format.keys"] = "camelize"

	assert.Equal(t, "dasherize", store.GetString("format.keys"))
}

func TestConfigStore_Set_Update(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("format.keys", "camelize"))
	require.NoError(t, store.Set("format.keys", "underscore"))

	val, ok := store.Get("format.keys")
	assert.True(t, ok)
	assert.Equal(t, "underscore", val)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStoreWith(map[string]any{
		"pagination.page_size": int64(8),
		"render.formats":       []any{"jsonapi", "pretty"},
		"links.base_url":       "https://api.example.com",
		"flag":                 true,
	})

	assert.Equal(t, 8, store.GetInt("pagination.page_size"))
	assert.Equal(t, []string{"jsonapi", "pretty"}, store.GetStringSlice("render.formats"))
	assert.Equal(t, "https://api.example.com", store.GetString("links.base_url"))
	assert.True(t, store.GetBool("flag"))

	assert.Zero(t, store.GetInt("missing"))
	assert.Empty(t, store.GetString("pagination.page_size"))
	assert.Nil(t, store.GetStringSlice("missing"))
	assert.False(t, store.GetBool("missing"))
}

func TestConfigStore_SaveAndLoadAreNoops(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("format.keys", "camelize"))

	require.NoError(t, store.Save())
	require.NoError(t, store.Load())

	assert.Equal(t, "camelize", store.GetString("format.keys"))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			key := "key" + string(rune('0'+id))
			_ = store.Set(key, id)
			_ = store.GetInt(key)
			_ = store.GetString(key)
		}(i)
	}
	wg.Wait()
}
