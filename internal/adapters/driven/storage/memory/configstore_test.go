package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/userdir-cli/internal/core/domain"
)

func TestNewConfigStore(t *testing.T) {
	store := NewConfigStore()
	require.NotNil(t, store)
	assert.Empty(t, store.Keys())
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set(domain.KeyAPIBaseURL, "http://localhost:8080/api"))
	require.NoError(t, store.Set(domain.KeyAPIBaseURL, "http://localhost:9090/api"))

	val, ok := store.Get(domain.KeyAPIBaseURL)
	assert.True(t, ok)
	assert.Equal(t, "http://localhost:9090/api", val)

	_, ok = store.Get("missing.key")
	assert.False(t, ok)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set(domain.KeyTotalPages, 3))
	require.NoError(t, store.Set(domain.KeySearchDebounceMS, int64(250)))
	require.NoError(t, store.Set(domain.KeyAPIRequestsPerSecond, 2.5))
	require.NoError(t, store.Set(domain.KeyMockBackend, true))
	require.NoError(t, store.Set(domain.KeyAPIKey, "secret"))

	assert.Equal(t, 3, store.GetInt(domain.KeyTotalPages))
	assert.Equal(t, 250, store.GetInt(domain.KeySearchDebounceMS))
	assert.Equal(t, 2, store.GetInt(domain.KeyAPIRequestsPerSecond))
	assert.InDelta(t, 2.5, store.GetFloat(domain.KeyAPIRequestsPerSecond), 0.001)
	assert.InDelta(t, 3.0, store.GetFloat(domain.KeyTotalPages), 0.001)
	assert.True(t, store.GetBool(domain.KeyMockBackend))
	assert.Equal(t, "secret", store.GetString(domain.KeyAPIKey))
}

func TestConfigStore_WrongTypesReturnZero(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("k", "not a number"))

	assert.Equal(t, 0, store.GetInt("k"))
	assert.Equal(t, 0.0, store.GetFloat("k"))
	assert.False(t, store.GetBool("k"))
	assert.Equal(t, "", store.GetString("missing"))

	require.NoError(t, store.Set("n", 42))
	assert.Equal(t, "", store.GetString("n"))
}

func TestConfigStore_KeysSorted(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set(domain.KeyTotalPages, 3))
	require.NoError(t, store.Set(domain.KeyAPIBaseURL, "x"))
	require.NoError(t, store.Set(domain.KeyErrorSeconds, 6))

	assert.Equal(t, []string{
		domain.KeyAPIBaseURL,
		domain.KeyTotalPages,
		domain.KeyErrorSeconds,
	}, store.Keys())
}

func TestConfigStore_LoadIsNoOp(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("k", "v"))
	require.NoError(t, store.Load())
	assert.Equal(t, "v", store.GetString("k"))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = store.Set(domain.KeyTotalPages, n)
			_ = store.GetInt(domain.KeyTotalPages)
			_ = store.Keys()
		}(i)
	}
	wg.Wait()

	_, ok := store.Get(domain.KeyTotalPages)
	assert.True(t, ok)
}
