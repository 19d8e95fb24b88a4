package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySetGet(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	_, ok := m.Get(ctx, "missing")
	assert.False(t, ok)

	m.Set(ctx, "k", []byte("v1"), time.Minute)
	got, ok := m.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, []byte("v1"), got)

	// Overwrite wins.
	m.Set(ctx, "k", []byte("v2"), time.Minute)
	got, _ = m.Get(ctx, "k")
	assert.Equal(t, []byte("v2"), got)
}

func TestMemoryExpiry(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	m.Set(ctx, "k", []byte("v"), 10*time.Millisecond)
	_, ok := m.Get(ctx, "k")
	require.True(t, ok)

	time.Sleep(25 * time.Millisecond)
	_, ok = m.Get(ctx, "k")
	assert.False(t, ok)
}

func TestMemoryConcurrentAccess(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			m.Set(ctx, "shared", []byte("v"), time.Minute)
		}()
		go func() {
			defer wg.Done()
			m.Get(ctx, "shared")
		}()
	}
	wg.Wait()

	got, ok := m.Get(ctx, "shared")
	require.True(t, ok)
	assert.Equal(t, []byte("v"), got)
}
