package ticketing

import (
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCounterStore_Sequential(t *testing.T) {
	path := filepath.Join(t.TempDir(), "counters.json")

	s, err := NewCounterStore(path)
	require.NoError(t, err)

	for want := 1; want <= 5; want++ {
		got, err := s.Next("guild-1")
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	// A second guild counts independently.
	got, err := s.Next("guild-2")
	require.NoError(t, err)
	require.Equal(t, 1, got)
	require.Equal(t, 5, s.Current("guild-1"))
}

func TestCounterStore_SurvivesReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "counters.json")

	s, err := NewCounterStore(path)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err := s.Next("guild-1")
		require.NoError(t, err)
	}

	reloaded, err := NewCounterStore(path)
	require.NoError(t, err)
	require.Equal(t, 3, reloaded.Current("guild-1"))

	got, err := reloaded.Next("guild-1")
	require.NoError(t, err)
	require.Equal(t, 4, got)
}

func TestCounterStore_ConcurrentAllocationsAreUnique(t *testing.T) {
	path := filepath.Join(t.TempDir(), "counters.json")

	s, err := NewCounterStore(path)
	require.NoError(t, err)

	const n = 50
	results := make(chan int, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := s.Next("guild-1")
			require.NoError(t, err)
			results <- got
		}()
	}
	wg.Wait()
	close(results)

	got := make([]int, 0, n)
	for r := range results {
		got = append(got, r)
	}
	sort.Ints(got)

	for i, v := range got {
		require.Equal(t, i+1, v)
	}
}

func TestCounterStore_Ensure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "counters.json")

	s, err := NewCounterStore(path)
	require.NoError(t, err)

	require.NoError(t, s.Ensure("guild-1", 7))
	require.Equal(t, 7, s.Current("guild-1"))

	// A lower floor never rolls the counter back.
	require.NoError(t, s.Ensure("guild-1", 3))
	require.Equal(t, 7, s.Current("guild-1"))

	// The raised counter is persisted and allocation continues past it.
	reloaded, err := NewCounterStore(path)
	require.NoError(t, err)
	got, err := reloaded.Next("guild-1")
	require.NoError(t, err)
	require.Equal(t, 8, got)
}

func TestCounterStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "counters.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	_, err := NewCounterStore(path)
	require.Error(t, err)
}

func TestCounterStore_Ping(t *testing.T) {
	path := filepath.Join(t.TempDir(), "counters.json")

	s, err := NewCounterStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Ping())
}
