package keys

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewPoolRejectsEmpty(t *testing.T) {
	_, err := NewPool(nil)
	require.ErrorIs(t, err, ErrEmptyPool)

	_, err = NewPool([]string{"a", ""})
	require.ErrorIs(t, err, ErrEmptyPool)
}

func TestRotatorCyclesInStableOrder(t *testing.T) {
	r, err := NewRotatorFromKeys([]string{"k1", "k2", "k3", "k4"})
	require.NoError(t, err)

	var first, second []string
	for i := 0; i < r.Size(); i++ {
		first = append(first, r.Next())
	}
	for i := 0; i < r.Size(); i++ {
		second = append(second, r.Next())
	}

	require.Equal(t, []string{"k1", "k2", "k3", "k4"}, first)
	require.Equal(t, first, second)
}

func TestRotatorSingleKey(t *testing.T) {
	r, err := NewRotatorFromKeys([]string{"only"})
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		require.Equal(t, "only", r.Next())
	}
}

func TestRotatorConcurrentDistribution(t *testing.T) {
	tokens := []string{"a", "b", "c"}
	r, err := NewRotatorFromKeys(tokens)
	require.NoError(t, err)

	const rounds = 300
	var mu sync.Mutex
	counts := make(map[string]int)
	var wg sync.WaitGroup
	for i := 0; i < rounds; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			k := r.Next()
			mu.Lock()
			counts[k]++
			mu.Unlock()
		}()
	}
	wg.Wait()

	for _, tok := range tokens {
		require.Equal(t, rounds/len(tokens), counts[tok])
	}
	// 300 次调用后回到起点
	require.Equal(t, "a", r.Next())
}

func TestPoolCopiesTokens(t *testing.T) {
	src := []string{"x", "y"}
	r, err := NewRotatorFromKeys(src)
	require.NoError(t, err)
	src[0] = "mutated"
	require.Equal(t, "x", r.Next())
}
