package onceguard

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDo_RunsInitializerOnlyOnce(t *testing.T) {
	g := New()
	var calls int32

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := g.Do("k", func() (any, error) {
				atomic.AddInt32(&calls, 1)
				return 42, nil
			})
			require.NoError(t, err)
			assert.Equal(t, 42, v)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls)
}

func TestDo_DistinctKeysRunIndependently(t *testing.T) {
	g := New()
	v1, _ := g.Do("a", func() (any, error) { return "a-value", nil })
	v2, _ := g.Do("b", func() (any, error) { return "b-value", nil })
	assert.Equal(t, "a-value", v1)
	assert.Equal(t, "b-value", v2)
}

func TestDo_PanicRecoveredAndRetriable(t *testing.T) {
	g := New()

	_, err := g.Do("k", func() (any, error) {
		panic("boom")
	})
	require.Error(t, err)
	var panicErr *PanicError
	require.True(t, errors.As(err, &panicErr))

	v, err := g.Do("k", func() (any, error) {
		return "recovered", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "recovered", v)
}

func TestDo_ErrorDropsEntryForRetry(t *testing.T) {
	g := New()

	_, err := g.Do("k", func() (any, error) {
		return nil, errors.New("first fails")
	})
	require.Error(t, err)

	v, err := g.Do("k", func() (any, error) {
		return "second succeeds", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "second succeeds", v)
}
