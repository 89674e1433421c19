package pool

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_ExecutesEveryItem(t *testing.T) {
	const n = 50
	var seen int32

	errsOut := Run(context.Background(), n, 4, func(_ context.Context, i int) error {
		atomic.AddInt32(&seen, 1)
		return nil
	})

	require.Len(t, errsOut, n)
	for _, err := range errsOut {
		assert.NoError(t, err)
	}
	assert.EqualValues(t, n, seen)
}

func TestRun_CapturesPerItemErrors(t *testing.T) {
	errsOut := Run(context.Background(), 4, 2, func(_ context.Context, i int) error {
		if i == 2 {
			return errors.New("boom")
		}
		return nil
	})

	require.Len(t, errsOut, 4)
	assert.NoError(t, errsOut[0])
	assert.NoError(t, errsOut[1])
	assert.Error(t, errsOut[2])
	assert.NoError(t, errsOut[3])
}

func TestRun_PanicInOneWorkerDoesNotAbortOthers(t *testing.T) {
	var ran int32
	errsOut := Run(context.Background(), 5, 3, func(_ context.Context, i int) error {
		if i == 1 {
			panic("worker exploded")
		}
		atomic.AddInt32(&ran, 1)
		return nil
	})

	require.Len(t, errsOut, 5)
	assert.Error(t, errsOut[1])
	assert.Contains(t, errsOut[1].Error(), "panic")
	assert.EqualValues(t, 4, ran)
}

func TestRun_ZeroItemsReturnsEmptySlice(t *testing.T) {
	errsOut := Run(context.Background(), 0, 2, func(_ context.Context, i int) error {
		t.Fatal("fn should never be called for n == 0")
		return nil
	})
	assert.Empty(t, errsOut)
}

func TestRun_DefaultsWorkersToSizeWhenUnset(t *testing.T) {
	var seen int32
	errsOut := Run(context.Background(), 10, 0, func(_ context.Context, i int) error {
		atomic.AddInt32(&seen, 1)
		return nil
	})
	require.Len(t, errsOut, 10)
	assert.EqualValues(t, 10, seen)
}

func TestSize_AtLeastOne(t *testing.T) {
	assert.GreaterOrEqual(t, Size(), 1)
}
