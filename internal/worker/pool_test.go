package worker

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolPreservesInputOrder(t *testing.T) {
	pool := NewPool[int, string](4, func(ctx context.Context, n int) (string, error) {
		return strconv.Itoa(n * 2), nil
	})

	results := pool.Execute(context.Background(), []int{1, 2, 3, 4, 5})
	require.Len(t, results, 5)
	for i, task := range results {
		require.NoError(t, task.Err)
		assert.Equal(t, i+1, task.Input)
		assert.Equal(t, strconv.Itoa((i+1)*2), task.Result)
	}
}

func TestPoolReportsPerTaskErrors(t *testing.T) {
	wantErr := errors.New("boom")
	pool := NewPool[int, int](2, func(ctx context.Context, n int) (int, error) {
		if n == 3 {
			return 0, wantErr
		}
		return n, nil
	})

	results := pool.Execute(context.Background(), []int{1, 2, 3})
	assert.NoError(t, results[0].Err)
	assert.NoError(t, results[1].Err)
	assert.ErrorIs(t, results[2].Err, wantErr)
}

func TestPoolCancelledContextStampsUnclaimedTasks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pool := NewPool[int, int](1, func(ctx context.Context, n int) (int, error) {
		return n + 1, nil
	})

	results := pool.Execute(ctx, []int{1, 2, 3, 4})
	require.Len(t, results, 4)
	for i, task := range results {
		// A task either ran (and carries its real result) or reports the
		// cancellation; it must never come back zero-valued with a nil error.
		if task.Err == nil {
			assert.Equal(t, i+1, task.Input)
			assert.Equal(t, i+2, task.Result)
		} else {
			assert.ErrorIs(t, task.Err, context.Canceled)
			assert.Equal(t, i+1, task.Input)
		}
	}
}

func TestBatch(t *testing.T) {
	batches := Batch([]int{1, 2, 3, 4, 5}, 2)
	require.Len(t, batches, 3)
	assert.Equal(t, []int{1, 2}, batches[0])
	assert.Equal(t, []int{5}, batches[2])

	assert.Empty(t, Batch([]int(nil), 2))
	assert.Len(t, Batch([]int{1, 2}, 0), 2)
}
