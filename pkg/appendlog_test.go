package pkg

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppendLog(t *testing.T) {
	t.Run("Append and Get", func(t *testing.T) {
		log := NewAppendLog[string]()

		log.Append("first")
		log.Append("second")

		val1, err := log.Get(0)
		require.NoError(t, err)
		require.Equal(t, "first", val1)

		val2, err := log.Get(1)
		require.NoError(t, err)
		require.Equal(t, "second", val2)

		val3, err := log.Get(3)
		require.Error(t, err)
		require.Equal(t, "", val3)
	})

	t.Run("Len returns correct count", func(t *testing.T) {
		log := NewAppendLog[int]()

		require.Equal(t, uint64(0), log.Len())

		log.Append(1)
		require.Equal(t, uint64(1), log.Len())

		log.Append(2)
		log.Append(3)
		require.Equal(t, uint64(3), log.Len())
	})

	t.Run("AppendBatch adds multiple items", func(t *testing.T) {
		log := NewAppendLog[int]()

		log.AppendBatch([]int{10, 20, 30, 40, 50})
		require.Equal(t, uint64(5), log.Len())

		val, err := log.Get(0)
		require.NoError(t, err)
		require.Equal(t, 10, val)

		val, err = log.Get(4)
		require.NoError(t, err)
		require.Equal(t, 50, val)
	})

	t.Run("Range iterates all items in order", func(t *testing.T) {
		log := NewAppendLog[int]()

		expected := []int{100, 200, 300}
		for _, v := range expected {
			log.Append(v)
		}

		var collected []int

		err := log.Range(func(_ uint64, item int) error {
			collected = append(collected, item)
			return nil
		})
		require.NoError(t, err)
		require.Equal(t, expected, collected)
	})

	t.Run("Range stops on first error", func(t *testing.T) {
		log := NewAppendLog[int]()
		log.AppendBatch([]int{1, 2, 3})

		stop := errors.New("stop")
		visited := 0

		err := log.Range(func(index uint64, _ int) error {
			visited++

			if index == 1 {
				return stop
			}

			return nil
		})
		require.ErrorIs(t, err, stop)
		require.Equal(t, 2, visited)
	})

	t.Run("Snapshot is a copy", func(t *testing.T) {
		log := NewAppendLog[int]()
		log.Append(1)

		snap := log.Snapshot()
		require.Equal(t, []int{1}, snap)

		log.Append(2)
		require.Equal(t, []int{1}, snap)
		require.Equal(t, []int{1, 2}, log.Snapshot())
	})

	t.Run("concurrent appends are all recorded", func(t *testing.T) {
		log := NewAppendLog[int]()

		const workers = 8
		const perWorker = 250

		var wg sync.WaitGroup

		for w := 0; w < workers; w++ {
			wg.Add(1)

			go func() {
				defer wg.Done()

				for i := 0; i < perWorker; i++ {
					log.Append(i)
				}
			}()
		}

		wg.Wait()

		require.Equal(t, uint64(workers*perWorker), log.Len())
	})
}
