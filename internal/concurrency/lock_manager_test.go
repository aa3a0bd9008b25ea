package concurrency

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockManager_SameKeyReturnsSameLock(t *testing.T) {
	lm := NewLockManager()

	assert.Same(t, lm.GetLock("player:p1:wallet"), lm.GetLock("player:p1:wallet"))
	assert.NotSame(t, lm.GetLock("player:p1:wallet"), lm.GetLock("player:p2:wallet"))
}

func TestWithLock_SerializesCriticalSections(t *testing.T) {
	lm := NewLockManager()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = lm.WithLock("shared", func() error {
				counter++
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter, "Every increment must be observed")
}

func TestWithLock_PropagatesError(t *testing.T) {
	lm := NewLockManager()
	sentinel := errors.New("boom")

	err := lm.WithLock("k", func() error { return sentinel })

	assert.ErrorIs(t, err, sentinel)
}

func TestWithLocks_AcquiresDuplicateKeysOnce(t *testing.T) {
	lm := NewLockManager()

	// Duplicate keys would deadlock if locked twice.
	err := lm.WithLocks([]string{"a", "b", "a"}, func() error { return nil })

	require.NoError(t, err)
}

func TestWithLocks_OrderIndependent(t *testing.T) {
	lm := NewLockManager()
	done := make(chan struct{})

	// Two goroutines acquire the same key set in opposite declaration order.
	// Sorted acquisition makes this safe regardless.
	go func() {
		for i := 0; i < 50; i++ {
			_ = lm.WithLocks([]string{"x", "y"}, func() error { return nil })
		}
		done <- struct{}{}
	}()
	go func() {
		for i := 0; i < 50; i++ {
			_ = lm.WithLocks([]string{"y", "x"}, func() error { return nil })
		}
		done <- struct{}{}
	}()

	<-done
	<-done
}
