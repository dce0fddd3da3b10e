package client

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncerRunsOnlyLastFunc(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	defer d.Stop()

	var mu sync.Mutex
	var got []int
	record := func(n int) func() {
		return func() {
			mu.Lock()
			got = append(got, n)
			mu.Unlock()
		}
	}

	d.Do(record(1))
	d.Do(record(2))
	d.Do(record(3))

	time.Sleep(150 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{3}, got)
}

func TestDebouncerSeparateWindows(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	defer d.Stop()

	var mu sync.Mutex
	count := 0
	bump := func() {
		mu.Lock()
		count++
		mu.Unlock()
	}

	d.Do(bump)
	time.Sleep(100 * time.Millisecond)
	d.Do(bump)
	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 2, count)
}

func TestDebouncerStopCancelsPending(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)

	fired := false
	d.Do(func() { fired = true })
	d.Stop()

	time.Sleep(100 * time.Millisecond)
	assert.False(t, fired)
}
