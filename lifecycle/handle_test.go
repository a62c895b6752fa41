// SPDX-License-Identifier: MIT

package lifecycle_test

import (
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/katalvlaran/lvnum/lifecycle"
	"github.com/stretchr/testify/require"
)

type cell struct{ v int }

type tracker struct{ frees atomic.Int64 }

func (t *tracker) free(*cell) { t.frees.Add(1) }

// TestReleaseOnce verifies explicit release frees exactly once and blocks access.
func TestReleaseOnce(t *testing.T) {
	var tr tracker
	h := lifecycle.New(&cell{v: 7}, tr.free)

	c, err := h.Get()
	require.NoError(t, err)
	require.Equal(t, 7, c.v)

	require.True(t, h.Release())  // first release frees
	require.False(t, h.Release()) // second is a no-op
	require.Equal(t, int64(1), tr.frees.Load())

	_, err = h.Get()
	require.ErrorIs(t, err, lifecycle.ErrReleased)
	require.True(t, h.Released())

	_, err = lifecycle.Use(h, func(c *cell) int { return c.v })
	require.ErrorIs(t, err, lifecycle.ErrReleased)
}

// TestConcurrentRelease verifies racing releases still free once.
func TestConcurrentRelease(t *testing.T) {
	var tr tracker
	h := lifecycle.New(&cell{}, tr.free)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.Release()
		}()
	}
	wg.Wait()
	require.Equal(t, int64(1), tr.frees.Load())
}

// TestBuildFailureReleases verifies atomic construction.
func TestBuildFailureReleases(t *testing.T) {
	var tr tracker
	boom := errors.New("boom")
	h, err := lifecycle.Build(func() *cell { return &cell{} }, tr.free, func(*cell) error { return boom })
	require.ErrorIs(t, err, boom)
	require.Nil(t, h)
	require.Equal(t, int64(1), tr.frees.Load()) // released on the failure path

	h, err = lifecycle.Build(func() *cell { return &cell{} }, tr.free, func(c *cell) error { c.v = 3; return nil })
	require.NoError(t, err)
	v, err := lifecycle.Use(h, func(c *cell) int { return c.v })
	require.NoError(t, err)
	require.Equal(t, 3, v)
	h.Release()
}

// TestCleanupSafetyNet verifies that a dropped handle is eventually freed.
func TestCleanupSafetyNet(t *testing.T) {
	var tr tracker
	func() {
		_ = lifecycle.New(&cell{}, tr.free)
	}()
	require.Eventually(t, func() bool {
		runtime.GC()
		return tr.frees.Load() == 1
	}, 5*time.Second, 10*time.Millisecond)
}

// TestNewRejectsNil verifies the programmer-error guard.
func TestNewRejectsNil(t *testing.T) {
	var tr tracker
	require.Panics(t, func() { lifecycle.New[cell](nil, tr.free) })
	require.Panics(t, func() { lifecycle.New(&cell{}, nil) })
}
