// Copyright 2025 The parallel-algorithms Authors. SPDX-License-Identifier: Apache-2.0

// Package forkjoin provides a persistent, bounded pool for fork/join
// parallelism. Unlike per-call goroutine spawning, a Pool is created once and
// reused across many operations, so recursive algorithms pay the scheduling
// cost only when a fork actually buys parallelism.
//
// Admission is a worker-slot semaphore: Fork runs the task on a fresh
// goroutine when a slot is free and inline on the calling goroutine
// otherwise. The inline fallback means a bounded pool can never deadlock
// under recursive fork/join — every fork either gains a worker or makes
// progress on the caller's own goroutine.
//
// Usage:
//
//	pool := forkjoin.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	g := pool.NewGroup()
//	g.Fork(func() error { return sortLeft() })
//	g.Fork(func() error { return sortRight() })
//	if err := g.Join(); err != nil {
//	    return err
//	}
package forkjoin

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Pool bounds the number of concurrently running forked tasks. It carries no
// task queue: work that cannot be admitted runs inline at the fork site.
type Pool struct {
	workers int
	slots   chan struct{}
	closed  atomic.Bool
}

// New creates a pool admitting up to workers concurrent forked tasks.
// If workers <= 0, uses GOMAXPROCS.
func New(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Pool{
		workers: workers,
		slots:   make(chan struct{}, workers),
	}
}

// NumWorkers returns the maximum number of concurrently admitted tasks.
func (p *Pool) NumWorkers() int {
	return p.workers
}

// Close stops admitting forked tasks; subsequent forks run inline.
// Tasks already running are unaffected. Calling Close multiple times is safe.
func (p *Pool) Close() {
	p.closed.Store(true)
}

func (p *Pool) tryAcquire() bool {
	if p.closed.Load() {
		return false
	}
	select {
	case p.slots <- struct{}{}:
		return true
	default:
		return false
	}
}

func (p *Pool) release() {
	<-p.slots
}

// Group is a single fork/join scope: fork any number of tasks, then join
// once. A Group must not be reused after Join.
type Group struct {
	pool *Pool
	eg   errgroup.Group

	mu        sync.Mutex
	inlineErr error
}

// NewGroup creates a fork/join scope backed by the pool.
func (p *Pool) NewGroup() *Group {
	return &Group{pool: p}
}

// Fork schedules fn as one unit of work in the group. It runs concurrently
// if a worker slot is available, otherwise inline before Fork returns.
// A panic inside fn is recovered and reported as an error from Join.
func (g *Group) Fork(fn func() error) {
	if g.pool.tryAcquire() {
		g.eg.Go(func() error {
			defer g.pool.release()
			return runTask(fn)
		})
		return
	}
	if err := runTask(fn); err != nil {
		g.mu.Lock()
		if g.inlineErr == nil {
			g.inlineErr = err
		}
		g.mu.Unlock()
	}
}

// Join blocks until every forked task has completed and returns a non-nil
// error if any of them failed. All memory effects of the forked tasks are
// visible to the caller once Join returns.
func (g *Group) Join() error {
	if err := g.eg.Wait(); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.inlineErr
}

func runTask(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("forkjoin: task panicked: %v", r)
		}
	}()
	return fn()
}

// ParallelFor executes fn for each index in [0, n), splitting the index
// space into one contiguous chunk per worker. Blocks until all work
// completes. Falls back to a single sequential call when the pool is closed
// or has a single worker.
//
// fn receives (start, end) indices where work should process [start, end).
func (p *Pool) ParallelFor(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}

	workers := min(p.workers, n)
	if workers == 1 || p.closed.Load() {
		fn(0, n)
		return
	}

	// Chunk size rounds up so every index is covered.
	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		start := i * chunkSize
		end := min(start+chunkSize, n)
		if start >= n {
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn(start, end)
		}()
	}
	wg.Wait()
}
