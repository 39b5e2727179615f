/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package timer

import "sync"

// JobCallback is run exactly once when its job fires.
type JobCallback func(arg interface{})

// Scheduler runs one-shot jobs on its own goroutine, one at a time, in
// submission order. It backs `create_job`/`cancel_job` from spec section
// 6; package isis layers the edge-coalescing (pending-handle plus
// reason bitset) on top of this, it does not belong here.
type Scheduler struct {
	mtx    sync.Mutex
	jobs   map[uint64]struct{}
	next   uint64
	queue  chan func()
	closed chan struct{}
	once   sync.Once
}

// NewScheduler starts a job scheduler.
func NewScheduler() *Scheduler {
	s := &Scheduler{
		jobs:   make(map[uint64]struct{}),
		queue:  make(chan func(), 64),
		closed: make(chan struct{}),
	}

	go s.run()

	return s
}

func (s *Scheduler) run() {
	for {
		select {
		case <-s.closed:
			return
		case fn := <-s.queue:
			fn()
		}
	}
}

// CreateJob submits a one-shot job and returns a handle usable with
// CancelJob. cbk is not invoked if the job is canceled before it runs.
func (s *Scheduler) CreateJob(arg interface{}, cbk JobCallback) uint64 {
	s.mtx.Lock()
	s.next++
	id := s.next
	s.jobs[id] = struct{}{}
	s.mtx.Unlock()

	s.queue <- func() {
		s.mtx.Lock()
		_, live := s.jobs[id]
		if live {
			delete(s.jobs, id)
		}
		s.mtx.Unlock()

		if !live {
			return
		}

		cbk(arg)
	}

	return id
}

// CancelJob cancels a pending job. Idempotent: canceling an unknown or
// already-run handle is a no-op.
func (s *Scheduler) CancelJob(handle uint64) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	delete(s.jobs, handle)
}

// Close stops the scheduler's goroutine. Queued jobs that have not yet
// run are dropped without firing.
func (s *Scheduler) Close() {
	s.once.Do(func() {
		close(s.closed)
	})
}
