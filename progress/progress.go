// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package progress reports the progress of long running work and lets
// callers cancel it.
//
// A [Progress] is shared between the goroutine doing the work and any number
// of observers. Workers call [Progress.Advance] and check
// [Progress.ShouldStop] at safe points. Observers read [Progress.Current] and
// may call [Progress.Cancel] at any time.
//
// All methods are safe to call on a nil *Progress. A nil progress never
// stops and records nothing.
package progress

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

// ErrCanceled is returned by [Progress.Err] after the work was canceled.
var ErrCanceled = errors.New("canceled")

// Progress tracks the progress of a unit of work.
type Progress struct {
	ctx      context.Context
	total    atomic.Int64
	current  atomic.Int64
	canceled atomic.Bool

	mu  sync.Mutex
	err error
}

// New returns a new Progress for work of the given total size.
func New(total int64) *Progress {
	return WithContext(context.Background(), total)
}

// WithContext returns a new Progress that also stops when ctx is done.
func WithContext(ctx context.Context, total int64) *Progress {
	p := &Progress{ctx: ctx}
	p.total.Store(total)
	return p
}

// SetTotal sets the total size of the work. It is called once before work
// starts when the size is not known up front.
func (p *Progress) SetTotal(total int64) {
	if p == nil {
		return
	}
	p.total.Store(total)
}

// Total returns the total size of the work.
func (p *Progress) Total() int64 {
	if p == nil {
		return 0
	}
	return p.total.Load()
}

// Current returns the amount of work completed so far.
func (p *Progress) Current() int64 {
	if p == nil {
		return 0
	}
	return p.current.Load()
}

// Fraction returns the completed fraction of the work in [0, 1].
func (p *Progress) Fraction() float64 {
	total := p.Total()
	if total <= 0 {
		return 0
	}
	return min(float64(p.Current())/float64(total), 1)
}

// Advance records n units of completed work. Negative values are ignored so
// that progress never moves backwards.
func (p *Progress) Advance(n int64) {
	if p == nil || n <= 0 {
		return
	}
	p.current.Add(n)
}

// Set records that current units of work are complete. Values smaller than
// the current progress are ignored.
func (p *Progress) Set(current int64) {
	if p == nil {
		return
	}
	for {
		old := p.current.Load()
		if current <= old || p.current.CompareAndSwap(old, current) {
			return
		}
	}
}

// Cancel requests that the work stop. It may be called from any goroutine.
func (p *Progress) Cancel() {
	if p == nil {
		return
	}
	p.canceled.Store(true)
}

// Abort stops the work with the given error. The first error wins.
func (p *Progress) Abort(err error) {
	if p == nil || err == nil {
		return
	}
	p.mu.Lock()
	if p.err == nil {
		p.err = err
	}
	p.mu.Unlock()
	p.canceled.Store(true)
}

// ShouldStop reports whether the work should stop because it was canceled,
// aborted, or its context is done.
func (p *Progress) ShouldStop() bool {
	if p == nil {
		return false
	}
	if p.canceled.Load() {
		return true
	}
	return p.ctx != nil && p.ctx.Err() != nil
}

// Err returns the reason the work stopped or nil if it has not been stopped.
func (p *Progress) Err() error {
	if p == nil {
		return nil
	}
	p.mu.Lock()
	err := p.err
	p.mu.Unlock()
	if err != nil {
		return err
	}
	if p.canceled.Load() {
		return ErrCanceled
	}
	if p.ctx != nil {
		if err := p.ctx.Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrCanceled, err)
		}
	}
	return nil
}
