// MIT License
//
// Copyright (c) 2024-2026 ListenKit Authors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package listener

import (
	"sync"

	"github.com/kinholt/listenkit/internal/errorschain"
	"github.com/kinholt/listenkit/log"
)

// Binder performs listener bring-up against a System. It is cheap to
// construct; the only state it carries is the cached accept queue size.
// One Binder may serve many sequential bind requests.
type Binder struct {
	sys    System
	logger log.Logger

	backlogOnce sync.Once
	backlog     int
}

// BinderOption configures a Binder at creation time.
type BinderOption func(*Binder)

// WithLogger sets the logger bring-up events are reported through.
func WithLogger(logger log.Logger) BinderOption {
	return func(b *Binder) { b.logger = logger }
}

// WithSystem substitutes the platform capability surface; intended for
// tests and for embedders that wrap the default System.
func WithSystem(sys System) BinderOption {
	return func(b *Binder) { b.sys = sys }
}

// NewBinder creates a Binder over the platform System, logging through
// log.DefaultLogger unless configured otherwise.
func NewBinder(opts ...BinderOption) *Binder {
	binder := &Binder{
		sys:    DefaultSystem(),
		logger: log.DefaultLogger,
	}
	for _, opt := range opts {
		opt(binder)
	}
	return binder
}

// Teardown closes every socket held by the container and empties it. It is
// the caller's cleanup path for both successful bring-ups at shutdown and
// partially-populated containers after a failed wildcard bind.
func (b *Binder) Teardown(c *Container) error {
	chain := errorschain.New(errorschain.ReturnAll())
	for _, sock := range c.sockets {
		chain.AddError(b.sys.Close(sock.Fd))
	}
	c.sockets = nil
	return chain.Error()
}
