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

// Package errorschain aggregates a sequence of errors in insertion order.
package errorschain

import "go.uber.org/multierr"

// Chain collects errors and reduces them to a single error value.
type Chain struct {
	failFast bool
	errs     []error
}

// ChainOption configures a Chain at creation time.
type ChainOption func(*Chain)

// ReturnFirst makes Error return only the first non-nil error.
func ReturnFirst() ChainOption {
	return func(c *Chain) { c.failFast = true }
}

// ReturnAll makes Error combine every non-nil error. This is the default.
func ReturnAll() ChainOption {
	return func(c *Chain) { c.failFast = false }
}

// New creates an empty chain. Errors are evaluated in insertion order.
func New(opts ...ChainOption) *Chain {
	chain := &Chain{}
	for _, opt := range opts {
		opt(chain)
	}
	return chain
}

// AddError appends a single error to the chain. Nil errors are kept so the
// insertion order stays meaningful but are skipped during reduction.
func (c *Chain) AddError(err error) *Chain {
	c.errs = append(c.errs, err)
	return c
}

// AddErrors appends a batch of errors to the chain in the given order.
func (c *Chain) AddErrors(errs ...error) *Chain {
	c.errs = append(c.errs, errs...)
	return c
}

// Error reduces the chain: nil when no error was recorded, the first error
// under ReturnFirst, or the multierr combination otherwise.
func (c *Chain) Error() error {
	var combined error
	for _, err := range c.errs {
		if err == nil {
			continue
		}
		if c.failFast {
			return err
		}
		combined = multierr.Append(combined, err)
	}
	return combined
}
