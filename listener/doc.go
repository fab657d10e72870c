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

// Package listener brings TCP listener sockets up: given a concrete address
// or a wildcard request, it creates, configures, binds and starts listening
// on a consistent set of OS sockets, reconciling dual-stack IPv4/IPv6
// behaviour, multi-interface expansion, port agreement across the sockets of
// one logical listener, and rollback on partial failure.
//
// The entry point is a Binder:
//
//	b := listener.NewBinder()
//	c := listener.NewContainer()
//	port, err := b.BindWildcard(c, listener.Options{ReusePort: true}, 0)
//
// On success every socket in the container is in the listening state and
// carries the same assigned port; each can be handed to an independent
// accept loop. Bring-up is synchronous and single-threaded; the container
// must not be shared across goroutines while a bind call is in flight.
//
// TLS, connection framing and the accept loop itself are out of scope; this
// package only gets sockets into the listening state and reports their
// ports.
package listener
