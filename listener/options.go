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

import "time"

// Options configures one logical bind request. The zero value is usable:
// no port sharing, no wildcard expansion, link-local addresses included,
// default traffic class, no user timeout, no mutator.
//
// Options are read-only to the bind operations; the same value may be
// reused across requests.
type Options struct {
	// ReusePort enables SO_REUSEPORT on IP sockets where the platform
	// supports it, letting several processes share one port.
	ReusePort bool

	// ExpandWildcardAddrs makes a wildcard bind enumerate every local
	// interface address and bind each one individually instead of binding
	// the wildcard addresses themselves.
	ExpandWildcardAddrs bool

	// ExcludeLinkLocal skips link-local interface addresses during
	// enumeration.
	ExcludeLinkLocal bool

	// DSCP is the differentiated-services code point stamped on outgoing
	// traffic. Values <= 0 leave the OS default in place.
	DSCP int

	// UserTimeout bounds how long transmitted data may remain
	// unacknowledged before the kernel closes the connection. Zero means
	// no policy. Applying it is best-effort and never fails bring-up.
	UserTimeout time.Duration

	// SocketMutator, when non-nil, runs against every socket after the
	// standard options are applied and before bind. A mutator error aborts
	// preparation of that socket.
	SocketMutator func(fd int) error
}
