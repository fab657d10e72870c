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
	"fmt"

	"github.com/kinholt/listenkit/address"
	"github.com/kinholt/listenkit/internal/errorschain"
)

// BindWildcard serves an "any interface" bind request. When interface
// enumeration is available and the options ask for wildcard expansion, it
// delegates entirely to BindAllLocalAddresses and inherits its
// all-or-nothing behaviour.
//
// Otherwise it applies a two-step best-effort policy: bind the IPv6
// wildcard first; if that socket is dual-stack, or turned out IPv4-only
// because the host has no IPv6 stack, its port is final and the call
// returns. A true IPv6-only socket (or a failed IPv6 bind) is followed by
// an IPv4 wildcard bind at the unified port. The call succeeds when either
// bind succeeded and fails only when both did, with both errors combined.
//
// The asymmetry with the enumerator is deliberate: naming every interface
// means the caller wants all of them; falling back to wildcards means the
// caller wants whatever works.
func (b *Binder) BindWildcard(c *Container, opts Options, requestedPort int) (int, error) {
	if b.sys.HasInterfaceAddresses() && opts.ExpandWildcardAddrs {
		return b.BindAllLocalAddresses(c, opts, requestedPort)
	}

	assignedPort := 0

	// IPv6 first: a dual-stack socket can cover both families at once.
	v6Sock, v6Err := b.CreateAndPrepare(opts, address.MakeWild6(uint16(requestedPort)))
	if v6Err == nil {
		c.Append(v6Sock)
		requestedPort = v6Sock.Port
		assignedPort = v6Sock.Port
		if v6Sock.Mode == DSModeDualStack || v6Sock.Mode == DSModeIPv4Only {
			return assignedPort, nil
		}
	}

	// IPv6-only socket or no IPv6 at all: add 0.0.0.0 at the same port
	// (or at the originally requested port when the IPv6 bind failed).
	v4Sock, v4Err := b.CreateAndPrepare(opts, address.MakeWild4(uint16(requestedPort)))
	if v4Err == nil {
		c.Append(v4Sock)
		assignedPort = v4Sock.Port
	}

	if assignedPort > 0 {
		if v6Err != nil {
			b.logger.Debugf("failed to add [::] listener, the environment may not support IPv6: %v", v6Err)
		}
		if v4Err != nil {
			b.logger.Debugf("failed to add 0.0.0.0 listener, the environment may not support IPv4: %v", v4Err)
		}
		return assignedPort, nil
	}

	combined := errorschain.New(errorschain.ReturnAll()).AddErrors(v6Err, v4Err).Error()
	return 0, fmt.Errorf("failed to add any wildcard listeners: %w", combined)
}
